package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"video2broll/internal/app/api/openai"
	"video2broll/internal/app/api/pexels"
	"video2broll/internal/app/api/scribie"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/storage"
)

// AppConfig is the full application configuration loaded from YAML.
// Secrets never live here; they come from the environment and are
// injected after loading.
type AppConfig struct {
	Server  ServerConfig           `yaml:"server"`
	DB      DBConfig               `yaml:"db"`
	Storage StorageConfig          `yaml:"storage"`
	Lock    LockConfig             `yaml:"lock"`
	Scribie scribie.Config         `yaml:"scribie"`
	Pexels  pexels.Config          `yaml:"pexels"`
	OpenAI  openai.Config          `yaml:"openai"`
	Matcher pipeline.MatcherConfig `yaml:"matcher"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DBConfig selects and configures the record store
type DBConfig struct {
	// Driver is "sqlite" or "postgres"
	Driver string `yaml:"driver"`
	// Path is the sqlite database file
	Path string `yaml:"path"`
	// DSN is the postgres connection string
	DSN string `yaml:"dsn"`
}

// StorageConfig selects and configures the package archive store
type StorageConfig struct {
	// Backend is "dropbox" or "minio"
	Backend string              `yaml:"backend"`
	MinIO   storage.MinIOConfig `yaml:"minio"`
}

// LockConfig selects the record locker backend
type LockConfig struct {
	// Backend is "memory" or "redis"
	Backend string        `yaml:"backend"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// Load reads, expands, defaults, and validates the configuration file.
// A missing file yields pure defaults.
func Load(configPath string) (*AppConfig, error) {
	config := Default()

	configPath = os.ExpandEnv(configPath)
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return config, nil
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	config.setDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	config := &AppConfig{}
	config.setDefaults()
	return config
}

func (c *AppConfig) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		// Packaging downloads clips inline, so writes run long.
		c.Server.WriteTimeout = 10 * time.Minute
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.DB.Path = filepath.Join(home, ".video2broll", "records.db")
		} else {
			c.DB.Path = "records.db"
		}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "dropbox"
	}
	if c.Lock.Backend == "" {
		c.Lock.Backend = "memory"
	}
	if c.Lock.Addr == "" {
		c.Lock.Addr = "localhost:6379"
	}
}

// Validate validates the configuration
func (c *AppConfig) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid db driver '%s' (want sqlite or postgres)", c.DB.Driver)
	}
	if c.DB.Driver == "postgres" && c.DB.DSN == "" {
		return fmt.Errorf("db driver postgres requires a dsn")
	}

	switch c.Storage.Backend {
	case "dropbox", "minio":
	default:
		return fmt.Errorf("invalid storage backend '%s' (want dropbox or minio)", c.Storage.Backend)
	}
	if c.Storage.Backend == "minio" && c.Storage.MinIO.Endpoint == "" {
		return fmt.Errorf("storage backend minio requires an endpoint")
	}

	switch c.Lock.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid lock backend '%s' (want memory or redis)", c.Lock.Backend)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// DefaultConfigPath returns the configuration file path, honoring the
// V2B_CONFIG_PATH override.
func DefaultConfigPath() string {
	if path := os.Getenv("V2B_CONFIG_PATH"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".video2broll", "config.yaml")
}
