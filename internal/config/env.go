package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials holds the provider secrets loaded from environment
type Credentials struct {
	Scribie string
	OpenAI  string
	Pexels  string
	Dropbox string
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetCredentials retrieves provider secrets from environment variables.
// Keys are validated for shape where a shape exists; absence is not an
// error because each command requires only the providers it touches.
func GetCredentials() (*Credentials, error) {
	creds := &Credentials{
		Scribie: strings.TrimSpace(os.Getenv("SCRIBIE_API_KEY")),
		OpenAI:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Pexels:  strings.TrimSpace(os.Getenv("PEXELS_API_KEY")),
		Dropbox: strings.TrimSpace(os.Getenv("DROPBOX_ACCESS_TOKEN")),
	}

	if creds.OpenAI != "" {
		if !strings.HasPrefix(creds.OpenAI, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(creds.OpenAI) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	return creds, nil
}

// Require returns an error naming every listed provider whose secret is
// missing. Provider names match the Credentials field names lowercased.
func (c *Credentials) Require(providers ...string) error {
	var missing []string
	for _, provider := range providers {
		switch provider {
		case "scribie":
			if c.Scribie == "" {
				missing = append(missing, "SCRIBIE_API_KEY")
			}
		case "openai":
			if c.OpenAI == "" {
				missing = append(missing, "OPENAI_API_KEY")
			}
		case "pexels":
			if c.Pexels == "" {
				missing = append(missing, "PEXELS_API_KEY")
			}
		case "dropbox":
			if c.Dropbox == "" {
				missing = append(missing, "DROPBOX_ACCESS_TOKEN")
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// InitializeConfig loads environment and retrieves provider secrets.
// This is the main entry point for configuration loading.
func InitializeConfig() (*Credentials, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	creds, err := GetCredentials()
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}

	return creds, nil
}
