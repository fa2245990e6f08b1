package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"video2broll/internal/app/api/dropbox"
	"video2broll/internal/app/api/openai"
	"video2broll/internal/app/api/pexels"
	"video2broll/internal/app/api/scribie"
	appconfig "video2broll/internal/app/config"
	"video2broll/internal/app/lock"
	"video2broll/internal/app/media"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/repository"
	"video2broll/internal/app/repository/pg"
	"video2broll/internal/app/repository/sqlite"
	"video2broll/internal/app/storage"
	envconfig "video2broll/internal/config"
)

// Application bundles the wired object graph for commands and the API
// server.
type Application struct {
	Config      *appconfig.AppConfig
	Logger      *slog.Logger
	DAO         repository.MediaRecordDAO
	Storage     storage.ObjectStorage
	Locker      lock.RecordLocker
	Transcriber *pipeline.Transcriber
	Extractor   *pipeline.KeywordExtractor
	Matcher     *pipeline.StockMatcher
	Packager    *pipeline.PackageBuilder
}

// Close releases held resources.
func (a *Application) Close() error {
	return a.DAO.Close()
}

// ProvideLogger builds the process-wide structured logger.
func ProvideLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// ProvideDAO opens the configured record store.
func ProvideDAO(cfg *appconfig.AppConfig) (repository.MediaRecordDAO, error) {
	if cfg.DB.Driver == "postgres" {
		return pg.NewMediaRecordDB(cfg.DB.DSN)
	}
	return sqlite.NewMediaRecordDB(cfg.DB.Path)
}

// ProvideStorage builds the configured object storage backend.
func ProvideStorage(cfg *appconfig.AppConfig, creds *envconfig.Credentials) (storage.ObjectStorage, error) {
	if cfg.Storage.Backend == "minio" {
		return storage.NewMinIOStorage(context.Background(), cfg.Storage.MinIO)
	}
	if err := creds.Require("dropbox"); err != nil {
		return nil, err
	}
	return storage.NewDropboxStorage(dropbox.NewClient(dropbox.Config{
		AccessToken: creds.Dropbox,
	})), nil
}

// ProvideLocker builds the configured record locker.
func ProvideLocker(cfg *appconfig.AppConfig) lock.RecordLocker {
	if cfg.Lock.Backend == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Lock.Addr})
		return lock.NewRedisLocker(client, cfg.Lock.TTL)
	}
	return lock.NewMemoryLocker()
}

// ProvideTranscriptionProvider builds the speech-to-text client.
func ProvideTranscriptionProvider(cfg *appconfig.AppConfig, creds *envconfig.Credentials) pipeline.TranscriptionProvider {
	clientConfig := cfg.Scribie
	if clientConfig.APIKey == "" {
		clientConfig.APIKey = creds.Scribie
	}
	return scribie.NewClient(clientConfig)
}

// ProvideStockProvider builds the stock footage search client.
func ProvideStockProvider(cfg *appconfig.AppConfig, creds *envconfig.Credentials) pipeline.StockProvider {
	clientConfig := cfg.Pexels
	if clientConfig.APIKey == "" {
		clientConfig.APIKey = creds.Pexels
	}
	return pexels.NewClient(clientConfig)
}

// ProvideTextGenerator builds the completion client.
func ProvideTextGenerator(cfg *appconfig.AppConfig, creds *envconfig.Credentials) pipeline.TextGenerator {
	clientConfig := cfg.OpenAI
	if clientConfig.APIKey == "" {
		clientConfig.APIKey = creds.OpenAI
	}
	return openai.NewGenerator(clientConfig)
}

// ProvideProber builds the media duration prober.
func ProvideProber() pipeline.DurationProber {
	return media.NewFFProbe()
}

// ProvideMatcherConfig extracts the matcher tuning section.
func ProvideMatcherConfig(cfg *appconfig.AppConfig) pipeline.MatcherConfig {
	return cfg.Matcher
}
