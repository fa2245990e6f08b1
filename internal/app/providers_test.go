package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "video2broll/internal/app/config"
	"video2broll/internal/app/lock"
	"video2broll/internal/app/pipeline"
	envconfig "video2broll/internal/config"
)

func TestProvideLockerBackends(t *testing.T) {
	cfg := appconfig.Default()
	locker := ProvideLocker(cfg)
	assert.IsType(t, &lock.MemoryLocker{}, locker)

	cfg.Lock.Backend = "redis"
	cfg.Lock.Addr = "localhost:6379"
	cfg.Lock.TTL = time.Minute
	locker = ProvideLocker(cfg)
	assert.IsType(t, &lock.RedisLocker{}, locker)
}

func TestProvideStorageRequiresDropboxToken(t *testing.T) {
	cfg := appconfig.Default()
	creds := &envconfig.Credentials{}

	_, err := ProvideStorage(cfg, creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DROPBOX_ACCESS_TOKEN")

	creds.Dropbox = "test-token"
	store, err := ProvideStorage(cfg, creds)
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestProvideClientsFallBackToEnvCredentials(t *testing.T) {
	cfg := appconfig.Default()
	creds := &envconfig.Credentials{
		Scribie: "scribie-key",
		OpenAI:  "sk-test-openai-key-1234567890",
		Pexels:  "pexels-key",
	}

	assert.NotNil(t, ProvideTranscriptionProvider(cfg, creds))
	assert.NotNil(t, ProvideStockProvider(cfg, creds))
	assert.NotNil(t, ProvideTextGenerator(cfg, creds))
}

func TestProvideMatcherConfigAppliesDefaults(t *testing.T) {
	cfg := appconfig.Default()
	matcherConfig := ProvideMatcherConfig(cfg)

	matcher := pipeline.NewStockMatcher(nil, nil, matcherConfig, ProvideLogger())
	assert.NotNil(t, matcher)
}
