//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	appconfig "video2broll/internal/app/config"
	"video2broll/internal/app/pipeline"
	envconfig "video2broll/internal/config"
)

// InitializeApplication wires the full object graph from configuration
// and environment credentials.
func InitializeApplication(cfg *appconfig.AppConfig, creds *envconfig.Credentials) (*Application, error) {
	wire.Build(
		ProvideLogger,
		ProvideDAO,
		ProvideStorage,
		ProvideLocker,
		ProvideTranscriptionProvider,
		ProvideStockProvider,
		ProvideTextGenerator,
		ProvideProber,
		ProvideMatcherConfig,
		pipeline.NewTranscriber,
		pipeline.NewKeywordExtractor,
		pipeline.NewStockMatcher,
		pipeline.NewPackageBuilder,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
