package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"video2broll/internal/api/server"
	v1routes "video2broll/internal/api/v1/routes"
	"video2broll/internal/api/v1/services"
	"video2broll/internal/app"
	appconfig "video2broll/internal/app/config"
	envconfig "video2broll/internal/config"
)

var (
	configPath  string
	port        int
	environment string
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default $HOME/.video2broll/config.yaml)")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	Cmd.Flags().StringVarP(&environment, "env", "e", "development", "environment (development or production)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the b-roll pipeline HTTP API",
	Long: `Run the b-roll pipeline HTTP API.

Exposes media upload, transcription orchestration, keyword extraction,
stock clip matching, packaging, and prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			configPath = appconfig.DefaultConfigPath()
		}
		cfg, err := appconfig.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v\n", err)
		}
		if port != 0 {
			cfg.Server.Port = port
		}

		creds, err := envconfig.GetCredentials()
		if err != nil {
			log.Fatalf("Failed to load credentials: %v\n", err)
		}

		application, err := app.InitializeApplication(cfg, creds)
		if err != nil {
			log.Fatalf("Failed to initialize application: %v\n", err)
		}
		defer application.Close()

		container := &v1routes.ServiceContainer{
			MediaService: services.NewMediaService(application.DAO, application.Storage, application.Logger),
			PipelineService: services.NewPipelineService(
				application.DAO,
				application.Transcriber,
				application.Extractor,
				application.Matcher,
				application.Packager,
				application.Locker,
			),
		}

		apiServer := server.NewServer(server.Config{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  2 * time.Minute,
			Environment:  environment,
		}, container, application.Logger)

		if err := apiServer.Start(); err != nil {
			log.Fatalf("Failed to start server: %v\n", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(ctx); err != nil {
			log.Fatalf("Forced shutdown: %v\n", err)
		}
	},
}
