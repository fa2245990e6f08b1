package process

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"video2broll/internal/app"
	appconfig "video2broll/internal/app/config"
	"video2broll/internal/app/model"
	"video2broll/internal/app/runner"
	envconfig "video2broll/internal/config"
)

var (
	configPath   string
	mediaID      string
	sourceURL    string
	fileName     string
	owner        string
	aspectRatio  string
	pollInterval time.Duration
	pollTimeout  time.Duration
	noProgress   bool
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	Cmd.Flags().StringVarP(&mediaID, "id", "i", "", "existing media record id")
	Cmd.Flags().StringVarP(&sourceURL, "source", "s", "", "publicly reachable source video URL")
	Cmd.Flags().StringVarP(&fileName, "name", "n", "", "display file name for a new record")
	Cmd.Flags().StringVarP(&owner, "owner", "u", "", "owner for a new record")
	Cmd.Flags().StringVarP(&aspectRatio, "aspect-ratio", "a", "16:9", "target aspect ratio (16:9, 4:3, 9:16, 3:4, 1:1)")
	Cmd.Flags().DurationVar(&pollInterval, "poll-interval", 10*time.Second, "transcription poll interval")
	Cmd.Flags().DurationVar(&pollTimeout, "poll-timeout", 30*time.Minute, "transcription poll timeout")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
}

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full b-roll pipeline for one video",
	Long: `Run the full b-roll pipeline for one video.

Either continue an existing record (--id) or register a new one from a
hosted video URL (--source plus --name). Blocks until the package link
is published.`,
	Run: func(cmd *cobra.Command, args []string) {
		if mediaID == "" && sourceURL == "" {
			log.Fatal("either --id or --source is required")
		}

		if configPath == "" {
			configPath = appconfig.DefaultConfigPath()
		}
		cfg, err := appconfig.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v\n", err)
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

		if mediaID == "" {
			if fileName == "" {
				log.Fatal("--name is required with --source")
			}
			record := &model.MediaRecord{
				ID:             uuid.NewString(),
				Owner:          owner,
				FileName:       fileName,
				SourceLocation: sourceURL,
			}
			if err := application.DAO.Create(record); err != nil {
				log.Fatalf("Failed to create media record: %v\n", err)
			}
			mediaID = record.ID
			fmt.Printf("created media record %s\n", mediaID)
		}

		pipelineRunner := runner.New(
			application.Transcriber,
			application.Extractor,
			application.Matcher,
			application.Packager,
			runner.Config{
				PollInterval: pollInterval,
				PollTimeout:  pollTimeout,
				AspectRatio:  aspectRatio,
				Progress: runner.ProgressConfig{
					Enabled: runner.ShouldShowProgress(false) && !noProgress,
				},
			},
			application.Logger,
		)

		link, err := pipelineRunner.Run(context.Background(), mediaID)
		if err != nil {
			log.Fatalf("Pipeline failed: %v\n", err)
		}

		fmt.Printf("package ready: %s\n", link)
	},
}
