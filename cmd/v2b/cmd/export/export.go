package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"video2broll/internal/app"
	appconfig "video2broll/internal/app/config"
	"video2broll/internal/app/export"
)

var (
	configPath     string
	owner          string
	outputFilePath string
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	Cmd.Flags().StringVarP(&owner, "owner", "u", "", "set owner")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("owner")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export an owner's media records to excel",
	Long: `Export an owner's media records to excel

- One row per record: transcript, keywords, clip count, and package link`,
	Run: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			configPath = appconfig.DefaultConfigPath()
		}
		cfg, err := appconfig.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v\n", err)
		}
		dao, err := app.ProvideDAO(cfg)
		if err != nil {
			log.Fatalf("Failed to open record store: %v\n", err)
		}
		defer dao.Close()

		records, err := dao.ListByOwner(owner)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(records, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
