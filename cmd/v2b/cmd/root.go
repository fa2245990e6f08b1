package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"video2broll/cmd/v2b/cmd/export"
	"video2broll/cmd/v2b/cmd/process"
	"video2broll/cmd/v2b/cmd/serve"
	"video2broll/cmd/v2b/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "v2b",
	Short: "Turn voiceover videos into stock b-roll packages",
	Long: `Turn voiceover videos into downloadable stock b-roll packages.
- Transcribe the source video through an async speech-to-text service
- Extract visual search terms from the transcript
- Match stock footage per term and bundle the clips into a ZIP archive`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
