package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"scribe/cmd/scribe/cmd/chat"
	"scribe/cmd/scribe/cmd/export"
	"scribe/cmd/scribe/cmd/history"
	"scribe/cmd/scribe/cmd/serve"
	"scribe/cmd/scribe/cmd/transcribe"
	"scribe/cmd/scribe/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Transcribe audio with Deepgram and keep a searchable history",
	Long: `Transcribe audio with Deepgram and keep a searchable CSV history.

- chat: talk to the agent, which picks the right tool for each message
- serve: expose the agent and the history over HTTP
- transcribe, history, export: work with the history directly`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(chat.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "verbose output")
}
