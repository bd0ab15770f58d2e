package history

import (
	"github.com/spf13/cobra"

	"scribe/internal/app"
	"scribe/internal/app/tools"
)

var (
	search string
	limit  int
)

func init() {
	Cmd.Flags().StringVarP(&search, "search", "s", "", "only show transcriptions containing this text")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results (1-100)")
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved transcriptions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		application, cleanup, err := app.Bootstrap(cmd.Context(), app.BootstrapOptions{Verbose: verbose, Quiet: true})
		if err != nil {
			return err
		}
		defer cleanup()

		text, err := application.Tools.Invoke(cmd.Context(), tools.QueryRecords, map[string]any{
			"search":      search,
			"limit":       limit,
		})
		if err != nil {
			return err
		}
		cmd.Println(text)
		return nil
	},
}
