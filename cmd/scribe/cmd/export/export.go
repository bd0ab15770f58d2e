package export

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/app"
	exporter "scribe/internal/app/export"
)

var (
	output string
	format string
)

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default transcriptions_<timestamp>.<format>)")
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or xlsx")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription history to CSV or Excel",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := exporter.ParseFormat(format)
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		application, cleanup, err := app.Bootstrap(cmd.Context(), app.BootstrapOptions{Verbose: verbose, Quiet: true})
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := application.Store.All(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no transcriptions found")
		}

		path := output
		if path == "" {
			path = f.Filename(time.Now())
		}

		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := exporter.Write(file, f, records); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}

		cmd.Printf("Exported %d transcriptions to %s\n", len(records), path)
		return nil
	},
}
