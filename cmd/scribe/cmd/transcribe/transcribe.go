package transcribe

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"scribe/internal/app"
	"scribe/internal/app/batch"
)

var (
	model    string
	language string
	noSave   bool
	parallel int
	progress bool
)

func init() {
	Cmd.Flags().StringVarP(&model, "model", "m", "nova-2", "Deepgram model: nova-2, nova, base or enhanced")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "language code such as es or en (detected when empty)")
	Cmd.Flags().BoolVar(&noSave, "no-save", false, "do not append results to the history")
	Cmd.Flags().IntVarP(&parallel, "parallel", "j", 2, "number of files transcribed at once")
	Cmd.Flags().BoolVar(&progress, "progress", false, "always show the progress bar")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file or directory>...",
	Short: "Transcribe audio files and save them to the history",
	Long: `Transcribe audio files and save them to the history

- Directories contribute every supported audio file they contain
- Supported formats: .mp3 .wav .m4a .ogg .flac .mp4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := batch.CollectAudioFiles(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no supported audio files found")
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		application, cleanup, err := app.Bootstrap(cmd.Context(), app.BootstrapOptions{Verbose: verbose, Quiet: true})
		if err != nil {
			return err
		}
		defer cleanup()
		if err := application.Config.RequireDeepgram(); err != nil {
			return err
		}

		runner := batch.NewRunner(application.Tools, application.Logger)
		results := runner.Run(cmd.Context(), files, batch.Options{
			Model:    model,
			Language: language,
			Save:     !noSave,
			Parallel: parallel,
			Progress: batch.ProgressConfig{
				Enabled: len(files) > 1 && batch.ShouldShowProgress(progress),
				Writer:  cmd.ErrOrStderr(),
			},
		})

		return report(cmd.OutOrStdout(), results)
	},
}

func report(out io.Writer, results []batch.Result) error {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(out, "%s: error: %v\n\n", result.File, result.Err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", result.Output)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
