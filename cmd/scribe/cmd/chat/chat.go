package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"scribe/internal/app"
	"scribe/internal/app/agent"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var exitWords = []string{"exit", "quit", "bye"}

// Runner runs one agent turn.
type Runner interface {
	Run(ctx context.Context, req agent.Request) string
}

// Cmd represents the chat command
var Cmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the transcription agent",
	Long: `Talk to the transcription agent

- "transcribe data/audio/meeting.mp3" transcribes and saves a file
- "show my history" or "search for invoices" queries saved transcriptions
- exit, quit, bye or Ctrl-D ends the session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		application, cleanup, err := app.Bootstrap(cmd.Context(), app.BootstrapOptions{
			Verbose:    verbose,
			Quiet:      true,
			RequireLLM: true,
		})
		if err != nil {
			return err
		}
		defer cleanup()

		return Loop(cmd.Context(), application.Agent, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Loop reads one message per line until EOF or an exit word and prints the
// agent's reply to each.
func Loop(ctx context.Context, runner Runner, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, titleStyle.Render("AI TRANSCRIPTION AGENT"))
	fmt.Fprintln(out, hintStyle.Render("Ask me to transcribe a file, show your history or search it. Type exit to quit."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n"+promptStyle.Render("You: "))
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nGoodbye!")
			return scanner.Err()
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if isExit(message) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if err := turn(ctx, runner, message, out); err != nil {
			fmt.Fprintln(out, errorStyle.Render("Error: "+err.Error()))
			fmt.Fprintln(out, hintStyle.Render("Try again or type exit to quit."))
		}
	}
}

func turn(ctx context.Context, runner Runner, message string, out io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	reply := runner.Run(ctx, agent.Request{Message: message})
	fmt.Fprintln(out, resultStyle.Render(reply))
	return nil
}

func isExit(message string) bool {
	message = strings.ToLower(message)
	for _, word := range exitWords {
		if message == word {
			return true
		}
	}
	return false
}
