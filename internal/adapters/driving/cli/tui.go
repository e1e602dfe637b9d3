package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/messages"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for SmartStudy.

The TUI lets you take quizzes, read summaries and browse your library with
keyboard navigation. Answers and summaries are read aloud when voice is on.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Check answer
  s        - Speak
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var tuiQuizSize int

func init() {
	tuiCmd.Flags().IntVarP(&tuiQuizSize, "questions", "n", 0, "questions per quiz (default 8)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return launchTUI(cmd, messages.ViewMenu, tuiQuizSize)
}

// launchTUI opens the TUI on the given view.
func launchTUI(cmd *cobra.Command, start messages.ViewType, quizSize int) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(libraryService, studyService, speechService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(commandContext(cmd)).
		WithQuizSize(quizSize).
		WithStartView(start)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
