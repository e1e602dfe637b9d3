package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise the whole library",
	Long: `Picks the most representative sentences from every document in the
current library and prints them in their original order.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a multiple-choice quiz",
	Long: `Builds fill-in-the-blank questions from the current library.

In a terminal the quiz opens in the interactive UI. Otherwise questions are
asked line by line: answer with A-D or 1-4. Answered questions count
towards your daily target and streak.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Read text aloud",
	Long:  `Reads the given text, or a document with --doc, aloud with the preferred voice.`,
	Example: `  smartstudy speak "Photosynthesis converts light into chemical energy"
  smartstudy speak --doc 3f2a...`,
	RunE: runSpeak,
}

var (
	summarySentences int
	summarySpeak     bool
	quizQuestions    int
	quizPrint        bool
	quizPlain        bool
	speakDoc         string
)

func init() {
	summaryCmd.Flags().IntVarP(&summarySentences, "sentences", "n", domain.DefaultSummarySentences, "maximum number of sentences")
	summaryCmd.Flags().BoolVarP(&summarySpeak, "speak", "s", false, "read the summary aloud")

	quizCmd.Flags().IntVarP(&quizQuestions, "questions", "n", domain.DefaultQuizQuestions, "number of questions")
	quizCmd.Flags().BoolVar(&quizPrint, "print", false, "print the questions with an answer key and exit")
	quizCmd.Flags().BoolVar(&quizPlain, "plain", false, "ask questions line by line even in a terminal")

	speakCmd.Flags().StringVar(&speakDoc, "doc", "", "read the text of this document")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(speakCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if studyService == nil {
		return errStudyNotConfigured
	}

	ctx := commandContext(cmd)
	summary, err := studyService.Summary(ctx, summarySentences)
	if err != nil {
		return fmt.Errorf("failed to summarise library: %w", err)
	}

	printSummary(cmd, summary)

	if summarySpeak && !summary.Insufficient && speechService != nil {
		if err := speechService.SpeakAndWait(ctx, summary.String()); err != nil {
			return fmt.Errorf("failed to read summary aloud: %w", err)
		}
	}
	return nil
}

func printSummary(cmd *cobra.Command, summary domain.Summary) {
	if summary.Insufficient || len(summary.Sentences) == 0 {
		cmd.Println(domain.NotEnoughMaterial)
		return
	}
	for _, s := range summary.Sentences {
		cmd.Printf("• %s\n", s)
	}
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	if studyService == nil {
		return errStudyNotConfigured
	}

	if !quizPrint && !quizPlain && isTerminal(cmd) {
		if libraryService == nil {
			return errLibraryNotConfigured
		}
		return launchTUI(cmd, messages.ViewQuiz, quizQuestions)
	}

	quiz, err := studyService.Quiz(commandContext(cmd), quizQuestions)
	if err != nil {
		return fmt.Errorf("failed to build quiz: %w", err)
	}
	if quiz.Insufficient || quiz.Len() == 0 {
		cmd.Println(domain.NotEnoughMaterial)
		return nil
	}

	if quizPrint {
		printQuiz(cmd, quiz)
		return nil
	}
	return askQuiz(cmd, quiz)
}

// printQuiz writes every question followed by an answer key.
func printQuiz(cmd *cobra.Command, quiz domain.Quiz) {
	for i, q := range quiz.Questions {
		cmd.Printf("%d. %s\n", i+1, q.Stem)
		for j, opt := range q.Options {
			cmd.Printf("   %c) %s\n", optionLetter(j), opt)
		}
		cmd.Println()
	}
	cmd.Println("Answers:")
	for i, q := range quiz.Questions {
		cmd.Printf("  %d. %c) %s\n", i+1, optionLetter(q.AnswerIndex()), q.Answer)
	}
}

// askQuiz runs the quiz on the command's input and output, then records
// the answered questions. End of input stops the quiz early.
func askQuiz(cmd *cobra.Command, quiz domain.Quiz) error {
	ctx := commandContext(cmd)
	reader := bufio.NewReader(cmd.InOrStdin())
	result := domain.QuizResult{}

	for i, q := range quiz.Questions {
		cmd.Printf("\nQuestion %d/%d\n%s\n", i+1, quiz.Len(), q.Stem)
		for j, opt := range q.Options {
			cmd.Printf("  %c) %s\n", optionLetter(j), opt)
		}

		choice, ok := readAnswer(cmd, reader, len(q.Options))
		if !ok {
			cmd.Println()
			break
		}

		result.Total++
		if q.IsCorrect(q.Options[choice]) {
			result.Correct++
			cmd.Println("✓ Correct")
			speak(cmd, "Correct")
		} else {
			cmd.Printf("✗ %s\n", q.Answer)
			speak(cmd, "The answer is "+q.Answer)
		}
	}

	if result.Total == 0 {
		cmd.Println("No questions answered.")
		return nil
	}

	cmd.Printf("\nYou got %d/%d correct.\n", result.Correct, result.Total)

	if libraryService == nil {
		return nil
	}
	awarded, err := libraryService.RecordQuiz(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to record quiz: %w", err)
	}
	for _, badge := range awarded {
		cmd.Printf("New badge: %s\n", badge)
	}
	return nil
}

// readAnswer prompts until a valid option is chosen. It returns false at
// end of input.
func readAnswer(cmd *cobra.Command, reader *bufio.Reader, n int) (int, bool) {
	for {
		cmd.Printf("Answer [A-%c]: ", optionLetter(n-1))
		line, err := reader.ReadString('\n')
		if idx, ok := parseAnswer(line, n); ok {
			return idx, true
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				cmd.PrintErrf("read error: %v\n", err)
			}
			return 0, false
		}
		cmd.Println("Please answer with a letter or number.")
	}
}

// parseAnswer accepts "a"-"d" (any case) or "1"-"4".
func parseAnswer(input string, n int) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	if len(input) == 1 {
		c := input[0] | 0x20
		if c >= 'a' && int(c-'a') < n {
			return int(c - 'a'), true
		}
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > n {
		return 0, false
	}
	return val - 1, true
}

func optionLetter(i int) rune {
	if i < 0 {
		return '?'
	}
	return rune('A' + i)
}

// speak reads feedback aloud without blocking. Failures are ignored.
func speak(cmd *cobra.Command, text string) {
	if speechService == nil {
		return
	}
	_ = speechService.Speak(commandContext(cmd), text) //nolint:errcheck // feedback is best effort
}

func runSpeak(cmd *cobra.Command, args []string) error {
	if speechService == nil {
		return errSpeechNotConfigured
	}

	ctx := commandContext(cmd)
	text := strings.Join(args, " ")
	if speakDoc != "" {
		if libraryService == nil {
			return errLibraryNotConfigured
		}
		doc, err := libraryService.Get(ctx, speakDoc)
		if err != nil {
			return documentError("get", speakDoc, err)
		}
		text = doc.Text
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to speak: pass text or --doc")
	}

	if libraryService != nil {
		settings, err := libraryService.Settings(ctx)
		if err == nil && !settings.VoiceEnabled {
			cmd.Println("Voice output is off. Turn it on with 'smartstudy settings voice on'.")
			return nil
		}
	}

	if err := speechService.SpeakAndWait(ctx, text); err != nil {
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}

// isTerminal reports whether the command reads from and writes to a terminal.
func isTerminal(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}
