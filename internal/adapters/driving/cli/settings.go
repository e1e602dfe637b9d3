package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// ocrLanguages are offered by the settings wizard. Any tesseract code is
// accepted by "settings ocr-lang".
var ocrLanguages = []struct {
	Code  string
	Label string
}{
	{"eng", "English"},
	{"hin", "Hindi"},
	{"mar", "Marathi"},
	{"san", "Sanskrit"},
	{"eng+hin", "English + Hindi"},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage library settings",
	Long: `View and change the OCR language and voice output of the current library.

Use subcommands to change one setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsOCRLangCmd = &cobra.Command{
	Use:   "ocr-lang <code>",
	Short: "Set the OCR language",
	Long: `Set the tesseract language used for scans and image-only PDF pages.

Codes combine with "+", for example "eng+hin". The language data must be
installed for OCR to use it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsOCRLang,
}

var settingsVoiceCmd = &cobra.Command{
	Use:       "voice <on|off>",
	Short:     "Turn voice output on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runSettingsVoice,
}

var settingsVoicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the voices available for reading aloud",
	Args:  cobra.NoArgs,
	RunE:  runSettingsVoices,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsOCRLangCmd)
	settingsCmd.AddCommand(settingsVoiceCmd)
	settingsCmd.AddCommand(settingsVoicesCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	settings, err := libraryService.Settings(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Library]")
	cmd.Printf("  Name: %s\n", libraryService.Current())
	cmd.Println()

	cmd.Println("[OCR]")
	cmd.Printf("  Language: %s\n", describeLang(settings.OCRLang))
	cmd.Println()

	cmd.Println("[Voice]")
	cmd.Printf("  Enabled: %s\n", onOff(settings.VoiceEnabled))
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	ctx := commandContext(cmd)
	settings, err := libraryService.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("SmartStudy Settings Wizard")
	cmd.Println("==========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Select OCR Language")
	cmd.Println("---------------------------")
	current := 0
	for i, lang := range ocrLanguages {
		cmd.Printf("  %d. %s (%s)\n", i+1, lang.Label, lang.Code)
		if lang.Code == settings.OCRLang {
			current = i + 1
		}
	}
	if current == 0 {
		current = 1
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(ocrLanguages), current)
	lang := ocrLanguages[idx-1].Code

	if err := libraryService.SetOCRLang(ctx, lang); err != nil {
		return fmt.Errorf("failed to set OCR language: %w", err)
	}
	cmd.Printf("Set OCR language to: %s\n\n", describeLang(lang))

	cmd.Println("Step 2: Voice Output")
	cmd.Println("--------------------")
	def := "Y/n"
	if !settings.VoiceEnabled {
		def = "y/N"
	}
	cmd.Printf("Read questions and summaries aloud? [%s]: ", def)
	answer := readLine(reader)
	enabled := settings.VoiceEnabled
	if answer != "" {
		enabled = isYes(answer)
	}

	if err := libraryService.SetVoiceEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("failed to set voice: %w", err)
	}
	cmd.Printf("Voice output: %s\n\n", onOff(enabled))

	cmd.Println("Configuration Complete!")
	return nil
}

func runSettingsOCRLang(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	if err := libraryService.SetOCRLang(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to set OCR language: %w", err)
	}

	cmd.Printf("OCR language set to: %s\n", describeLang(strings.TrimSpace(args[0])))
	return nil
}

func runSettingsVoice(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "yes", "true":
		enabled = true
	case "off", "no", "false":
		enabled = false
	default:
		return fmt.Errorf("invalid value %q: use on or off", args[0])
	}

	if err := libraryService.SetVoiceEnabled(commandContext(cmd), enabled); err != nil {
		return fmt.Errorf("failed to set voice: %w", err)
	}

	cmd.Printf("Voice output: %s\n", onOff(enabled))
	return nil
}

func runSettingsVoices(cmd *cobra.Command, _ []string) error {
	if speechService == nil {
		return errSpeechNotConfigured
	}

	voices, err := speechService.Voices(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	if len(voices) == 0 {
		cmd.Println("No voices found.")
		return nil
	}

	for _, v := range voices {
		marker := " "
		if v.Default {
			marker = "*"
		}
		cmd.Printf(" %s %-24s %s\n", marker, v.Name, v.Locale)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, EOF yields whatever was typed
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func isYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// describeLang returns "English (eng)" for known codes and the code otherwise.
func describeLang(code string) string {
	for _, lang := range ocrLanguages {
		if lang.Code == code {
			return fmt.Sprintf("%s (%s)", lang.Label, lang.Code)
		}
	}
	return code
}
