package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Switch between named libraries",
	Long: `Each library keeps its own documents, profile and settings. Use one per
subject, class or exam. The --library flag selects a library for a single
command without switching.`,
	Args: cobra.NoArgs,
	RunE: runLibraryCurrent,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List libraries",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a library, creating it if needed",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryUse,
}

var libraryCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current library",
	Args:  cobra.NoArgs,
	RunE:  runLibraryCurrent,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryUseCmd)
	libraryCmd.AddCommand(libraryCurrentCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryCurrent(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	cmd.Println(libraryService.Current())
	return nil
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	names, err := libraryService.Names(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}

	current := libraryService.Current()
	for _, name := range names {
		marker := " "
		if name == current {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, name)
	}
	return nil
}

func runLibraryUse(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	if err := libraryService.Use(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to switch library: %w", err)
	}

	cmd.Printf("Now using library %q.\n", libraryService.Current())
	return nil
}
