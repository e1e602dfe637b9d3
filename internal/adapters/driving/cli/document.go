package cli

import (
	"bufio"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage documents in the library",
	Long:    `List, view, summarise or remove documents in the current library.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the library",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentTextCmd = &cobra.Command{
	Use:   "text [doc-id]",
	Short: "Print the extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentText,
}

var documentSummaryCmd = &cobra.Command{
	Use:   "summary [doc-id]",
	Short: "Summarise one document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSummary,
}

var documentRemoveCmd = &cobra.Command{
	Use:     "rm [doc-id]",
	Aliases: []string{"remove"},
	Short:   "Remove a document from the library",
	Args:    cobra.ExactArgs(1),
	RunE:    runDocumentRemove,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every document",
	Long:  `Removes every document from the current library. Your profile, streak and badges are kept.`,
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

var documentSubjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Count documents per subject and chapter",
	Args:  cobra.NoArgs,
	RunE:  runDocumentSubjects,
}

var (
	documentSummarySentences int
	clearYes                 bool
)

func init() {
	documentSummaryCmd.Flags().IntVarP(&documentSummarySentences, "sentences", "n", 3, "maximum number of sentences")
	documentClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentTextCmd)
	documentCmd.AddCommand(documentSummaryCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentClearCmd)
	documentCmd.AddCommand(documentSubjectsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	docs, err := libraryService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents in library %q.\n", libraryService.Current())
		return nil
	}

	cmd.Printf("Documents in library %q:\n\n", libraryService.Current())
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Name)
		cmd.Printf("    Tags: %s • %s\n", docs[i].Subject, docs[i].Chapter)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	doc, err := libraryService.Get(commandContext(cmd), args[0])
	if err != nil {
		return documentError("get", args[0], err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:       %s\n", doc.Name)
	cmd.Printf("  Type:       %s\n", doc.MediaKind)
	cmd.Printf("  Extraction: %s\n", doc.ExtractionMethod)
	cmd.Printf("  Subject:    %s\n", doc.Subject)
	cmd.Printf("  Chapter:    %s\n", doc.Chapter)
	cmd.Printf("  Length:     %d chars\n", utf8.RuneCountInString(doc.Text))
	cmd.Printf("  Added:      %s\n", doc.AddedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocumentText(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	doc, err := libraryService.Get(commandContext(cmd), args[0])
	if err != nil {
		return documentError("get", args[0], err)
	}

	cmd.Println(doc.Text)
	return nil
}

func runDocumentSummary(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errStudyNotConfigured
	}

	summary, err := studyService.SummarizeDocument(commandContext(cmd), args[0], documentSummarySentences)
	if err != nil {
		return documentError("summarise", args[0], err)
	}

	printSummary(cmd, summary)
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	if err := libraryService.Remove(commandContext(cmd), args[0]); err != nil {
		return documentError("remove", args[0], err)
	}

	cmd.Printf("Document %s removed.\n", args[0])
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	if !clearYes {
		cmd.Printf("Remove every document from %q? [y/N]: ", libraryService.Current())
		if !isYes(readLine(bufio.NewReader(cmd.InOrStdin()))) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := libraryService.Clear(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to clear library: %w", err)
	}

	cmd.Println("Library cleared.")
	return nil
}

func runDocumentSubjects(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	index, err := libraryService.Subjects(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to group documents: %w", err)
	}

	if len(index.Subjects) == 0 {
		cmd.Println("No documents yet.")
		return nil
	}

	cmd.Println("Subjects:")
	for _, tc := range index.Subjects {
		cmd.Printf("  %-30s %d\n", tc.Label, tc.Count)
	}
	cmd.Println("\nChapters:")
	for _, tc := range index.Chapters {
		cmd.Printf("  %-30s %d\n", tc.Label, tc.Count)
	}
	return nil
}

func documentError(action, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("document %s not found", id)
	}
	return fmt.Errorf("failed to %s document: %w", action, err)
}
