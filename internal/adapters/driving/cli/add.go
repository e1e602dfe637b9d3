package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

// progressInterval is the minimum gap between progress lines for one batch.
const progressInterval = 200 * time.Millisecond

var addQuiet bool

var addCmd = &cobra.Command{
	Use:   "add <path|glob>...",
	Short: "Add study material to the library",
	Long: `Extracts text from files and adds them to the current library.

Accepts files, directories (walked recursively, hidden entries skipped)
and glob patterns such as "notes/**/*.pdf". ZIP archives are expanded.
PDF pages without a text layer and images are read with OCR.

Files that cannot be read are reported and skipped; the rest are added.`,
	Example: `  smartstudy add physics-ch3.pdf
  smartstudy add notes/
  smartstudy add "scans/**/*.jpg" revision.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addQuiet, "quiet", "q", false, "do not print progress")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errIngestNotConfigured
	}

	var progress domain.ProgressFunc
	if !addQuiet {
		progress = throttledProgress(cmd.ErrOrStderr(), rate.NewLimiter(rate.Every(progressInterval), 1))
	}

	report, err := ingestService.IngestPaths(commandContext(cmd), args, progress)
	if err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	printReport(cmd, report)
	return nil
}

// throttledProgress prints progress lines to w at most as often as limiter
// allows. Terminal stages are always printed.
func throttledProgress(w io.Writer, limiter *rate.Limiter) domain.ProgressFunc {
	var mu sync.Mutex
	return func(p domain.Progress) {
		final := p.Stage == domain.StageDone || p.Stage == domain.StageFailed
		if !final && !limiter.Allow() {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, formatProgress(p))
	}
}

func formatProgress(p domain.Progress) string {
	line := fmt.Sprintf("[%d/%d] %s: %s", p.Index, p.Total, p.File, p.Stage)
	if p.Percent > 0 && p.Percent < 100 {
		line += fmt.Sprintf(" %.0f%%", p.Percent)
	}
	return line
}

func printReport(cmd *cobra.Command, report *driving.IngestReport) {
	for i := range report.Documents {
		doc := &report.Documents[i]
		cmd.Printf("Added %s  %s\n", doc.Name, describeDocument(doc))
	}
	for _, f := range report.Failed {
		cmd.Printf("Problem with %s: %v\n", f.Name, f.Err)
	}
	for _, badge := range report.Awarded {
		cmd.Printf("New badge: %s\n", badge)
	}
	cmd.Printf("%d document(s) added, %d problem(s).\n", len(report.Documents), len(report.Failed))
}

// describeDocument returns "Subject • Chapter, method, N chars".
func describeDocument(doc *domain.Document) string {
	return fmt.Sprintf("(%s • %s, %s, %d chars)",
		doc.Subject, doc.Chapter, doc.ExtractionMethod, utf8.RuneCountInString(doc.Text))
}
