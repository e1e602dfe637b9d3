package driving

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// IngestService extracts files and adds the results to the current library.
type IngestService interface {
	// Ingest extracts every file and appends the documents in input order.
	// Extraction problems are reported in the result, never as an error.
	// Returns an error only if the library cannot be persisted.
	Ingest(ctx context.Context, files []domain.RawFile, progress domain.ProgressFunc) (*IngestReport, error)

	// IngestPaths reads files from disk (paths, directories, or glob
	// patterns) and ingests them.
	IngestPaths(ctx context.Context, patterns []string, progress domain.ProgressFunc) (*IngestReport, error)
}

// IngestReport summarises one ingestion batch.
type IngestReport struct {
	// Documents are the documents added, in input order.
	Documents []domain.Document

	// Failed lists files that degraded to empty text or were skipped.
	Failed []domain.FileFailure

	// Awarded lists badges newly earned by this batch.
	Awarded []string
}
