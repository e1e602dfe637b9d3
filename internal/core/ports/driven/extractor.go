package driven

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// ExtractOptions carries per-call settings into an extractor.
type ExtractOptions struct {
	// Lang is the OCR language code. Empty means the engine default.
	Lang string

	// Progress receives stage updates. May be nil.
	Progress domain.ProgressFunc
}

// Extractor turns raw bytes of one media kind into plain text.
type Extractor interface {
	// Kinds returns the media kinds this extractor handles.
	Kinds() []domain.MediaKind

	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract produces the text of raw. Errors are reported to the caller,
	// which degrades them into an empty document.
	Extract(ctx context.Context, raw *domain.RawFile, opts ExtractOptions) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	// Text is the extracted plain text. Empty means nothing was found.
	Text string

	// Method records which strategy produced Text.
	Method domain.ExtractionMethod
}

// ArchiveExpander lists the eligible entries of an archive.
type ArchiveExpander interface {
	// Expand returns one RawFile per eligible entry, named by base name.
	// Unreadable entries are returned with RawFile.ReadErr set.
	// Returns domain.ErrArchiveTooLarge when the archive exceeds its limit.
	Expand(ctx context.Context, raw *domain.RawFile) ([]domain.RawFile, error)
}
