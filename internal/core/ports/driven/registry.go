package driven

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// ExtractorRegistry selects the appropriate extractor for a file.
// It maintains a priority-ordered list of extractors and dispatches
// based on MIME type, then media kind.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor for the given kind.
	// Returns domain.ErrUnsupportedType if no extractor matches.
	Extract(ctx context.Context, kind domain.MediaKind, raw *domain.RawFile, opts ExtractOptions) (*ExtractResult, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
