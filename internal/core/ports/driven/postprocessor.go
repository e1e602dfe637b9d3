package driven

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// PostProcessor refines an extracted document before it is stored
// (e.g., text cleanup, subject tagging).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process modifies doc in place.
	Process(ctx context.Context, doc *domain.Document) error
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	Process(ctx context.Context, doc *domain.Document) error
}
