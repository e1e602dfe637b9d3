package driving

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// StudyService runs the heuristic text tools against the library.
type StudyService interface {
	// Summary summarises the whole library in at most n sentences.
	Summary(ctx context.Context, n int) (domain.Summary, error)

	// SummarizeDocument summarises one document in at most n sentences.
	// Returns domain.ErrNotFound if the document does not exist.
	SummarizeDocument(ctx context.Context, id string, n int) (domain.Summary, error)

	// Quiz builds up to n multiple-choice questions from the library.
	Quiz(ctx context.Context, n int) (domain.Quiz, error)
}
