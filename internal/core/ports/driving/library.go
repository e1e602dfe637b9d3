package driving

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// LibraryService manages the current library and its named siblings.
type LibraryService interface {
	SettingsService

	// Add appends documents in order, awards upload badges and persists once.
	// Returns the badges newly awarded.
	Add(ctx context.Context, docs ...domain.Document) ([]string, error)

	// List returns all documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Remove deletes a document. Unknown IDs are a no-op.
	Remove(ctx context.Context, id string) error

	// Clear removes every document, keeping counters and settings.
	Clear(ctx context.Context) error

	// AllText returns every document's text joined by newlines.
	AllText(ctx context.Context) (string, error)

	// Subjects counts documents per subject and per subject/chapter pair.
	Subjects(ctx context.Context) (*SubjectIndex, error)

	// Use switches to the named library, creating it if needed.
	Use(ctx context.Context, name string) error

	// Current returns the name of the current library.
	Current() string

	// Names lists all stored library names, sorted.
	Names(ctx context.Context) ([]string, error)

	// Profile returns the learner's counters.
	Profile(ctx context.Context) (domain.UserStats, error)

	// SetName sets the learner's display name.
	SetName(ctx context.Context, name string) error

	// SetDailyTarget sets the daily question target (minimum 1).
	SetDailyTarget(ctx context.Context, target int) error

	// RecordQuiz updates daily counters and streaks after a quiz.
	// Returns the badges newly awarded.
	RecordQuiz(ctx context.Context, result domain.QuizResult) ([]string, error)
}

// SubjectIndex groups the library by its classification tags.
type SubjectIndex struct {
	// Subjects lists subject counts sorted by subject.
	Subjects []TagCount

	// Chapters lists "Subject • Chapter" counts sorted by label.
	Chapters []TagCount
}

// TagCount is a label with the number of documents carrying it.
type TagCount struct {
	Label string
	Count int
}
