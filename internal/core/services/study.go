package services

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
	"github.com/custodia-labs/smartstudy/internal/textkit"
)

// Ensure StudyService implements the interface.
var _ driving.StudyService = (*StudyService)(nil)

// MaxStudyChars caps the library text handed to the text tools.
const MaxStudyChars = 120000

// StudyService runs the summariser and quiz generator over the library.
type StudyService struct {
	library    driving.LibraryService
	summarizer *textkit.Summarizer
	quizzes    *textkit.QuizGenerator
}

// NewStudyService creates a study service. Nil tools select the defaults.
func NewStudyService(library driving.LibraryService, summarizer *textkit.Summarizer, quizzes *textkit.QuizGenerator) *StudyService {
	if summarizer == nil {
		summarizer = textkit.NewSummarizer(nil, nil)
	}
	if quizzes == nil {
		quizzes = textkit.NewQuizGenerator(nil, nil)
	}
	return &StudyService{library: library, summarizer: summarizer, quizzes: quizzes}
}

// Summary summarises the whole library.
func (s *StudyService) Summary(ctx context.Context, n int) (domain.Summary, error) {
	text, err := s.library.AllText(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.summarizer.Summarize(capRunes(text, MaxStudyChars), n), nil
}

// SummarizeDocument summarises one document.
func (s *StudyService) SummarizeDocument(ctx context.Context, id string, n int) (domain.Summary, error) {
	doc, err := s.library.Get(ctx, id)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.summarizer.Summarize(capRunes(doc.Text, MaxStudyChars), n), nil
}

// Quiz builds up to n questions from the library.
func (s *StudyService) Quiz(ctx context.Context, n int) (domain.Quiz, error) {
	text, err := s.library.AllText(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	return s.quizzes.Generate(capRunes(text, MaxStudyChars), n), nil
}

// capRunes returns the first limit runes of s.
func capRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
