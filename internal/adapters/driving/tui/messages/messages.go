// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuiz runs a multiple-choice quiz.
	ViewQuiz
	// ViewSummary shows a summary of the library.
	ViewSummary
	// ViewDocuments lists the documents of the current library.
	ViewDocuments
	// ViewDocContent shows a document's extracted text.
	ViewDocContent
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuiz:
		return "quiz"
	case ViewSummary:
		return "summary"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// QuizLoaded carries a freshly generated quiz.
type QuizLoaded struct {
	Quiz domain.Quiz
	Err  error
}

// AnswerChecked is sent after the learner picks an option.
type AnswerChecked struct {
	Index   int
	Choice  string
	Correct bool
}

// QuizFinished carries the final score once every question is answered.
type QuizFinished struct {
	Result domain.QuizResult
}

// QuizRecorded signals the result was stored, with any badges earned.
type QuizRecorded struct {
	Awarded []string
	Err     error
}

// SummaryLoaded carries a summary of the library or of one document.
type SummaryLoaded struct {
	Title   string
	Summary domain.Summary
	Err     error
}

// ProfileLoaded carries the learner's counters for the status bar.
type ProfileLoaded struct {
	Library string
	Profile domain.UserStats
	Err     error
}

// DocumentsLoaded carries the documents of the current library.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was selected.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentRemoved signals a document was removed from the library.
type DocumentRemoved struct {
	DocumentID string
	Err        error
}

// SpeechFinished signals a read-aloud request ended.
type SpeechFinished struct {
	Err error
}
