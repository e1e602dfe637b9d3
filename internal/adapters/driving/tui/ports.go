// Package tui provides an interactive terminal user interface for smartstudy.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library manages the current library and the learner's profile.
	Library driving.LibraryService

	// Study generates summaries and quizzes.
	Study driving.StudyService

	// Speech reads feedback and text aloud. Optional.
	Speech driving.SpeechService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	library driving.LibraryService,
	study driving.StudyService,
	speech driving.SpeechService,
) *Ports {
	return &Ports{
		Library: library,
		Study:   study,
		Speech:  speech,
	}
}

// Validate ensures all required ports are set.
// Speech is optional.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	return nil
}
