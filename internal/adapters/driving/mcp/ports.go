package mcp

import (
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library lists and reads documents.
	Library driving.LibraryService

	// Study builds summaries and quizzes.
	Study driving.StudyService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	return nil
}
