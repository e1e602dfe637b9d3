// Package mcp provides an MCP (Model Context Protocol) server adapter for smartstudy.
// It lets AI assistants list the study library, summarise it and build quizzes.
package mcp

import "errors"

var (
	// ErrMissingLibraryService is returned when the library service is not provided.
	ErrMissingLibraryService = errors.New("mcp: library service is required")

	// ErrMissingStudyService is returned when the study service is not provided.
	ErrMissingStudyService = errors.New("mcp: study service is required")
)
