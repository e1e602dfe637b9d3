// Package domain defines the core business entities for SmartStudy.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One ingested file's extracted text and metadata
//   - Library: The ordered collection of Documents plus user counters
//   - RawFile: Opaque bytes handed to the extraction pipeline
//   - Question: A heuristic multiple-choice question
//
// It also holds the pure classification helpers (Classify, GuessMIME,
// DetectSubject, DetectChapter) shared by the extraction pipeline and
// the CLI.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
