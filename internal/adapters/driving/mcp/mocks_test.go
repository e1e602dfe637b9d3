package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

// mockLibraryService implements the parts of driving.LibraryService the
// server uses. Unused methods panic through the nil embedded interface.
type mockLibraryService struct {
	driving.LibraryService

	documents []domain.Document
	err       error
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockStudyService is a mock implementation of driving.StudyService.
type mockStudyService struct {
	summary domain.Summary
	quiz    domain.Quiz
	err     error

	gotN   int
	gotDoc string
}

func (m *mockStudyService) Summary(_ context.Context, n int) (domain.Summary, error) {
	m.gotN = n
	return m.summary, m.err
}

func (m *mockStudyService) SummarizeDocument(_ context.Context, id string, n int) (domain.Summary, error) {
	m.gotN = n
	m.gotDoc = id
	return m.summary, m.err
}

func (m *mockStudyService) Quiz(_ context.Context, n int) (domain.Quiz, error) {
	m.gotN = n
	return m.quiz, m.err
}

func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:               "doc-1",
			Name:             "physics-ch3.pdf",
			MediaKind:        domain.MediaPDF,
			Text:             "Force equals mass times acceleration.",
			ExtractionMethod: domain.MethodDirectText,
			Subject:          "Physics",
			Chapter:          "Ch 3",
		},
		{
			ID:               "doc-2",
			Name:             "notes.txt",
			MediaKind:        domain.MediaText,
			Text:             "Mammals are warm blooded.",
			ExtractionMethod: domain.MethodDirectText,
			Subject:          "Biology",
			Chapter:          "Misc",
		},
	}
}

func newTestServer(t *testing.T, lib *mockLibraryService, study *mockStudyService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Library: lib, Study: study})
	require.NoError(t, err)
	return server
}
