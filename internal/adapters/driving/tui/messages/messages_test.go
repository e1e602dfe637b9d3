package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewQuiz, "quiz"},
		{ViewSummary, "summary"},
		{ViewDocuments, "documents"},
		{ViewDocContent, "doc_content"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewTypes_AreDistinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewQuiz, ViewSummary, ViewDocuments, ViewDocContent, ViewHelp}
	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view type %d", v)
		seen[v] = true
	}
}

func TestQuizLoaded(t *testing.T) {
	quiz := domain.Quiz{Questions: []domain.Question{{Stem: "a _____ b", Answer: "x"}}}
	msg := QuizLoaded{Quiz: quiz}

	assert.Equal(t, 1, msg.Quiz.Len())
	assert.NoError(t, msg.Err)
}

func TestQuizFinished(t *testing.T) {
	msg := QuizFinished{Result: domain.QuizResult{Correct: 3, Total: 3}}
	assert.True(t, msg.Result.Perfect())
}

func TestErrorCarryingMessages(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, err, ErrorOccurred{Err: err}.Err)
	assert.Equal(t, err, QuizRecorded{Err: err}.Err)
	assert.Equal(t, err, SummaryLoaded{Err: err}.Err)
	assert.Equal(t, err, DocumentsLoaded{Err: err}.Err)
	assert.Equal(t, err, DocumentRemoved{DocumentID: "d", Err: err}.Err)
	assert.Equal(t, err, SpeechFinished{Err: err}.Err)
}
