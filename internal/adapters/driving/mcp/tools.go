package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// SummarizeInput is the input schema for the summarize tool.
type SummarizeInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"summarise only this document (default: the whole library)"`
	Sentences  int    `json:"sentences,omitempty" jsonschema:"maximum number of sentences (default 8)"`
}

// SummarizeOutput is the output schema for the summarize tool.
type SummarizeOutput struct {
	Sentences    []string `json:"sentences"`
	Summary      string   `json:"summary"`
	Insufficient bool     `json:"insufficient"`
}

// QuizInput is the input schema for the quiz tool.
type QuizInput struct {
	Questions int `json:"questions,omitempty" jsonschema:"number of questions (default 8)"`
}

// QuizOutput is the output schema for the quiz tool.
type QuizOutput struct {
	Questions    []QuestionOutput `json:"questions"`
	Count        int              `json:"count"`
	Insufficient bool             `json:"insufficient"`
}

// QuestionOutput represents a single multiple-choice question.
type QuestionOutput struct {
	Stem    string   `json:"stem"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Subject string `json:"subject,omitempty" jsonschema:"only list documents tagged with this subject"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize",
		Description: "Summarise the study library or one document with its most representative sentences",
	}, s.handleSummarize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "quiz",
		Description: "Build fill-in-the-blank multiple-choice questions from the study library",
	}, s.handleQuiz)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents in the study library",
	}, s.handleListDocuments)
}

// handleSummarize handles the summarize tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	n := input.Sentences
	if n <= 0 {
		n = domain.DefaultSummarySentences
	}

	var (
		summary domain.Summary
		err     error
	)
	if input.DocumentID != "" {
		summary, err = s.ports.Study.SummarizeDocument(ctx, input.DocumentID, n)
	} else {
		summary, err = s.ports.Study.Summary(ctx, n)
	}
	if err != nil {
		return nil, SummarizeOutput{}, err
	}

	sentences := summary.Sentences
	if sentences == nil {
		sentences = []string{}
	}
	return nil, SummarizeOutput{
		Sentences:    sentences,
		Summary:      summary.String(),
		Insufficient: summary.Insufficient,
	}, nil
}

// handleQuiz handles the quiz tool invocation.
func (s *Server) handleQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuizInput,
) (*mcp.CallToolResult, QuizOutput, error) {
	n := input.Questions
	if n <= 0 {
		n = domain.DefaultQuizQuestions
	}

	quiz, err := s.ports.Study.Quiz(ctx, n)
	if err != nil {
		return nil, QuizOutput{}, err
	}

	output := QuizOutput{
		Questions:    make([]QuestionOutput, quiz.Len()),
		Count:        quiz.Len(),
		Insufficient: quiz.Insufficient,
	}
	for i, q := range quiz.Questions {
		output.Questions[i] = QuestionOutput{
			Stem:    q.Stem,
			Options: q.Options,
			Answer:  q.Answer,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{Documents: []DocumentOutput{}}
	for i := range docs {
		if input.Subject != "" && docs[i].Subject != input.Subject {
			continue
		}
		output.Documents = append(output.Documents, newDocumentInfo(&docs[i]))
	}
	output.Count = len(output.Documents)

	return nil, output, nil
}
