package domain

import "strings"

// OptionCount is the number of options on every generated question.
const OptionCount = 4

// Default sizes for a library summary and a quiz.
const (
	DefaultSummarySentences = 8
	DefaultQuizQuestions    = 8
)

// NotEnoughMaterial is shown when the library has too little text.
const NotEnoughMaterial = "(not enough material)"

// Question is a heuristic multiple-choice question.
type Question struct {
	// Stem is the source sentence with the answer blanked out.
	Stem string

	// Options holds OptionCount distinct choices in display order.
	Options []string

	// Answer is the correct option. It is always a member of Options.
	Answer string
}

// IsCorrect reports whether choice is the answer.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.Answer
}

// AnswerIndex returns the position of the answer within Options, or -1.
func (q Question) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}

// Summary is the result of extractive summarisation.
type Summary struct {
	// Sentences are the selected sentences in source order.
	Sentences []string

	// Insufficient is set when the input was empty or too short.
	Insufficient bool
}

// String joins the sentences, or returns NotEnoughMaterial.
func (s Summary) String() string {
	if s.Insufficient || len(s.Sentences) == 0 {
		return NotEnoughMaterial
	}
	return strings.Join(s.Sentences, " ")
}

// Quiz is the result of question generation.
type Quiz struct {
	// Questions in presentation order.
	Questions []Question

	// Insufficient is set when no question could be built.
	Insufficient bool
}

// Len returns the number of questions.
func (q Quiz) Len() int {
	return len(q.Questions)
}

// QuizResult is the outcome of one answered quiz.
type QuizResult struct {
	Correct int
	Total   int
}

// Perfect returns true if every question was answered correctly.
func (r QuizResult) Perfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}
