// Package quiz provides the multiple-choice quiz view for the TUI.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

var errStudyUnavailable = errors.New("study service not available")

// blank marks the removed answer in a question stem.
const blank = "_____"

// View runs one quiz: a question at a time, feedback after each answer,
// then the final score, which is recorded against the learner's profile.
type View struct {
	styles  *styles.Styles
	study   driving.StudyService
	library driving.LibraryService
	speech  driving.SpeechService
	options *list.OptionList

	size     int
	quiz     domain.Quiz
	index    int
	correct  int
	answered bool
	feedback string
	finished bool
	awarded  []string
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a new quiz view. library and speech may be nil; the
// result is then not recorded and feedback is not spoken.
func NewView(
	s *styles.Styles,
	study driving.StudyService,
	library driving.LibraryService,
	speech driving.SpeechService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		study:   study,
		library: library,
		speech:  speech,
		options: list.NewOptionList(s),
		size:    domain.DefaultQuizQuestions,
		width:   80,
		height:  24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Start resets the view and returns a command that generates n questions.
// n below 1 uses the default size.
func (v *View) Start(n int) tea.Cmd {
	if n < 1 {
		n = domain.DefaultQuizQuestions
	}
	v.size = n
	v.quiz = domain.Quiz{}
	v.index = 0
	v.correct = 0
	v.answered = false
	v.feedback = ""
	v.finished = false
	v.awarded = nil
	v.err = nil
	v.loading = true
	v.options.SetOptions(nil, -1)

	study := v.study
	return func() tea.Msg {
		if study == nil {
			return messages.QuizLoaded{Err: errStudyUnavailable}
		}
		q, err := study.Quiz(context.Background(), n)
		return messages.QuizLoaded{Quiz: q, Err: err}
	}
}

// Update handles messages for the quiz view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QuizLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.quiz = msg.Quiz
		v.showQuestion()
		return v, nil

	case messages.AnswerChecked:
		return v, v.checked(msg)

	case messages.QuizFinished:
		return v, v.record(msg.Result)

	case messages.QuizRecorded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.awarded = msg.Awarded
		return v, nil

	case messages.SpeechFinished:
		// Speech is best effort; a missing TTS engine must not end the quiz.
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.finished || v.err != nil || v.insufficient() {
		switch msg.String() {
		case "r":
			return v, v.Start(v.size)
		case "enter":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil
	}
	if v.loading {
		return v, nil
	}

	q := v.Question()
	switch msg.String() {
	case "s":
		if q != nil {
			return v, v.say(strings.ReplaceAll(q.Stem, blank, "blank"))
		}
	case "enter", "n", " ":
		if v.answered {
			return v, v.next()
		}
		if msg.String() == "enter" && q != nil {
			index, choice := v.options.Selected(), v.options.SelectedOption()
			correct := q.IsCorrect(choice)
			return v, func() tea.Msg {
				return messages.AnswerChecked{Index: index, Choice: choice, Correct: correct}
			}
		}
	default:
		v.options, _ = v.options.Update(msg)
	}
	return v, nil
}

func (v *View) checked(msg messages.AnswerChecked) tea.Cmd {
	q := v.Question()
	if q == nil || v.answered {
		return nil
	}
	v.answered = true
	v.options.SetSelected(msg.Index)
	v.options.Reveal()
	if msg.Correct {
		v.correct++
		v.feedback = "✓ Correct"
		return v.say("Correct")
	}
	v.feedback = "✗ " + q.Answer
	return v.say("The answer is " + q.Answer)
}

func (v *View) next() tea.Cmd {
	v.index++
	if v.index < v.quiz.Len() {
		v.showQuestion()
		return nil
	}
	v.finished = true
	result := v.Result()
	return func() tea.Msg {
		return messages.QuizFinished{Result: result}
	}
}

func (v *View) showQuestion() {
	v.answered = false
	v.feedback = ""
	if q := v.Question(); q != nil {
		v.options.SetOptions(q.Options, q.AnswerIndex())
	}
}

func (v *View) record(result domain.QuizResult) tea.Cmd {
	library := v.library
	if library == nil {
		return nil
	}
	return func() tea.Msg {
		awarded, err := library.RecordQuiz(context.Background(), result)
		return messages.QuizRecorded{Awarded: awarded, Err: err}
	}
}

func (v *View) say(text string) tea.Cmd {
	speech := v.speech
	if speech == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.SpeechFinished{Err: speech.Speak(context.Background(), text)}
	}
}

func (v *View) insufficient() bool {
	return !v.loading && v.err == nil && v.quiz.Len() == 0
}

// View renders the quiz.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.loading:
		b.WriteString(v.styles.Title.Render("Quiz"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Generating questions..."))
	case v.err != nil:
		b.WriteString(v.styles.Title.Render("Quiz"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] retry  [esc] back"))
	case v.insufficient():
		b.WriteString(v.styles.Title.Render("Quiz"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render(domain.NotEnoughMaterial))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Add more study material and try again."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
	case v.finished:
		b.WriteString(v.renderResult())
	default:
		b.WriteString(v.renderQuestion())
	}

	return b.String()
}

func (v *View) renderQuestion() string {
	var b strings.Builder
	q := v.Question()

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Question %d/%d", v.index+1, v.quiz.Len())))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Card.Width(max(v.width-6, 20)).Render(q.Stem))
	b.WriteString("\n\n")
	b.WriteString(v.options.View())
	b.WriteString("\n\n")

	switch {
	case v.feedback == "":
		b.WriteString(v.styles.Help.Render("[↑/↓] choose  [enter] answer  [s] speak  [esc] quit quiz"))
	case strings.HasPrefix(v.feedback, "✓"):
		b.WriteString(v.styles.Success.Render(v.feedback))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[n] next"))
	default:
		b.WriteString(v.styles.Error.Render(v.feedback))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[n] next"))
	}

	return b.String()
}

func (v *View) renderResult() string {
	var b strings.Builder
	result := v.Result()

	b.WriteString(v.styles.Title.Render("Quiz Result"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("You got %d/%d correct.", result.Correct, result.Total)))
	b.WriteString("\n")
	for _, badge := range v.awarded {
		b.WriteString("\n")
		b.WriteString(v.styles.Badge.Render("New badge: " + badge))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] new quiz  [enter] menu"))

	return b.String()
}

// Question returns the current question, or nil if there is none.
func (v *View) Question() *domain.Question {
	if v.finished || v.index >= v.quiz.Len() {
		return nil
	}
	return &v.quiz.Questions[v.index]
}

// Result returns the score so far.
func (v *View) Result() domain.QuizResult {
	answered := v.index
	if v.answered && !v.finished {
		answered++
	}
	return domain.QuizResult{Correct: v.correct, Total: answered}
}

// Finished returns true once every question has been answered.
func (v *View) Finished() bool {
	return v.finished
}

// Answered returns true if the current question has been answered.
func (v *View) Answered() bool {
	return v.answered
}

// Feedback returns the feedback line for the current answer.
func (v *View) Feedback() string {
	return v.feedback
}

// Awarded returns the badges earned by the recorded result.
func (v *View) Awarded() []string {
	return v.awarded
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.options.SetWidth(width)
}
