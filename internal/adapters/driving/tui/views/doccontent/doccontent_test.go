package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

type mockSpeech struct {
	driving.SpeechService
	spoken string
}

func (m *mockSpeech) Speak(_ context.Context, text string) error {
	m.spoken = text
	return nil
}

func longText(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Empty(t, view.Content())
	assert.Nil(t, view.Init())
}

func TestView_SetDocument(t *testing.T) {
	view := NewView(nil, nil)

	view.SetDocument(domain.Document{ID: "doc-1", Name: "a.txt", Text: "Whales are mammals."})

	assert.Equal(t, "a.txt", view.Title())
	assert.Equal(t, "Whales are mammals.", view.Content())
	assert.Contains(t, view.View(), "Whales are mammals.")
}

func TestView_SetDocument_Untitled(t *testing.T) {
	view := NewView(nil, nil)

	view.SetDocument(domain.Document{ID: "doc-1"})

	assert.Equal(t, "doc-1", view.Title())
	assert.Contains(t, view.View(), "(No text extracted)")
}

func TestView_SetSummary(t *testing.T) {
	view := NewView(nil, nil)

	view.SetSummary("Summary", domain.Summary{Insufficient: true}, messages.ViewMenu)

	assert.Equal(t, domain.NotEnoughMaterial, view.Content())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_SummaryLoaded(t *testing.T) {
	view := NewView(nil, nil)
	view.SetLoading("Summary", messages.ViewMenu)
	assert.Contains(t, view.View(), "Loading...")

	view.Update(messages.SummaryLoaded{
		Title:   "Library summary",
		Summary: domain.Summary{Sentences: []string{"One.", "Two."}},
	})

	assert.Equal(t, "Library summary", view.Title())
	assert.Equal(t, "One. Two.", view.Content())
	assert.NotContains(t, view.View(), "Loading...")
}

func TestView_SummaryLoaded_Error(t *testing.T) {
	view := NewView(nil, nil)
	view.SetLoading("Summary", messages.ViewMenu)

	view.Update(messages.SummaryLoaded{Err: domain.ErrNotFound})

	assert.ErrorIs(t, view.Err(), domain.ErrNotFound)
	assert.Contains(t, view.View(), "Error: not found")
}

func TestView_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, view.Err(), "boom")
}

func TestView_Back_DefaultsToDocuments(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDocument(domain.Document{Name: "a.txt", Text: "x"})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDocuments}, cmd())
}

func TestView_Scrolling(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}}, 1},
		{"j twice", []tea.KeyMsg{
			{Type: tea.KeyRunes, Runes: []rune{'j'}},
			{Type: tea.KeyRunes, Runes: []rune{'j'}},
		}, 2},
		{"up at top", []tea.KeyMsg{{Type: tea.KeyUp}}, 0},
		{"page down", []tea.KeyMsg{{Type: tea.KeyPgDown}}, 4},
		{"page down then up", []tea.KeyMsg{{Type: tea.KeyPgDown}, {Type: tea.KeyPgUp}}, 0},
		{"ctrl+d past end", []tea.KeyMsg{{Type: tea.KeyCtrlD}, {Type: tea.KeyCtrlD}, {Type: tea.KeyCtrlD}}, 6},
		{"end", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'G'}}}, 6},
		{"end then home", []tea.KeyMsg{{Type: tea.KeyEnd}, {Type: tea.KeyHome}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, nil)
			view.SetDimensions(80, 10) // 4 visible lines
			view.SetDocument(domain.Document{Name: "long.txt", Text: longText(10)})

			for _, k := range tt.keys {
				view.Update(k)
			}

			assert.Equal(t, tt.want, view.scrollOffset)
		})
	}
}

func TestView_View_ScrollIndicator(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 10)
	view.SetDocument(domain.Document{Name: "long.txt", Text: longText(10)})

	output := view.View()

	assert.Contains(t, output, "Line 1")
	assert.NotContains(t, output, "Line 5\n")
	assert.Contains(t, output, "[0%] Line 1-4 of 10")
}

func TestView_Speak(t *testing.T) {
	speech := &mockSpeech{}
	view := NewView(nil, speech)
	view.SetDocument(domain.Document{Name: "a.txt", Text: "Read me."})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.SpeechFinished{}, cmd())
	assert.Equal(t, "Read me.", speech.spoken)
}

func TestView_Speak_NoService(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDocument(domain.Document{Name: "a.txt", Text: "Read me."})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	view.Update(cmd())

	assert.ErrorIs(t, view.Err(), errSpeechUnavailable)
}

func TestView_Speak_Empty(t *testing.T) {
	view := NewView(nil, &mockSpeech{})
	view.SetDocument(domain.Document{Name: "a.txt"})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.Nil(t, cmd)
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"short", "a b c", 20, []string{"a b c"}},
		{"empty", "", 20, []string{""}},
		{"wraps at spaces", "alpha beta gamma", 11, []string{"alpha beta", "gamma"}},
		{"long word split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"multibyte", "पाठ पाठ पाठ", 7, []string{"पाठ पाठ", "पाठ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLine(tt.line, tt.width))
		})
	}
}

func TestView_WindowSize_Rewraps(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDocument(domain.Document{Name: "a.txt", Text: strings.Repeat("word ", 30)})
	narrow := len(view.lines)

	view.Update(tea.WindowSizeMsg{Width: 200, Height: 40})

	assert.True(t, view.ready)
	assert.Less(t, len(view.lines), narrow)
}
