// Package doccontent provides the text and summary reader view for the TUI.
package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
)

var errSpeechUnavailable = errors.New("speech service not available")

// View shows a document's extracted text or a summary.
type View struct {
	styles *styles.Styles
	speech driving.SpeechService

	title        string
	content      string
	lines        []string
	back         messages.ViewType
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new content view. speech may be nil.
func NewView(s *styles.Styles, speech driving.SpeechService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		speech: speech,
		back:   messages.ViewDocuments,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument shows a document's text. Esc returns to the documents list.
func (v *View) SetDocument(doc domain.Document) {
	title := doc.Name
	if title == "" {
		title = doc.ID
	}
	v.reset(title, doc.Text, messages.ViewDocuments)
}

// SetLoading shows a placeholder until a summary arrives. Esc returns to back.
func (v *View) SetLoading(title string, back messages.ViewType) {
	v.reset(title, "", back)
	v.loading = true
}

// SetSummary shows a summary. Esc returns to back.
func (v *View) SetSummary(title string, summary domain.Summary, back messages.ViewType) {
	v.reset(title, summary.String(), back)
}

func (v *View) reset(title, content string, back messages.ViewType) {
	v.title = title
	v.content = content
	v.back = back
	v.scrollOffset = 0
	v.err = nil
	v.loading = false
	v.wrapContent()
}

// Update handles messages for the content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SummaryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Title != "" {
			v.title = msg.Title
		}
		v.content = msg.Summary.String()
		v.wrapContent()
		return v, nil

	case messages.SpeechFinished:
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "s":
		return v, v.speak()
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}

	return v, nil
}

func (v *View) speak() tea.Cmd {
	speech, text := v.speech, v.content
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		if speech == nil {
			return messages.SpeechFinished{Err: errSpeechUnavailable}
		}
		return messages.SpeechFinished{Err: speech.Speak(context.Background(), text)}
	}
}

// wrapContent word-wraps the content to the view width.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.content, "\n")
	v.lines = make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		v.lines = append(v.lines, wrapLine(line, contentWidth)...)
	}
}

// wrapLine breaks line at spaces so no piece exceeds width runes.
// Words longer than width are split.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	var cur []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(cur) == 0:
			cur = word
		case len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
		default:
			out = append(out, string(cur))
			cur = word
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func (v *View) visibleLines() int {
	// title, separator, help and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the content view.
func (v *View) View() string {
	var b strings.Builder

	title := v.title
	if title == "" {
		title = "Document Text"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No text extracted)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [s] read aloud  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Title returns the heading shown.
func (v *View) Title() string {
	return v.title
}

// Content returns the raw content shown.
func (v *View) Content() string {
	return v.content
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
