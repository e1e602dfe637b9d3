// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/smartstudy/internal/adapters/driving/tui/styles"
)

// OptionList displays the choices of one question in a navigable list.
// Once revealed it marks the answer and the chosen option.
type OptionList struct {
	options  []string
	selected int
	answer   int
	revealed bool
	styles   *styles.Styles
	width    int
}

// NewOptionList creates a new option list component.
func NewOptionList(s *styles.Styles) *OptionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OptionList{
		answer: -1,
		styles: s,
		width:  80,
	}
}

// Init initialises the option list.
func (o *OptionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages. Navigation is locked after Reveal.
func (o *OptionList) Update(msg tea.Msg) (*OptionList, tea.Cmd) {
	if o.revealed {
		return o, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			o.MoveUp()
		case "down", "j":
			o.MoveDown()
		}
	}
	return o, nil
}

// View renders the option list.
func (o *OptionList) View() string {
	if len(o.options) == 0 {
		return o.styles.Muted.Render("No options")
	}

	lines := make([]string, 0, len(o.options))
	for i, opt := range o.options {
		lines = append(lines, o.renderOption(i, opt))
	}
	return strings.Join(lines, "\n")
}

func (o *OptionList) renderOption(index int, opt string) string {
	indicator := "  "
	if index == o.selected {
		indicator = "> "
	}

	maxLen := o.width - 8
	if maxLen < 10 {
		maxLen = 10
	}
	if r := []rune(opt); len(r) > maxLen {
		opt = string(r[:maxLen-3]) + "..."
	}
	line := fmt.Sprintf("%s%c) %s", indicator, 'A'+index, opt)

	switch {
	case o.revealed && index == o.answer:
		return o.styles.Correct.Render(line)
	case o.revealed && index == o.selected:
		return o.styles.Wrong.Render(line)
	case !o.revealed && index == o.selected:
		return o.styles.Selected.Render(line)
	default:
		return o.styles.Normal.Render(line)
	}
}

// SetOptions replaces the options and resets selection. answer is the
// index of the correct option, or -1 if unknown.
func (o *OptionList) SetOptions(options []string, answer int) {
	o.options = options
	o.answer = answer
	o.selected = 0
	o.revealed = false
}

// Options returns the current options.
func (o *OptionList) Options() []string {
	return o.options
}

// Selected returns the index of the selected option.
func (o *OptionList) Selected() int {
	return o.selected
}

// SelectedOption returns the selected option text, or "" if empty.
func (o *OptionList) SelectedOption() string {
	if o.selected < 0 || o.selected >= len(o.options) {
		return ""
	}
	return o.options[o.selected]
}

// SetSelected sets the selected index.
func (o *OptionList) SetSelected(index int) {
	if index >= 0 && index < len(o.options) {
		o.selected = index
	}
}

// MoveUp moves selection up.
func (o *OptionList) MoveUp() {
	if o.selected > 0 {
		o.selected--
	}
}

// MoveDown moves selection down.
func (o *OptionList) MoveDown() {
	if o.selected < len(o.options)-1 {
		o.selected++
	}
}

// Reveal marks the answer and locks the selection.
func (o *OptionList) Reveal() {
	o.revealed = true
}

// Revealed returns whether the answer is shown.
func (o *OptionList) Revealed() bool {
	return o.revealed
}

// SetWidth sets the component width.
func (o *OptionList) SetWidth(width int) {
	o.width = width
}

// Width returns the current width.
func (o *OptionList) Width() int {
	return o.width
}

// Count returns the number of options.
func (o *OptionList) Count() int {
	return len(o.options)
}

// IsEmpty returns whether the list is empty.
func (o *OptionList) IsEmpty() bool {
	return len(o.options) == 0
}
