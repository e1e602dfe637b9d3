package textkit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter names accepted by NewSplitter.
const (
	SplitterRegex = "regex"
	SplitterPunkt = "punkt"
)

// Splitter breaks text into sentences.
type Splitter interface {
	Split(text string) []string
}

// NewSplitter returns the splitter registered under name.
// An empty name selects the regex splitter.
func NewSplitter(name string) (Splitter, error) {
	switch strings.ToLower(name) {
	case "", SplitterRegex:
		return RegexSplitter{}, nil
	case SplitterPunkt:
		return NewPunktSplitter()
	default:
		return nil, fmt.Errorf("unknown sentence splitter: %s", name)
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// RegexSplitter collapses whitespace and cuts after '.', '!' or '?'
// when followed by whitespace.
type RegexSplitter struct{}

// Split implements Splitter.
func (RegexSplitter) Split(text string) []string {
	flat := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if flat == "" {
		return nil
	}

	var out []string
	start := 0
	for i := 0; i < len(flat)-1; i++ {
		switch flat[i] {
		case '.', '!', '?':
			if flat[i+1] == ' ' {
				out = append(out, flat[start:i+1])
				start = i + 2
			}
		}
	}
	if start < len(flat) {
		out = append(out, flat[start:])
	}
	return out
}

// PunktSplitter uses the pre-trained English Punkt model, which
// handles abbreviations such as "e.g." and "Dr." better than the regex.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the English training data.
func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence model: %w", err)
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

// Split implements Splitter.
func (p *PunktSplitter) Split(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(whitespace.ReplaceAllString(text, " ")) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
