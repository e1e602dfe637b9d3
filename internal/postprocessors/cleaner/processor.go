// Package cleaner provides a text cleanup processor for extracted documents.
package cleaner

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "cleaner"

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Processor removes NULs, normalises line endings, strips trailing spaces
// and collapses runs of blank lines.
type Processor struct{}

// New creates a cleaner processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process cleans doc.Text in place.
func (p *Processor) Process(_ context.Context, doc *domain.Document) error {
	doc.Text = Clean(doc.Text)
	return nil
}

// Clean applies the cleanup rules to text.
func Clean(text string) string {
	if text == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
