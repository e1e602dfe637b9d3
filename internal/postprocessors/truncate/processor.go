// Package truncate caps the length of extracted text.
package truncate

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "truncate"

// Processor keeps at most maxChars runes of each document.
type Processor struct {
	maxChars int
}

// New creates a truncate processor. A non-positive limit disables it.
func New(maxChars int) *Processor {
	return &Processor{maxChars: maxChars}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process truncates doc.Text at a rune boundary.
func (p *Processor) Process(_ context.Context, doc *domain.Document) error {
	if p.maxChars <= 0 || len(doc.Text) <= p.maxChars {
		return nil
	}
	runes := []rune(doc.Text)
	if len(runes) > p.maxChars {
		doc.Text = string(runes[:p.maxChars])
	}
	return nil
}
