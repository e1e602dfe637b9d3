// Package tagger assigns subject and chapter tags from the document name.
package tagger

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "tagger"

// Processor tags documents using domain.DetectSubject and domain.DetectChapter.
type Processor struct{}

// New creates a tagger processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process sets doc.Subject and doc.Chapter from doc.Name.
func (p *Processor) Process(_ context.Context, doc *domain.Document) error {
	doc.Subject = domain.DetectSubject(doc.Name)
	doc.Chapter = domain.DetectChapter(doc.Name)
	return nil
}
