package plaintext

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. Content is returned verbatim.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kinds returns the media kinds this extractor handles.
func (e *Extractor) Kinds() []domain.MediaKind {
	return []domain.MediaKind{domain.MediaText}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/x-markdown",
		"text/csv",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback for every text/* type
}

// Extract returns the file's bytes as text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile, opts driven.ExtractOptions) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageReading, Percent: 100})

	return &driven.ExtractResult{
		Text:   string(raw.Content),
		Method: domain.MethodDirectText,
	}, nil
}
