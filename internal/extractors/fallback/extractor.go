package fallback

import (
	"bytes"
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// maxControlRatio is the share of control characters above which
// content is treated as binary.
const maxControlRatio = 0.1

// Extractor reads files of unknown type as text when they look like text.
type Extractor struct{}

// New creates a new fallback extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kinds returns the media kinds this extractor handles.
func (e *Extractor) Kinds() []domain.MediaKind {
	return []domain.MediaKind{domain.MediaUnknown}
}

// SupportedMIMETypes returns nil: unknown files are matched by kind.
func (e *Extractor) SupportedMIMETypes() []string {
	return nil
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 1
}

// Extract returns the content with NULs removed if it is valid UTF-8 text.
// Binary content yields an empty result with method none.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile, opts driven.ExtractOptions) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageReading})

	content := bytes.ReplaceAll(raw.Content, []byte{0}, nil)
	if len(content) == 0 || !looksLikeText(content) {
		return &driven.ExtractResult{Method: domain.MethodNone}, nil
	}

	return &driven.ExtractResult{
		Text:   string(content),
		Method: domain.MethodDirectText,
	}, nil
}

// looksLikeText reports whether b is valid UTF-8 with few control characters.
func looksLikeText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}

	var total, control int
	for _, r := range string(b) {
		total++
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' && r != '\f' {
			control++
		}
	}
	return float64(control) <= float64(total)*maxControlRatio
}
