package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor recognises text in images with an OCR engine.
type Extractor struct {
	ocr driven.OCREngine
}

// New creates an image extractor. A nil engine makes every extraction
// fail with domain.ErrOCRUnavailable.
func New(ocr driven.OCREngine) *Extractor {
	return &Extractor{ocr: ocr}
}

// Kinds returns the media kinds this extractor handles.
func (e *Extractor) Kinds() []domain.MediaKind {
	return []domain.MediaKind{domain.MediaImage}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"image/png",
		"image/jpeg",
		"image/gif",
		"image/webp",
		"image/bmp",
		"image/tiff",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract runs OCR over the image.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile, opts driven.ExtractOptions) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if e.ocr == nil {
		return nil, domain.ErrOCRUnavailable
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageOCR})

	text, err := e.ocr.Recognize(ctx, raw.Content, opts.Lang)
	if err != nil {
		return nil, fmt.Errorf("ocr %s: %w", raw.Name, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return &driven.ExtractResult{Method: domain.MethodNone}, nil
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageOCR, Percent: 100})

	return &driven.ExtractResult{Text: text, Method: domain.MethodOCR}, nil
}
