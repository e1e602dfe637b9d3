package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	pdfreader "github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// DefaultOCRMinChars is the text-layer length below which a PDF is
// treated as scanned and sent to OCR.
const DefaultOCRMinChars = 32

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n\n"

// Extractor reads the PDF text layer and falls back to OCR of rendered
// pages when the layer is (nearly) empty.
type Extractor struct {
	ocr         driven.OCREngine
	rasterizer  driven.PageRasterizer
	ocrMinChars int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOCR enables the OCR fallback.
func WithOCR(ocr driven.OCREngine, rasterizer driven.PageRasterizer) Option {
	return func(e *Extractor) {
		e.ocr = ocr
		e.rasterizer = rasterizer
	}
}

// WithOCRMinChars sets the OCR threshold. Non-positive values keep the default.
func WithOCRMinChars(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.ocrMinChars = n
		}
	}
}

// New creates a PDF extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{ocrMinChars: DefaultOCRMinChars}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Kinds returns the media kinds this extractor handles.
func (e *Extractor) Kinds() []domain.MediaKind {
	return []domain.MediaKind{domain.MediaPDF}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract returns the text layer, or OCR output for scanned documents.
// A broken text layer is not an error: the OCR fallback still runs.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile, opts driven.ExtractOptions) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageReading})

	text, err := textLayer(raw.Content)
	if err != nil {
		logger.L().Warn("pdf text layer unreadable", zap.String("file", raw.Name), zap.Error(err))
	}
	text = strings.TrimSpace(text)

	if len([]rune(text)) < e.ocrMinChars && e.ocr != nil && e.rasterizer != nil {
		ocrText, err := e.recognize(ctx, raw, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.L().Warn("pdf ocr failed", zap.String("file", raw.Name), zap.Error(err))
		}
		if ocrText != "" {
			return &driven.ExtractResult{Text: ocrText, Method: domain.MethodOCR}, nil
		}
	}

	if text == "" {
		return &driven.ExtractResult{Method: domain.MethodNone}, nil
	}
	return &driven.ExtractResult{Text: text, Method: domain.MethodDirectText}, nil
}

// recognize renders every page and runs OCR over it. Pages that fail are skipped.
func (e *Extractor) recognize(ctx context.Context, raw *domain.RawFile, opts driven.ExtractOptions) (string, error) {
	pages, err := e.rasterizer.RenderPages(ctx, raw.Content)
	if err != nil {
		return "", fmt.Errorf("render pages: %w", err)
	}

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		opts.Progress.Report(domain.Progress{
			File:    raw.Name,
			Stage:   domain.StageOCR,
			Percent: float64(i) * 100 / float64(len(pages)),
		})

		t, err := e.ocr.Recognize(ctx, page, opts.Lang)
		if err != nil {
			logger.L().Warn("page ocr failed",
				zap.String("file", raw.Name),
				zap.Int("page", i+1),
				zap.Error(err))
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, pageSeparator), nil
}

// textLayer returns the text of every page joined by pageSeparator.
// The pdf reader panics on some malformed files, so panics become errors.
func textLayer(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdfreader.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, perr := pageText(page)
		if perr != nil {
			logger.Debug("skipping pdf page %d: %v", i, perr)
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.Join(pages, pageSeparator), nil
}

func pageText(page pdfreader.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
