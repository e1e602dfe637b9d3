package mupdf

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"

	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// Ensure Rasterizer implements the interface.
var _ driven.PageRasterizer = (*Rasterizer)(nil)

// DefaultDPI balances OCR accuracy against memory for phone-sized scans.
const DefaultDPI = 300

// DefaultMaxPages bounds OCR work for very long scanned books.
const DefaultMaxPages = 200

// Rasterizer renders PDF pages with MuPDF.
type Rasterizer struct {
	dpi      float64
	maxPages int
}

// New creates a Rasterizer. Non-positive values select the defaults.
func New(dpi float64, maxPages int) *Rasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Rasterizer{dpi: dpi, maxPages: maxPages}
}

// RenderPages returns one PNG per page. Pages that fail to render are skipped.
func (r *Rasterizer) RenderPages(ctx context.Context, pdf []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n > r.maxPages {
		logger.Warn("rendering first %d of %d pages", r.maxPages, n)
		n = r.maxPages
	}

	pages := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			logger.L().Warn("failed to render page", zap.Int("page", i+1), zap.Error(err))
			continue
		}

		var buf bytes.Buffer
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(&buf, img); err != nil {
			logger.L().Warn("failed to encode page", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
