package driven

import "context"

// OCREngine recognises text in raster images.
type OCREngine interface {
	// Recognize returns the text found in image (PNG, JPEG, ...) using lang.
	// Returns domain.ErrLanguageUnavailable if lang cannot be loaded.
	Recognize(ctx context.Context, image []byte, lang string) (string, error)

	// Close releases engine resources.
	Close() error
}

// PageRasterizer renders PDF pages to PNG images for OCR.
type PageRasterizer interface {
	// RenderPages returns one PNG per page in page order.
	RenderPages(ctx context.Context, pdf []byte) ([][]byte, error)
}
