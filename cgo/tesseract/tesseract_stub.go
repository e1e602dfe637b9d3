//go:build !cgo

package tesseract

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine is a stub for builds without CGO.
type Engine struct{}

// New returns domain.ErrOCRUnavailable: OCR needs a CGO build.
func New() (*Engine, error) {
	return nil, domain.ErrOCRUnavailable
}

// Recognize always fails in builds without CGO.
func (e *Engine) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	return "", domain.ErrOCRUnavailable
}

// Close does nothing.
func (e *Engine) Close() error {
	return nil
}
