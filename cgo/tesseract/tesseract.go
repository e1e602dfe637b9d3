//go:build cgo

package tesseract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine wraps one gosseract client. Tesseract clients are not safe for
// concurrent use, so recognition is serialised.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates an engine tuned for printed study material.
func New() (*Engine, error) {
	client := gosseract.NewClient()

	vars := map[gosseract.SettableVariable]string{
		"tessedit_ocr_engine_mode":  "1", // LSTM only
		"tessedit_pageseg_mode":     "3", // fully automatic page segmentation
		"preserve_interword_spaces": "1",
	}
	for k, v := range vars {
		if err := client.SetVariable(k, v); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
		}
	}

	return &Engine{client: client}, nil
}

// Recognize returns the text in image using lang.
func (e *Engine) Recognize(ctx context.Context, image []byte, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if lang == "" {
		lang = domain.DefaultOCRLang
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrLanguageUnavailable, lang, err)
	}
	if err := e.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("tesseract: set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		// Initialisation happens lazily in Text; a missing traineddata
		// file surfaces here.
		if strings.Contains(strings.ToLower(err.Error()), "initialize") {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrLanguageUnavailable, lang, err)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close releases the tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
