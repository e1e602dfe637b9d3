package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// Ensure FallbackEngine implements the interface.
var _ driven.OCREngine = (*FallbackEngine)(nil)

// FallbackEngine retries failed recognitions with a fallback language.
type FallbackEngine struct {
	inner    driven.OCREngine
	fallback string
}

// NewFallbackEngine wraps inner. A nil inner engine yields an engine that
// always reports domain.ErrOCRUnavailable.
func NewFallbackEngine(inner driven.OCREngine) *FallbackEngine {
	return &FallbackEngine{inner: inner, fallback: domain.DefaultOCRLang}
}

// WithFallbackLang sets the language retried after a failure. An empty
// lang keeps the current one.
func (e *FallbackEngine) WithFallbackLang(lang string) *FallbackEngine {
	if lang != "" {
		e.fallback = lang
	}
	return e
}

// Available reports whether a real engine is wrapped.
func (e *FallbackEngine) Available() bool {
	return e.inner != nil
}

// Recognize runs the inner engine for lang, then once more with the
// fallback language if that fails.
func (e *FallbackEngine) Recognize(ctx context.Context, image []byte, lang string) (string, error) {
	if e.inner == nil {
		return "", domain.ErrOCRUnavailable
	}
	if lang == "" {
		lang = e.fallback
	}

	text, err := e.inner.Recognize(ctx, image, lang)
	if err == nil || lang == e.fallback {
		return text, err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}

	logger.Warn("ocr failed for language %q, retrying with %q: %v", lang, e.fallback, err)
	text, ferr := e.inner.Recognize(ctx, image, e.fallback)
	if ferr != nil {
		return "", fmt.Errorf("ocr %s: %w (fallback %s: %v)", lang, err, e.fallback, ferr)
	}
	return text, nil
}

// Close closes the inner engine.
func (e *FallbackEngine) Close() error {
	if e.inner == nil {
		return nil
	}
	return e.inner.Close()
}
