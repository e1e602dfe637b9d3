// Package ocr wraps an OCR engine with the language fallback used by
// every extractor: when the requested language fails, recognition is
// retried once with English.
package ocr
