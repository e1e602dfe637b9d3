// Package tesseract provides Tesseract OCR bindings through gosseract.
// It implements the driven.OCREngine interface.
//
// Build requires:
//   - libtesseract and libleptonica development headers
//   - trained data for every language used (e.g. eng.traineddata)
//
// Without CGO the engine is a stub that reports domain.ErrOCRUnavailable.
package tesseract
