// Package mupdf renders PDF pages to PNG images with MuPDF (go-fitz).
// The rendered pages feed the OCR fallback for scanned PDFs.
package mupdf
