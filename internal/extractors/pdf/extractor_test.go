package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// mockRasterizer is a test double for driven.PageRasterizer.
type mockRasterizer struct {
	pages [][]byte
	err   error
	calls int
}

func (m *mockRasterizer) RenderPages(_ context.Context, _ []byte) ([][]byte, error) {
	m.calls++
	return m.pages, m.err
}

// mockOCR returns the page bytes as text, failing for pages in fail.
type mockOCR struct {
	fail map[string]bool
}

func (m *mockOCR) Recognize(_ context.Context, image []byte, _ string) (string, error) {
	if m.fail[string(image)] {
		return "", errors.New("ocr failed")
	}
	return string(image), nil
}

func (m *mockOCR) Close() error { return nil }

// minimalPDF builds a one-page PDF whose text layer contains text.
func minimalPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return []byte(b.String())
}

func TestNew_Defaults(t *testing.T) {
	e := New()
	assert.Equal(t, DefaultOCRMinChars, e.ocrMinChars)
	assert.Nil(t, e.ocr)

	e = New(WithOCRMinChars(0))
	assert.Equal(t, DefaultOCRMinChars, e.ocrMinChars)

	e = New(WithOCRMinChars(5))
	assert.Equal(t, 5, e.ocrMinChars)
}

func TestSupportedMIMETypes(t *testing.T) {
	e := New()
	assert.Equal(t, []string{"application/pdf"}, e.SupportedMIMETypes())
	assert.Equal(t, []domain.MediaKind{domain.MediaPDF}, e.Kinds())
	assert.Equal(t, 50, e.Priority())
}

func TestExtract_NilFile(t *testing.T) {
	_, err := New().Extract(context.Background(), nil, driven.ExtractOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_TextLayer(t *testing.T) {
	raster := &mockRasterizer{}
	e := New(WithOCR(&mockOCR{}, raster), WithOCRMinChars(8))

	raw := &domain.RawFile{Name: "notes.pdf", Content: minimalPDF("Photosynthesis makes food")}
	result, err := e.Extract(context.Background(), raw, driven.ExtractOptions{})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "Photosynthesis")
	assert.Equal(t, domain.MethodDirectText, result.Method)
	assert.Zero(t, raster.calls)
}

func TestExtract_ScannedUsesOCR(t *testing.T) {
	raster := &mockRasterizer{pages: [][]byte{[]byte("Page one text"), []byte("bad"), []byte("Page three text")}}
	ocr := &mockOCR{fail: map[string]bool{"bad": true}}
	e := New(WithOCR(ocr, raster))

	raw := &domain.RawFile{Name: "scan.pdf", Content: []byte("%PDF-1.4 garbage")}
	result, err := e.Extract(context.Background(), raw, driven.ExtractOptions{Lang: "eng"})
	require.NoError(t, err)
	assert.Equal(t, "Page one text\n\nPage three text", result.Text)
	assert.Equal(t, domain.MethodOCR, result.Method)
	assert.Equal(t, 1, raster.calls)
}

func TestExtract_OCRNothingKeepsTextLayer(t *testing.T) {
	raster := &mockRasterizer{err: errors.New("render failed")}
	e := New(WithOCR(&mockOCR{}, raster), WithOCRMinChars(1000))

	raw := &domain.RawFile{Name: "short.pdf", Content: minimalPDF("Short text")}
	result, err := e.Extract(context.Background(), raw, driven.ExtractOptions{})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "Short")
	assert.Equal(t, domain.MethodDirectText, result.Method)
}

func TestExtract_GarbageWithoutOCR(t *testing.T) {
	raw := &domain.RawFile{Name: "broken.pdf", Content: []byte("not a pdf at all")}
	result, err := New().Extract(context.Background(), raw, driven.ExtractOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Equal(t, domain.MethodNone, result.Method)
}

func TestTextLayer_Garbage(t *testing.T) {
	_, err := textLayer([]byte("garbage"))
	assert.Error(t, err)
}
