package services

import (
	"archive/zip"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/extractors"
	"github.com/custodia-labs/smartstudy/internal/extractors/plaintext"
)

func TestPipeline_ExtractText(t *testing.T) {
	p := newTestPipeline(nil)
	rec := &recorder{}

	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "Physics Chapter 3.txt",
		Content: []byte("Force equals mass times acceleration."),
	}, driven.ExtractOptions{Progress: rec.Report})

	assert.Empty(t, failures)
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "id-1", doc.ID)
	assert.Equal(t, "Physics Chapter 3.txt", doc.Name)
	assert.Equal(t, domain.MediaText, doc.MediaKind)
	assert.Equal(t, "Force equals mass times acceleration.", doc.Text)
	assert.Equal(t, domain.MethodDirectText, doc.ExtractionMethod)
	assert.Equal(t, domain.Timestamp(testNow), doc.AddedAt)
	assert.Equal(t, "Physics", doc.Subject)
	assert.Equal(t, "Chapter 3", doc.Chapter)

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, domain.StageDone, events[len(events)-1].Stage)
}

func TestPipeline_TextIsVerbatim(t *testing.T) {
	p := newTestPipeline(nil)
	text := "  line one\r\n\n\n\nline two  "

	docs, _ := p.Extract(context.Background(), domain.RawFile{
		Name:    "notes.txt",
		Content: []byte(text),
	}, driven.ExtractOptions{})

	require.Len(t, docs, 1)
	assert.Equal(t, text, docs[0].Text)
}

func TestPipeline_BinaryDegradesToEmpty(t *testing.T) {
	p := newTestPipeline(nil)

	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "blob.bin",
		Content: []byte{0xff, 0xfe, 0x01, 0x02, 0x80},
	}, driven.ExtractOptions{})

	assert.Empty(t, failures)
	require.Len(t, docs, 1)
	assert.Equal(t, domain.MediaUnknown, docs[0].MediaKind)
	assert.Empty(t, docs[0].Text)
	assert.Equal(t, domain.MethodNone, docs[0].ExtractionMethod)
}

func TestPipeline_OCRFailureStillYieldsDocument(t *testing.T) {
	ocr := &fakeOCR{err: errors.New("engine crashed")}
	p := newTestPipeline(ocr)
	rec := &recorder{}

	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "scan.png",
		Content: []byte("\x89PNG fake"),
	}, driven.ExtractOptions{Lang: "eng", Progress: rec.Report})

	require.Len(t, docs, 1)
	assert.Equal(t, domain.MediaImage, docs[0].MediaKind)
	assert.Empty(t, docs[0].Text)
	assert.Equal(t, domain.MethodNone, docs[0].ExtractionMethod)

	require.Len(t, failures, 1)
	assert.Equal(t, "scan.png", failures[0].Name)

	events := rec.Events()
	assert.Equal(t, domain.StageFailed, events[len(events)-1].Stage)
}

func TestPipeline_NoOCREngine(t *testing.T) {
	p := newTestPipeline(nil)

	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "scan.jpg",
		Content: []byte("jpeg"),
	}, driven.ExtractOptions{})

	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Text)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], domain.ErrOCRUnavailable)
}

func TestPipeline_ExpandsArchive(t *testing.T) {
	ocr := &fakeOCR{text: "HELLO WORLD"}
	p := newTestPipeline(ocr)

	archive := buildZip(t,
		zipFile{"a.txt", []byte("Cats are mammals.")},
		zipFile{"__MACOSX/._a.txt", []byte("junk")},
		zipFile{"dir/b.png", []byte("png")},
	)
	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "bundle.zip",
		Content: archive,
	}, driven.ExtractOptions{})

	assert.Empty(t, failures)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Name)
	assert.Equal(t, "Cats are mammals.", docs[0].Text)
	assert.Equal(t, "b.png", docs[1].Name)
	assert.Equal(t, "HELLO WORLD", docs[1].Text)
	assert.Equal(t, domain.MethodOCR, docs[1].ExtractionMethod)
}

func TestPipeline_UnreadableArchiveEntry(t *testing.T) {
	p := newTestPipeline(nil)

	archive := buildZipWithBadCRC(t, zipFile{"good.txt", []byte("Cats are mammals.")}, "notes/bad.txt")
	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "bundle.zip",
		Content: archive,
	}, driven.ExtractOptions{})

	require.Len(t, docs, 2)
	assert.Equal(t, "good.txt", docs[0].Name)
	assert.Equal(t, "Cats are mammals.", docs[0].Text)

	assert.Equal(t, "bad.txt", docs[1].Name)
	assert.Empty(t, docs[1].Text)
	assert.Equal(t, domain.MethodNone, docs[1].ExtractionMethod)
	assert.Equal(t, domain.MediaText, docs[1].MediaKind)

	require.Len(t, failures, 1)
	assert.Equal(t, "bad.txt", failures[0].Name)
	assert.ErrorIs(t, failures[0], zip.ErrChecksum)
}

func TestPipeline_NestedArchive(t *testing.T) {
	p := newTestPipeline(nil)

	inner := buildZip(t, zipFile{"inner.txt", []byte("inside")})
	outer := buildZip(t,
		zipFile{"first.txt", []byte("outside")},
		zipFile{"inner.zip", inner},
	)
	docs, failures := p.Extract(context.Background(), domain.RawFile{
		Name:    "outer.zip",
		Content: outer,
	}, driven.ExtractOptions{})

	assert.Empty(t, failures)
	require.Len(t, docs, 2)
	assert.Equal(t, "outside", docs[0].Text)
	assert.Equal(t, "inside", docs[1].Text)
}

func TestPipeline_ArchiveFailures(t *testing.T) {
	tests := []struct {
		name     string
		pipeline *Pipeline
		raw      domain.RawFile
	}{
		{
			name:     "corrupt archive",
			pipeline: newTestPipeline(nil),
			raw:      domain.RawFile{Name: "broken.zip", Content: []byte("not a zip")},
		},
		{
			name:     "too deep",
			pipeline: newTestPipeline(nil),
			raw: domain.RawFile{
				Name:    "deep.zip",
				Content: buildZip(t, zipFile{"x.txt", []byte("x")}),
				Depth:   MaxArchiveDepth,
			},
		},
		{
			name:     "no expander",
			pipeline: NewPipeline(extractors.NewRegistry(plaintext.New()), nil, nil),
			raw:      domain.RawFile{Name: "a.zip", Content: buildZip(t, zipFile{"x.txt", []byte("x")})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, failures := tt.pipeline.Extract(context.Background(), tt.raw, driven.ExtractOptions{})
			assert.Empty(t, docs)
			require.Len(t, failures, 1)
			assert.Equal(t, tt.raw.Name, failures[0].Name)
		})
	}
}

// failingPost always fails post-processing.
type failingPost struct{}

func (failingPost) Process(context.Context, *domain.Document) error {
	return errors.New("boom")
}

func TestPipeline_PostProcessFailureKeepsDocument(t *testing.T) {
	p := NewPipeline(extractors.NewRegistry(plaintext.New()), nil, failingPost{})

	doc, err := p.ExtractOne(context.Background(), domain.RawFile{
		Name:    "a.txt",
		Content: []byte("kept"),
	}, driven.ExtractOptions{})

	require.NoError(t, err)
	assert.Equal(t, "kept", doc.Text)
	assert.NotEmpty(t, doc.ID)
}

func TestPipeline_UnsupportedKind(t *testing.T) {
	p := NewPipeline(extractors.NewRegistry(plaintext.New()), nil, nil)

	doc, err := p.ExtractOne(context.Background(), domain.RawFile{
		Name:    "book.pdf",
		Content: []byte("%PDF-1.4"),
	}, driven.ExtractOptions{})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, domain.MediaPDF, doc.MediaKind)
	assert.Equal(t, domain.MethodNone, doc.ExtractionMethod)
}
