package domain

import "time"

// MediaKind classifies an input file and drives the extraction strategy.
type MediaKind string

// Media kinds. MediaArchive is a classification result only: archives are
// expanded into their entries and never stored as a Document.
const (
	MediaPDF     MediaKind = "pdf"
	MediaText    MediaKind = "text"
	MediaImage   MediaKind = "image"
	MediaUnknown MediaKind = "unknown"
	MediaArchive MediaKind = "archive"
)

// IsValid returns true if the kind may appear on a stored Document.
func (k MediaKind) IsValid() bool {
	switch k {
	case MediaPDF, MediaText, MediaImage, MediaUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k MediaKind) String() string {
	return string(k)
}

// ExtractionMethod records which strategy produced a Document's text.
type ExtractionMethod string

// Extraction methods.
const (
	// MethodDirectText means the text was read from a text layer or the raw bytes.
	MethodDirectText ExtractionMethod = "direct-text"

	// MethodOCR means the text came from optical character recognition.
	MethodOCR ExtractionMethod = "ocr"

	// MethodNone means no strategy produced any text.
	MethodNone ExtractionMethod = "none"
)

// IsValid returns true if m is a known method.
func (m ExtractionMethod) IsValid() bool {
	switch m {
	case MethodDirectText, MethodOCR, MethodNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ExtractionMethod) String() string {
	return string(m)
}

// Default classification tags.
const (
	DefaultSubject = "General"
	DefaultChapter = "Misc"
)

// Document is one ingested unit of study material.
type Document struct {
	// ID is the unique identifier, assigned at ingestion.
	ID string

	// Name is the original file name.
	Name string

	// MediaKind is the classified kind of the source file.
	MediaKind MediaKind

	// Text is the extracted plain text. Empty means nothing was extracted.
	Text string

	// ExtractionMethod records which strategy produced Text.
	ExtractionMethod ExtractionMethod

	// AddedAt is when the document was ingested (millisecond precision, UTC).
	AddedAt time.Time

	// Subject is a best-effort classification tag.
	Subject string

	// Chapter is a best-effort classification tag.
	Chapter string
}

// HasText returns true if extraction produced any text.
func (d Document) HasText() bool {
	return d.Text != ""
}

// Timestamp normalises t to the precision the library persists:
// whole milliseconds in UTC.
func Timestamp(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}
