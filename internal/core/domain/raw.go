package domain

// RawFile represents opaque bytes handed to the extraction pipeline.
// It is the pipeline's input before any text has been extracted.
type RawFile struct {
	// Name is the file name (base name for archive entries).
	Name string

	// MIMEType is the content type hint (e.g., "application/pdf"). May be empty.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Depth counts how many archives enclose this file.
	Depth int

	// ReadErr is set when Content could not be read, as for a corrupt
	// archive entry. Such a file still becomes an empty document.
	ReadErr error
}

// Size returns the number of content bytes.
func (r RawFile) Size() int64 {
	return int64(len(r.Content))
}
