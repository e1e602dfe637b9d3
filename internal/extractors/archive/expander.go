package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Expander implements the interface.
var _ driven.ArchiveExpander = (*Expander)(nil)

// DefaultMaxBytes is the default size limit for an archive and for the
// total uncompressed size of its entries.
const DefaultMaxBytes = 500 << 20

// Expander lists the entries of ZIP archives.
type Expander struct {
	maxBytes int64
}

// New creates an Expander. A non-positive limit selects DefaultMaxBytes.
func New(maxBytes int64) *Expander {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Expander{maxBytes: maxBytes}
}

// Expand returns one RawFile per eligible entry in archive order. Directory
// entries, __MACOSX metadata and dot files are skipped. Entries are named by
// their base name, with a MIME type guessed from it. An entry that cannot be
// read is returned without content and with ReadErr set.
func (e *Expander) Expand(ctx context.Context, raw *domain.RawFile) ([]domain.RawFile, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if raw.Size() > e.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", domain.ErrArchiveTooLarge, raw.Name, raw.Size(), e.maxBytes)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw.Content), raw.Size())
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", raw.Name, err)
	}

	var (
		files []domain.RawFile
		total int64
	)
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if skipEntry(f) {
			continue
		}

		total += int64(f.UncompressedSize64)
		if total > e.maxBytes {
			return nil, fmt.Errorf("%w: %s expands beyond %d bytes", domain.ErrArchiveTooLarge, raw.Name, e.maxBytes)
		}

		name := path.Base(f.Name)
		entry := domain.RawFile{
			Name:     name,
			MIMEType: domain.GuessMIME(name),
			Depth:    raw.Depth + 1,
		}
		content, err := readEntry(f, e.maxBytes)
		if err != nil {
			entry.ReadErr = fmt.Errorf("read %s in %s: %w", f.Name, raw.Name, err)
		} else {
			entry.Content = content
		}
		files = append(files, entry)
	}
	return files, nil
}

// skipEntry reports whether f is a directory or platform metadata.
func skipEntry(f *zip.File) bool {
	name := strings.ReplaceAll(f.Name, "\\", "/")
	if f.FileInfo().IsDir() || strings.HasSuffix(name, "/") {
		return true
	}
	for _, part := range strings.Split(name, "/") {
		if part == "__MACOSX" || strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}

func readEntry(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// The header size can lie; bound the actual read as well.
	content, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > limit {
		return nil, domain.ErrArchiveTooLarge
	}
	return content, nil
}
