package domain

import (
	"path"
	"strings"
)

var (
	archiveExts = map[string]bool{".zip": true, ".cbz": true}

	archiveMIMEs = map[string]bool{
		"application/zip":              true,
		"application/x-zip-compressed": true,
	}

	imageExts = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
	}

	textExts = map[string]bool{
		".txt": true, ".md": true, ".markdown": true,
		".html": true, ".htm": true, ".csv": true,
	}

	markupExts = map[string]bool{".html": true, ".htm": true}

	mimeByExt = map[string]string{
		".pdf":      "application/pdf",
		".txt":      "text/plain",
		".csv":      "text/csv",
		".md":       "text/markdown",
		".markdown": "text/markdown",
		".html":     "text/html",
		".htm":      "text/html",
		".png":      "image/png",
		".jpg":      "image/jpeg",
		".jpeg":     "image/jpeg",
		".gif":      "image/gif",
		".webp":     "image/webp",
		".bmp":      "image/bmp",
		".tif":      "image/tiff",
		".tiff":     "image/tiff",
		".zip":      "application/zip",
		".cbz":      "application/zip",
		".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".epub":     "application/epub+zip",
	}
)

// OctetStream is the MIME type used when nothing better is known.
const OctetStream = "application/octet-stream"

// Classify returns the media kind for a file name or a MIME type.
func Classify(nameOrMIME string) MediaKind {
	return ClassifyFile(nameOrMIME, nameOrMIME)
}

// ClassifyFile returns the media kind for a file, consulting both its
// name and its MIME hint. Precedence: archive, pdf, image, text, unknown.
func ClassifyFile(name, mimeType string) MediaKind {
	ext := extension(name)
	mt := BaseMIME(mimeType)

	switch {
	case archiveExts[ext] || archiveMIMEs[mt]:
		return MediaArchive
	case ext == ".pdf" || mt == "application/pdf":
		return MediaPDF
	case imageExts[ext] || strings.HasPrefix(mt, "image/"):
		return MediaImage
	case textExts[ext] || strings.HasPrefix(mt, "text/"):
		return MediaText
	default:
		return MediaUnknown
	}
}

// IsMarkup returns true if the file should be stripped of tags before use.
func IsMarkup(name, mimeType string) bool {
	mt := BaseMIME(mimeType)
	return markupExts[extension(name)] || mt == "text/html" || mt == "application/xhtml+xml"
}

// GuessMIME maps a file name's extension to a MIME type.
func GuessMIME(name string) string {
	if mt, ok := mimeByExt[extension(name)]; ok {
		return mt
	}
	return OctetStream
}

// BaseMIME lowercases a MIME type and strips any parameters.
func BaseMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func extension(name string) string {
	return strings.ToLower(path.Ext(name))
}
