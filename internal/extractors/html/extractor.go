package html

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML documents by stripping markup to readable text.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kinds returns nil: HTML is selected by MIME type only, so unrecognised
// text types fall through to the plain text extractor.
func (e *Extractor) Kinds() []domain.MediaKind {
	return nil
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Generic MIME extractor, higher than plaintext
}

// Extract converts an HTML document to plain text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile, opts driven.ExtractOptions) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageReading})

	text, err := stripHTML(raw.Content)
	if err != nil {
		return nil, err
	}

	return &driven.ExtractResult{
		Text:   text,
		Method: domain.MethodDirectText,
	}, nil
}

const (
	// removedElements never contribute readable text.
	removedElements = "head, script, style, noscript, svg, template, iframe, object"

	// blockElements start and end on their own line.
	blockElements = "p, div, hr, h1, h2, h3, h4, h5, h6, li, tr, blockquote, pre, " +
		"table, section, article, header, footer, nav, main, aside, dt, dd, figcaption"
)

var (
	multiSpaces = regexp.MustCompile(`[ \t\x{00a0}]+`)
)

// stripHTML parses content and returns its visible text, one block per line.
func stripHTML(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(removedElements).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	text := multiSpaces.ReplaceAllString(doc.Text(), " ")

	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n"), nil
}
