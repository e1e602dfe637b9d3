package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches files to the best matching extractor.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Extractor
	byKind map[domain.MediaKind][]driven.Extractor
}

// NewRegistry creates a registry holding extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byMIME: make(map[string][]driven.Extractor),
		byKind: make(map[domain.MediaKind][]driven.Extractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor. Lists stay sorted by descending priority;
// equal priorities keep registration order.
func (r *Registry) Register(e driven.Extractor) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range e.SupportedMIMETypes() {
		mt = domain.BaseMIME(mt)
		r.byMIME[mt] = insertByPriority(r.byMIME[mt], e)
	}
	for _, k := range e.Kinds() {
		r.byKind[k] = insertByPriority(r.byKind[k], e)
	}
}

func insertByPriority(list []driven.Extractor, e driven.Extractor) []driven.Extractor {
	list = append(list, e)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority() > list[j].Priority()
	})
	return list
}

// SupportedMIMETypes returns every registered MIME type, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mt := range r.byMIME {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// Extract runs the selected extractor for raw classified as kind.
func (r *Registry) Extract(ctx context.Context, kind domain.MediaKind, raw *domain.RawFile, opts driven.ExtractOptions) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	e := r.Select(kind, raw)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, kind)
	}
	return e.Extract(ctx, raw, opts)
}

// Select returns the extractor that would handle raw, or nil.
func (r *Registry) Select(kind domain.MediaKind, raw *domain.RawFile) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if mt := effectiveMIME(kind, raw); mt != "" {
		if list := r.byMIME[mt]; len(list) > 0 {
			return list[0]
		}
	}
	if list := r.byKind[kind]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// effectiveMIME picks the MIME type used for selection. Only a type that
// classifies to kind is trusted, so a misleading hint cannot route a PDF
// to the text extractor.
func effectiveMIME(kind domain.MediaKind, raw *domain.RawFile) string {
	var candidates []string
	if domain.IsMarkup(raw.Name, raw.MIMEType) {
		candidates = append(candidates, "text/html")
	}
	candidates = append(candidates, domain.BaseMIME(raw.MIMEType), domain.GuessMIME(raw.Name))

	for _, mt := range candidates {
		if mt == "" || mt == domain.OctetStream {
			continue
		}
		if domain.Classify(mt) == kind {
			return mt
		}
	}
	return ""
}
