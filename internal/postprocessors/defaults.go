package postprocessors

import (
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/postprocessors/cleaner"
	"github.com/custodia-labs/smartstudy/internal/postprocessors/tagger"
	"github.com/custodia-labs/smartstudy/internal/postprocessors/truncate"
)

// DefaultProcessors is the pipeline used when configuration names none.
// Extracted text is kept verbatim; only subject and chapter are assigned.
var DefaultProcessors = []string{tagger.Name}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(cleaner.Name, buildCleaner)
	r.Register(tagger.Name, buildTagger)
	r.Register(truncate.Name, buildTruncate)
}

func buildCleaner(_ map[string]any) (driven.PostProcessor, error) {
	return cleaner.New(), nil
}

func buildTagger(_ map[string]any) (driven.PostProcessor, error) {
	return tagger.New(), nil
}

// buildTruncate creates a truncate processor from generic config.
// Supported config keys:
//   - max_chars (int): Maximum runes kept per document (default: 0, unlimited)
func buildTruncate(cfg map[string]any) (driven.PostProcessor, error) {
	return truncate.New(getIntFromConfig(cfg, "max_chars")), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
