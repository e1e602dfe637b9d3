package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// JSON is the persisted and default backup encoding.
type JSON struct {
	// Indent pretty-prints the output.
	Indent bool
}

// Encode implements Codec.
func (c JSON) Encode(lib domain.Library) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(fromLibrary(lib), "", "  ")
	}
	return json.Marshal(fromLibrary(lib))
}

// Decode implements Codec.
func (JSON) Decode(data []byte) (domain.Library, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.Library{}, fmt.Errorf("%w: expected a JSON object", domain.ErrInvalidInput)
	}

	s := initial()
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return domain.Library{}, fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidInput, err)
	}
	return s.toLibrary()
}
