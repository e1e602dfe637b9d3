package snapshot

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// YAML is an alternative backup encoding with the same layout as JSON.
type YAML struct{}

// Encode implements Codec.
func (YAML) Encode(lib domain.Library) ([]byte, error) {
	return yaml.Marshal(fromLibrary(lib))
}

// Decode implements Codec.
func (YAML) Decode(data []byte) (domain.Library, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return domain.Library{}, fmt.Errorf("%w: invalid yaml: %v", domain.ErrInvalidInput, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return domain.Library{}, fmt.Errorf("%w: expected a YAML mapping", domain.ErrInvalidInput)
	}

	s := initial()
	if err := root.Content[0].Decode(&s); err != nil {
		return domain.Library{}, fmt.Errorf("%w: invalid yaml: %v", domain.ErrInvalidInput, err)
	}
	return s.toLibrary()
}
