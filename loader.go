package formbuilder

import (
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// LoadLayout reads a JSON or YAML layout document from disk. A nil registry
// uses the built-in catalogue.
func LoadLayout(path string, registry *elements.Registry) (Layout, error) {
	return layout.ReadFile(path, registry)
}

// ParseLayout decodes a serialized layout.
func ParseLayout(data []byte, registry *elements.Registry) (Layout, error) {
	return layout.Deserialize(data, registry)
}

// SerializeLayout encodes a layout in its canonical JSON form.
func SerializeLayout(l Layout) ([]byte, error) {
	return layout.Serialize(l)
}
