package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DecodeFile parses a layout document authored as JSON or YAML. Files with a
// .yaml/.yml extension are read as YAML; anything else is tried as JSON first.
// Both forms go through Deserialize so the same rules apply.
func DecodeFile(data []byte, name string, registry *elements.Registry) (model.Layout, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, malformed(-1, "file %s is empty", name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" && json.Valid(data) {
		return Deserialize(data, registry)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformed(-1, "parse %s: invalid JSON or YAML", name)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, malformed(-1, "parse %s: %v", name, err)
	}
	return Deserialize(converted, registry)
}

// ReadFile loads a layout document from disk.
func ReadFile(path string, registry *elements.Registry) (model.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return DecodeFile(data, path, registry)
}

// EncodeYAML renders the layout as a YAML sequence using the same record
// shape as Serialize.
func EncodeYAML(l model.Layout) ([]byte, error) {
	data, err := Serialize(l)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("layout: encode yaml: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("layout: encode yaml: %w", err)
	}
	return out, nil
}
