package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrMalformedLayout is returned when serialized content cannot be turned
// back into a valid layout.
var ErrMalformedLayout = errors.New("layout: malformed layout")

// Error carries the position of the offending element. Index is -1 when the
// document as a whole is invalid.
type Error struct {
	Index  int
	Reason string
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("layout: malformed layout: %s", e.Reason)
	}
	return fmt.Sprintf("layout: malformed layout: element %d: %s", e.Index, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrMalformedLayout
}

func malformed(index int, format string, args ...any) error {
	return &Error{Index: index, Reason: fmt.Sprintf(format, args...)}
}

type wireElement struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"extraAttributes"`
}

// Serialize encodes the layout as a JSON array of
// {"id","type","extraAttributes"} records in layout order. Attribute keys are
// emitted sorted, so equal layouts produce identical bytes.
func Serialize(l model.Layout) ([]byte, error) {
	out := make([]wireElement, 0, len(l))
	for idx, element := range l {
		attrs := make(map[string]any, len(element.Attributes))
		for key, value := range element.Attributes {
			normalized, ok := model.NormalizeValue(value)
			if !ok {
				return nil, fmt.Errorf("layout: serialize element %d: attribute %q has unsupported type %T", idx, key, value)
			}
			attrs[key] = normalized
		}
		out = append(out, wireElement{
			ID:         element.ID,
			Type:       string(element.Type),
			Attributes: attrs,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("layout: serialize: %w", err)
	}
	return data, nil
}

// Deserialize decodes content produced by Serialize. The document must be a
// JSON array. Every element must carry a unique id and a registered type, and
// only the attributes declared by its variant. Attributes are kept as stored;
// readers fill the missing ones with Variant.Resolve. A nil registry resolves
// against elements.Default().
func Deserialize(data []byte, registry *elements.Registry) (model.Layout, error) {
	if registry == nil {
		registry = elements.Default()
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, malformed(-1, "empty content")
	}
	if trimmed[0] != '[' {
		return nil, malformed(-1, "content must be a JSON array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, malformed(-1, "%v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed(-1, "unexpected trailing data")
	}

	out := make(model.Layout, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for idx, record := range raw {
		element, err := decodeElement(idx, record, registry)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[element.ID]; dup {
			return nil, malformed(idx, "duplicate id %q (first seen at element %d)", element.ID, prev)
		}
		seen[element.ID] = idx
		out = append(out, element)
	}
	return out, nil
}

func decodeElement(idx int, record map[string]any, registry *elements.Registry) (model.ElementInstance, error) {
	if record == nil {
		return model.ElementInstance{}, malformed(idx, "element is not an object")
	}
	for key := range record {
		switch key {
		case "id", "type", "extraAttributes":
		default:
			return model.ElementInstance{}, malformed(idx, "unexpected key %q", key)
		}
	}

	id, _ := record["id"].(string)
	if strings.TrimSpace(id) == "" {
		return model.ElementInstance{}, malformed(idx, "missing id")
	}

	tag, _ := record["type"].(string)
	variant, err := registry.Lookup(model.ElementType(tag))
	if err != nil {
		return model.ElementInstance{}, malformed(idx, "unknown type %q", tag)
	}

	attrs := model.Attributes{}
	rawAttrs := map[string]any{}
	switch value := record["extraAttributes"].(type) {
	case nil:
	case map[string]any:
		rawAttrs = value
	default:
		return model.ElementInstance{}, malformed(idx, "extraAttributes must be an object")
	}

	props := make(map[string]elements.Property)
	for _, prop := range variant.Properties() {
		props[prop.Key] = prop
	}
	for key, value := range rawAttrs {
		prop, ok := props[key]
		if !ok {
			return model.ElementInstance{}, malformed(idx, "attribute %q is not defined for %s", key, tag)
		}
		if !prop.AcceptsKind(value) {
			return model.ElementInstance{}, malformed(idx, "attribute %q must be a %s", key, prop.Kind)
		}
		normalized, _ := model.NormalizeValue(value)
		attrs[key] = normalized
	}

	return model.ElementInstance{
		ID:         id,
		Type:       model.ElementType(tag),
		Attributes: attrs,
	}, nil
}
