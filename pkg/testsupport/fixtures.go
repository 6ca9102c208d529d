package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Element describes one fixture element: a tag, an id and attribute
// overrides applied on top of the variant defaults.
type Element struct {
	Type  model.ElementType
	ID    string
	Attrs model.Attributes
}

// BuildLayout constructs a layout from fixture elements using registry
// defaults. A nil registry uses the built-in element set.
func BuildLayout(t testing.TB, registry *elements.Registry, items ...Element) model.Layout {
	t.Helper()

	if registry == nil {
		registry = elements.Default()
	}
	out := make(model.Layout, 0, len(items))
	for _, item := range items {
		instance, err := registry.Construct(item.Type, item.ID)
		if err != nil {
			t.Fatalf("construct %s: %v", item.Type, err)
		}
		for key, value := range item.Attrs {
			normalized, ok := model.NormalizeValue(value)
			if !ok {
				t.Fatalf("attribute %s.%s has unsupported value %#v", item.ID, key, value)
			}
			instance.Attributes[key] = normalized
		}
		out = append(out, instance)
	}
	return out
}

// ContactLayout returns a small layout mixing static and input elements:
// a title, a required name, an optional email, a topic select and a required
// terms checkbox.
func ContactLayout(t testing.TB) model.Layout {
	t.Helper()
	return BuildLayout(t, nil,
		Element{Type: model.TitleField, ID: "title", Attrs: model.Attributes{model.AttrTitle: "Contact us"}},
		Element{Type: model.TextField, ID: "name", Attrs: model.Attributes{model.AttrLabel: "Name", model.AttrRequired: true}},
		Element{Type: model.TextField, ID: "email", Attrs: model.Attributes{model.AttrLabel: "Email"}},
		Element{Type: model.SelectField, ID: "topic", Attrs: model.Attributes{model.AttrLabel: "Topic", model.AttrOptions: []string{"sales", "support"}}},
		Element{Type: model.CheckboxField, ID: "terms", Attrs: model.Attributes{model.AttrLabel: "Accept terms", model.AttrRequired: true}},
	)
}

// MustSerialize encodes a layout or fails the test.
func MustSerialize(t testing.TB, l model.Layout) string {
	t.Helper()
	data, err := layout.Serialize(l)
	if err != nil {
		t.Fatalf("serialize layout: %v", err)
	}
	return string(data)
}

// LoadLayout reads a JSON or YAML layout fixture.
func LoadLayout(t testing.TB, path string) model.Layout {
	t.Helper()

	l, err := LoadLayoutFromPath(path, nil)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	return l
}

// LoadLayoutFromPath returns a layout without requiring testing.T so callers
// can load fixtures from setup functions.
func LoadLayoutFromPath(path string, registry *elements.Registry) (model.Layout, error) {
	if path == "" {
		return nil, errors.New("testsupport: layout path is required")
	}
	l, err := layout.ReadFile(path, registry)
	if err != nil {
		return nil, fmt.Errorf("testsupport: %w", err)
	}
	return l, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs fn against a buffer and returns what it wrote.
func CaptureOutput(t testing.TB, fn func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return buf.String()
}
