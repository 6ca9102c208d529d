package layout_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const yamlLayout = `
- id: t1
  type: TitleField
  extraAttributes:
    title: Contact us
- id: s1
  type: SelectField
  extraAttributes:
    label: Topic
    options: [sales, support]
    required: true
- id: sp
  type: SpacerField
  extraAttributes:
    height: 12
`

func TestDecodeFileYAML(t *testing.T) {
	got, err := layout.DecodeFile([]byte(yamlLayout), "contact.yaml", nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(got))
	}
	if got[0].Attributes.String(model.AttrTitle) != "Contact us" {
		t.Fatalf("unexpected title %+v", got[0])
	}
	if diff := cmp.Diff([]string{"sales", "support"}, got[1].Attributes.Strings(model.AttrOptions)); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !got[1].Attributes.Bool(model.AttrRequired) {
		t.Fatalf("expected select to be required")
	}
	if _, ok := got[1].Attributes[model.AttrHelperText]; ok {
		t.Fatalf("expected helper text to stay unset, got %+v", got[1].Attributes)
	}
	if got[2].Attributes.Int(model.AttrHeight) != 12 {
		t.Fatalf("unexpected spacer height %+v", got[2].Attributes)
	}
}

func TestDecodeFileJSONAndYAMLAgree(t *testing.T) {
	fromYAML, err := layout.DecodeFile([]byte(yamlLayout), "contact.yml", nil)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	data, err := layout.Serialize(fromYAML)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	fromJSON, err := layout.DecodeFile(data, "contact.json", nil)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if !fromYAML.Equal(fromJSON) {
		t.Fatalf("json and yaml layouts differ")
	}

	encoded, err := layout.EncodeYAML(fromJSON)
	if err != nil {
		t.Fatalf("encode yaml: %v", err)
	}
	back, err := layout.DecodeFile(encoded, "out.yaml", nil)
	if err != nil {
		t.Fatalf("decode encoded yaml: %v", err)
	}
	if !back.Equal(fromJSON) {
		t.Fatalf("yaml round trip mismatch (-want +got):\n%s", cmp.Diff(fromJSON, back))
	}
}

func TestDecodeFileErrors(t *testing.T) {
	if _, err := layout.DecodeFile(nil, "empty.json", nil); !errors.Is(err, layout.ErrMalformedLayout) {
		t.Fatalf("expected malformed for empty file, got %v", err)
	}
	if _, err := layout.DecodeFile([]byte("- id: [unterminated"), "bad.yaml", nil); !errors.Is(err, layout.ErrMalformedLayout) {
		t.Fatalf("expected malformed for bad yaml, got %v", err)
	}
	if _, err := layout.DecodeFile([]byte("null\n"), "null.yaml", nil); !errors.Is(err, layout.ErrMalformedLayout) {
		t.Fatalf("expected malformed for null document, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, []byte(yamlLayout), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := layout.ReadFile(path, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(got))
	}

	if _, err := layout.ReadFile(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
