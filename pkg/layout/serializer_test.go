package layout_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func mustConstruct(t *testing.T, tag model.ElementType, id string) model.ElementInstance {
	t.Helper()
	el, err := elements.Default().Construct(tag, id)
	if err != nil {
		t.Fatalf("construct %s: %v", tag, err)
	}
	return el
}

func TestRoundTripEveryBuiltin(t *testing.T) {
	var l model.Layout
	for idx, tag := range elements.Default().Types() {
		l = append(l, mustConstruct(t, tag, string(rune('a'+idx))))
	}
	l[len(l)-2].Attributes[model.AttrOptions] = []string{"red", "green"}

	data, err := layout.Serialize(l)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := layout.Deserialize(data, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !l.Equal(got) {
		t.Fatalf("round trip mismatch (-want +got):\n%s", cmp.Diff(l, got))
	}
}

func TestSerializeEmptyLayout(t *testing.T) {
	data, err := layout.Serialize(nil)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
	got, err := layout.Deserialize(data, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty layout, got %v", got)
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	l := model.Layout{mustConstruct(t, model.TextAreaField, "x")}
	first, _ := layout.Serialize(l)
	for i := 0; i < 10; i++ {
		next, _ := layout.Serialize(l.Clone())
		if string(next) != string(first) {
			t.Fatalf("serialization differs:\n%s\n%s", first, next)
		}
	}
}

func TestEndToEndTitleAndRequiredText(t *testing.T) {
	title := mustConstruct(t, model.TitleField, "t1")
	text := mustConstruct(t, model.TextField, "x1")
	text.Attributes[model.AttrRequired] = true

	l := model.Layout{title, text}
	data, err := layout.Serialize(l)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	want := `[{"id":"t1","type":"TitleField","extraAttributes":{"title":"Title Field"}},` +
		`{"id":"x1","type":"TextField","extraAttributes":{"helperText":"Helper Text","label":"Text Field","placeholder":"Value Here...","required":true}}]`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("serialized mismatch (-want +got):\n%s", diff)
	}

	got, err := layout.Deserialize(data, elements.Default())
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !l.Equal(got) {
		t.Fatalf("layout mismatch after round trip")
	}
}

func TestDeserializeKeepsStoredAttributes(t *testing.T) {
	l := model.Layout{{ID: "x1", Type: model.TextField, Attributes: model.Attributes{"required": true}}}
	data, err := layout.Serialize(l)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := layout.Deserialize(data, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}

	got, err = layout.Deserialize([]byte(`[{"id":"s","type":"SpacerField"},{"id":"p","type":"ParagraphField","extraAttributes":{"text":"Hello"}}]`), nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	want := model.Layout{
		{ID: "s", Type: model.SpacerField, Attributes: model.Attributes{}},
		{ID: "p", Type: model.ParagraphField, Attributes: model.Attributes{"text": "Hello"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
		index int
	}{
		{name: "empty", input: "  ", index: -1},
		{name: "not json", input: "{oops", index: -1},
		{name: "object root", input: `{"id":"a"}`, index: -1},
		{name: "null document", input: `null`, index: -1},
		{name: "empty object", input: `{}`, index: -1},
		{name: "string document", input: `"x"`, index: -1},
		{name: "trailing data", input: `[] []`, index: -1},
		{name: "unknown type", input: `[{"id":"a","type":"SignatureField"}]`, index: 0},
		{name: "missing id", input: `[{"type":"TitleField"}]`, index: 0},
		{name: "duplicate id", input: `[{"id":"a","type":"TitleField"},{"id":"a","type":"SpacerField"}]`, index: 1},
		{name: "foreign attribute", input: `[{"id":"a","type":"TitleField","extraAttributes":{"rows":3}}]`, index: 0},
		{name: "wrong kind", input: `[{"id":"a","type":"SpacerField","extraAttributes":{"height":"tall"}}]`, index: 0},
		{name: "attributes not object", input: `[{"id":"a","type":"SpacerField","extraAttributes":[]}]`, index: 0},
		{name: "null element", input: `[null]`, index: 0},
		{name: "extra key", input: `[{"id":"a","type":"TitleField","color":"red"}]`, index: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := layout.Deserialize([]byte(tc.input), nil)
			if !errors.Is(err, layout.ErrMalformedLayout) {
				t.Fatalf("expected ErrMalformedLayout, got %v", err)
			}
			var detail *layout.Error
			if !errors.As(err, &detail) {
				t.Fatalf("expected *layout.Error, got %T", err)
			}
			if detail.Index != tc.index {
				t.Fatalf("index = %d, want %d (%v)", detail.Index, tc.index, err)
			}
		})
	}
}

func TestDeserializeHonoursCustomRegistry(t *testing.T) {
	reg, err := elements.NewRegistry(elements.WithoutBuiltins(), elements.WithVariants(elements.NewVariant(elements.Spec{
		Type:  "Divider",
		Group: elements.GroupLayout,
	})))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	if _, err := layout.Deserialize([]byte(`[{"id":"a","type":"Divider"}]`), reg); err != nil {
		t.Fatalf("custom type should decode: %v", err)
	}
	if _, err := layout.Deserialize([]byte(`[{"id":"a","type":"TitleField"}]`), reg); !errors.Is(err, layout.ErrMalformedLayout) {
		t.Fatalf("builtin should be unknown in custom registry, got %v", err)
	}
}
