package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func types(buttons []elements.PaletteButton) []model.ElementType {
	out := make([]model.ElementType, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, b.Type)
	}
	return out
}

func TestSearch_MatchesLabelAndType(t *testing.T) {
	buttons := elements.Default().Palette()
	opts := NewOptions()

	got := types(Search(buttons, "field", "", 0, opts))
	if len(got) != 10 {
		t.Fatalf("every builtin tag contains field, got %v", got)
	}

	got = types(Search(buttons, "TEXT", "", 0, opts))
	want := []model.ElementType{model.TextField, model.TextAreaField}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	buttons := []elements.PaletteButton{
		{Type: "DueField", Label: "Due date"},
		{Type: "DateField", Label: "Date"},
		{Type: "NoteField", Label: "Note"},
	}

	got := types(Search(buttons, "date", "", 0, NewOptions()))
	want := []model.ElementType{"DateField", "DueField"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_Group(t *testing.T) {
	got := Search(elements.Default().Palette(), "", elements.GroupLayout, 0, NewOptions())
	if len(got) != 4 {
		t.Fatalf("expected 4 layout buttons, got %d", len(got))
	}
}

func TestSearch_CustomRegistry(t *testing.T) {
	reg := elements.MustNewRegistry(elements.WithoutBuiltins(), elements.WithVariants(
		elements.NewVariant(elements.Spec{Type: "RatingField", Label: "Rating", Icon: "star", Input: true}),
	))
	opts := NewOptions(WithRegistry(reg))

	got := Search(opts.Registry.Palette(), "rat", "", 0, opts)
	if len(got) != 1 || got[0].Group != elements.GroupForm {
		t.Fatalf("unexpected results: %#v", got)
	}
}
