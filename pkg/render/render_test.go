package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(_ context.Context, l model.Layout, opts render.RenderOptions) ([]byte, error) {
	return []byte(opts.Title + ":" + string(rune('0'+len(l)))), nil
}

func TestRegistry(t *testing.T) {
	reg, err := render.NewRegistry(stubRenderer{name: "Plain"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := reg.Register(stubRenderer{name: "plain"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(stubRenderer{name: " "}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	reg.MustRegister(stubRenderer{name: "other"})

	if diff := cmp.Diff([]string{"other", "plain"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	out, contentType, err := reg.Render(context.Background(), "PLAIN", model.Layout{{ID: "a"}}, render.RenderOptions{Title: "t"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "t:1" || contentType != "text/plain" {
		t.Fatalf("unexpected output %q %q", out, contentType)
	}
	if _, _, err := reg.Render(context.Background(), "missing", nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.ShareField("abc"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"_share":   "abc",
		"version":  "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "_share", Value: "abc"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if render.MergeHiddenFields(nil) != nil || render.SortedHiddenFields(nil) != nil {
		t.Fatalf("empty inputs should yield nil")
	}
}

func TestWithSubmissionError(t *testing.T) {
	opts := render.RenderOptions{Errors: map[string]string{"a": "old"}}

	flagged := opts.WithSubmissionError(submission.FieldErrors{{ElementID: "b", Message: "is required"}})
	want := map[string]string{"a": "old", "b": "is required"}
	if diff := cmp.Diff(want, flagged.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(opts.Errors) != 1 {
		t.Fatalf("original options mutated")
	}

	same := opts.WithSubmissionError(errors.New("boom"))
	if diff := cmp.Diff(opts.Errors, same.Errors); diff != "" {
		t.Fatalf("unrelated errors should not change options")
	}
	if opts.ResolvedSubmitLabel() != "Submit" || opts.ResolvedRegistry() == nil {
		t.Fatalf("unexpected defaults")
	}
}
