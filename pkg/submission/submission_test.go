package submission_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

func sampleLayout(t *testing.T) model.Layout {
	t.Helper()
	reg := elements.Default()
	build := func(tag model.ElementType, id string, attrs model.Attributes) model.ElementInstance {
		el, err := reg.Construct(tag, id)
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		for k, v := range attrs {
			el.Attributes[k] = v
		}
		return el
	}
	return model.Layout{
		build(model.TitleField, "title", nil),
		build(model.TextField, "name", model.Attributes{model.AttrLabel: "Name", model.AttrRequired: true}),
		build(model.NumberField, "age", model.Attributes{model.AttrLabel: "Age"}),
		build(model.CheckboxField, "terms", model.Attributes{model.AttrLabel: "Terms", model.AttrRequired: true}),
		build(model.SpacerField, "gap", nil),
	}
}

func TestValidateCollectsEveryFailure(t *testing.T) {
	l := sampleLayout(t)

	err := submission.Validate(l, nil, submission.Values{"terms": "false"})
	if !errors.Is(err, submission.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	var fieldErrs submission.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	want := submission.FieldErrors{
		{ElementID: "name", Label: "Name", Message: "is required"},
		{ElementID: "terms", Label: "Terms", Message: "must be checked"},
	}
	if diff := cmp.Diff(want, fieldErrs); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if got := fieldErrs.ByElement()["terms"]; got != "must be checked" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidateUsesVariantFailureMessage(t *testing.T) {
	rating := elements.NewVariant(elements.Spec{
		Type:       "RatingField",
		Label:      "Rating Field",
		Input:      true,
		Properties: []elements.Property{elements.IntProperty("max", 1, 10)},
		Defaults:   model.Attributes{"max": 5},
		Validate: func(_ model.ElementInstance, raw string) bool {
			return raw != "" && raw != "0"
		},
		FailureMessage: "needs at least one star",
	})
	reg, err := elements.NewRegistry(elements.WithVariants(rating))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	l := model.Layout{
		{ID: "stars", Type: "RatingField", Attributes: model.Attributes{}},
		{ID: "name", Type: model.TextField, Attributes: model.Attributes{model.AttrRequired: true}},
	}

	err = submission.Validate(l, reg, submission.Values{"stars": "0"})
	var fieldErrs submission.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	want := submission.FieldErrors{
		{ElementID: "stars", Message: "needs at least one star"},
		{ElementID: "name", Label: "Text Field", Message: "is required"},
	}
	if diff := cmp.Diff(want, fieldErrs); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAccepts(t *testing.T) {
	l := sampleLayout(t)
	values := submission.Values{"name": "Ada", "terms": "true", "unknown": "x"}
	if err := submission.Validate(l, elements.Default(), values); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestInteractiveAndSubmissionPathsAgree(t *testing.T) {
	l := sampleLayout(t)
	reg := elements.Default()

	for _, raw := range []string{"", "x", "true", "false"} {
		values := submission.Values{}
		for _, el := range l {
			values[el.ID] = raw
		}
		failing := submission.FieldErrors{}
		if err := submission.Validate(l, reg, values); err != nil {
			failing = err.(submission.FieldErrors)
		}
		rejected := failing.ByElement()
		for _, el := range l {
			_, gateRejected := rejected[el.ID]
			if interactive := submission.ValidateField(reg, el, raw); interactive == gateRejected {
				t.Fatalf("element %s raw %q: interactive=%v gate rejected=%v", el.ID, raw, interactive, gateRejected)
			}
		}
	}
}

func TestValidateFieldUnknownType(t *testing.T) {
	el := model.ElementInstance{ID: "a", Type: "Signature"}
	if submission.ValidateField(nil, el, "x") {
		t.Fatalf("unknown types must be rejected")
	}
}

func TestCleanAndEncode(t *testing.T) {
	l := sampleLayout(t)
	cleaned := submission.Clean(l, nil, submission.Values{"name": "Ada", "title": "nope", "other": "x"})
	want := submission.Values{"name": "Ada", "age": "", "terms": ""}
	if diff := cmp.Diff(want, cleaned); diff != "" {
		t.Fatalf("cleaned mismatch (-want +got):\n%s", diff)
	}

	content, err := submission.Encode(cleaned)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if content != `{"age":"","name":"Ada","terms":""}` {
		t.Fatalf("unexpected content %s", content)
	}
	decoded, err := submission.Decode(content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(cleaned, decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
	if _, err := submission.Decode("[1]"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestBuildTable(t *testing.T) {
	l := sampleLayout(t)
	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	table := submission.BuildTable(l, nil, []submission.Record{
		{Values: submission.Values{"name": "Ada", "age": "36", "terms": "true"}, SubmittedAt: older},
		{Values: submission.Values{"name": "Grace", "stale": "x"}, SubmittedAt: newer},
	})

	wantColumns := []submission.Column{
		{ID: "name", Label: "Name", Type: model.TextField},
		{ID: "age", Label: "Age", Type: model.NumberField},
		{ID: "terms", Label: "Terms", Type: model.CheckboxField},
	}
	if diff := cmp.Diff(wantColumns, table.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}

	wantRows := []submission.Row{
		{Values: submission.Values{"name": "Grace", "age": "", "terms": ""}, SubmittedAt: newer},
		{Values: submission.Values{"name": "Ada", "age": "36", "terms": "true"}, SubmittedAt: older},
	}
	if diff := cmp.Diff(wantRows, table.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExportXLSX(t *testing.T) {
	l := sampleLayout(t)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	table := submission.BuildTable(l, nil, []submission.Record{
		{Values: submission.Values{"name": "Ada", "age": "36", "terms": "true"}, SubmittedAt: at},
	})

	var buf bytes.Buffer
	if err := submission.ExportXLSX(table, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Submissions")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := [][]string{
		{"Name", "Age", "Terms", "Submitted at"},
		{"Ada", "36", "true", "2024-05-01T10:00:00Z"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("workbook mismatch (-want +got):\n%s", diff)
	}
}
