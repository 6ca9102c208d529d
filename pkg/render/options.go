package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// RenderOptions describe per-request data that renderers use without touching
// the layout itself.
type RenderOptions struct {
	// Title and Description head the rendered form.
	Title       string
	Description string
	// Action is the submission endpoint. Empty renders a read-only preview
	// without a submit control.
	Action string
	// SubmitLabel defaults to "Submit".
	SubmitLabel string
	// Values pre-populates controls keyed by element id.
	Values submission.Values
	// Errors flags invalid elements keyed by element id.
	Errors map[string]string
	// Hidden fields are emitted before the elements in name order.
	Hidden map[string]string
	// Registry resolves element types; nil uses elements.Default().
	Registry *elements.Registry
}

// ResolvedRegistry returns the registry to render against.
func (o RenderOptions) ResolvedRegistry() *elements.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return elements.Default()
}

// ResolvedSubmitLabel returns the submit button caption.
func (o RenderOptions) ResolvedSubmitLabel() string {
	if label := strings.TrimSpace(o.SubmitLabel); label != "" {
		return label
	}
	return "Submit"
}

// WithSubmissionError copies the options and flags every element rejected by
// err. Errors that are not submission.FieldErrors leave the options unchanged.
func (o RenderOptions) WithSubmissionError(err error) RenderOptions {
	var fieldErrs submission.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return o
	}
	merged := make(map[string]string, len(o.Errors)+len(fieldErrs))
	for id, msg := range o.Errors {
		merged[id] = msg
	}
	for id, msg := range fieldErrs.ByElement() {
		merged[id] = msg
	}
	o.Errors = merged
	return o
}
