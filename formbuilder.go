package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/designer"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

// Layout is the ordered list of element instances making up a form.
type Layout = model.Layout

// ElementInstance is one placed element; alias exported via the root package
// for convenience.
type ElementInstance = model.ElementInstance

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface submission errors.
type RenderOptions = render.RenderOptions

// Session is a designer editing session over one layout.
type Session = designer.Session

// DefaultRegistry returns the built-in element catalogue.
func DefaultRegistry() *elements.Registry {
	return elements.Default()
}

// NewSession starts a designer session over initial.
func NewSession(initial Layout, options ...designer.ResolverOption) *Session {
	return designer.NewSession(initial, options...)
}

// NewRenderers builds a renderer registry holding the vanilla HTML renderer
// plus any extra renderers supplied by the caller.
func NewRenderers(extra ...render.Renderer) (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(append([]render.Renderer{html}, extra...)...)
}

// RenderHTML renders the layout as an HTML form fragment. It is the simplest
// entry point for callers that just want markup.
func RenderHTML(ctx context.Context, layout Layout, options RenderOptions) ([]byte, error) {
	renderers, err := NewRenderers()
	if err != nil {
		return nil, err
	}
	out, _, err := renderers.Render(ctx, "vanilla", layout, options)
	return out, err
}
