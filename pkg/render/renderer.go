package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer turns a layout into a byte representation (HTML, terminal prompts,
// etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, layout model.Layout, options RenderOptions) ([]byte, error)
}
