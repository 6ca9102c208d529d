package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers use to execute templates.
// Implementations write the output to every supplied writer and also return it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
