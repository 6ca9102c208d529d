package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/elements/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
