// Package template defines the renderer-agnostic template interface. The
// gotemplate subpackage provides a pongo2 implementation.
package template
