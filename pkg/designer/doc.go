// Package designer holds the editing state of a form layout. Store keeps the
// ordered elements and the selection, Resolver translates drag gestures into
// store mutations and Session bundles both with property editing for one
// editing session.
package designer
