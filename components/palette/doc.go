// Package palette serves the designer palette as a small net/http component.
//
// The handler responds to GET and HEAD requests with the registered element
// types as JSON options. The q parameter filters by label or type tag, group
// narrows the result to one palette section, and limit caps the result size.
package palette
