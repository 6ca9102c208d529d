// Package openapi exports the submission contract of a published form as an
// OpenAPI 3 document so external clients can post values without scraping the
// rendered HTML.
package openapi
