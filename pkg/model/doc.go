// Package model defines the element instance and layout types shared by the
// designer, the serializer and the renderers. An ElementInstance carries an
// opaque id, a type tag and an attribute bag whose schema is owned by the
// variant registered for that tag in package elements. Attribute values are
// kept in a canonical form (string, bool, int64, float64, []string) so layouts
// compare structurally after a JSON round trip.
package model
