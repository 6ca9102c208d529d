package model

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
)

// ElementType tags a form element variant. The set of valid tags is closed and
// owned by the element registry.
type ElementType string

const (
	TextField      ElementType = "TextField"
	TitleField     ElementType = "TitleField"
	SubTitleField  ElementType = "SubTitleField"
	ParagraphField ElementType = "ParagraphField"
	SpacerField    ElementType = "SpacerField"
	NumberField    ElementType = "NumberField"
	TextAreaField  ElementType = "TextAreaField"
	DateField      ElementType = "DateField"
	SelectField    ElementType = "SelectField"
	CheckboxField  ElementType = "CheckboxField"
)

// Attribute keys shared by the built-in variants.
const (
	AttrLabel       = "label"
	AttrHelperText  = "helperText"
	AttrRequired    = "required"
	AttrPlaceholder = "placeholder"
	AttrTitle       = "title"
	AttrText        = "text"
	AttrHeight      = "height"
	AttrRows        = "rows"
	AttrOptions     = "options"
)

// Attributes is the variant-specific property bag of an element. Values are
// kept in canonical form: string, bool, int64, float64 or []string.
type Attributes map[string]any

// ElementInstance is one element placed on a layout.
type ElementInstance struct {
	ID         string      `json:"id"`
	Type       ElementType `json:"type"`
	Attributes Attributes  `json:"extraAttributes"`
}

// Layout is the ordered sequence of elements composing a form. Order is the
// top-to-bottom order on the page.
type Layout []ElementInstance

// Clone returns a deep copy of the attribute bag.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for key, value := range a {
		out[key] = cloneValue(value)
	}
	return out
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// String returns the string attribute stored under key.
func (a Attributes) String(key string) string {
	if value, ok := a[key].(string); ok {
		return value
	}
	return ""
}

// Bool returns the boolean attribute stored under key.
func (a Attributes) Bool(key string) bool {
	if value, ok := a[key].(bool); ok {
		return value
	}
	return false
}

// Int returns the integer attribute stored under key. Non-integral numbers
// are truncated.
func (a Attributes) Int(key string) int64 {
	switch value := a[key].(type) {
	case int64:
		return value
	case float64:
		return int64(value)
	}
	if normalized, ok := NormalizeValue(a[key]); ok {
		if n, ok := normalized.(int64); ok {
			return n
		}
	}
	return 0
}

// Strings returns the string list attribute stored under key.
func (a Attributes) Strings(key string) []string {
	if value, ok := a[key].([]string); ok {
		return append([]string(nil), value...)
	}
	return nil
}

// Equal reports whether both bags hold the same keys and canonical values.
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for key, value := range a {
		candidate, ok := other[key]
		if !ok {
			return false
		}
		left, okLeft := NormalizeValue(value)
		right, okRight := NormalizeValue(candidate)
		if okLeft != okRight || !reflect.DeepEqual(left, right) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the instance.
func (e ElementInstance) Clone() ElementInstance {
	e.Attributes = e.Attributes.Clone()
	return e
}

// Equal reports structural equality.
func (e ElementInstance) Equal(other ElementInstance) bool {
	return e.ID == other.ID && e.Type == other.Type && e.Attributes.Equal(other.Attributes)
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	for idx, element := range l {
		out[idx] = element.Clone()
	}
	return out
}

// Equal reports order-sensitive structural equality. A nil layout equals an
// empty one.
func (l Layout) Equal(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	for idx := range l {
		if !l[idx].Equal(other[idx]) {
			return false
		}
	}
	return true
}

// IndexOf returns the position of the element with the given id or -1.
func (l Layout) IndexOf(id string) int {
	for idx, element := range l {
		if element.ID == id {
			return idx
		}
	}
	return -1
}

// NormalizeValue converts a decoded attribute value into its canonical form.
// It reports false for values that cannot be stored on an element.
func NormalizeValue(value any) (any, bool) {
	switch v := value.(type) {
	case string, bool, int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float32:
		return normalizeFloat(float64(v)), true
	case float64:
		return normalizeFloat(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return normalizeFloat(f), true
	case []string:
		return append([]string{}, v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

func cloneValue(value any) any {
	if list, ok := value.([]string); ok {
		return append([]string{}, list...)
	}
	return value
}
