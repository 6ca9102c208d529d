package elements

import (
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// PropertyKind is the canonical value type of an attribute.
type PropertyKind string

const (
	KindString     PropertyKind = "string"
	KindBool       PropertyKind = "bool"
	KindInt        PropertyKind = "int"
	KindStringList PropertyKind = "stringList"
)

// Property declares one attribute of a variant. Min and Max bound the rune
// length of strings and the value of integers; a zero Max means unbounded.
type Property struct {
	Key  string       `json:"key"`
	Kind PropertyKind `json:"kind"`
	Min  int          `json:"min,omitempty"`
	Max  int          `json:"max,omitempty"`
}

func StringProperty(key string, min, max int) Property {
	return Property{Key: key, Kind: KindString, Min: min, Max: max}
}

func BoolProperty(key string) Property {
	return Property{Key: key, Kind: KindBool}
}

func IntProperty(key string, min, max int) Property {
	return Property{Key: key, Kind: KindInt, Min: min, Max: max}
}

func StringListProperty(key string) Property {
	return Property{Key: key, Kind: KindStringList}
}

func checkProperties(props []Property, attrs model.Attributes) []Issue {
	var issues []Issue
	declared := make(map[string]Property, len(props))
	for _, prop := range props {
		declared[prop.Key] = prop
	}

	for _, key := range attrs.Keys() {
		if _, ok := declared[key]; !ok {
			issues = append(issues, Issue{Field: key, Message: "unknown attribute"})
		}
	}

	for _, prop := range props {
		raw, ok := attrs[prop.Key]
		if !ok {
			issues = append(issues, Issue{Field: prop.Key, Message: "is required"})
			continue
		}
		if msg := prop.check(raw); msg != "" {
			issues = append(issues, Issue{Field: prop.Key, Message: msg})
		}
	}
	return issues
}

// AcceptsKind reports whether value normalises to the property kind. Bounds
// are not checked.
func (p Property) AcceptsKind(value any) bool {
	normalized, ok := model.NormalizeValue(value)
	if !ok {
		return false
	}
	switch p.Kind {
	case KindString:
		_, ok = normalized.(string)
	case KindBool:
		_, ok = normalized.(bool)
	case KindInt:
		_, ok = normalized.(int64)
	case KindStringList:
		_, ok = normalized.([]string)
	}
	return ok
}

func (p Property) check(raw any) string {
	value, ok := model.NormalizeValue(raw)
	if !ok {
		return fmt.Sprintf("must be a %s", p.Kind)
	}

	switch p.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		n := utf8.RuneCountInString(s)
		if n < p.Min {
			return fmt.Sprintf("must contain at least %d characters", p.Min)
		}
		if p.Max > 0 && n > p.Max {
			return fmt.Sprintf("must contain at most %d characters", p.Max)
		}
	case KindBool:
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
	case KindInt:
		n, ok := value.(int64)
		if !ok {
			return "must be an integer"
		}
		if n < int64(p.Min) {
			return fmt.Sprintf("must be greater than or equal to %d", p.Min)
		}
		if p.Max > 0 && n > int64(p.Max) {
			return fmt.Sprintf("must be less than or equal to %d", p.Max)
		}
	case KindStringList:
		if _, ok := value.([]string); !ok {
			return "must be a list of strings"
		}
	}
	return ""
}
