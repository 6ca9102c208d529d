package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrValidationFailed is returned when submitted values or edited properties
// are rejected.
var ErrValidationFailed = errors.New("submission: validation failed")

// Values maps element ids to submitted raw values.
type Values map[string]string

// FieldError reports one rejected element.
type FieldError struct {
	ElementID string `json:"elementId"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message"`
}

// FieldErrors lists every rejected element in layout order.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.ElementID, fe.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e FieldErrors) Unwrap() error {
	return ErrValidationFailed
}

// ByElement indexes the messages by element id.
func (e FieldErrors) ByElement() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.ElementID] = fe.Message
	}
	return out
}

// ValidateField runs the predicate registered for the instance type. Unknown
// types are rejected.
func ValidateField(registry *elements.Registry, instance model.ElementInstance, raw string) bool {
	if registry == nil {
		registry = elements.Default()
	}
	variant, err := registry.Lookup(instance.Type)
	if err != nil {
		return false
	}
	return variant.Validate(variant.Resolve(instance), raw)
}

// Validate checks every element of the layout against values and returns
// FieldErrors naming each failing element with the failure message of its
// variant. Values for ids outside the layout are ignored.
func Validate(l model.Layout, registry *elements.Registry, values Values) error {
	if registry == nil {
		registry = elements.Default()
	}

	var failures FieldErrors
	for _, element := range l {
		variant, err := registry.Lookup(element.Type)
		if err != nil {
			failures = append(failures, FieldError{ElementID: element.ID, Message: "has an unknown type"})
			continue
		}
		resolved := variant.Resolve(element)
		if variant.Validate(resolved, values[element.ID]) {
			continue
		}
		failures = append(failures, FieldError{
			ElementID: element.ID,
			Label:     resolved.Attributes.String(model.AttrLabel),
			Message:   variant.FailureMessage(),
		})
	}
	if len(failures) > 0 {
		return failures
	}
	return nil
}

// Clean keeps the values of input elements present in the layout. Missing
// inputs are recorded as empty strings so every row has every column.
func Clean(l model.Layout, registry *elements.Registry, values Values) Values {
	if registry == nil {
		registry = elements.Default()
	}
	out := make(Values)
	for _, element := range l {
		if !registry.IsInput(element.Type) {
			continue
		}
		out[element.ID] = values[element.ID]
	}
	return out
}

// Encode serialises values as the JSON object stored with a submission.
func Encode(values Values) (string, error) {
	if values == nil {
		values = Values{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("submission: encode: %w", err)
	}
	return string(data), nil
}

// Decode parses stored submission content.
func Decode(content string) (Values, error) {
	values := Values{}
	if strings.TrimSpace(content) == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(content), &values); err != nil {
		return nil, fmt.Errorf("submission: decode: %w", err)
	}
	return values, nil
}
