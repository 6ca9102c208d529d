package elements

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Group splits the palette into static layout blocks and input fields.
type Group string

const (
	GroupLayout Group = "layout"
	GroupForm   Group = "form"
)

// PaletteButton describes how a variant is offered in the designer palette.
type PaletteButton struct {
	Type  model.ElementType `json:"type"`
	Label string            `json:"label"`
	Icon  string            `json:"icon"`
	Group Group             `json:"group"`
}

// Issue reports a property that does not satisfy the variant schema.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Variant is the behaviour attached to one element type tag.
type Variant interface {
	// Type reports the tag this variant is registered under.
	Type() model.ElementType
	// Construct returns a new instance with the variant defaults.
	Construct(id string) model.ElementInstance
	// Defaults returns a copy of the default attribute bag.
	Defaults() model.Attributes
	// Palette describes the designer palette entry.
	Palette() PaletteButton
	// Properties lists the attributes an instance of this variant may hold.
	Properties() []Property
	// Input reports whether the element collects a value on submission.
	Input() bool
	// Validate decides whether raw is an acceptable submitted value. It is
	// pure and shared by interactive feedback and the submission gate.
	Validate(instance model.ElementInstance, raw string) bool
	// CheckAttributes validates an attribute bag against Properties.
	CheckAttributes(attrs model.Attributes) []Issue
	// Resolve returns a copy of instance whose missing attributes are taken
	// from Defaults. Stored layouts may carry a subset of the attributes.
	Resolve(instance model.ElementInstance) model.ElementInstance
	// FailureMessage is the text shown when Validate rejects a value.
	FailureMessage() string
}

// ValidateFunc is the submission predicate of a variant.
type ValidateFunc func(instance model.ElementInstance, raw string) bool

// Spec declares a variant. Built-ins are declared with it and callers can use
// it to register their own element types.
type Spec struct {
	Type       model.ElementType
	Label      string
	Icon       string
	Group      Group
	Input      bool
	Properties []Property
	Defaults   model.Attributes
	Validate   ValidateFunc
	// FailureMessage defaults to "is required".
	FailureMessage string
}

type variant struct {
	spec Spec
}

// NewVariant builds a Variant from a Spec. Defaults are normalised and a nil
// Validate accepts every value.
func NewVariant(spec Spec) Variant {
	defaults := make(model.Attributes, len(spec.Defaults))
	for key, value := range spec.Defaults {
		if normalized, ok := model.NormalizeValue(value); ok {
			defaults[key] = normalized
		}
	}
	spec.Defaults = defaults
	spec.Properties = append([]Property(nil), spec.Properties...)
	if spec.Validate == nil {
		spec.Validate = AcceptAll
	}
	if spec.Group == "" {
		spec.Group = GroupForm
	}
	if spec.FailureMessage == "" {
		spec.FailureMessage = "is required"
	}
	return &variant{spec: spec}
}

func (v *variant) Type() model.ElementType {
	return v.spec.Type
}

func (v *variant) Construct(id string) model.ElementInstance {
	return model.ElementInstance{
		ID:         id,
		Type:       v.spec.Type,
		Attributes: v.Defaults(),
	}
}

func (v *variant) Defaults() model.Attributes {
	return v.spec.Defaults.Clone()
}

func (v *variant) Palette() PaletteButton {
	return PaletteButton{
		Type:  v.spec.Type,
		Label: v.spec.Label,
		Icon:  v.spec.Icon,
		Group: v.spec.Group,
	}
}

func (v *variant) Properties() []Property {
	return append([]Property(nil), v.spec.Properties...)
}

func (v *variant) Input() bool {
	return v.spec.Input
}

func (v *variant) Validate(instance model.ElementInstance, raw string) bool {
	return v.spec.Validate(instance, raw)
}

func (v *variant) CheckAttributes(attrs model.Attributes) []Issue {
	return checkProperties(v.spec.Properties, attrs)
}

func (v *variant) Resolve(instance model.ElementInstance) model.ElementInstance {
	attrs := v.Defaults()
	for key, value := range instance.Attributes {
		attrs[key] = value
	}
	instance.Attributes = attrs
	return instance
}

func (v *variant) FailureMessage() string {
	return v.spec.FailureMessage
}

// AcceptAll is the predicate of variants that never collect input.
func AcceptAll(model.ElementInstance, string) bool {
	return true
}

// RequireValue rejects an empty value when the instance is flagged required.
func RequireValue(instance model.ElementInstance, raw string) bool {
	if instance.Attributes.Bool(model.AttrRequired) {
		return len(raw) > 0
	}
	return true
}

// RequireChecked rejects anything but "true" when the instance is flagged
// required.
func RequireChecked(instance model.ElementInstance, raw string) bool {
	if instance.Attributes.Bool(model.AttrRequired) {
		return raw == "true"
	}
	return true
}
