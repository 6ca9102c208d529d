package elements

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrUnknownVariant is returned when a type tag has no registered variant.
var ErrUnknownVariant = errors.New("elements: unknown variant")

// Registry maps element type tags to variants. It is populated once at
// construction and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	variants map[model.ElementType]Variant
	order    []model.ElementType
}

// Option customises registry construction.
type Option func(*config)

type config struct {
	skipBuiltins bool
	extra        []Variant
}

// WithVariants registers additional variants. A variant whose tag matches a
// built-in replaces it in place.
func WithVariants(variants ...Variant) Option {
	return func(c *config) {
		c.extra = append(c.extra, variants...)
	}
}

// WithoutBuiltins starts from an empty registry.
func WithoutBuiltins() Option {
	return func(c *config) {
		c.skipBuiltins = true
	}
}

// NewRegistry builds a registry holding the built-in variants plus any
// supplied through options. Nil variants and empty tags are rejected.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	reg := &Registry{variants: make(map[model.ElementType]Variant)}
	if !cfg.skipBuiltins {
		for _, spec := range Builtins() {
			if err := reg.add(NewVariant(spec)); err != nil {
				return nil, err
			}
		}
	}
	for _, v := range cfg.extra {
		if err := reg.add(v); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// MustNewRegistry panics when construction fails. Useful for init-time wiring.
func MustNewRegistry(opts ...Option) *Registry {
	reg, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of built-in variants.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNewRegistry()
	})
	return defaultRegistry
}

func (r *Registry) add(v Variant) error {
	if v == nil {
		return fmt.Errorf("elements: variant is required")
	}
	tag := v.Type()
	if tag == "" {
		return fmt.Errorf("elements: variant type is required")
	}
	if _, exists := r.variants[tag]; !exists {
		r.order = append(r.order, tag)
	}
	r.variants[tag] = v
	return nil
}

// Lookup returns the variant registered for tag.
func (r *Registry) Lookup(tag model.ElementType) (Variant, error) {
	if r != nil {
		if v, ok := r.variants[tag]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag model.ElementType) bool {
	_, err := r.Lookup(tag)
	return err == nil
}

// Types returns the registered tags in palette order.
func (r *Registry) Types() []model.ElementType {
	return append([]model.ElementType(nil), r.order...)
}

// Construct builds a new instance of tag with its default attributes.
func (r *Registry) Construct(tag model.ElementType, id string) (model.ElementInstance, error) {
	v, err := r.Lookup(tag)
	if err != nil {
		return model.ElementInstance{}, err
	}
	return v.Construct(id), nil
}

// Resolve fills the attributes instance does not carry from the defaults of
// its variant.
func (r *Registry) Resolve(instance model.ElementInstance) (model.ElementInstance, error) {
	v, err := r.Lookup(instance.Type)
	if err != nil {
		return model.ElementInstance{}, err
	}
	return v.Resolve(instance), nil
}

// Palette returns every palette button in registration order.
func (r *Registry) Palette() []PaletteButton {
	out := make([]PaletteButton, 0, len(r.order))
	for _, tag := range r.order {
		out = append(out, r.variants[tag].Palette())
	}
	return out
}

// PaletteSection groups the buttons of one palette group.
type PaletteSection struct {
	Group   Group           `json:"group"`
	Title   string          `json:"title"`
	Buttons []PaletteButton `json:"buttons"`
}

var groupTitles = map[Group]string{
	GroupLayout: "Layout Elements",
	GroupForm:   "Form Elements",
}

// Sections returns the palette split by group, layout elements first. Custom
// groups follow in the order they first appear.
func (r *Registry) Sections() []PaletteSection {
	groups := []Group{GroupLayout, GroupForm}
	index := map[Group]int{GroupLayout: 0, GroupForm: 1}
	sections := []PaletteSection{
		{Group: GroupLayout, Title: groupTitles[GroupLayout]},
		{Group: GroupForm, Title: groupTitles[GroupForm]},
	}
	for _, button := range r.Palette() {
		idx, ok := index[button.Group]
		if !ok {
			idx = len(groups)
			groups = append(groups, button.Group)
			index[button.Group] = idx
			sections = append(sections, PaletteSection{Group: button.Group, Title: string(button.Group)})
		}
		sections[idx].Buttons = append(sections[idx].Buttons, button)
	}

	out := sections[:0]
	for _, section := range sections {
		if len(section.Buttons) > 0 {
			out = append(out, section)
		}
	}
	return out
}

// IsInput reports whether instances of tag collect a submitted value.
func (r *Registry) IsInput(tag model.ElementType) bool {
	v, err := r.Lookup(tag)
	return err == nil && v.Input()
}
