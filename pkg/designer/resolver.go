package designer

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrInvalidTarget is returned when a drag event references an element that is
// not on the layout, or a half that is neither top nor bottom.
var ErrInvalidTarget = errors.New("designer: invalid drop target")

// Outcome reports what a resolved drag event did. Element and Index describe
// the inserted or moved element when Applied is true.
type Outcome struct {
	Applied bool                  `json:"applied"`
	Kind    EventKind             `json:"kind"`
	Element model.ElementInstance `json:"element"`
	Index   int                   `json:"index"`
}

// Resolver turns one drag event into at most one store mutation.
type Resolver struct {
	registry *elements.Registry
	ids      IDGenerator
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithRegistry sets the registry used to construct palette elements.
func WithRegistry(registry *elements.Registry) ResolverOption {
	return func(r *Resolver) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithIDGenerator sets the id source for new elements.
func WithIDGenerator(ids IDGenerator) ResolverOption {
	return func(r *Resolver) {
		if ids != nil {
			r.ids = ids
		}
	}
}

// NewResolver returns a resolver backed by the default registry and random
// UUIDs unless overridden.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: elements.Default(),
		ids:      UUIDGenerator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Registry returns the registry the resolver constructs elements from.
func (r *Resolver) Registry() *elements.Registry {
	return r.registry
}

// Resolve applies event to store. Errors leave the store untouched.
func (r *Resolver) Resolve(store *Store, event DragEvent) (Outcome, error) {
	if store == nil {
		return Outcome{}, fmt.Errorf("designer: store is required")
	}

	switch e := event.(type) {
	case PaletteOverCanvas:
		return r.paletteOverCanvas(store, e)
	case PaletteOverElement:
		return r.paletteOverElement(store, e)
	case ElementOverElement:
		return r.elementOverElement(store, e)
	default:
		// Unmatched, nil and foreign events are discarded.
		return Outcome{Kind: KindUnmatched, Index: -1}, nil
	}
}

func (r *Resolver) paletteOverCanvas(store *Store, e PaletteOverCanvas) (Outcome, error) {
	element, err := r.registry.Construct(e.Type, r.ids.NewID())
	if err != nil {
		return Outcome{}, err
	}
	index := store.Len()
	store.Insert(index, element)
	return Outcome{Applied: true, Kind: e.Kind(), Element: element, Index: index}, nil
}

func (r *Resolver) paletteOverElement(store *Store, e PaletteOverElement) (Outcome, error) {
	if !e.Half.valid() {
		return Outcome{}, fmt.Errorf("%w: half %q", ErrInvalidTarget, e.Half)
	}
	target := store.IndexOf(e.TargetID)
	if target < 0 {
		return Outcome{}, fmt.Errorf("%w: target %q", ErrInvalidTarget, e.TargetID)
	}
	element, err := r.registry.Construct(e.Type, r.ids.NewID())
	if err != nil {
		return Outcome{}, err
	}

	index := target
	if e.Half == HalfBottom {
		index++
	}
	store.Insert(index, element)
	return Outcome{Applied: true, Kind: e.Kind(), Element: element, Index: index}, nil
}

func (r *Resolver) elementOverElement(store *Store, e ElementOverElement) (Outcome, error) {
	if !e.Half.valid() {
		return Outcome{}, fmt.Errorf("%w: half %q", ErrInvalidTarget, e.Half)
	}
	source, ok := store.Element(e.SourceID)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: source %q", ErrInvalidTarget, e.SourceID)
	}
	if store.IndexOf(e.TargetID) < 0 {
		return Outcome{}, fmt.Errorf("%w: target %q", ErrInvalidTarget, e.TargetID)
	}
	if e.SourceID == e.TargetID {
		return Outcome{Kind: e.Kind(), Element: source, Index: store.IndexOf(e.SourceID)}, nil
	}

	selected, hadSelection := store.Selected()

	store.Remove(e.SourceID)
	index := store.IndexOf(e.TargetID)
	if e.Half == HalfBottom {
		index++
	}
	store.Insert(index, source)

	if hadSelection && selected.ID == source.ID {
		store.Select(&source)
	}
	return Outcome{Applied: true, Kind: e.Kind(), Element: source, Index: index}, nil
}
