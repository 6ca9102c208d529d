package designer

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// PropertyError lists the attribute issues that blocked a property update.
type PropertyError struct {
	ElementID string
	Issues    []elements.Issue
}

func (e *PropertyError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("designer: element %q properties: %s", e.ElementID, strings.Join(parts, "; "))
}

func (e *PropertyError) Unwrap() error {
	return submission.ErrValidationFailed
}

// Session is one editing session: a store, the resolver feeding it and a dirty
// flag tracking unsaved mutations. Like Store it is not safe for concurrent
// use.
type Session struct {
	store    *Store
	resolver *Resolver
	dirty    bool
}

// NewSession hydrates a session from a persisted layout.
func NewSession(initial model.Layout, opts ...ResolverOption) *Session {
	s := &Session{
		store:    NewStore(initial),
		resolver: NewResolver(opts...),
	}
	s.store.Subscribe(func(change Change) {
		if change.Kind != ChangeSelect {
			s.dirty = true
		}
	})
	return s
}

// Store exposes the underlying store, e.g. to subscribe observers.
func (s *Session) Store() *Store {
	return s.store
}

// Drop resolves a drag event against the session store.
func (s *Session) Drop(event DragEvent) (Outcome, error) {
	return s.resolver.Resolve(s.store, event)
}

// UpdateProperties merges attrs onto the element's resolved attributes, checks the
// result against the variant schema and replaces the element.
func (s *Session) UpdateProperties(id string, attrs model.Attributes) (model.ElementInstance, error) {
	current, ok := s.store.Element(id)
	if !ok {
		return model.ElementInstance{}, fmt.Errorf("%w: element %q", ErrInvalidTarget, id)
	}
	variant, err := s.resolver.Registry().Lookup(current.Type)
	if err != nil {
		return model.ElementInstance{}, err
	}

	merged := variant.Resolve(current).Attributes
	for key, value := range attrs {
		merged[key] = value
	}
	if issues := variant.CheckAttributes(merged); len(issues) > 0 {
		return model.ElementInstance{}, &PropertyError{ElementID: id, Issues: issues}
	}
	for key, value := range merged {
		normalized, _ := model.NormalizeValue(value)
		merged[key] = normalized
	}

	updated := model.ElementInstance{ID: current.ID, Type: current.Type, Attributes: merged}
	s.store.Replace(id, updated)
	return updated, nil
}

// Remove deletes an element. Unknown ids are ignored.
func (s *Session) Remove(id string) {
	s.store.Remove(id)
}

// Select selects the element with the given id; an empty id clears the
// selection.
func (s *Session) Select(id string) error {
	if id == "" {
		s.store.Select(nil)
		return nil
	}
	element, ok := s.store.Element(id)
	if !ok {
		return fmt.Errorf("%w: element %q", ErrInvalidTarget, id)
	}
	s.store.Select(&element)
	return nil
}

// Layout returns a copy of the current layout.
func (s *Session) Layout() model.Layout {
	return s.store.Elements()
}

// Selected returns the selected element.
func (s *Session) Selected() (model.ElementInstance, bool) {
	return s.store.Selected()
}

// Serialize encodes the current layout for persistence.
func (s *Session) Serialize() ([]byte, error) {
	return layout.Serialize(s.store.Elements())
}

// Dirty reports whether the layout changed since hydration or the last
// MarkSaved call.
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag.
func (s *Session) MarkSaved() {
	s.dirty = false
}
