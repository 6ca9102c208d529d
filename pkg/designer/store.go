package designer

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeInsert  ChangeKind = "insert"
	ChangeReplace ChangeKind = "replace"
	ChangeRemove  ChangeKind = "remove"
	ChangeSelect  ChangeKind = "select"
	ChangeReset   ChangeKind = "reset"
)

// Change describes one store mutation. Index is the affected position, or -1
// when the mutation has no single position (select, reset).
type Change struct {
	Kind  ChangeKind
	ID    string
	Index int
}

// Observer is notified after every mutation.
type Observer func(Change)

// Store holds the ordered layout being edited and the current selection.
// Mutation methods are the only write path. A Store is not safe for
// concurrent use; callers own one store per editing session.
type Store struct {
	elements  model.Layout
	selected  string
	observers map[int]Observer
	nextObs   int
}

// NewStore returns a store hydrated with a copy of initial.
func NewStore(initial model.Layout) *Store {
	return &Store{
		elements:  initial.Clone(),
		observers: make(map[int]Observer),
	}
}

// Insert places instance at index, shifting later elements right. The index is
// clamped to [0, Len]. Ids are not checked for uniqueness.
func (s *Store) Insert(index int, instance model.ElementInstance) {
	if index < 0 {
		index = 0
	}
	if index > len(s.elements) {
		index = len(s.elements)
	}

	s.elements = append(s.elements, model.ElementInstance{})
	copy(s.elements[index+1:], s.elements[index:])
	s.elements[index] = instance.Clone()

	s.notify(Change{Kind: ChangeInsert, ID: instance.ID, Index: index})
}

// Replace swaps the element matching id for instance, keeping its position.
// Unknown ids are ignored. A selection pointing at id follows the new value.
func (s *Store) Replace(id string, instance model.ElementInstance) {
	idx := s.elements.IndexOf(id)
	if idx < 0 {
		return
	}
	s.elements[idx] = instance.Clone()
	if s.selected == id {
		s.selected = instance.ID
	}
	s.notify(Change{Kind: ChangeReplace, ID: id, Index: idx})
}

// Remove drops the element matching id. Unknown ids are ignored. The selection
// is cleared when it pointed at the removed element.
func (s *Store) Remove(id string) {
	idx := s.elements.IndexOf(id)
	if idx < 0 {
		return
	}
	s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	s.notify(Change{Kind: ChangeRemove, ID: id, Index: idx})
}

// Select marks instance as selected; nil clears the selection.
func (s *Store) Select(instance *model.ElementInstance) {
	id := ""
	if instance != nil {
		id = instance.ID
	}
	s.selected = id
	s.notify(Change{Kind: ChangeSelect, ID: id, Index: s.elements.IndexOf(id)})
}

// Selected returns the current value of the selected element. Selection is by
// id, so a replaced element is returned with its latest attributes.
func (s *Store) Selected() (model.ElementInstance, bool) {
	if s.selected == "" {
		return model.ElementInstance{}, false
	}
	return s.Element(s.selected)
}

// Reset replaces the whole layout and clears the selection.
func (s *Store) Reset(l model.Layout) {
	s.elements = l.Clone()
	s.selected = ""
	s.notify(Change{Kind: ChangeReset, Index: -1})
}

// Elements returns a copy of the current layout.
func (s *Store) Elements() model.Layout {
	out := s.elements.Clone()
	if out == nil {
		out = model.Layout{}
	}
	return out
}

// Len reports the number of elements.
func (s *Store) Len() int {
	return len(s.elements)
}

// IndexOf returns the position of id or -1.
func (s *Store) IndexOf(id string) int {
	return s.elements.IndexOf(id)
}

// Element returns a copy of the element with the given id.
func (s *Store) Element(id string) (model.ElementInstance, bool) {
	idx := s.elements.IndexOf(id)
	if idx < 0 {
		return model.ElementInstance{}, false
	}
	return s.elements[idx].Clone(), true
}

// Subscribe registers an observer and returns a function removing it.
func (s *Store) Subscribe(observer Observer) func() {
	if observer == nil {
		return func() {}
	}
	key := s.nextObs
	s.nextObs++
	s.observers[key] = observer
	return func() {
		delete(s.observers, key)
	}
}

func (s *Store) notify(change Change) {
	for key := 0; key < s.nextObs; key++ {
		if observer, ok := s.observers[key]; ok {
			observer(change)
		}
	}
}
