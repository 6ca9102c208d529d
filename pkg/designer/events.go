package designer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Half is the part of a target element a drag ended over. Top inserts before
// the target and bottom inserts after it.
type Half string

const (
	HalfTop    Half = "top"
	HalfBottom Half = "bottom"
)

func (h Half) valid() bool {
	return h == HalfTop || h == HalfBottom
}

// EventKind identifies a drag scenario.
type EventKind string

const (
	KindPaletteOverCanvas  EventKind = "paletteOverCanvas"
	KindPaletteOverElement EventKind = "paletteOverElement"
	KindElementOverElement EventKind = "elementOverElement"
	KindUnmatched          EventKind = "unmatched"
)

// DragEvent is produced by the gesture layer when a drag ends. The set of
// implementations is closed.
type DragEvent interface {
	Kind() EventKind
	dragEvent()
}

// PaletteOverCanvas is a palette button dropped on the canvas itself.
type PaletteOverCanvas struct {
	Type model.ElementType
}

// PaletteOverElement is a palette button dropped on half of an element.
type PaletteOverElement struct {
	Type     model.ElementType
	TargetID string
	Half     Half
}

// ElementOverElement is an existing element dropped on half of another.
type ElementOverElement struct {
	SourceID string
	TargetID string
	Half     Half
}

// Unmatched is a cancelled drag or a drop outside every target.
type Unmatched struct{}

func (PaletteOverCanvas) Kind() EventKind  { return KindPaletteOverCanvas }
func (PaletteOverElement) Kind() EventKind { return KindPaletteOverElement }
func (ElementOverElement) Kind() EventKind { return KindElementOverElement }
func (Unmatched) Kind() EventKind          { return KindUnmatched }

func (PaletteOverCanvas) dragEvent()  {}
func (PaletteOverElement) dragEvent() {}
func (ElementOverElement) dragEvent() {}
func (Unmatched) dragEvent()          {}

// EventPayload is the wire shape of a drag event.
type EventPayload struct {
	Kind     EventKind         `json:"kind"`
	Type     model.ElementType `json:"type,omitempty"`
	SourceID string            `json:"sourceId,omitempty"`
	TargetID string            `json:"targetId,omitempty"`
	Half     Half              `json:"half,omitempty"`
}

// Event converts the payload into a DragEvent. An empty kind is Unmatched.
func (p EventPayload) Event() (DragEvent, error) {
	switch EventKind(strings.TrimSpace(string(p.Kind))) {
	case KindPaletteOverCanvas:
		return PaletteOverCanvas{Type: p.Type}, nil
	case KindPaletteOverElement:
		return PaletteOverElement{Type: p.Type, TargetID: p.TargetID, Half: p.Half}, nil
	case KindElementOverElement:
		return ElementOverElement{SourceID: p.SourceID, TargetID: p.TargetID, Half: p.Half}, nil
	case KindUnmatched, "":
		return Unmatched{}, nil
	default:
		return nil, fmt.Errorf("designer: unknown drag event kind %q", p.Kind)
	}
}

// DecodeEvent parses a JSON drag event payload.
func DecodeEvent(data []byte) (DragEvent, error) {
	var payload EventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("designer: decode drag event: %w", err)
	}
	return payload.Event()
}

// Payload returns the wire shape of event.
func Payload(event DragEvent) EventPayload {
	switch e := event.(type) {
	case PaletteOverCanvas:
		return EventPayload{Kind: KindPaletteOverCanvas, Type: e.Type}
	case PaletteOverElement:
		return EventPayload{Kind: KindPaletteOverElement, Type: e.Type, TargetID: e.TargetID, Half: e.Half}
	case ElementOverElement:
		return EventPayload{Kind: KindElementOverElement, SourceID: e.SourceID, TargetID: e.TargetID, Half: e.Half}
	default:
		return EventPayload{Kind: KindUnmatched}
	}
}
