package net

import (
	"errors"
	"fmt"
	"math"

	"fyne.io/fyne/v2"

	"CollageBoard/internal/state"
)

// TypeState marks an outbound snapshot. Inbound messages use the event names.
const TypeState = "state"

// ErrUnknownMessage is returned for message types that map to no event.
var ErrUnknownMessage = errors.New("unknown message type")

// NetworkMessage is the JSON frame exchanged with a renderer. X and Y carry a
// point for drag starts and a delta for drag moves and transforms.
type NetworkMessage struct {
	Type     string             `json:"type"`
	ImageID  string             `json:"image_id,omitempty"`
	ImageRef string             `json:"image_ref,omitempty"`
	X        float32            `json:"x,omitempty"`
	Y        float32            `json:"y,omitempty"`
	Width    float32            `json:"width,omitempty"`
	Height   float32            `json:"height,omitempty"`
	Zoom     *float32           `json:"zoom,omitempty"`
	Message  string             `json:"message,omitempty"`
	Images   []string           `json:"images,omitempty"`
	State    *state.EditorState `json:"state,omitempty"`
}

// StateMessage wraps a snapshot for broadcast.
func StateMessage(s state.EditorState) NetworkMessage {
	return NetworkMessage{Type: TypeState, State: &s}
}

// Event decodes an inbound message. A missing zoom means no zoom change.
func (m NetworkMessage) Event() (state.Event, error) {
	switch m.Type {
	case state.EventName(state.CanvasResized{}):
		return state.CanvasResized{Size: fyne.NewSize(m.Width, m.Height)}, nil
	case state.EventName(state.ImageSizeMeasured{}):
		return state.ImageSizeMeasured{
			ImageID: m.ImageID,
			Width:   int(math.Round(float64(m.Width))),
			Height:  int(math.Round(float64(m.Height))),
		}, nil
	case state.EventName(state.CarouselDragStart{}):
		return state.CarouselDragStart{ImageRef: state.ImageRef(m.ImageRef), Start: fyne.NewPos(m.X, m.Y)}, nil
	case state.EventName(state.CarouselDragMove{}):
		return state.CarouselDragMove{Delta: fyne.NewDelta(m.X, m.Y)}, nil
	case state.EventName(state.CarouselDragEnd{}):
		return state.CarouselDragEnd{}, nil
	case state.EventName(state.ImageSelected{}):
		if m.ImageID == "" {
			return state.ImageSelected{}, nil
		}
		return state.Select(m.ImageID), nil
	case state.EventName(state.DeleteSelected{}):
		return state.DeleteSelected{}, nil
	case state.EventName(state.TransformGestureStarted{}):
		return state.TransformGestureStarted{}, nil
	case state.EventName(state.TransformChanged{}):
		zoom := float32(1)
		if m.Zoom != nil {
			zoom = *m.Zoom
		}
		return state.TransformChanged{Pan: fyne.NewDelta(m.X, m.Y), Zoom: zoom}, nil
	case state.EventName(state.TransformGestureEnded{}):
		return state.TransformGestureEnded{}, nil
	case state.EventName(state.Undo{}):
		return state.Undo{}, nil
	case state.EventName(state.Redo{}):
		return state.Redo{}, nil
	case state.EventName(state.DismissError{}):
		return state.DismissError{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
}

// EventMessage encodes an event for sending to a bridge.
func EventMessage(ev state.Event) (NetworkMessage, error) {
	m := NetworkMessage{Type: state.EventName(ev)}
	switch ev := ev.(type) {
	case state.CanvasResized:
		m.Width, m.Height = ev.Size.Width, ev.Size.Height
	case state.ImageSizeMeasured:
		m.ImageID = ev.ImageID
		m.Width, m.Height = float32(ev.Width), float32(ev.Height)
	case state.CarouselDragStart:
		m.ImageRef = string(ev.ImageRef)
		m.X, m.Y = ev.Start.X, ev.Start.Y
	case state.CarouselDragMove:
		m.X, m.Y = ev.Delta.DX, ev.Delta.DY
	case state.ImageSelected:
		if ev.ImageID != nil {
			m.ImageID = *ev.ImageID
		}
	case state.TransformChanged:
		zoom := ev.Zoom
		m.X, m.Y, m.Zoom = ev.Pan.DX, ev.Pan.DY, &zoom
	case state.CarouselDragEnd, state.DeleteSelected, state.TransformGestureStarted,
		state.TransformGestureEnded, state.Undo, state.Redo, state.DismissError:
	default:
		// Catalog and error events come from the host's own collaborators.
		return NetworkMessage{}, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
	return m, nil
}
