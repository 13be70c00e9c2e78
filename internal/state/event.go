package state

import "fyne.io/fyne/v2"

// Event is a discrete input for the engine. The set of events is closed.
type Event interface {
	eventName() string
}

type (
	// CanvasResized reports the laid-out canvas size.
	CanvasResized struct{ Size fyne.Size }

	// ImageSizeMeasured reports the unscaled render size of a canvas image.
	ImageSizeMeasured struct {
		ImageID       string
		Width, Height int
	}

	// CarouselDragStart begins dragging a sample image out of the carousel.
	CarouselDragStart struct {
		ImageRef ImageRef
		Start    fyne.Position
	}

	// CarouselDragMove moves the dragged image by a delta.
	CarouselDragMove struct{ Delta fyne.Delta }

	// CarouselDragEnd drops the dragged image.
	CarouselDragEnd struct{}

	// ImageSelected selects an image, or clears the selection when ImageID is nil.
	ImageSelected struct{ ImageID *string }

	DeleteSelected          struct{}
	TransformGestureStarted struct{}

	// TransformChanged is one tick of a pan/zoom gesture. Pan is already
	// scaled into the image's frame by the caller.
	TransformChanged struct {
		Pan  fyne.Delta
		Zoom float32
	}

	TransformGestureEnded struct{}
	Undo                  struct{}
	Redo                  struct{}
	DismissError          struct{}

	// SampleImagesLoaded delivers the catalog's sample image list.
	SampleImagesLoaded struct{ Images []ImageRef }

	// ErrorRaised surfaces a collaborator failure to the user.
	ErrorRaised struct{ Message string }
)

func (CanvasResized) eventName() string           { return "canvas_resized" }
func (ImageSizeMeasured) eventName() string       { return "image_size_measured" }
func (CarouselDragStart) eventName() string       { return "carousel_drag_start" }
func (CarouselDragMove) eventName() string        { return "carousel_drag_move" }
func (CarouselDragEnd) eventName() string         { return "carousel_drag_end" }
func (ImageSelected) eventName() string           { return "image_selected" }
func (DeleteSelected) eventName() string          { return "delete_selected" }
func (TransformGestureStarted) eventName() string { return "transform_started" }
func (TransformChanged) eventName() string        { return "transform_changed" }
func (TransformGestureEnded) eventName() string   { return "transform_ended" }
func (Undo) eventName() string                    { return "undo" }
func (Redo) eventName() string                    { return "redo" }
func (DismissError) eventName() string            { return "dismiss_error" }
func (SampleImagesLoaded) eventName() string      { return "sample_images_loaded" }
func (ErrorRaised) eventName() string             { return "error_raised" }

// EventName returns the wire name of an event.
func EventName(e Event) string {
	if e == nil {
		return ""
	}
	return e.eventName()
}

// Select is shorthand for ImageSelected with a concrete id.
func Select(id string) ImageSelected { return ImageSelected{ImageID: &id} }
