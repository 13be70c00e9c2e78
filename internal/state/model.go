package state

import (
	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

// ImageRef is an opaque handle to a sample image supplied by the catalog.
type ImageRef string

// CanvasImage is one placed image. Offsets are canvas-space with the origin
// at the canvas center.
type CanvasImage struct {
	ID       string   `json:"id"`
	ImageRef ImageRef `json:"image_ref"`
	Scale    float32  `json:"scale"`
	OffsetX  float32  `json:"offset_x"`
	OffsetY  float32  `json:"offset_y"`
	ZIndex   float32  `json:"z_index"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
}

// newCanvasImage creates an unscaled, unmeasured image with a fresh id.
func newCanvasImage(ref ImageRef, offset fyne.Position, z float32) CanvasImage {
	return CanvasImage{
		ID:       uuid.NewString(),
		ImageRef: ref,
		Scale:    1,
		OffsetX:  offset.X,
		OffsetY:  offset.Y,
		ZIndex:   z,
	}
}

func (img CanvasImage) snapshot() ActionState {
	return ActionState{ImageID: img.ID, Scale: img.Scale, OffsetX: img.OffsetX, OffsetY: img.OffsetY}
}

// DraggedImage exists only while a carousel image is being dragged.
type DraggedImage struct {
	ImageRef ImageRef      `json:"image_ref"`
	Offset   fyne.Position `json:"offset"`
}

// ActionState is the transform part of an image, kept in history records.
type ActionState struct {
	ImageID string  `json:"image_id"`
	Scale   float32 `json:"scale"`
	OffsetX float32 `json:"offset_x"`
	OffsetY float32 `json:"offset_y"`
}

// EditorState is the immutable snapshot published by the Store. Slices are
// shared between snapshots and must not be modified by readers.
type EditorState struct {
	CanvasImages    []CanvasImage `json:"canvas_images"`
	SampleImages    []ImageRef    `json:"sample_images"`
	SelectedImageID *string       `json:"selected_image_id,omitempty"`
	UndoEnabled     bool          `json:"undo_enabled"`
	RedoEnabled     bool          `json:"redo_enabled"`
	Error           *string       `json:"error,omitempty"`
	DraggedImage    *DraggedImage `json:"dragged_image,omitempty"`
	CanvasSize      fyne.Size     `json:"canvas_size"`
	Revision        uint64        `json:"revision"`
}

// Image returns the canvas image with the given id.
func (s EditorState) Image(id string) (CanvasImage, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.CanvasImages[i], true
	}
	return CanvasImage{}, false
}

// Selected returns the selected image, if any.
func (s EditorState) Selected() (CanvasImage, bool) {
	if s.SelectedImageID == nil {
		return CanvasImage{}, false
	}
	return s.Image(*s.SelectedImageID)
}

func (s EditorState) indexOf(id string) int {
	for i, img := range s.CanvasImages {
		if img.ID == id {
			return i
		}
	}
	return -1
}

func (s EditorState) maxZ() float32 {
	var max float32
	for i, img := range s.CanvasImages {
		if i == 0 || img.ZIndex > max {
			max = img.ZIndex
		}
	}
	return max
}

// withImages returns a copy of the image list so snapshots never share a
// backing array that is about to be written.
func (s EditorState) withImages() []CanvasImage {
	out := make([]CanvasImage, len(s.CanvasImages), len(s.CanvasImages)+1)
	copy(out, s.CanvasImages)
	return out
}

func strPtr(s string) *string { return &s }
