package state

// EditKind tags an EditAction.
type EditKind string

const (
	EditAdd       EditKind = "add"
	EditDelete    EditKind = "delete"
	EditTransform EditKind = "transform"
)

// EditAction is one invertible user edit. Image is set for Add and Delete,
// Before/After for Transform.
type EditAction struct {
	Kind   EditKind    `json:"kind"`
	Image  CanvasImage `json:"image"`
	Before ActionState `json:"before"`
	After  ActionState `json:"after"`
}

// AddAction records img being placed on the canvas.
func AddAction(img CanvasImage) EditAction { return EditAction{Kind: EditAdd, Image: img} }

// DeleteAction records img being removed, with the z-index it had.
func DeleteAction(img CanvasImage) EditAction { return EditAction{Kind: EditDelete, Image: img} }

// TransformAction records a gesture moving an image from before to after.
func TransformAction(before, after ActionState) EditAction {
	return EditAction{Kind: EditTransform, Before: before, After: after}
}

// ImageID returns the id of the image the action touches.
func (a EditAction) ImageID() string {
	switch a.Kind {
	case EditAdd, EditDelete:
		return a.Image.ID
	case EditTransform:
		return a.Before.ImageID
	}
	return ""
}

// apply runs the action against s, backward when undo is set.
func (a EditAction) apply(s EditorState, undo bool) EditorState {
	switch a.Kind {
	case EditAdd:
		if undo {
			s.CanvasImages = removeImage(s.CanvasImages, a.Image.ID)
			s.SelectedImageID = nil
		} else {
			s.CanvasImages = append(s.withImages(), a.Image)
		}
	case EditDelete:
		if undo {
			s.CanvasImages = sortByZ(append(s.withImages(), a.Image))
		} else {
			s.CanvasImages = removeImage(s.CanvasImages, a.Image.ID)
		}
	case EditTransform:
		target := a.After
		if undo {
			target = a.Before
		}
		i := s.indexOf(target.ImageID)
		if i < 0 {
			return s
		}
		images := s.withImages()
		images[i].Scale = target.Scale
		images[i].OffsetX = target.OffsetX
		images[i].OffsetY = target.OffsetY
		s.CanvasImages = images
	}
	return s
}

func removeImage(images []CanvasImage, id string) []CanvasImage {
	out := make([]CanvasImage, 0, len(images))
	for _, img := range images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	return out
}
