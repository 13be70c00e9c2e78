package state

import (
	"log"

	"fyne.io/fyne/v2"
)

// Scale limits applied by transform gestures.
const (
	DefaultMinScale = 0.2
	DefaultMaxScale = 5.0
)

// Options tunes an Engine.
type Options struct {
	MinScale float32
	MaxScale float32
	// HistoryDepth bounds the undo stack; zero keeps everything.
	HistoryDepth int
}

// DefaultOptions returns the stock scale limits and an unbounded history.
func DefaultOptions() Options {
	return Options{MinScale: DefaultMinScale, MaxScale: DefaultMaxScale}
}

// transformSession is the pending record of an in-progress gesture.
type transformSession struct {
	before, after ActionState
}

// Engine reduces events into new editor states and owns the edit history.
// It is not safe for concurrent use; wrap it in a Store.
type Engine struct {
	opts    Options
	history *History
	session *transformSession
}

// NewEngine builds an engine. Invalid scale limits fall back to the defaults.
func NewEngine(opts Options) *Engine {
	if opts.MinScale <= 0 || opts.MaxScale < opts.MinScale {
		opts.MinScale, opts.MaxScale = DefaultMinScale, DefaultMaxScale
	}
	return &Engine{
		opts:    opts,
		history: NewHistory(opts.HistoryDepth),
	}
}

// Apply returns the state that follows s after ev, and whether anything
// changed. It never fails: events that do not apply leave s as is.
func (e *Engine) Apply(s EditorState, ev Event) (EditorState, bool) {
	var changed bool
	switch ev := ev.(type) {
	case CanvasResized:
		s, changed = e.resize(s, ev.Size)
	case ImageSizeMeasured:
		s, changed = e.measure(s, ev)
	case CarouselDragStart:
		if finite(ev.Start.X, ev.Start.Y) {
			s.DraggedImage = &DraggedImage{ImageRef: ev.ImageRef, Offset: ev.Start}
			changed = true
		}
	case CarouselDragMove:
		if s.DraggedImage != nil && finite(ev.Delta.DX, ev.Delta.DY) {
			d := *s.DraggedImage
			d.Offset = fyne.NewPos(d.Offset.X+ev.Delta.DX, d.Offset.Y+ev.Delta.DY)
			s.DraggedImage = &d
			changed = true
		}
	case CarouselDragEnd:
		s, changed = e.drop(s)
	case ImageSelected:
		s, changed = e.selectImage(s, ev.ImageID)
	case DeleteSelected:
		s, changed = e.deleteSelected(s)
	case TransformGestureStarted:
		e.startTransform(s)
	case TransformChanged:
		s, changed = e.transform(s, ev)
	case TransformGestureEnded:
		e.endTransform(s)
	case Undo:
		if a, err := e.history.Undo(); err == nil {
			log.Printf("[EDITOR] Undo %s of image %s", a.Kind, a.ImageID())
			s, changed = a.apply(s, true), true
		}
	case Redo:
		if a, err := e.history.Redo(); err == nil {
			log.Printf("[EDITOR] Redo %s of image %s", a.Kind, a.ImageID())
			s, changed = a.apply(s, false), true
		}
	case DismissError:
		if s.Error != nil {
			s.Error, changed = nil, true
		}
	case SampleImagesLoaded:
		s.SampleImages = append([]ImageRef(nil), ev.Images...)
		changed = true
	case ErrorRaised:
		if ev.Message != "" {
			s.Error, changed = strPtr(ev.Message), true
		}
	}

	if s.UndoEnabled != e.history.CanUndo() || s.RedoEnabled != e.history.CanRedo() {
		s.UndoEnabled = e.history.CanUndo()
		s.RedoEnabled = e.history.CanRedo()
		changed = true
	}
	return s, changed
}

func (e *Engine) resize(s EditorState, size fyne.Size) (EditorState, bool) {
	if !finite(size.Width, size.Height) || size.Width < 0 || size.Height < 0 || size == s.CanvasSize {
		return s, false
	}
	s.CanvasSize = size
	return s, true
}

func (e *Engine) measure(s EditorState, ev ImageSizeMeasured) (EditorState, bool) {
	if ev.Width < 0 || ev.Height < 0 {
		return s, false
	}
	i := s.indexOf(ev.ImageID)
	if i < 0 {
		return s, false
	}
	if img := s.CanvasImages[i]; img.Width == ev.Width && img.Height == ev.Height {
		return s, false
	}
	images := s.withImages()
	images[i].Width, images[i].Height = ev.Width, ev.Height
	s.CanvasImages = images
	return s, true
}

func (e *Engine) drop(s EditorState) (EditorState, bool) {
	if s.DraggedImage == nil {
		return s, false
	}
	d := *s.DraggedImage
	s.DraggedImage = nil
	if !acceptsDrop(s.CanvasSize, d.Offset) {
		log.Printf("[EDITOR] Drop of %s rejected at (%.1f, %.1f)", d.ImageRef, d.Offset.X, d.Offset.Y)
		return s, true
	}

	// Center the new image under the drop point.
	c := center(s.CanvasSize)
	img := newCanvasImage(d.ImageRef, fyne.NewPos(d.Offset.X-c.X, d.Offset.Y-c.Y), s.maxZ()+1)
	s.CanvasImages = append(s.withImages(), img)
	e.history.Record(AddAction(img))
	log.Printf("[EDITOR] Image added: %s (%s)", img.ID, img.ImageRef)

	s, _ = e.selectImage(s, &img.ID)
	return s, true
}

func (e *Engine) selectImage(s EditorState, id *string) (EditorState, bool) {
	if id == nil {
		if s.SelectedImageID == nil {
			return s, false
		}
		s.SelectedImageID = nil
		return s, true
	}
	i := s.indexOf(*id)
	if i < 0 {
		return s, false
	}
	// Selection always brings the image to the front, even if it is already there.
	images := s.withImages()
	images[i].ZIndex = s.maxZ() + 1
	s.CanvasImages = sortByZ(images)
	s.SelectedImageID = strPtr(*id)
	return s, true
}

func (e *Engine) deleteSelected(s EditorState) (EditorState, bool) {
	img, ok := s.Selected()
	if !ok {
		return s, false
	}
	s.CanvasImages = removeImage(s.CanvasImages, img.ID)
	s.SelectedImageID = nil
	e.history.Record(DeleteAction(img))
	log.Printf("[EDITOR] Image removed: %s", img.ID)
	return s, true
}

func (e *Engine) startTransform(s EditorState) {
	img, ok := s.Selected()
	if !ok {
		return
	}
	snap := img.snapshot()
	e.session = &transformSession{before: snap, after: snap}
}

func (e *Engine) transform(s EditorState, ev TransformChanged) (EditorState, bool) {
	img, ok := s.Selected()
	if !ok || !finite(ev.Zoom, ev.Pan.DX, ev.Pan.DY) || ev.Zoom <= 0 {
		return s, false
	}

	scale := clamp(img.Scale*ev.Zoom, e.opts.MinScale, e.opts.MaxScale)
	xBound, yBound := offsetBounds(s.CanvasSize, float32(img.Width)*scale, float32(img.Height)*scale)

	next := img
	next.Scale = scale
	next.OffsetX = clamp(img.OffsetX+ev.Pan.DX, -xBound, xBound)
	next.OffsetY = clamp(img.OffsetY+ev.Pan.DY, -yBound, yBound)

	if e.session != nil && e.session.before.ImageID == img.ID {
		e.session.after = next.snapshot()
	}
	if next == img {
		return s, false
	}
	images := s.withImages()
	images[s.indexOf(img.ID)] = next
	s.CanvasImages = images
	return s, true
}

// endTransform commits the pending gesture. A session whose image left the
// canvas mid-gesture (undo, redo or delete) is dropped without a record.
func (e *Engine) endTransform(s EditorState) {
	if e.session != nil && e.session.before != e.session.after && s.indexOf(e.session.before.ImageID) >= 0 {
		e.history.Record(TransformAction(e.session.before, e.session.after))
		log.Printf("[EDITOR] Transform recorded for image %s", e.session.before.ImageID)
	}
	e.session = nil
}

// Transforming reports whether a gesture session is open.
func (e *Engine) Transforming() bool { return e.session != nil }
