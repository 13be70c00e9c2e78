package state

import (
	"math"
	"sort"

	"fyne.io/fyne/v2"
)

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// center returns the canvas center in canvas pixel coordinates.
func center(canvas fyne.Size) fyne.Position {
	return fyne.NewPos(canvas.Width/2, canvas.Height/2)
}

// acceptsDrop reports whether a drop at p lands vertically inside the canvas.
func acceptsDrop(canvas fyne.Size, p fyne.Position) bool {
	return canvas.Height > 0 && p.Y >= 0 && p.Y < canvas.Height
}

// offsetBounds returns how far an image of the given scaled size may move
// from the canvas center on each axis.
func offsetBounds(canvas fyne.Size, width, height float32) (x, y float32) {
	return abs32(canvas.Width-width) / 2, abs32(canvas.Height-height) / 2
}

// sortByZ orders images ascending by zIndex, keeping ties in place.
func sortByZ(images []CanvasImage) []CanvasImage {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].ZIndex < images[j].ZIndex
	})
	return images
}
