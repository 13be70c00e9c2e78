package state

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History holds the undo and redo stacks. It is not safe for concurrent use;
// the Store serializes access to it.
type History struct {
	undoStack []EditAction
	redoStack []EditAction

	// maxDepth bounds the undo stack; zero means unbounded.
	maxDepth int
}

// NewHistory creates a history manager. A maxDepth <= 0 keeps every entry.
func NewHistory(maxDepth int) *History {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &History{maxDepth: maxDepth}
}

// Record pushes a new edit and clears the redo stack.
func (h *History) Record(a EditAction) {
	h.undoStack = append(h.undoStack, a)
	h.redoStack = nil

	if h.maxDepth > 0 && len(h.undoStack) > h.maxDepth {
		excess := len(h.undoStack) - h.maxDepth
		h.undoStack = append([]EditAction(nil), h.undoStack[excess:]...)
	}
}

// Undo moves the newest undo entry onto the redo stack and returns it.
func (h *History) Undo() (EditAction, error) {
	if len(h.undoStack) == 0 {
		return EditAction{}, ErrNothingToUndo
	}
	a := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, a)
	return a, nil
}

// Redo moves the newest redo entry back onto the undo stack and returns it.
func (h *History) Redo() (EditAction, error) {
	if len(h.redoStack) == 0 {
		return EditAction{}, ErrNothingToRedo
	}
	a := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, a)
	return a, nil
}

// CanUndo reports whether Undo has an action to return.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether Redo has an action to return.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of undoable actions.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of redoable actions.
func (h *History) RedoCount() int { return len(h.redoStack) }

// Clear drops both stacks.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
