package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryRecordClearsRedo(t *testing.T) {
	h := NewHistory(0)
	h.Record(AddAction(CanvasImage{ID: "a"}))
	h.Record(AddAction(CanvasImage{ID: "b"}))

	a, err := h.Undo()
	require.NoError(t, err)
	require.Equal(t, "b", a.ImageID())
	require.True(t, h.CanRedo())

	h.Record(DeleteAction(CanvasImage{ID: "a"}))
	require.False(t, h.CanRedo())
	require.Equal(t, 2, h.UndoCount())
}

func TestHistoryUndoRedoMovesBetweenStacks(t *testing.T) {
	h := NewHistory(0)
	h.Record(AddAction(CanvasImage{ID: "a"}))

	_, err := h.Undo()
	require.NoError(t, err)
	require.Equal(t, 0, h.UndoCount())
	require.Equal(t, 1, h.RedoCount())

	a, err := h.Redo()
	require.NoError(t, err)
	require.Equal(t, "a", a.ImageID())
	require.Equal(t, 1, h.UndoCount())
	require.Equal(t, 0, h.RedoCount())
}

func TestHistoryEmptyStacks(t *testing.T) {
	h := NewHistory(0)
	_, err := h.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo)
	_, err = h.Redo()
	require.ErrorIs(t, err, ErrNothingToRedo)
	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())
}

func TestHistoryMaxDepthEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		h.Record(AddAction(CanvasImage{ID: id}))
	}
	require.Equal(t, 3, h.UndoCount())

	var got []string
	for h.CanUndo() {
		a, err := h.Undo()
		require.NoError(t, err)
		got = append(got, a.ImageID())
	}
	require.Equal(t, []string{"e", "d", "c"}, got)
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(0)
	h.Record(AddAction(CanvasImage{ID: "a"}))
	h.Record(AddAction(CanvasImage{ID: "b"}))
	_, _ = h.Undo()
	h.Clear()
	require.False(t, h.CanUndo())
	require.False(t, h.CanRedo())
}

func TestEditActionImageID(t *testing.T) {
	tests := []struct {
		name   string
		action EditAction
		want   string
	}{
		{"add", AddAction(CanvasImage{ID: "x"}), "x"},
		{"delete", DeleteAction(CanvasImage{ID: "y"}), "y"},
		{"transform", TransformAction(ActionState{ImageID: "z"}, ActionState{ImageID: "z", Scale: 2}), "z"},
		{"unknown", EditAction{Kind: "bogus"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.action.ImageID())
		})
	}
}

func TestEditActionRoundTrip(t *testing.T) {
	a := CanvasImage{ID: "a", Scale: 1, ZIndex: 1, Width: 10, Height: 10}
	b := CanvasImage{ID: "b", Scale: 1, ZIndex: 2, Width: 10, Height: 10}
	moved := b
	moved.Scale, moved.OffsetX, moved.OffsetY = 3, 7, -7

	tests := []struct {
		name   string
		state  EditorState
		action EditAction
	}{
		{"add", EditorState{CanvasImages: []CanvasImage{a, b}}, AddAction(b)},
		{"delete", EditorState{CanvasImages: []CanvasImage{a}}, DeleteAction(b)},
		{"transform", EditorState{CanvasImages: []CanvasImage{a, moved}}, TransformAction(b.snapshot(), moved.snapshot())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			undone := tt.action.apply(tt.state, true)
			redone := tt.action.apply(undone, false)
			require.Equal(t, tt.state.CanvasImages, redone.CanvasImages)
		})
	}
}

func TestTransformOnMissingImageIsNoop(t *testing.T) {
	s := EditorState{CanvasImages: []CanvasImage{{ID: "a", Scale: 1}}}
	out := TransformAction(ActionState{ImageID: "gone"}, ActionState{ImageID: "gone", Scale: 2}).apply(s, false)
	require.Equal(t, s, out)
}
