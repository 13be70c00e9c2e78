// Package state is the collage editor's state engine.
//
// Input layers translate pointer and layout callbacks into Events and hand
// them to a Store. The Store runs each event through the Engine, which
// returns a fresh EditorState and records user edits (add, delete and
// completed transforms) as invertible EditActions in its History. Renderers
// read the latest snapshot with State or receive it from Subscribe.
package state
