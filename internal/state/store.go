package state

import (
	"sync"
	"sync/atomic"
)

// Dispatcher accepts editor events.
type Dispatcher interface {
	Dispatch(ev Event)
}

// Store is the single source of truth for the editor. Dispatch calls are
// serialized; State and subscriptions may be used from any goroutine.
type Store struct {
	mu      sync.Mutex
	engine  *Engine
	clock   Clock
	current atomic.Pointer[EditorState]

	subs    map[int]chan EditorState
	nextSub int
}

var _ Dispatcher = (*Store)(nil)

// NewStore creates a store holding an empty canvas.
func NewStore(opts Options) *Store {
	st := &Store{
		engine: NewEngine(opts),
		subs:   make(map[int]chan EditorState),
	}
	initial := EditorState{Revision: st.clock.Tick()}
	st.current.Store(&initial)
	return st
}

// State returns the latest published snapshot.
func (st *Store) State() EditorState {
	return *st.current.Load()
}

// Dispatch applies ev and publishes the result if anything changed.
func (st *Store) Dispatch(ev Event) {
	if ev == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	next, changed := st.engine.Apply(st.State(), ev)
	if !changed {
		return
	}
	next.Revision = st.clock.Tick()
	st.current.Store(&next)

	for _, ch := range st.subs {
		offer(ch, next)
	}
}

// Subscribe returns a channel that always holds the most recent snapshot not
// yet received, starting with the current one. Call cancel to stop; the
// channel is closed afterwards.
func (st *Store) Subscribe() (<-chan EditorState, func()) {
	ch := make(chan EditorState, 1)

	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = ch
	ch <- st.State()
	st.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			st.mu.Lock()
			delete(st.subs, id)
			close(ch)
			st.mu.Unlock()
		})
	}
	return ch, cancel
}

// HistoryCounts returns the undo and redo stack depths.
func (st *Store) HistoryCounts() (undo, redo int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.engine.history.UndoCount(), st.engine.history.RedoCount()
}

// offer replaces whatever is waiting in ch with s. Only the store writes to
// subscriber channels, and always under its lock.
func offer(ch chan EditorState, s EditorState) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}
