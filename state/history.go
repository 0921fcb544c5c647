package state

// Turn is one snapshot of the whole collection tagged with its turn number
type Turn struct {
	Number  int
	Objects []Object
}

// History holds the undo and redo stacks
// The top of each stack is its last element; undo numbers grow toward the top, redo numbers shrink
type History struct {
	undo     []Turn
	redo     []Turn
	capacity int
}

// NewHistory creates a history keeping at most capacity undo turns
// Non-positive capacity keeps none
func NewHistory(capacity int) *History {
	return &History{capacity: max(capacity, 0)}
}

// Capacity returns the undo cap
func (h *History) Capacity() int {
	return h.capacity
}

// Current returns the number of the live turn
// top(undo)+1 if undo is non-empty, else top(redo)-1 if redo is non-empty, else 0
func (h *History) Current() int {
	if n := len(h.undo); n > 0 {
		return h.undo[n-1].Number + 1
	}
	if n := len(h.redo); n > 0 {
		return h.redo[n-1].Number - 1
	}
	return 0
}

// Record pushes the pre-move collection, clears redo and evicts the oldest turns beyond the cap
func (h *History) Record(objs []Object) {
	h.undo = append(h.undo, Turn{Number: h.Current(), Objects: objs})
	h.redo = nil
	h.trim()
}

// Undo pops the newest undo turn and pushes current onto redo
// ok is false when there is nothing to undo
func (h *History) Undo(current []Object) (Turn, bool) {
	n := len(h.undo)
	if n == 0 {
		return Turn{}, false
	}
	t := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, Turn{Number: t.Number + 1, Objects: current})
	return t, true
}

// Redo pops the newest redo turn and pushes current onto undo
func (h *History) Redo(current []Object) (Turn, bool) {
	n := len(h.redo)
	if n == 0 {
		return Turn{}, false
	}
	t := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, Turn{Number: t.Number - 1, Objects: current})
	h.trim()
	return t, true
}

func (h *History) topUndo() (Turn, bool) {
	if n := len(h.undo); n > 0 {
		return h.undo[n-1], true
	}
	return Turn{}, false
}

func (h *History) topRedo() (Turn, bool) {
	if n := len(h.redo); n > 0 {
		return h.redo[n-1], true
	}
	return Turn{}, false
}

// UndoLen returns the number of undoable turns
func (h *History) UndoLen() int {
	return len(h.undo)
}

// RedoLen returns the number of redoable turns
func (h *History) RedoLen() int {
	return len(h.redo)
}

// Stacks returns both stacks bottom to top
func (h *History) Stacks() (undo, redo []Turn) {
	return append([]Turn(nil), h.undo...), append([]Turn(nil), h.redo...)
}

// Reset drops every turn
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// restore replaces both stacks, trimming undo to the cap
func (h *History) restore(undo, redo []Turn) {
	h.undo = append([]Turn(nil), undo...)
	h.redo = append([]Turn(nil), redo...)
	h.trim()
}

func (h *History) trim() {
	if excess := len(h.undo) - h.capacity; excess > 0 {
		// Copy so evicted snapshots are not pinned by the backing array
		h.undo = append([]Turn(nil), h.undo[excess:]...)
	}
}
