// Package state owns the authoritative puzzle state and the worker that evolves it
//
// Engine is not safe for concurrent use: it is owned by exactly one goroutine,
// the state worker, and every other component reaches it through mailboxes.
// Every mutating operation stages its changes on a Tx and commits only when all
// preconditions hold, so partial moves are never observable.
package state

import (
	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/geometry"
)

// Engine is the turn-based puzzle state
type Engine struct {
	store   *Store
	history *History

	board    geometry.Size
	cursor   geometry.Point
	selected ShapeID // 0 when nothing is selected

	// Monotonic id counters; ids are never reused within one engine
	lastObject ObjectID
	lastShape  ShapeID
}

// NewEngine creates an empty engine keeping at most undoCapacity undo turns
// The board spans the whole extent until the first Resize
func NewEngine(undoCapacity int) *Engine {
	return &Engine{
		store:   NewStore(),
		history: NewHistory(undoCapacity),
		board:   geometry.Size{Width: geometry.MaxExtent + 1, Height: geometry.MaxExtent + 1},
	}
}

// NewDefaultEngine creates an engine with the default undo capacity
func NewDefaultEngine() *Engine {
	return NewEngine(constants.DefaultUndoCapacity)
}

// Board returns the board size
func (e *Engine) Board() geometry.Size {
	return e.board
}

// Cursor returns the cursor position
func (e *Engine) Cursor() geometry.Point {
	return e.cursor
}

// Selected returns the selected shape
func (e *Engine) Selected() (ShapeID, bool) {
	return e.selected, e.selected != 0
}

// Objects returns the committed collection ordered by id
func (e *Engine) Objects() []Object {
	return e.store.Objects()
}

// ObjectAt returns the object at p
func (e *Engine) ObjectAt(p geometry.Point) (Object, bool) {
	return e.store.At(p)
}

// Members returns the objects of a shape
func (e *Engine) Members(shape ShapeID) []Object {
	return e.store.Members(shape)
}

// History exposes the turn stacks for inspection
func (e *Engine) History() *History {
	return e.history
}

// MoveCursorResult describes the outcome of MoveCursor
type MoveCursorResult struct {
	From, To geometry.Point
	Moved    bool        // Cursor changed position
	Rejected bool        // Diagonal step while a shape is selected
	Shape    *MoveResult // Set when a selected shape was asked to follow
}

// MoveCursor steps the cursor one cell in d, saturating at the board edges
// With a selection, diagonals are rejected and the shape follows the cursor;
// a blocked shape keeps the cursor in place
func (e *Engine) MoveCursor(d geometry.Direction) (MoveCursorResult, error) {
	res := MoveCursorResult{From: e.cursor, To: e.cursor}
	if e.selected != 0 && d.IsDiagonal() {
		res.Rejected = true
		return res, nil
	}

	next, ok := geometry.Step(e.cursor, d, e.board)
	if !ok {
		return res, nil
	}

	if e.selected != 0 {
		mv, err := e.MoveSelectedShape(e.cursor, next)
		if err != nil {
			return res, err
		}
		res.Shape = &mv
		if mv.Blocked {
			return res, nil
		}
	}

	e.cursor = next
	res.To = next
	res.Moved = true
	return res, nil
}

// SelectionChange reports the selection before and after an operation
type SelectionChange struct {
	Previous ShapeID
	Current  ShapeID
}

// Changed reports whether the selection differs
func (c SelectionChange) Changed() bool {
	return c.Previous != c.Current
}

// ToggleSelection deselects, or selects the shape under the cursor unless it is fixed
func (e *Engine) ToggleSelection() SelectionChange {
	change := SelectionChange{Previous: e.selected}
	if e.selected != 0 {
		e.selected = 0
		return change
	}
	if o, ok := e.store.At(e.cursor); ok && !o.IsFixed() {
		e.selected = o.Shape
	}
	change.Current = e.selected
	return change
}

// SetCursor places the cursor at p, clamped to the board, dropping any selection
func (e *Engine) SetCursor(p geometry.Point) SelectionChange {
	change := SelectionChange{Previous: e.selected}
	e.selected = 0
	e.cursor = clamp(p, e.board)
	return change
}

// Resize sets the board to the pointwise max of the request and the content bounds
// The cursor is clamped into the new board; changed reports a new board size
func (e *Engine) Resize(width, height int) (size geometry.Size, changed bool) {
	bounds := e.store.Bounds()
	next := geometry.Size{
		Width:  min(max(width, bounds.Width, 1), geometry.MaxExtent+1),
		Height: min(max(height, bounds.Height, 1), geometry.MaxExtent+1),
	}
	changed = next != e.board
	e.board = next
	e.cursor = clamp(e.cursor, e.board)
	return next, changed
}

// Undo restores the newest undo turn, pushing the live collection onto redo
// ok is false when there is nothing to undo, and then the selection is kept
// A successful undo clears the selection
func (e *Engine) Undo() (bool, error) {
	return e.swapTurn(e.history.topUndo, e.history.Undo)
}

// Redo restores the newest redo turn, pushing the live collection onto undo
func (e *Engine) Redo() (bool, error) {
	return e.swapTurn(e.history.topRedo, e.history.Redo)
}

func (e *Engine) swapTurn(peek func() (Turn, bool), pop func([]Object) (Turn, bool)) (bool, error) {
	t, ok := peek()
	if !ok {
		return false, nil
	}
	next, err := NewStoreFrom(t.Objects)
	if err != nil {
		return false, err
	}
	pop(e.store.Objects())
	e.store = next
	e.selected = 0
	e.growBoard()
	return true, nil
}

// TurnState returns the current turn number and whether the board is solved
// Solved means the collection is non-empty and every movable object has all ends satisfied
func (e *Engine) TurnState() (turn int, complete bool) {
	return e.history.Current(), e.IsSolved()
}

// IsSolved reports the win condition
func (e *Engine) IsSolved() bool {
	if e.store.Len() == 0 {
		return false
	}
	grid := e.store.Grid()
	for _, o := range e.store.objects {
		if o.IsFixed() {
			continue
		}
		seg := o.Segment()
		for _, d := range o.Connectors.Ends() {
			if !geometry.Satisfied(grid, seg, d) {
				return false
			}
		}
	}
	return true
}

// growBoard widens the board to cover content after wholesale replacement
func (e *Engine) growBoard() {
	e.Resize(e.board.Width, e.board.Height)
}

func (e *Engine) newObjectID() ObjectID {
	e.lastObject++
	return e.lastObject
}

func (e *Engine) newShapeID() ShapeID {
	e.lastShape++
	return e.lastShape
}

func clamp(p geometry.Point, board geometry.Size) geometry.Point {
	return geometry.Point{
		X: min(max(p.X, 0), board.Width-1),
		Y: min(max(p.Y, 0), board.Height-1),
	}
}
