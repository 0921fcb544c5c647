package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/connect/geometry"
)

// newLevel loads text into a fresh engine sized 10x10
func newLevel(t *testing.T, text string) *Engine {
	t.Helper()
	e := NewDefaultEngine()
	require.NoError(t, e.LoadLevel(text))
	e.Resize(10, 10)
	return e
}

// selectAt places the cursor on p and selects the shape there
func selectAt(t *testing.T, e *Engine, p geometry.Point) ShapeID {
	t.Helper()
	e.SetCursor(p)
	change := e.ToggleSelection()
	require.NotZero(t, change.Current, "no selectable shape at %v", p)
	return change.Current
}

func pt(x, y int) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func TestMoveCursor_SaturatesWithoutSelection(t *testing.T) {
	e := NewDefaultEngine()
	e.Resize(4, 3)

	for d := geometry.Direction(0); d < geometry.DirectionCount; d++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				p := pt(x, y)
				e.SetCursor(p)
				res, err := e.MoveCursor(d)
				require.NoError(t, err)

				dx, dy := d.Delta()
				want := p.Add(dx, dy)
				if e.Board().Contains(want) {
					assert.True(t, res.Moved, "%v from %v", d, p)
					assert.Equal(t, want, e.Cursor())
				} else {
					assert.False(t, res.Moved, "%v from %v", d, p)
					assert.Equal(t, p, e.Cursor())
				}
			}
		}
	}
}

func TestMoveCursor_DiagonalRejectedWithSelection(t *testing.T) {
	e := newLevel(t, "╶╴")
	selectAt(t, e, pt(1, 1))

	for _, d := range []geometry.Direction{geometry.UpRight, geometry.DownRight, geometry.DownLeft, geometry.UpLeft} {
		res, err := e.MoveCursor(d)
		require.NoError(t, err)
		assert.True(t, res.Rejected, "%v", d)
		assert.Equal(t, pt(1, 1), e.Cursor())
	}
	assert.Zero(t, e.History().UndoLen())

	res, err := e.MoveCursor(geometry.Down)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, pt(1, 2), e.Cursor())

	_, ok := e.ObjectAt(pt(1, 2))
	assert.True(t, ok)
	_, ok = e.ObjectAt(pt(2, 2))
	assert.True(t, ok)
	_, ok = e.ObjectAt(pt(1, 1))
	assert.False(t, ok)
	assert.Equal(t, 1, e.History().UndoLen())
}

func TestMoveSelectedShape_CollisionIsNoOp(t *testing.T) {
	e := newLevel(t, "╶╴\n╶╴")
	selectAt(t, e, pt(1, 1))
	before := e.Objects()

	res, err := e.MoveCursor(geometry.Down)
	require.NoError(t, err)
	require.NotNil(t, res.Shape)
	assert.True(t, res.Shape.Blocked)
	assert.False(t, res.Moved)

	assert.Equal(t, pt(1, 1), e.Cursor())
	assert.Equal(t, before, e.Objects())
	assert.Zero(t, e.History().UndoLen())
	assert.Zero(t, e.History().RedoLen())
}

func TestMoveSelectedShape_BoardEdgeBlocks(t *testing.T) {
	e := newLevel(t, "╶╴")
	selectAt(t, e, pt(1, 1))
	_, err := e.MoveCursor(geometry.Left)
	require.NoError(t, err)
	assert.Equal(t, pt(0, 1), e.Cursor())

	// The shape now touches the left edge; the cursor cannot step further
	res, err := e.MoveCursor(geometry.Left)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, 1, e.History().UndoLen())
}

func TestMoveSelectedShape_RequiresSelection(t *testing.T) {
	e := newLevel(t, "╶╴")
	_, err := e.MoveSelectedShape(pt(1, 1), pt(1, 2))
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	e := newLevel(t, "╶╴")
	selectAt(t, e, pt(1, 1))

	moves := []geometry.Direction{geometry.Right, geometry.Down, geometry.Right}
	var snaps [][]Object
	for _, d := range moves {
		snaps = append(snaps, e.Objects())
		res, err := e.MoveCursor(d)
		require.NoError(t, err)
		require.True(t, res.Moved)
	}
	final := e.Objects()
	turn, _ := e.TurnState()
	assert.Equal(t, len(moves), turn)

	for i := len(moves) - 1; i >= 0; i-- {
		ok, err := e.Undo()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, snaps[i], e.Objects())
		_, selected := e.Selected()
		assert.False(t, selected)
	}
	assert.Equal(t, len(moves), e.History().RedoLen())
	assert.Zero(t, e.History().UndoLen())
	turn, _ = e.TurnState()
	assert.Zero(t, turn)

	ok, err := e.Undo()
	require.NoError(t, err)
	assert.False(t, ok, "nothing left to undo")

	for i := range moves {
		ok, err := e.Redo()
		require.NoError(t, err)
		require.True(t, ok)
		turn, _ := e.TurnState()
		assert.Equal(t, i+1, turn)
	}
	assert.Equal(t, final, e.Objects())
	assert.Zero(t, e.History().RedoLen())

	// A move after undo clears redo
	_, err = e.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, e.History().RedoLen())
	selectAt(t, e, e.Cursor())
	res, err := e.MoveCursor(geometry.Up)
	require.NoError(t, err)
	require.True(t, res.Moved)
	assert.Zero(t, e.History().RedoLen())
}

func TestUndo_EmptyHistoryKeepsSelection(t *testing.T) {
	e := newLevel(t, "╶╴")
	shape := selectAt(t, e, pt(1, 1))

	ok, err := e.Undo()
	require.NoError(t, err)
	assert.False(t, ok)
	cur, selected := e.Selected()
	assert.True(t, selected)
	assert.Equal(t, shape, cur)

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
	_, selected = e.Selected()
	assert.True(t, selected)
}

func TestUndo_CapEvictsOldest(t *testing.T) {
	e := NewEngine(2)
	require.NoError(t, e.LoadLevel("╶╴"))
	e.Resize(10, 10)
	selectAt(t, e, pt(1, 1))

	for i := 0; i < 4; i++ {
		d := geometry.Down
		if i%2 == 1 {
			d = geometry.Right
		}
		_, err := e.MoveCursor(d)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, e.History().UndoLen())
	turn, _ := e.TurnState()
	assert.Equal(t, 4, turn)
}

func TestLoadLevel_UnmatchedGlyphFails(t *testing.T) {
	e := NewDefaultEngine()
	err := e.LoadLevel("╶╴\n  ╷")

	var pe *ParseLevelError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 3, pe.Column)
	assert.Equal(t, '╷', pe.Glyph)
	assert.Empty(t, e.Objects())
}

func TestLoadLevel_UnmappedGlyphFails(t *testing.T) {
	e := NewDefaultEngine()
	err := e.LoadLevel("╶x╴")

	var pe *ParseLevelError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 'x', pe.Glyph)
	assert.Equal(t, 2, pe.Column)
	assert.Empty(t, e.Objects())
}

func TestLoadLevel_FailureKeepsPreviousCollection(t *testing.T) {
	e := newLevel(t, "╶╴")
	before := e.Objects()
	require.Error(t, e.LoadLevel("╷"))
	assert.Equal(t, before, e.Objects())
}

func TestLoadLevel_GroupsShapesAndFixedCells(t *testing.T) {
	e := newLevel(t, "┌┐█\n└┘◊\r\n╶╴")
	objs := e.Objects()
	require.Len(t, objs, 8)

	loop, _ := e.ObjectAt(pt(1, 1))
	for _, p := range []geometry.Point{pt(2, 1), pt(1, 2), pt(2, 2)} {
		o, ok := e.ObjectAt(p)
		require.True(t, ok)
		assert.Equal(t, loop.Shape, o.Shape, "%v", p)
	}

	wall, _ := e.ObjectAt(pt(3, 1))
	volatile, _ := e.ObjectAt(pt(3, 2))
	bar, _ := e.ObjectAt(pt(1, 3))
	assert.True(t, wall.IsFixed())
	assert.Equal(t, geometry.KindVolatile, volatile.Kind)
	assert.NotEqual(t, wall.Shape, volatile.Shape)
	assert.NotEqual(t, loop.Shape, bar.Shape)

	ids := make(map[ObjectID]bool)
	for _, o := range objs {
		assert.False(t, ids[o.ID], "duplicate id %d", o.ID)
		ids[o.ID] = true
	}
}

func TestToggleSelection_FixedNotSelectable(t *testing.T) {
	e := newLevel(t, "█◊╶╴")

	for _, p := range []geometry.Point{pt(1, 1), pt(2, 1), pt(5, 5)} {
		e.SetCursor(p)
		change := e.ToggleSelection()
		assert.Zero(t, change.Current, "%v", p)
	}

	e.SetCursor(pt(3, 1))
	change := e.ToggleSelection()
	assert.NotZero(t, change.Current)
	change = e.ToggleSelection()
	assert.Zero(t, change.Current)
	assert.NotZero(t, change.Previous)
}

func TestMoveSelectedShape_MergesConnectingShape(t *testing.T) {
	e := newLevel(t, "╶┐\n\n │\n ╵")
	top, _ := e.ObjectAt(pt(1, 1))
	selected := selectAt(t, e, pt(2, 3))
	require.NotEqual(t, top.Shape, selected)

	res, err := e.MoveCursor(geometry.Up)
	require.NoError(t, err)
	require.NotNil(t, res.Shape)
	assert.Equal(t, []ShapeID{top.Shape}, res.Shape.Merged)
	assert.Len(t, res.Shape.After, 4)

	for _, o := range e.Objects() {
		assert.Equal(t, selected, o.Shape)
	}
	turn, complete := e.TurnState()
	assert.Equal(t, 1, turn)
	assert.True(t, complete)
}

func TestMoveSelectedShape_DoorOpensAndSplits(t *testing.T) {
	e := newLevel(t, "╒═╕\n╵  │\n   ╵")
	selected := selectAt(t, e, pt(4, 2))

	res, err := e.MoveCursor(geometry.Left)
	require.NoError(t, err)
	require.True(t, res.Moved)
	mv := res.Shape
	require.NotNil(t, mv)

	assert.Equal(t, 3, mv.Doors)
	require.Len(t, mv.Removed, 1)
	assert.Equal(t, pt(2, 1), mv.Removed[0].Pos)
	_, ok := e.ObjectAt(pt(2, 1))
	assert.False(t, ok, "satisfied door deleted")

	left, _ := e.ObjectAt(pt(1, 1))
	right, _ := e.ObjectAt(pt(3, 1))
	assert.Equal(t, geometry.PlainDown, left.Connectors)
	assert.Equal(t, geometry.KindNone, left.Kind)
	assert.Equal(t, geometry.PlainDown, right.Connectors)
	assert.Equal(t, geometry.KindNone, right.Kind)

	// Remainder is two independent shapes; the selection follows the cursor's part
	leftTail, _ := e.ObjectAt(pt(1, 2))
	assert.Equal(t, left.Shape, leftTail.Shape)
	for _, p := range []geometry.Point{pt(3, 1), pt(3, 2), pt(3, 3)} {
		o, ok := e.ObjectAt(p)
		require.True(t, ok)
		assert.Equal(t, selected, o.Shape, "%v", p)
	}
	assert.NotEqual(t, selected, left.Shape)
	cur, ok := e.Selected()
	assert.True(t, ok)
	assert.Equal(t, selected, cur)
	assert.Equal(t, pt(3, 2), e.Cursor())

	turn, complete := e.TurnState()
	assert.Equal(t, 1, turn)
	assert.True(t, complete)

	ok, err = e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	door, ok := e.ObjectAt(pt(2, 1))
	require.True(t, ok)
	assert.Equal(t, geometry.KindDoor, door.Kind)
}

func TestMoveSelectedShape_IncompleteDoorStaysShut(t *testing.T) {
	e := newLevel(t, "╒═╕\n╵")
	selectAt(t, e, pt(1, 1))

	_, err := e.MoveCursor(geometry.Down)
	require.NoError(t, err)
	door, ok := e.ObjectAt(pt(2, 2))
	require.True(t, ok)
	assert.Equal(t, geometry.KindDoor, door.Kind)
	_, complete := e.TurnState()
	assert.False(t, complete)
}

func TestResize_NeverTruncatesContent(t *testing.T) {
	e := NewDefaultEngine()
	require.NoError(t, e.LoadLevel("\n\n    ╶╴"))
	e.SetCursor(pt(9000, 9000))

	size, changed := e.Resize(2, 2)
	assert.True(t, changed)
	assert.Equal(t, geometry.Size{Width: 7, Height: 4}, size)
	assert.Equal(t, pt(6, 3), e.Cursor())

	size, changed = e.Resize(80, 24)
	assert.True(t, changed)
	assert.Equal(t, geometry.Size{Width: 80, Height: 24}, size)

	_, changed = e.Resize(80, 24)
	assert.False(t, changed)
}

func TestTurnState_Solved(t *testing.T) {
	cases := []struct {
		name     string
		level    string
		complete bool
	}{
		{"closed loop", "┌┐\n└┘", true},
		{"dangling end", "╶┐", false},
		{"walls only", "██", true},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewDefaultEngine()
			require.NoError(t, e.LoadLevel(tc.level))
			turn, complete := e.TurnState()
			assert.Zero(t, turn)
			assert.Equal(t, tc.complete, complete)
		})
	}
}

func TestSetCursor_ClearsSelectionAndClamps(t *testing.T) {
	e := newLevel(t, "╶╴")
	shape := selectAt(t, e, pt(1, 1))

	change := e.SetCursor(pt(-3, 42))
	assert.Equal(t, shape, change.Previous)
	assert.Zero(t, change.Current)
	assert.Equal(t, pt(0, 9), e.Cursor())
}
