package state

import (
	"github.com/lixenwraith/connect/geometry"
)

// MoveResult describes a committed or blocked shape move
type MoveResult struct {
	Blocked  bool
	Before   []Object  // Selected shape's members before the move
	After    []Object  // Every object of the shapes produced by the move
	Removed  []Object  // Door members deleted after the move
	Merged   []ShapeID // Shapes absorbed into the selection
	Doors    int       // Door members deleted or demoted
	Selected ShapeID   // Selection after the move, 0 if cleared
}

// MoveSelectedShape translates the selected shape by to-from as one turn
// The move is blocked, with no state change and no history entry, when any member
// would leave the board or land on a cell held by another shape
func (e *Engine) MoveSelectedShape(from, to geometry.Point) (MoveResult, error) {
	shape := e.selected
	if shape == 0 {
		return MoveResult{}, ErrNoSelection
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	members := e.store.Members(shape)
	res := MoveResult{Before: members, Selected: shape}

	if (dx == 0 && dy == 0) || !e.canTranslate(members, shape, dx, dy) {
		res.Blocked = true
		return res, nil
	}

	pre := e.store.Objects()
	tx := e.store.Begin()

	ids := make([]ObjectID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	if err := tx.Translate(ids, dx, dy); err != nil {
		tx.Rollback()
		return MoveResult{}, err
	}

	merged, err := e.merge(tx, shape)
	if err != nil {
		tx.Rollback()
		return MoveResult{}, err
	}
	res.Merged = merged

	doors, err := e.openDoors(tx, shape, to)
	if err != nil {
		tx.Rollback()
		return MoveResult{}, err
	}
	res.Removed = doors.removed
	res.Doors = doors.changed
	if !doors.kept {
		res.Selected = 0
	}
	for _, s := range doors.shapes {
		res.After = append(res.After, tx.Members(s)...)
	}
	sortByID(res.After)

	e.history.Record(pre)
	if err := tx.Commit(); err != nil {
		return MoveResult{}, err
	}
	e.selected = res.Selected
	return res, nil
}

// canTranslate checks bounds and collisions for every member
func (e *Engine) canTranslate(members []Object, shape ShapeID, dx, dy int) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		p := m.Pos.Add(dx, dy)
		if !e.board.Contains(p) || !geometry.InExtent(p) {
			return false
		}
		if o, ok := e.store.At(p); ok && o.Shape != shape {
			return false
		}
	}
	return true
}

// merge absorbs every shape with an object connecting to a member of shape
// Absorbed members are themselves checked, so the result is a full component
func (e *Engine) merge(tx *Tx, shape ShapeID) ([]ShapeID, error) {
	var merged []ShapeID
	queue := tx.Members(shape)
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]

		for _, d := range m.Connectors.Ends() {
			dx, dy := d.Delta()
			n, ok := tx.At(m.Pos.Add(dx, dy))
			if !ok || n.Shape == shape || !geometry.Connects(m.Segment(), n.Segment()) {
				continue
			}
			absorbed := n.Shape
			for _, o := range tx.Members(absorbed) {
				if err := tx.SetShape(o.ID, shape); err != nil {
					return nil, err
				}
				o.Shape = shape
				queue = append(queue, o)
			}
			merged = append(merged, absorbed)
		}
	}
	return merged, nil
}

// doorOutcome lists the shapes left after the door rule ran
type doorOutcome struct {
	shapes  []ShapeID
	removed []Object
	changed int
	kept    bool // The original shape id still covers the destination
}

// openDoors applies the door rule to a complete shape holding door members
// A door member is deleted only when its satisfied special ends are all of its
// ends. A member that also has plain ends, or unsatisfied special ends, keeps
// them, loses its satisfied bits and is demoted to kind None. The remaining
// footprint is re-partitioned in a single pass: the part covering dest keeps
// shape, others receive fresh ids.
func (e *Engine) openDoors(tx *Tx, shape ShapeID, dest geometry.Point) (doorOutcome, error) {
	untouched := doorOutcome{shapes: []ShapeID{shape}, kept: true}
	members := tx.Members(shape)
	grid := tx.Grid()

	positions := make([]geometry.Point, len(members))
	hasDoor := false
	for i, m := range members {
		positions[i] = m.Pos
		hasDoor = hasDoor || m.Kind == geometry.KindDoor
	}
	if !hasDoor || !geometry.IsComplete(grid, positions) {
		return untouched, nil
	}

	// Decide on the unmodified shape so every member sees the same neighbours
	type doorChange struct {
		obj       Object
		satisfied geometry.Mask
	}
	var changes []doorChange
	for _, m := range members {
		if m.Kind != geometry.KindDoor {
			continue
		}
		var satisfied geometry.Mask
		seg := m.Segment()
		for _, d := range geometry.Cardinals {
			if m.Connectors.HasSpecial(d) && geometry.Satisfied(grid, seg, d) {
				satisfied |= geometry.Special(d)
			}
		}
		if satisfied != 0 {
			changes = append(changes, doorChange{obj: m, satisfied: satisfied})
		}
	}
	if len(changes) == 0 {
		return untouched, nil
	}

	var removed []Object
	for _, c := range changes {
		if c.satisfied == c.obj.Connectors {
			o, err := tx.Delete(c.obj.ID)
			if err != nil {
				return doorOutcome{}, err
			}
			removed = append(removed, o)
			continue
		}
		if err := tx.SetConnectors(c.obj.ID, c.obj.Connectors&^c.satisfied, geometry.KindNone); err != nil {
			return doorOutcome{}, err
		}
	}

	remaining := tx.Members(shape)
	footprint := make([]geometry.Point, len(remaining))
	for i, m := range remaining {
		footprint[i] = m.Pos
	}
	parts := geometry.Components(tx.Grid(), footprint)

	keep := -1
	for i, part := range parts {
		for _, p := range part {
			if p == dest {
				keep = i
			}
		}
	}

	shapes := make([]ShapeID, 0, len(parts))
	for i, part := range parts {
		id := shape
		if i != keep {
			id = e.newShapeID()
		}
		for _, p := range part {
			o, _ := tx.At(p)
			if err := tx.SetShape(o.ID, id); err != nil {
				return doorOutcome{}, err
			}
		}
		shapes = append(shapes, id)
	}
	return doorOutcome{shapes: shapes, removed: removed, changed: len(changes), kept: keep >= 0}, nil
}
