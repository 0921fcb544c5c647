package state

import (
	"strings"

	"github.com/lixenwraith/connect/geometry"
	"github.com/lixenwraith/connect/glyph"
)

// levelCell is one parsed, not yet grouped, level character
type levelCell struct {
	line, column int
	entry        glyph.Entry
	pos          geometry.Point
}

// LoadLevel replaces the collection with the objects described by text
// Rows are lines and columns are 1-based character indices, so the first
// character of the first line sits at (1,1). Fixed cells become singleton
// shapes; the rest are grouped into shapes by repeated discovery from cells
// that connect to a neighbour. Any cell left unclaimed fails the load with a
// *ParseLevelError and leaves the engine untouched.
func (e *Engine) LoadLevel(text string) error {
	cells, err := parseCells(text)
	if err != nil {
		return err
	}

	staged := NewStore()
	tx := staged.Begin()
	lastObject, lastShape := e.lastObject, e.lastShape
	nextObject := func() ObjectID {
		lastObject++
		return lastObject
	}
	nextShape := func() ShapeID {
		lastShape++
		return lastShape
	}

	grid := make(map[geometry.Point]geometry.Segment, len(cells))
	index := make(map[geometry.Point]int, len(cells))
	for i, c := range cells {
		grid[c.pos] = geometry.Segment{Pos: c.pos, Mask: c.entry.Mask, Kind: c.entry.Kind}
		index[c.pos] = i
	}
	lookup := geometry.GridFunc(func(p geometry.Point) (geometry.Segment, bool) {
		s, ok := grid[p]
		return s, ok
	})

	claimed := make([]bool, len(cells))
	insert := func(c levelCell, shape ShapeID) error {
		return tx.Insert(Object{
			ID:         nextObject(),
			Shape:      shape,
			Connectors: c.entry.Mask,
			Kind:       c.entry.Kind,
			Pos:        c.pos,
		})
	}

	for i, c := range cells {
		if c.entry.Mask != 0 {
			continue
		}
		if err := insert(c, nextShape()); err != nil {
			tx.Rollback()
			return err
		}
		claimed[i] = true
	}

	unclaimed := func(p geometry.Point) bool {
		i, ok := index[p]
		return ok && !claimed[i]
	}
	for progress := true; progress; {
		progress = false
		for i, c := range cells {
			if claimed[i] || !geometry.HasNeighbor(lookup, grid[c.pos]) {
				continue
			}
			shape := nextShape()
			for _, p := range geometry.Discover(lookup, c.pos, unclaimed) {
				j := index[p]
				if err := insert(cells[j], shape); err != nil {
					tx.Rollback()
					return err
				}
				claimed[j] = true
			}
			progress = true
		}
	}

	for i, c := range cells {
		if !claimed[i] {
			tx.Rollback()
			return &ParseLevelError{
				Line:   c.line,
				Column: c.column,
				Glyph:  c.entry.Rune,
				Reason: "connector ends match no neighbour",
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	e.store = staged
	e.history.Reset()
	e.selected = 0
	e.lastObject, e.lastShape = lastObject, lastShape
	e.growBoard()
	return nil
}

// parseCells maps every non-space character of text through the glyph table
func parseCells(text string) ([]levelCell, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var cells []levelCell
	for li, line := range strings.Split(text, "\n") {
		column := 0
		for _, r := range line {
			column++
			if r == glyph.Empty {
				continue
			}
			entry, ok := glyph.Lookup(r)
			if !ok {
				return nil, &ParseLevelError{Line: li + 1, Column: column, Glyph: r, Reason: "unmapped glyph"}
			}
			pos := geometry.Point{X: column, Y: li + 1}
			if !geometry.InExtent(pos) {
				return nil, &ParseLevelError{Line: li + 1, Column: column, Glyph: r, Reason: "beyond maximum extent"}
			}
			cells = append(cells, levelCell{line: li + 1, column: column, entry: entry, pos: pos})
		}
	}
	return cells, nil
}
