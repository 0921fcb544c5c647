package geometry

// Grid resolves the segment occupying a cell
type Grid interface {
	At(p Point) (Segment, bool)
}

// GridFunc adapts a lookup function to Grid
type GridFunc func(p Point) (Segment, bool)

// At implements Grid
func (f GridFunc) At(p Point) (Segment, bool) {
	return f(p)
}

// Connects reports whether a and b are joined by matching ends
// The segments must be exactly one orthogonal step apart; symmetric in a and b
func Connects(a, b Segment) bool {
	d, ok := Between(a.Pos, b.Pos)
	if !ok {
		return false
	}
	return endsMatch(a, b, d)
}

// endsMatch checks the end of a facing d against the end of b facing back
// A plain end is class None whatever the object's kind; a special end takes the object's kind
func endsMatch(a, b Segment, d Direction) bool {
	if a.Kind == KindVolatile || b.Kind == KindVolatile {
		return false
	}
	back := d.Opposite()
	switch {
	case a.Mask.HasPlain(d):
		return b.Mask.HasPlain(back)
	case a.Mask.HasSpecial(d):
		return b.Mask.HasSpecial(back) && a.Kind == b.Kind
	}
	return false
}

// Satisfied reports whether the end of s facing d meets a matching neighbor
func Satisfied(g Grid, s Segment, d Direction) bool {
	dx, dy := d.Delta()
	n, ok := g.At(s.Pos.Add(dx, dy))
	if !ok {
		return false
	}
	return endsMatch(s, n, d)
}

// IsComplete reports whether every end of every member meets a matching neighbor
// An empty member list is never complete
func IsComplete(g Grid, members []Point) bool {
	if len(members) == 0 {
		return false
	}
	for _, p := range members {
		s, ok := g.At(p)
		if !ok {
			return false
		}
		for _, d := range s.Mask.Ends() {
			if !Satisfied(g, s, d) {
				return false
			}
		}
	}
	return true
}

// HasNeighbor reports whether s connects to at least one neighbor
func HasNeighbor(g Grid, s Segment) bool {
	for _, d := range s.Mask.Ends() {
		if Satisfied(g, s, d) {
			return true
		}
	}
	return false
}

// Discover returns the maximal set of cells reachable from seed via Connects
// within restricts the walk to a footprint; nil allows every cell
// Result is in breadth-first order, seed first; empty if seed is vacant
func Discover(g Grid, seed Point, within func(Point) bool) []Point {
	start, ok := g.At(seed)
	if !ok || (within != nil && !within(seed)) {
		return nil
	}

	visited := map[Point]struct{}{seed: {}}
	queue := []Segment{start}
	result := []Point{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range cur.Mask.Ends() {
			dx, dy := d.Delta()
			np := cur.Pos.Add(dx, dy)
			if _, seen := visited[np]; seen {
				continue
			}
			if within != nil && !within(np) {
				continue
			}
			n, ok := g.At(np)
			if !ok || !endsMatch(cur, n, d) {
				continue
			}
			visited[np] = struct{}{}
			queue = append(queue, n)
			result = append(result, np)
		}
	}
	return result
}

// Components labels the connected components of cells, restricted to cells
// Components are returned in order of their first cell in the input
func Components(g Grid, cells []Point) [][]Point {
	footprint := make(map[Point]struct{}, len(cells))
	for _, p := range cells {
		footprint[p] = struct{}{}
	}
	within := func(p Point) bool {
		_, ok := footprint[p]
		return ok
	}

	labeled := make(map[Point]struct{}, len(cells))
	var parts [][]Point
	for _, p := range cells {
		if _, done := labeled[p]; done {
			continue
		}
		part := Discover(g, p, within)
		if len(part) == 0 {
			continue
		}
		for _, q := range part {
			labeled[q] = struct{}{}
		}
		parts = append(parts, part)
	}
	return parts
}
