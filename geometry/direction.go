package geometry

// MaxExtent is the largest coordinate an object or the cursor may occupy
const MaxExtent = 65534

// Point represents a grid cell
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size represents board or terminal dimensions in cells
type Size struct {
	Width, Height int
}

// Contains reports whether p lies inside [0,Width) x [0,Height)
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// InExtent reports whether p lies inside the fixed maximum extent
func InExtent(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= MaxExtent && p.Y <= MaxExtent
}

// Direction is one of the eight cursor directions
type Direction uint8

const (
	Up Direction = iota
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft

	DirectionCount = 8
)

// dirVectors is indexed by Direction
var dirVectors = [DirectionCount][2]int{
	{0, -1},  // Up
	{1, -1},  // UpRight
	{1, 0},   // Right
	{1, 1},   // DownRight
	{0, 1},   // Down
	{-1, 1},  // DownLeft
	{-1, 0},  // Left
	{-1, -1}, // UpLeft
}

var dirNames = [DirectionCount]string{"up", "up-right", "right", "down-right", "down", "down-left", "left", "up-left"}

// Cardinals lists the four directions a connector end can face
var Cardinals = [4]Direction{Up, Right, Down, Left}

// Delta returns the unit step of d
func (d Direction) Delta() (dx, dy int) {
	if d >= DirectionCount {
		return 0, 0
	}
	v := dirVectors[d]
	return v[0], v[1]
}

// IsDiagonal reports whether d moves on both axes
func (d Direction) IsDiagonal() bool {
	return d == UpRight || d == DownRight || d == DownLeft || d == UpLeft
}

// Opposite returns the direction pointing back
func (d Direction) Opposite() Direction {
	return (d + 4) % DirectionCount
}

func (d Direction) String() string {
	if d >= DirectionCount {
		return "invalid"
	}
	return dirNames[d]
}

// Step moves p one cell in d inside bounds
// Returns p and false when the step would leave bounds on either axis; no wrap
func Step(p Point, d Direction, bounds Size) (Point, bool) {
	dx, dy := d.Delta()
	next := p.Add(dx, dy)
	if !bounds.Contains(next) || !InExtent(next) {
		return p, false
	}
	return next, true
}

// Between returns the cardinal direction leading from a to b
// ok is false unless b is exactly one orthogonal step away from a
func Between(a, b Point) (Direction, bool) {
	switch {
	case b.X == a.X && b.Y == a.Y-1:
		return Up, true
	case b.X == a.X+1 && b.Y == a.Y:
		return Right, true
	case b.X == a.X && b.Y == a.Y+1:
		return Down, true
	case b.X == a.X-1 && b.Y == a.Y:
		return Left, true
	}
	return Up, false
}
