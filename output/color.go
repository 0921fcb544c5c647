package output

import "github.com/gdamore/tcell/v2"

// Color is a semantic paint color resolved to a terminal style by the worker
type Color uint8

const (
	ColorDefault  Color = iota
	ColorDim            // Unselected shapes
	ColorSelected       // Members of the selected shape
	ColorWall           // Fixed walls
	ColorVolatile       // Volatile cells
	ColorText           // Turn counter
	ColorComplete       // Completion mark
)

// Palette colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbDim        = tcell.NewRGBColor(110, 120, 150) // Muted blue-gray
	RgbSelected   = tcell.NewRGBColor(255, 165, 0)   // Orange, same as the cursor
	RgbWall       = tcell.NewRGBColor(80, 80, 90)    // Dark gray
	RgbVolatile   = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbText       = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbComplete   = tcell.NewRGBColor(50, 255, 50)   // Bright green
)

var palette = [...]tcell.Color{
	ColorDefault:  tcell.ColorDefault,
	ColorDim:      RgbDim,
	ColorSelected: RgbSelected,
	ColorWall:     RgbWall,
	ColorVolatile: RgbVolatile,
	ColorText:     RgbText,
	ColorComplete: RgbComplete,
}

// Style returns the terminal style for c
func (c Color) Style() tcell.Style {
	st := tcell.StyleDefault.Background(RgbBackground)
	if int(c) >= len(palette) || c == ColorDefault {
		return st
	}
	st = st.Foreground(palette[c])
	if c == ColorSelected {
		st = st.Bold(true)
	}
	return st
}
