package output

import "github.com/lixenwraith/connect/geometry"

// CommandType discriminates controller -> output render instructions
type CommandType uint8

const (
	CommandNone CommandType = iota

	CommandClear     // Wipe the screen
	CommandPaint     // Draw Chars
	CommandSetCursor // Move the terminal cursor to Pos
	CommandResize    // Board resized to Size; resynchronize the terminal
	CommandShutdown
)

// Char is one literal placed at a cell
type Char struct {
	Literal rune
	Pos     geometry.Point
	Color   Color
}

// Command is one render instruction
type Command struct {
	Type  CommandType
	Chars []Char
	Pos   geometry.Point
	Size  geometry.Size
}

// Paint builds a paint command
func Paint(chars ...Char) Command {
	return Command{Type: CommandPaint, Chars: chars}
}

// Text lays a string out as consecutive chars starting at pos
func Text(s string, pos geometry.Point, color Color) []Char {
	chars := make([]Char, 0, len(s))
	for _, r := range s {
		chars = append(chars, Char{Literal: r, Pos: pos, Color: color})
		pos.X++
	}
	return chars
}

// ReportType discriminates output -> controller reports
type ReportType uint8

const (
	ReportNone         ReportType = iota
	ReportTerminalSize            // Size holds the terminal dimensions in cells
)

// Report is one message from the output worker
type Report struct {
	Type ReportType
	Size geometry.Size
}
