package state

import "github.com/lixenwraith/connect/geometry"

// CommandType discriminates controller -> state commands
type CommandType uint8

const (
	CommandNone CommandType = iota

	CommandMoveCursor // Direction
	CommandSetCursor  // Pos (mouse placement)
	CommandSelect     // Toggle selection at the cursor
	CommandResize     // Size (terminal dimensions)
	CommandUndo
	CommandRedo
	CommandSave
	CommandLoad
	CommandShutdown
)

// Command is one request to the state worker
type Command struct {
	Type      CommandType
	Direction geometry.Direction
	Pos       geometry.Point
	Size      geometry.Size
}

// NoticeType discriminates state -> controller notices
type NoticeType uint8

const (
	NoticeNone NoticeType = iota

	NoticeClear     // Wipe the terminal
	NoticePrint     // Paint Objects
	NoticeCursor    // Cursor moved to Pos
	NoticeMoveShape // Move describes a committed shape move
	NoticeBlocked   // Selected shape could not follow the cursor
	NoticeResize    // Board is now Size
	NoticeTurn      // Turn counter changed
	NoticeSaved     // Snapshot written to Path
	NoticeLoaded    // Snapshot restored from Path
)

// Highlight tells the renderer how to emphasize an object
type Highlight uint8

const (
	HighlightDim      Highlight = iota // Unselected shapes
	HighlightSelected                  // Members of the selected shape
)

// PaintObject is an object with its render emphasis
type PaintObject struct {
	Object
	Highlight Highlight
}

// MoveNotice carries what the renderer and side effects need after a move
type MoveNotice struct {
	Vacated []geometry.Point // Cells to blank before painting
	Objects []PaintObject    // Objects of every shape produced by the move
	Merged  int              // Shapes absorbed
	Doors   int              // Door members opened
	Split   bool             // Door opening left more than one shape
}

// TurnNotice is the turn counter line
type TurnNotice struct {
	Row      int // Terminal row below the content
	Turn     int
	Complete bool
}

// Notice is one report from the state worker
type Notice struct {
	Type    NoticeType
	Objects []PaintObject
	Pos     geometry.Point
	Size    geometry.Size
	Move    *MoveNotice
	Turn    TurnNotice
	Path    string
}
