package constants

// Turn Counter Line
const (
	// TurnCounterGap is the number of empty rows between the board and the turn counter
	TurnCounterGap = 1

	// TurnCounterColumn is the column the turn counter starts at
	TurnCounterColumn = 1

	// TurnCounterPrefix precedes the turn number
	TurnCounterPrefix = "Turn: "

	// TurnCompleteMark follows the turn number once the board is solved
	TurnCompleteMark = " ✓"

	// TurnIncompleteMark pads the line to the same width while unsolved
	TurnIncompleteMark = "   "
)
