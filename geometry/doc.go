// Package geometry holds the pure connector model of the board
//
// A segment's ends are an 8-bit mask: the low nibble holds plain ends
// (Up/Right/Down/Left as 8/4/2/1), the high nibble the same directions for a
// special end whose class is the segment's kind. Two segments connect when
// they are one orthogonal step apart and present ends of the same class
// facing each other. Shapes are the connected components of that relation.
package geometry
