// Package glyph maps level and screen characters to connector masks and kinds
package glyph

import "github.com/lixenwraith/connect/geometry"

// Fixed literals without connector ends
const (
	Wall     = '█'
	Volatile = '◊'
	Empty    = ' '
	Unknown  = '?'
)

// Entry is one row of the glyph table
type Entry struct {
	Rune rune
	Mask geometry.Mask
	Kind geometry.Kind
}

type key struct {
	mask geometry.Mask
	kind geometry.Kind
}

var (
	byRune = make(map[rune]Entry)
	byKey  = make(map[key]rune)
)

// entries lists every mapped glyph; plain-only glyphs are kind None
var entries = []Entry{
	{Wall, 0, geometry.KindNone},
	{Volatile, 0, geometry.KindVolatile},

	// Plain
	{'╴', 0x01, geometry.KindNone},
	{'╷', 0x02, geometry.KindNone},
	{'┐', 0x03, geometry.KindNone},
	{'╶', 0x04, geometry.KindNone},
	{'─', 0x05, geometry.KindNone},
	{'┌', 0x06, geometry.KindNone},
	{'┬', 0x07, geometry.KindNone},
	{'╵', 0x08, geometry.KindNone},
	{'┘', 0x09, geometry.KindNone},
	{'│', 0x0A, geometry.KindNone},
	{'┤', 0x0B, geometry.KindNone},
	{'└', 0x0C, geometry.KindNone},
	{'┴', 0x0D, geometry.KindNone},
	{'├', 0x0E, geometry.KindNone},
	{'┼', 0x0F, geometry.KindNone},

	// Wide
	{'╹', 0x80, geometry.KindWide},
	{'╺', 0x40, geometry.KindWide},
	{'╻', 0x20, geometry.KindWide},
	{'╸', 0x10, geometry.KindWide},
	{'┖', 0x84, geometry.KindWide},
	{'┕', 0x48, geometry.KindWide},
	{'┗', 0xC0, geometry.KindWide},
	{'┍', 0x42, geometry.KindWide},
	{'┎', 0x24, geometry.KindWide},
	{'┏', 0x60, geometry.KindWide},
	{'┒', 0x21, geometry.KindWide},
	{'┑', 0x12, geometry.KindWide},
	{'┓', 0x30, geometry.KindWide},
	{'┚', 0x81, geometry.KindWide},
	{'┙', 0x18, geometry.KindWide},
	{'┛', 0x90, geometry.KindWide},
	{'╿', 0x82, geometry.KindWide},
	{'╽', 0x28, geometry.KindWide},
	{'┃', 0xA0, geometry.KindWide},
	{'╼', 0x41, geometry.KindWide},
	{'╾', 0x14, geometry.KindWide},
	{'━', 0x50, geometry.KindWide},
	{'┞', 0x86, geometry.KindWide},
	{'┝', 0x4A, geometry.KindWide},
	{'┟', 0x2C, geometry.KindWide},
	{'┡', 0xC2, geometry.KindWide},
	{'┢', 0x68, geometry.KindWide},
	{'┠', 0xA4, geometry.KindWide},
	{'┣', 0xE0, geometry.KindWide},
	{'┮', 0x43, geometry.KindWide},
	{'┰', 0x25, geometry.KindWide},
	{'┭', 0x16, geometry.KindWide},
	{'┲', 0x61, geometry.KindWide},
	{'┱', 0x34, geometry.KindWide},
	{'┯', 0x52, geometry.KindWide},
	{'┳', 0x70, geometry.KindWide},
	{'┦', 0x83, geometry.KindWide},
	{'┧', 0x29, geometry.KindWide},
	{'┥', 0x1A, geometry.KindWide},
	{'┩', 0x92, geometry.KindWide},
	{'┨', 0xA1, geometry.KindWide},
	{'┪', 0x38, geometry.KindWide},
	{'┫', 0xB0, geometry.KindWide},
	{'┸', 0x85, geometry.KindWide},
	{'┶', 0x49, geometry.KindWide},
	{'┵', 0x1C, geometry.KindWide},
	{'┺', 0xC1, geometry.KindWide},
	{'┷', 0x58, geometry.KindWide},
	{'┹', 0x94, geometry.KindWide},
	{'┻', 0xD0, geometry.KindWide},
	{'╀', 0x87, geometry.KindWide},
	{'┾', 0x4B, geometry.KindWide},
	{'╁', 0x2D, geometry.KindWide},
	{'┽', 0x1E, geometry.KindWide},
	{'╄', 0xC3, geometry.KindWide},
	{'╂', 0xA5, geometry.KindWide},
	{'╃', 0x96, geometry.KindWide},
	{'╆', 0x69, geometry.KindWide},
	{'┿', 0x5A, geometry.KindWide},
	{'╅', 0x3C, geometry.KindWide},
	{'╊', 0xE1, geometry.KindWide},
	{'╇', 0xD2, geometry.KindWide},
	{'╉', 0xB4, geometry.KindWide},
	{'╈', 0x78, geometry.KindWide},
	{'╋', 0xF0, geometry.KindWide},

	// Door
	{'╙', 0x84, geometry.KindDoor},
	{'╘', 0x48, geometry.KindDoor},
	{'╚', 0xC0, geometry.KindDoor},
	{'╒', 0x42, geometry.KindDoor},
	{'╓', 0x24, geometry.KindDoor},
	{'╔', 0x60, geometry.KindDoor},
	{'╖', 0x21, geometry.KindDoor},
	{'╕', 0x12, geometry.KindDoor},
	{'╗', 0x30, geometry.KindDoor},
	{'╜', 0x81, geometry.KindDoor},
	{'╛', 0x18, geometry.KindDoor},
	{'╝', 0x90, geometry.KindDoor},
	{'║', 0xA0, geometry.KindDoor},
	{'═', 0x50, geometry.KindDoor},
	{'╞', 0x4A, geometry.KindDoor},
	{'╟', 0xA4, geometry.KindDoor},
	{'╠', 0xE0, geometry.KindDoor},
	{'╥', 0x25, geometry.KindDoor},
	{'╤', 0x52, geometry.KindDoor},
	{'╦', 0x70, geometry.KindDoor},
	{'╢', 0xA1, geometry.KindDoor},
	{'╡', 0x1A, geometry.KindDoor},
	{'╣', 0xB0, geometry.KindDoor},
	{'╨', 0x85, geometry.KindDoor},
	{'╧', 0x58, geometry.KindDoor},
	{'╩', 0xD0, geometry.KindDoor},
	{'╫', 0xA5, geometry.KindDoor},
	{'╪', 0x5A, geometry.KindDoor},
	{'╬', 0xF0, geometry.KindDoor},
}

func init() {
	for _, e := range entries {
		byRune[e.Rune] = e
		byKey[key{e.Mask, e.Kind}] = e.Rune
	}
}

// Lookup returns the table entry for r
func Lookup(r rune) (Entry, bool) {
	e, ok := byRune[r]
	return e, ok
}

// Rune returns the screen character for a mask and kind
// Masks without an entry render as Unknown; a demoted door renders with its plain glyph
func Rune(mask geometry.Mask, kind geometry.Kind) rune {
	switch {
	case kind == geometry.KindVolatile:
		return Volatile
	case mask == 0:
		return Wall
	}
	if r, ok := byKey[key{mask, kind}]; ok {
		return r
	}
	if mask&geometry.SpecialMask == 0 {
		if r, ok := byKey[key{mask, geometry.KindNone}]; ok {
			return r
		}
	}
	return Unknown
}

// Entries returns a copy of the table
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
