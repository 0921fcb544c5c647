package geometry

import "fmt"

// Mask encodes the connector ends of one segment
// Low nibble: plain ends Up/Right/Down/Left (8/4/2/1)
// High nibble: the same four directions for a special end
type Mask uint8

const (
	PlainUp    Mask = 0b0000_1000
	PlainRight Mask = 0b0000_0100
	PlainDown  Mask = 0b0000_0010
	PlainLeft  Mask = 0b0000_0001

	SpecialUp    Mask = PlainUp << 4
	SpecialRight Mask = PlainRight << 4
	SpecialDown  Mask = PlainDown << 4
	SpecialLeft  Mask = PlainLeft << 4

	PlainMask   Mask = 0x0F
	SpecialMask Mask = 0xF0
)

// Plain returns the plain bit facing d, zero for diagonals
func Plain(d Direction) Mask {
	switch d {
	case Up:
		return PlainUp
	case Right:
		return PlainRight
	case Down:
		return PlainDown
	case Left:
		return PlainLeft
	}
	return 0
}

// Special returns the special bit facing d, zero for diagonals
func Special(d Direction) Mask {
	return Plain(d) << 4
}

// HasPlain reports a plain end facing d
func (m Mask) HasPlain(d Direction) bool {
	b := Plain(d)
	return b != 0 && m&b != 0
}

// HasSpecial reports a special end facing d
func (m Mask) HasSpecial(d Direction) bool {
	b := Special(d)
	return b != 0 && m&b != 0
}

// Valid reports that no direction carries both a plain and a special end
func (m Mask) Valid() bool {
	return (m&PlainMask)&(m>>4) == 0
}

// IsWall reports a mask without ends
func (m Mask) IsWall() bool {
	return m == 0
}

// Ends returns the directions m has an end facing, in Cardinals order
func (m Mask) Ends() []Direction {
	ends := make([]Direction, 0, 4)
	for _, d := range Cardinals {
		if m.HasPlain(d) || m.HasSpecial(d) {
			ends = append(ends, d)
		}
	}
	return ends
}

func (m Mask) String() string {
	return fmt.Sprintf("%08b", uint8(m))
}

// Kind classifies the special ends of a segment
type Kind uint8

const (
	KindNone Kind = iota
	KindWide
	KindDoor
	KindVolatile
)

var kindNames = [...]string{"None", "Wide", "Door", "Volatile"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseKind maps a kind name back to its value
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("unknown kind %q", s)
}

// Segment is the geometric view of one object
type Segment struct {
	Pos  Point
	Mask Mask
	Kind Kind
}
