package state

import (
	"fmt"

	"github.com/lixenwraith/connect/geometry"
)

// ObjectID identifies an object for its whole lifetime
type ObjectID uint64

// ShapeID groups connected objects; reassigned on merge and split
// Zero means no shape
type ShapeID uint64

// Object is one board cell's pipe segment, wall or volatile obstacle
type Object struct {
	ID         ObjectID
	Shape      ShapeID
	Connectors geometry.Mask
	Kind       geometry.Kind
	Pos        geometry.Point
}

// Segment returns the geometric view used by connector predicates
func (o Object) Segment() geometry.Segment {
	return geometry.Segment{Pos: o.Pos, Mask: o.Connectors, Kind: o.Kind}
}

// IsFixed reports an object that can never move or be selected
func (o Object) IsFixed() bool {
	return o.Connectors == 0
}

// validate checks the per-object invariants
func (o Object) validate() error {
	switch {
	case o.ID == 0:
		return fmt.Errorf("object at %v has no id", o.Pos)
	case o.Shape == 0:
		return fmt.Errorf("object %d has no shape", o.ID)
	case !o.Connectors.Valid():
		return fmt.Errorf("object %d has plain and special end on one side (%v)", o.ID, o.Connectors)
	case !geometry.InExtent(o.Pos):
		return fmt.Errorf("object %d out of extent at %v", o.ID, o.Pos)
	case o.Kind > geometry.KindVolatile:
		return fmt.Errorf("object %d has unknown kind %d", o.ID, o.Kind)
	case o.Kind == geometry.KindVolatile && o.Connectors != 0:
		return fmt.Errorf("volatile object %d has connectors", o.ID)
	}
	return nil
}
