package state

import (
	"slices"

	"github.com/lixenwraith/connect/geometry"
)

// Store holds the object collection with explicit indices
// position -> object and shape -> members are kept in sync by every mutation
// Mutations go through a Tx; readers see only committed state
type Store struct {
	objects map[ObjectID]Object
	byPos   map[geometry.Point]ObjectID
	byShape map[ShapeID]map[ObjectID]struct{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		objects: make(map[ObjectID]Object),
		byPos:   make(map[geometry.Point]ObjectID),
		byShape: make(map[ShapeID]map[ObjectID]struct{}),
	}
}

// NewStoreFrom builds a store from a snapshot, validating every index invariant
func NewStoreFrom(objs []Object) (*Store, error) {
	s := NewStore()
	for _, o := range objs {
		if err := s.insert(o); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of objects
func (s *Store) Len() int {
	return len(s.objects)
}

// Get returns the object with the given id
func (s *Store) Get(id ObjectID) (Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// At returns the object occupying p
func (s *Store) At(p geometry.Point) (Object, bool) {
	id, ok := s.byPos[p]
	if !ok {
		return Object{}, false
	}
	return s.objects[id], true
}

// Grid exposes the store to the connector predicates
func (s *Store) Grid() geometry.Grid {
	return geometry.GridFunc(func(p geometry.Point) (geometry.Segment, bool) {
		o, ok := s.At(p)
		if !ok {
			return geometry.Segment{}, false
		}
		return o.Segment(), true
	})
}

// Members returns the objects of a shape ordered by id
func (s *Store) Members(shape ShapeID) []Object {
	ids := s.byShape[shape]
	out := make([]Object, 0, len(ids))
	for id := range ids {
		out = append(out, s.objects[id])
	}
	sortByID(out)
	return out
}

// ShapeSize returns the number of members of a shape
func (s *Store) ShapeSize(shape ShapeID) int {
	return len(s.byShape[shape])
}

// Shapes returns every shape id in ascending order
func (s *Store) Shapes() []ShapeID {
	out := make([]ShapeID, 0, len(s.byShape))
	for shape := range s.byShape {
		out = append(out, shape)
	}
	slices.Sort(out)
	return out
}

// Objects returns a snapshot of the collection ordered by id
func (s *Store) Objects() []Object {
	out := make([]Object, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	sortByID(out)
	return out
}

// Bounds returns the smallest size containing every object
func (s *Store) Bounds() geometry.Size {
	var b geometry.Size
	for p := range s.byPos {
		b.Width = max(b.Width, p.X+1)
		b.Height = max(b.Height, p.Y+1)
	}
	return b
}

// clone deep-copies the store and its indices
func (s *Store) clone() *Store {
	c := &Store{
		objects: make(map[ObjectID]Object, len(s.objects)),
		byPos:   make(map[geometry.Point]ObjectID, len(s.byPos)),
		byShape: make(map[ShapeID]map[ObjectID]struct{}, len(s.byShape)),
	}
	for id, o := range s.objects {
		c.objects[id] = o
	}
	for p, id := range s.byPos {
		c.byPos[p] = id
	}
	for shape, ids := range s.byShape {
		m := make(map[ObjectID]struct{}, len(ids))
		for id := range ids {
			m[id] = struct{}{}
		}
		c.byShape[shape] = m
	}
	return c
}

func (s *Store) insert(o Object) error {
	if err := o.validate(); err != nil {
		return &StorageError{Op: "insert", Err: err}
	}
	if _, dup := s.objects[o.ID]; dup {
		return storageErr("insert", "duplicate object id %d", o.ID)
	}
	if other, taken := s.byPos[o.Pos]; taken {
		return storageErr("insert", "object %d collides with %d at %v", o.ID, other, o.Pos)
	}
	s.objects[o.ID] = o
	s.byPos[o.Pos] = o.ID
	s.addMember(o.Shape, o.ID)
	return nil
}

func (s *Store) remove(id ObjectID) (Object, error) {
	o, ok := s.objects[id]
	if !ok {
		return Object{}, storageErr("delete", "unknown object %d", id)
	}
	delete(s.objects, id)
	delete(s.byPos, o.Pos)
	s.dropMember(o.Shape, id)
	return o, nil
}

func (s *Store) addMember(shape ShapeID, id ObjectID) {
	m, ok := s.byShape[shape]
	if !ok {
		m = make(map[ObjectID]struct{})
		s.byShape[shape] = m
	}
	m[id] = struct{}{}
}

func (s *Store) dropMember(shape ShapeID, id ObjectID) {
	m := s.byShape[shape]
	delete(m, id)
	if len(m) == 0 {
		delete(s.byShape, shape)
	}
}

func sortByID(objs []Object) {
	slices.SortFunc(objs, func(a, b Object) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
