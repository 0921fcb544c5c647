package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/connect/geometry"
)

func bar(id ObjectID, shape ShapeID, x, y int) []Object {
	return []Object{
		{ID: id, Shape: shape, Connectors: geometry.PlainRight, Pos: pt(x, y)},
		{ID: id + 1, Shape: shape, Connectors: geometry.PlainLeft, Pos: pt(x+1, y)},
	}
}

func TestNewStoreFrom_RejectsBrokenSnapshots(t *testing.T) {
	cases := []struct {
		name string
		objs []Object
	}{
		{"duplicate id", []Object{{ID: 1, Shape: 1, Pos: pt(0, 0)}, {ID: 1, Shape: 2, Pos: pt(1, 0)}}},
		{"same cell", []Object{{ID: 1, Shape: 1, Pos: pt(0, 0)}, {ID: 2, Shape: 2, Pos: pt(0, 0)}}},
		{"no shape", []Object{{ID: 1, Pos: pt(0, 0)}}},
		{"plain and special on one side", []Object{{ID: 1, Shape: 1, Connectors: geometry.PlainUp | geometry.SpecialUp, Pos: pt(0, 0)}}},
		{"out of extent", []Object{{ID: 1, Shape: 1, Pos: pt(-1, 0)}}},
		{"volatile with ends", []Object{{ID: 1, Shape: 1, Connectors: geometry.PlainUp, Kind: geometry.KindVolatile, Pos: pt(0, 0)}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStoreFrom(tc.objs)
			var se *StorageError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestStore_Indices(t *testing.T) {
	s, err := NewStoreFrom(append(bar(1, 1, 0, 0), bar(3, 2, 0, 2)...))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []ShapeID{1, 2}, s.Shapes())
	assert.Equal(t, 2, s.ShapeSize(2))
	assert.Equal(t, geometry.Size{Width: 2, Height: 3}, s.Bounds())

	o, ok := s.At(pt(1, 2))
	require.True(t, ok)
	assert.Equal(t, ObjectID(4), o.ID)

	members := s.Members(1)
	require.Len(t, members, 2)
	assert.Equal(t, ObjectID(1), members[0].ID)
}

func TestTx_TranslateAndCommit(t *testing.T) {
	s, err := NewStoreFrom(bar(1, 1, 0, 0))
	require.NoError(t, err)

	tx := s.Begin()
	// Shifting right onto its own vacated cell is legal
	require.NoError(t, tx.Translate([]ObjectID{1, 2}, 1, 0))

	_, ok := s.At(pt(2, 0))
	assert.False(t, ok, "owner untouched before commit")
	_, ok = tx.At(pt(2, 0))
	assert.True(t, ok, "transaction sees staged move")

	require.NoError(t, tx.Commit())
	_, ok = s.At(pt(0, 0))
	assert.False(t, ok)
	o, ok := s.At(pt(2, 0))
	require.True(t, ok)
	assert.Equal(t, ObjectID(2), o.ID)

	assert.Error(t, tx.Commit(), "double commit")
}

func TestTx_FailurePoisonsAndRollbackKeepsOwner(t *testing.T) {
	s, err := NewStoreFrom(append(bar(1, 1, 0, 0), bar(3, 2, 0, 1)...))
	require.NoError(t, err)
	before := s.Objects()

	tx := s.Begin()
	err = tx.Translate([]ObjectID{1, 2}, 0, 1)
	var se *StorageError
	require.ErrorAs(t, err, &se)

	assert.Error(t, tx.SetShape(1, 9), "poisoned transaction refuses further work")
	assert.Error(t, tx.Commit())
	tx.Rollback()

	assert.Equal(t, before, s.Objects())
}

func TestTx_ReshapeUpdateDelete(t *testing.T) {
	s, err := NewStoreFrom(append(bar(1, 1, 0, 0), bar(3, 2, 2, 0)...))
	require.NoError(t, err)

	tx := s.Begin()
	require.NoError(t, tx.SetShape(3, 1))
	require.NoError(t, tx.SetShape(4, 1))
	require.NoError(t, tx.SetConnectors(2, geometry.PlainLeft|geometry.PlainRight, geometry.KindNone))
	removed, err := tx.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, pt(0, 0), removed.Pos)
	require.NoError(t, tx.Commit())

	assert.Equal(t, []ShapeID{1}, s.Shapes())
	assert.Equal(t, 3, s.ShapeSize(1))
	o, _ := s.Get(2)
	assert.Equal(t, geometry.PlainLeft|geometry.PlainRight, o.Connectors)
	_, ok := s.At(pt(0, 0))
	assert.False(t, ok)

	tx = s.Begin()
	assert.Error(t, tx.SetConnectors(2, geometry.PlainUp|geometry.SpecialUp, geometry.KindWide))
	tx.Rollback()
}
