package state

import (
	"fmt"

	"github.com/lixenwraith/connect/geometry"
)

// Tx stages mutations on a working copy of a store
// Reads through the embedded Store see staged changes; the owner is untouched until Commit
// Any failed operation poisons the transaction so it can only be rolled back
type Tx struct {
	*Store
	owner  *Store
	ops    int
	failed error
	closed bool
}

// Begin starts a transaction over s
func (s *Store) Begin() *Tx {
	return &Tx{
		Store: s.clone(),
		owner: s,
	}
}

// Insert stages a new object
func (tx *Tx) Insert(o Object) error {
	return tx.apply(func() error { return tx.insert(o) })
}

// Delete stages removal of an object and returns it
func (tx *Tx) Delete(id ObjectID) (Object, error) {
	var removed Object
	err := tx.apply(func() error {
		var err error
		removed, err = tx.remove(id)
		return err
	})
	return removed, err
}

// Translate moves every listed object by (dx, dy) as one step
// Targets may be cells vacated by the same call; any other collision fails
func (tx *Tx) Translate(ids []ObjectID, dx, dy int) error {
	return tx.apply(func() error {
		moved := make([]Object, 0, len(ids))
		for _, id := range ids {
			o, ok := tx.objects[id]
			if !ok {
				return storageErr("translate", "unknown object %d", id)
			}
			delete(tx.byPos, o.Pos)
			moved = append(moved, o)
		}
		for _, o := range moved {
			o.Pos = o.Pos.Add(dx, dy)
			if !geometry.InExtent(o.Pos) {
				return storageErr("translate", "object %d leaves extent at %v", o.ID, o.Pos)
			}
			if other, taken := tx.byPos[o.Pos]; taken {
				return storageErr("translate", "object %d collides with %d at %v", o.ID, other, o.Pos)
			}
			tx.byPos[o.Pos] = o.ID
			tx.objects[o.ID] = o
		}
		return nil
	})
}

// SetShape stages moving an object into another shape
func (tx *Tx) SetShape(id ObjectID, shape ShapeID) error {
	return tx.apply(func() error {
		o, ok := tx.objects[id]
		if !ok {
			return storageErr("reshape", "unknown object %d", id)
		}
		if shape == 0 {
			return storageErr("reshape", "object %d assigned no shape", id)
		}
		if o.Shape == shape {
			return nil
		}
		tx.dropMember(o.Shape, id)
		o.Shape = shape
		tx.objects[id] = o
		tx.addMember(shape, id)
		return nil
	})
}

// SetConnectors stages new connector bits and kind for an object
func (tx *Tx) SetConnectors(id ObjectID, mask geometry.Mask, kind geometry.Kind) error {
	return tx.apply(func() error {
		o, ok := tx.objects[id]
		if !ok {
			return storageErr("update", "unknown object %d", id)
		}
		o.Connectors = mask
		o.Kind = kind
		if err := o.validate(); err != nil {
			return &StorageError{Op: "update", Err: err}
		}
		tx.objects[id] = o
		return nil
	})
}

// Commit swaps the working copy into the owning store
func (tx *Tx) Commit() error {
	switch {
	case tx.closed:
		return storageErr("commit", "transaction already closed")
	case tx.failed != nil:
		return &StorageError{Op: "commit", Err: fmt.Errorf("transaction failed earlier: %w", tx.failed)}
	}
	tx.closed = true
	tx.owner.objects = tx.objects
	tx.owner.byPos = tx.byPos
	tx.owner.byShape = tx.byShape
	return nil
}

// Rollback discards all staged operations
func (tx *Tx) Rollback() {
	tx.closed = true
	tx.Store = NewStore()
}

// String returns a string representation of the transaction for debugging
func (tx *Tx) String() string {
	return fmt.Sprintf("Tx{operations: %d, objects: %d, failed: %v}", tx.ops, tx.Len(), tx.failed != nil)
}

func (tx *Tx) apply(op func() error) error {
	switch {
	case tx.closed:
		return storageErr("apply", "transaction already closed")
	case tx.failed != nil:
		return &StorageError{Op: "apply", Err: fmt.Errorf("transaction failed earlier: %w", tx.failed)}
	}
	if err := op(); err != nil {
		tx.failed = err
		return err
	}
	tx.ops++
	return nil
}
