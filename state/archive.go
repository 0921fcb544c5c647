package state

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/geometry"
)

// maxSnapshotSize bounds the decompressed snapshot read by Load
const maxSnapshotSize = 64 << 20

// snapshotObject is the archived form of an Object
type snapshotObject struct {
	ID         uint64 `yaml:"id"`
	Shape      uint64 `yaml:"shape"`
	Connectors uint8  `yaml:"connectors"`
	Kind       string `yaml:"kind"`
	X          int    `yaml:"x"`
	Y          int    `yaml:"y"`
}

type snapshotTurn struct {
	Number  int              `yaml:"turn"`
	Objects []snapshotObject `yaml:"objects"`
}

// snapshot is the archived engine: collection, history and id counters
type snapshot struct {
	Version    int              `yaml:"version"`
	Level      string           `yaml:"level,omitempty"`
	SavedAt    time.Time        `yaml:"saved_at"`
	LastObject uint64           `yaml:"last_object"`
	LastShape  uint64           `yaml:"last_shape"`
	Objects    []snapshotObject `yaml:"objects"`
	Undo       []snapshotTurn   `yaml:"undo"`
	Redo       []snapshotTurn   `yaml:"redo"`
}

// SavePath derives the archive path from a level path by replacing its extension
func SavePath(levelPath string) string {
	if levelPath == "" {
		return constants.DefaultSaveName + constants.SaveExtension
	}
	return strings.TrimSuffix(levelPath, filepath.Ext(levelPath)) + constants.SaveExtension
}

// Save writes the collection, history and id counters to a zip archive at path
// The archive is written to a temporary file in the same directory and renamed into place
func (e *Engine) Save(path, level string) error {
	undo, redo := e.history.Stacks()
	snap := snapshot{
		Version:    constants.SnapshotVersion,
		Level:      level,
		SavedAt:    time.Now().UTC(),
		LastObject: uint64(e.lastObject),
		LastShape:  uint64(e.lastShape),
		Objects:    encodeObjects(e.store.Objects()),
		Undo:       encodeTurns(undo),
		Redo:       encodeTurns(redo),
	}
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".connect-save-*")
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "save", Path: path, Err: err}
	}

	zw := zip.NewWriter(tmp)
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     constants.SnapshotEntry,
		Method:   zip.Deflate,
		Modified: snap.SavedAt,
	})
	if err != nil {
		return fail(err)
	}
	if _, err := w.Write(data); err != nil {
		return fail(err)
	}
	if err := zw.Close(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Load replaces the collection, history and id counters with the archive at path
// The archive is decoded and validated completely before anything is replaced
func (e *Engine) Load(path string) error {
	data, err := readSnapshot(path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return &StorageError{Op: "decode", Err: err}
	}
	if snap.Version != constants.SnapshotVersion {
		return storageErr("decode", "unsupported snapshot version %d", snap.Version)
	}

	objs, err := decodeObjects(snap.Objects)
	if err != nil {
		return err
	}
	store, err := NewStoreFrom(objs)
	if err != nil {
		return err
	}
	undo, err := decodeTurns(snap.Undo)
	if err != nil {
		return err
	}
	redo, err := decodeTurns(snap.Redo)
	if err != nil {
		return err
	}

	lastObject, lastShape := ObjectID(snap.LastObject), ShapeID(snap.LastShape)
	collections := [][]Object{objs}
	for _, t := range append(undo, redo...) {
		collections = append(collections, t.Objects)
	}
	for _, c := range collections {
		oid, sid := maxIDs(c)
		lastObject = max(lastObject, oid)
		lastShape = max(lastShape, sid)
	}

	e.store = store
	e.history.restore(undo, redo)
	e.selected = 0
	e.lastObject = max(e.lastObject, lastObject)
	e.lastShape = max(e.lastShape, lastShape)
	e.growBoard()
	return nil
}

func readSnapshot(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != constants.SnapshotEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &IOError{Op: "load", Path: path, Err: err}
		}
		defer rc.Close()

		var buf bytes.Buffer
		n, err := io.Copy(&buf, io.LimitReader(rc, maxSnapshotSize+1))
		if err != nil {
			return nil, &IOError{Op: "load", Path: path, Err: err}
		}
		if n > maxSnapshotSize {
			return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("snapshot exceeds %d bytes", maxSnapshotSize)}
		}
		return buf.Bytes(), nil
	}
	return nil, &IOError{Op: "load", Path: path, Err: fmt.Errorf("archive has no %s", constants.SnapshotEntry)}
}

func encodeObjects(objs []Object) []snapshotObject {
	out := make([]snapshotObject, len(objs))
	for i, o := range objs {
		out[i] = snapshotObject{
			ID:         uint64(o.ID),
			Shape:      uint64(o.Shape),
			Connectors: uint8(o.Connectors),
			Kind:       o.Kind.String(),
			X:          o.Pos.X,
			Y:          o.Pos.Y,
		}
	}
	return out
}

func encodeTurns(turns []Turn) []snapshotTurn {
	out := make([]snapshotTurn, len(turns))
	for i, t := range turns {
		out[i] = snapshotTurn{Number: t.Number, Objects: encodeObjects(t.Objects)}
	}
	return out
}

func decodeObjects(in []snapshotObject) ([]Object, error) {
	out := make([]Object, len(in))
	for i, so := range in {
		kind, err := geometry.ParseKind(so.Kind)
		if err != nil {
			return nil, &StorageError{Op: "decode", Err: fmt.Errorf("object %d: %w", so.ID, err)}
		}
		out[i] = Object{
			ID:         ObjectID(so.ID),
			Shape:      ShapeID(so.Shape),
			Connectors: geometry.Mask(so.Connectors),
			Kind:       kind,
			Pos:        geometry.Point{X: so.X, Y: so.Y},
		}
	}
	return out, nil
}

// decodeTurns converts archived turns, validating each snapshot as a store
func decodeTurns(in []snapshotTurn) ([]Turn, error) {
	out := make([]Turn, len(in))
	for i, st := range in {
		objs, err := decodeObjects(st.Objects)
		if err != nil {
			return nil, err
		}
		if _, err := NewStoreFrom(objs); err != nil {
			return nil, fmt.Errorf("turn %d: %w", st.Number, err)
		}
		out[i] = Turn{Number: st.Number, Objects: objs}
	}
	return out, nil
}

func maxIDs(objs []Object) (ObjectID, ShapeID) {
	var oid ObjectID
	var sid ShapeID
	for _, o := range objs {
		oid = max(oid, o.ID)
		sid = max(sid, o.Shape)
	}
	return oid, sid
}
