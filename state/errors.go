package state

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned when a shape move is requested without a selection
var ErrNoSelection = errors.New("no shape selected")

// ParseLevelError reports malformed level text
// Line and Column are 1-based character positions
type ParseLevelError struct {
	Line   int
	Column int
	Glyph  rune
	Reason string
}

func (e *ParseLevelError) Error() string {
	return fmt.Sprintf("parse level: line %d column %d %q: %s", e.Line, e.Column, e.Glyph, e.Reason)
}

// StorageError reports a violated store invariant or invalid snapshot content
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IOError reports a filesystem or archive failure during save or load
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func storageErr(op string, format string, args ...any) error {
	return &StorageError{Op: op, Err: fmt.Errorf(format, args...)}
}
