package constants

// Engine Limits
const (
	// DefaultUndoCapacity is the engine's undo cap when none is configured
	DefaultUndoCapacity = 100

	// CLIUndoCapacity is the undo cap applied by the command line default
	CLIUndoCapacity = 250
)

// Save Archive
const (
	// SaveExtension replaces the level file's extension for its save archive
	SaveExtension = ".sav"

	// DefaultSaveName is used when no level path is known
	DefaultSaveName = "connect"

	// SnapshotEntry is the archive member holding the encoded snapshot
	SnapshotEntry = "snapshot.yaml"

	// SnapshotVersion is the snapshot format written by Save
	SnapshotVersion = 1
)
