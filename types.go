package hcdrive

import "context"

// FileEntry is one shared file as recorded by the registry. Entries are
// never mutated in place; an upload creates one and a delete removes it.
type FileEntry struct {
	Name string
	Size int64
}

// StatsSnapshot is a consistent copy of all statistics counters.
type StatsSnapshot struct {
	ConnectionsTotal int64
	ConnectionsNow   int64
	LocalFiles       int64
	Uploads          int64
	Downloads        int64
}

// FileStorage is the physical storage backend behind the registry.
// Implementations must be safe for concurrent use; the registry calls
// them outside its own lock.
type FileStorage interface {
	// Get reads the full content of a stored file. Returns ErrNotFound
	// if the file does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Write stores data under name, replacing any previous content, and
	// returns the number of bytes written. Writes are atomic: a partially
	// written file is never observable under name.
	Write(ctx context.Context, name string, data []byte) (int64, error)

	// Delete removes a stored file. Returns ErrNotFound if the file does
	// not exist.
	Delete(ctx context.Context, name string) error

	// List enumerates all stored files with their sizes.
	List(ctx context.Context) ([]FileEntry, error)
}
