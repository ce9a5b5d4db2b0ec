package hcdrive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Registry is the shared record of locally stored files. It keeps an
// ordered list of (name, size) entries guarded by a mutex, with a
// condition variable broadcast on every change, and delegates the actual
// bytes to a FileStorage backend.
//
// Storage I/O happens outside the lock; only the entry list is
// serialized. Two concurrent operations on the same filename can still
// race on the file itself: the list never loses or duplicates entries,
// file content is last-writer-wins.
type Registry struct {
	mu      sync.Mutex
	changed *sync.Cond
	entries []FileEntry

	storage FileStorage
	stats   *Stats
}

func NewRegistry(storage FileStorage, stats *Stats) *Registry {
	r := &Registry{storage: storage, stats: stats}
	r.changed = sync.NewCond(&r.mu)
	return r
}

// Populate seeds the registry from the files already present in storage
// and sets the local file counter accordingly. Call once at startup.
func (r *Registry) Populate(ctx context.Context) error {
	entries, err := r.storage.List(ctx)
	if err != nil {
		return fmt.Errorf("populate registry: %w", err)
	}

	r.mu.Lock()
	r.entries = entries
	r.changed.Broadcast()
	r.mu.Unlock()

	r.stats.SetLocalFiles(int64(len(entries)))
	return nil
}

// Add stores data as a new shared file and records it in the registry.
// It returns a human-readable status describing success or failure; it
// never fails with an error. Adding a name that already exists leaves
// both the registry and the statistics counters untouched.
func (r *Registry) Add(ctx context.Context, name string, data []byte) string {
	r.mu.Lock()
	exists := r.indexOf(name) >= 0
	r.mu.Unlock()
	if exists {
		return fmt.Sprintf("You have a file named '%s' already.", name)
	}

	if _, err := r.storage.Write(ctx, name, data); err != nil {
		slog.Error("store shared file", "name", name, "err", err)
		return fmt.Sprintf("Problem storing data in local file named '%s'.", name)
	}

	r.mu.Lock()
	if r.indexOf(name) < 0 {
		r.entries = append(r.entries, FileEntry{Name: name, Size: int64(len(data))})
	}
	r.changed.Broadcast()
	r.mu.Unlock()

	r.stats.FileAdded()
	return fmt.Sprintf("Success, added file '%s'.", name)
}

// Remove deletes a shared file from the registry and from storage,
// returning a human-readable status. Removing a name that is not
// registered is a no-op: the same status comes back every time and no
// statistics counter moves.
func (r *Registry) Remove(ctx context.Context, name string) string {
	r.mu.Lock()
	i := r.indexOf(name)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Sprintf("No such file '%s'.", name)
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	r.changed.Broadcast()
	r.mu.Unlock()

	// The entry is already gone from the list; the counter moves with it
	// even if the storage delete below fails.
	r.stats.FileRemoved()

	if err := r.storage.Delete(ctx, name); err != nil {
		slog.Error("delete shared file", "name", name, "err", err)
		return fmt.Sprintf("Problem removing file '%s'.", name)
	}
	return fmt.Sprintf("Success, removed file '%s'.", name)
}

// List returns a snapshot of all registered files in insertion order.
func (r *Registry) List() []FileEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FileEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Exists reports whether name is currently registered.
func (r *Registry) Exists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOf(name) >= 0
}

// Read returns the content of a registered shared file. It fails with
// ErrNotFound when the name is not registered or the backing file is
// gone from storage.
func (r *Registry) Read(ctx context.Context, name string) ([]byte, error) {
	if !r.Exists(name) {
		return nil, fmt.Errorf("read shared file '%s': %w", name, ErrNotFound)
	}
	data, err := r.storage.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read shared file '%s': %w", name, err)
	}
	return data, nil
}

// indexOf must be called with the lock held.
func (r *Registry) indexOf(name string) int {
	for i, e := range r.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
