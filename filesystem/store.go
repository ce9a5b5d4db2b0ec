// Package filesystem implements hcdrive.FileStorage on a directory of
// the local file system. Writes go through a temp file and rename so a
// crash never leaves a half-written shared file, and all paths are
// resolved inside an os.Root to keep traversal out of the share folder.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/hcdrive/hcdrive"
)

const tmpPrefix = ".t"

// Store is a flat directory of shared files.
type Store struct {
	root *os.Root
}

// NewStore creates a Store over the given sandboxed root directory.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Get reads the full content of a stored file. Returns
// hcdrive.ErrNotFound if the file does not exist.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.root.FS(), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, hcdrive.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Write atomically stores data under name using a temp file and rename,
// and returns the number of bytes written.
func (s *Store) Write(ctx context.Context, name string, data []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tmp := tmpFileName()
	t, err := s.root.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	n, writeErr := t.Write(data)
	if writeErr == nil {
		writeErr = t.Sync()
	}
	if closeErr := t.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = s.root.Remove(tmp)
		return 0, fmt.Errorf("write temp file: %w", writeErr)
	}

	if err := s.root.Rename(tmp, name); err != nil {
		_ = s.root.Remove(tmp)
		return 0, fmt.Errorf("rename temp file: %w", err)
	}
	return int64(n), nil
}

// Delete removes a stored file. Returns hcdrive.ErrNotFound if the file
// does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.root.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return hcdrive.ErrNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// List enumerates all stored files with their sizes. Subdirectories and
// leftover temp files are skipped; the share folder stays flat.
func (s *Store) List(ctx context.Context) ([]hcdrive.FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	entries := make([]hcdrive.FileEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		entries = append(entries, hcdrive.FileEntry{Name: entry.Name(), Size: info.Size()})
	}
	return entries, nil
}

func tmpFileName() string {
	return fmt.Sprintf("%s%s", tmpPrefix, uuid.New().String())
}
