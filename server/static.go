package server

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StaticDir is the set of permanent assets (icons, stylesheets) the
// server may send, fixed by a directory scan at startup. Only names
// found in the scan are ever opened, so request paths cannot reach
// outside the directory.
type StaticDir struct {
	dir   string
	names map[string]struct{}
}

// ScanStatic lists dir and records the file names it can serve. A
// missing directory yields an empty set, not an error.
func ScanStatic(dir string) (*StaticDir, error) {
	s := &StaticDir{dir: dir, names: map[string]struct{}{}}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("scan static dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			s.names[e.Name()] = struct{}{}
		}
	}
	return s, nil
}

// Has reports whether name was present at scan time.
func (s *StaticDir) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Read returns the content of a scanned static asset.
func (s *StaticDir) Read(name string) ([]byte, error) {
	if !s.Has(name) {
		return nil, fs.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read static file: %w", err)
	}
	return data, nil
}
