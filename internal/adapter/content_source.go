// Package adapter contains the infrastructure adapters the domain layer
// reads model files through: filesystem, in-memory and archive content
// sources, plus the binary model store.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "slinx.dev/pkg/slinx/internal/model"
)

// ErrNotFound reports that a content source could not resolve a path.
// Wrapped errors match it with errors.Is.
var ErrNotFound = errors.New("content not found")

// ContentSource abstracts "read file at path, return text" so the parser
// never assumes a filesystem is present. Implementations may cache reads.
type ContentSource interface {
	// Read returns the text content at the given logical path. The error
	// wraps ErrNotFound when the path cannot be resolved.
	Read(path m.Path) (string, error)

	// List returns the file paths directly under the given directory, in
	// lexical order. A missing directory wraps ErrNotFound.
	List(dir m.Path) ([]m.Path, error)
}

// FSSource reads files from the local filesystem, resolving relative paths
// against a root directory.
type FSSource struct {
	root string
}

// NewFSSource constructs an FSSource rooted at the given directory.
func NewFSSource(root string) *FSSource {
	return &FSSource{root: root}
}

func (s *FSSource) resolve(path m.Path) string {
	p := string(path)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, p)
}

// Read loads file contents from disk.
func (s *FSSource) Read(path m.Path) (string, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// List returns the files directly under dir.
func (s *FSSource) List(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(s.resolve(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list %s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var out []m.Path
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, m.Path(filepath.ToSlash(filepath.Join(string(dir), e.Name()))))
	}
	return out, nil
}

// MemorySource serves content from a path-to-text map. It backs deterministic
// tests that never touch the disk.
type MemorySource struct {
	files map[m.Path]string
}

// NewMemorySource constructs a MemorySource over the given mapping. Paths
// are normalized so that "./a", "/a" and "a" address the same entry.
func NewMemorySource(files map[m.Path]string) *MemorySource {
	normalized := make(map[m.Path]string, len(files))
	for p, text := range files {
		normalized[normalize(p)] = text
	}
	return &MemorySource{files: normalized}
}

// Read returns the mapped text for path.
func (s *MemorySource) Read(path m.Path) (string, error) {
	text, ok := s.files[normalize(path)]
	if !ok {
		return "", fmt.Errorf("read %s: %w", path, ErrNotFound)
	}
	return text, nil
}

// List returns the mapped paths directly under dir, sorted.
func (s *MemorySource) List(dir m.Path) ([]m.Path, error) {
	prefix := string(normalize(dir))
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	var out []m.Path
	for p := range s.files {
		name := string(p)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.Contains(name[len(prefix):], "/") {
			continue
		}
		out = append(out, p)
	}
	if out == nil {
		return nil, fmt.Errorf("list %s: %w", dir, ErrNotFound)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func normalize(path m.Path) m.Path {
	p := strings.TrimPrefix(string(path), "./")
	return m.Path(strings.TrimPrefix(p, "/"))
}
