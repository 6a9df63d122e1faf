package adapter

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	m "slinx.dev/pkg/slinx/internal/model"
)

// ArchiveSource reads model files straight out of a packaged model archive
// (a ZIP container, the on-disk form of .slx models).
type ArchiveSource struct {
	reader  *zip.Reader
	closer  io.Closer
	entries map[m.Path]*zip.File
}

// OpenArchiveSource opens the archive at the given filesystem path.
func OpenArchiveSource(path string) (*ArchiveSource, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	src := newArchiveSource(&rc.Reader)
	src.closer = rc
	return src, nil
}

// NewArchiveSource wraps an already opened ZIP reader.
func NewArchiveSource(r *zip.Reader) *ArchiveSource {
	return newArchiveSource(r)
}

func newArchiveSource(r *zip.Reader) *ArchiveSource {
	entries := make(map[m.Path]*zip.File, len(r.File))
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		entries[normalize(m.Path(f.Name))] = f
	}
	return &ArchiveSource{reader: r, entries: entries}
}

// Read returns the text of the archive entry at path.
func (s *ArchiveSource) Read(path m.Path) (string, error) {
	f, ok := s.entries[normalize(path)]
	if !ok {
		return "", fmt.Errorf("read %s: %w", path, ErrNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			slog.Warn("failed to close archive entry", "path", path, "error", cerr)
		}
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// List returns the archive entries directly under dir, sorted.
func (s *ArchiveSource) List(dir m.Path) ([]m.Path, error) {
	prefix := string(normalize(dir))
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	var out []m.Path
	for p := range s.entries {
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

// Close releases the underlying archive file, if this source owns one.
func (s *ArchiveSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
