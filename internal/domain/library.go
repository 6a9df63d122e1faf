package domain

import (
	"log/slog"
	"path"
	"strings"

	m "slinx.dev/pkg/slinx/internal/model"
)

// libraryFileExt is the archive extension library files carry on disk.
const libraryFileExt = ".slx"

// ResolveLibraries locates the file backing each referenced library name by
// scanning the search paths in order; the first directory holding
// <name>.slx wins. A name with no match in any search path is reported with
// Found false rather than failing: models are routinely inspected on
// machines that hold only a subset of their libraries.
func (p *Parser) ResolveLibraries(names []string, searchPaths []m.Path) []m.LibraryResolution {
	out := make([]m.LibraryResolution, 0, len(names))
	for _, name := range names {
		res := m.LibraryResolution{Name: name}
		for _, dir := range searchPaths {
			entries, err := p.list(dir)
			if err != nil {
				// A missing search path is skipped, not an error.
				continue
			}
			if found, ok := findLibraryFile(entries, name); ok {
				res.Path = found
				res.Found = true
				break
			}
		}
		if !res.Found {
			slog.Debug("library not found on search paths", "library", name, "paths", len(searchPaths))
		}
		out = append(out, res)
	}
	return out
}

func findLibraryFile(entries []m.Path, name string) (m.Path, bool) {
	want := name + libraryFileExt
	for _, e := range entries {
		if strings.EqualFold(path.Base(string(e)), want) {
			return e, true
		}
	}
	return "", false
}
