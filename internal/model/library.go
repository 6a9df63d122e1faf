package model

// LibraryResolution records where the file backing a referenced library was
// located, or that no search path contains it.
type LibraryResolution struct {
	// Name is the library name, the first segment of a manifest reference.
	Name string

	// Path is the located library file. Empty when Found is false.
	Path Path

	Found bool
}
