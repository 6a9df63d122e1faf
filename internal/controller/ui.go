// Package controller renders parsed models for the CLI: block tables, the
// subsystem tree and manifest summaries.
package controller

import (
	"context"

	m "slinx.dev/pkg/slinx/internal/model"
)

// UI is the output port of the workflow. Implementations render to a cobra
// command's writer; nothing in the domain prints directly.
type UI interface {
	// DisplayBlocks renders every block of the tree as a table.
	DisplayBlocks(ctx context.Context, sys *m.System) error

	// DisplayTree renders the subsystem hierarchy.
	DisplayTree(ctx context.Context, sys *m.System) error

	// DisplayReferences renders the manifest entries, solver and library
	// names.
	DisplayReferences(ctx context.Context, gi *m.GraphicalInterface) error

	// DisplayLibraries renders where each referenced library was located.
	DisplayLibraries(ctx context.Context, libs []m.LibraryResolution) error

	// DisplayData writes already-serialized output (e.g. a YAML export).
	DisplayData(ctx context.Context, data []byte) error

	// DisplayDiagnostics renders the non-fatal issues of a parse.
	DisplayDiagnostics(ctx context.Context, warnings []string)
}
