package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"slinx.dev/pkg/slinx/internal/adapter"
	"slinx.dev/pkg/slinx/internal/controller"
	m "slinx.dev/pkg/slinx/internal/model"
)

// Workflow ties the parser, the content source and the UI together for the
// CLI commands.
type Workflow interface {
	// Blocks parses a system file and renders its block table.
	Blocks(ctx context.Context, args ParseArgs) error

	// Tree parses a system file and renders the subsystem hierarchy.
	Tree(ctx context.Context, args ParseArgs) error

	// Refs parses a graphical-interface manifest and renders its entries,
	// resolving the referenced libraries against the search paths.
	Refs(ctx context.Context, args RefsArgs) error

	// Export parses a system file and serializes the tree.
	Export(ctx context.Context, args ExportArgs) error
}

// ParseArgs names the input of a parse-and-render operation.
type ParseArgs struct {
	// Root is the model root directory the content source resolves
	// against.
	Root m.Path

	// File is the system or manifest file to parse, relative to Root.
	File m.Path

	// ShowDiagnostics surfaces contained parse issues as warnings.
	ShowDiagnostics bool
}

// RefsArgs names the input of a manifest render operation.
type RefsArgs struct {
	ParseArgs

	// LibraryPaths are the directories searched, in order, for the files
	// backing the referenced libraries. Empty disables resolution.
	LibraryPaths []m.Path
}

// ExportFormat selects the serialization of an export.
type ExportFormat string

// Supported export formats.
const (
	ExportYAML ExportFormat = "yaml"
	ExportGob  ExportFormat = "gob"
)

// ExportArgs names the input of an export operation.
type ExportArgs struct {
	ParseArgs

	Format ExportFormat

	// Out is the destination file for gob exports. YAML goes to the UI.
	Out string
}

// SourceFactory opens a content source for a model root. Roots pointing at a
// zip archive open the archive; plain directories open the filesystem.
type SourceFactory func(root m.Path) (adapter.ContentSource, error)

type workflow struct {
	// newSource builds a fresh content source per operation: each parse
	// owns its own handle, so concurrent callers never share state.
	newSource SourceFactory

	store adapter.ModelStore
	ui    controller.UI
}

// NewWorkflow wires a workflow from its collaborators.
func NewWorkflow(newSource SourceFactory, store adapter.ModelStore, ui controller.UI) Workflow {
	return &workflow{newSource: newSource, store: store, ui: ui}
}

func (w *workflow) parseSystem(args ParseArgs) (*m.System, *Parser, error) {
	source, err := w.newSource(args.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("open model root %s: %w", args.Root, err)
	}
	defer closeSource(source)

	parser := NewParser(source)
	sys, err := parser.ParseSystemFile(args.File)
	if err != nil {
		return nil, nil, err
	}
	return sys, parser, nil
}

func closeSource(source adapter.ContentSource) {
	if closer, ok := source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("closing content source", "error", err)
		}
	}
}

func (w *workflow) reportDiagnostics(ctx context.Context, args ParseArgs, parser *Parser) {
	diags := parser.Diagnostics()
	if len(diags) == 0 {
		return
	}
	slog.Info("parse finished with contained issues", "file", args.File, "issues", len(diags))
	if !args.ShowDiagnostics {
		return
	}
	warnings := make([]string, len(diags))
	for i, d := range diags {
		warnings[i] = d.String()
	}
	w.ui.DisplayDiagnostics(ctx, warnings)
}

// Blocks implements Workflow.
func (w *workflow) Blocks(ctx context.Context, args ParseArgs) error {
	sys, parser, err := w.parseSystem(args)
	if err != nil {
		return err
	}
	w.reportDiagnostics(ctx, args, parser)
	return w.ui.DisplayBlocks(ctx, sys)
}

// Tree implements Workflow.
func (w *workflow) Tree(ctx context.Context, args ParseArgs) error {
	sys, parser, err := w.parseSystem(args)
	if err != nil {
		return err
	}
	w.reportDiagnostics(ctx, args, parser)
	return w.ui.DisplayTree(ctx, sys)
}

// Refs implements Workflow.
func (w *workflow) Refs(ctx context.Context, args RefsArgs) error {
	source, err := w.newSource(args.Root)
	if err != nil {
		return fmt.Errorf("open model root %s: %w", args.Root, err)
	}
	defer closeSource(source)

	parser := NewParser(source)
	gi, err := parser.ParseGraphicalInterfaceFile(args.File)
	if err != nil {
		return err
	}
	w.reportDiagnostics(ctx, args.ParseArgs, parser)
	if err := w.ui.DisplayReferences(ctx, gi); err != nil {
		return err
	}

	names := gi.LibraryNames()
	if len(names) == 0 || len(args.LibraryPaths) == 0 {
		return nil
	}
	return w.ui.DisplayLibraries(ctx, parser.ResolveLibraries(names, args.LibraryPaths))
}

// Export implements Workflow.
func (w *workflow) Export(ctx context.Context, args ExportArgs) error {
	sys, parser, err := w.parseSystem(args.ParseArgs)
	if err != nil {
		return err
	}
	w.reportDiagnostics(ctx, args.ParseArgs, parser)

	switch args.Format {
	case ExportGob:
		if args.Out == "" {
			return fmt.Errorf("gob export requires an output path")
		}
		return w.store.Save(args.Out, sys)
	case ExportYAML, "":
		data, err := yaml.Marshal(sys)
		if err != nil {
			return fmt.Errorf("marshal model: %w", err)
		}
		return w.ui.DisplayData(ctx, data)
	default:
		return fmt.Errorf("unsupported export format %q", args.Format)
	}
}
