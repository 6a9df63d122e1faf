package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "slinx.dev/pkg/slinx/internal/model"
)

// SimpleUI implements UI using a cobra Command's writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

var (
	subsystemStyle    = lipgloss.NewStyle().Bold(true)
	commentedStyle    = lipgloss.NewStyle().Faint(true)
	unresolvedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	maskDisplayStyle  = lipgloss.NewStyle().Italic(true)
	treeConnectorTee  = "├── "
	treeConnectorEnd  = "└── "
	treeConnectorPipe = "│   "
	treeIndent        = "    "
)

// DisplayBlocks renders every block of the tree as a table.
func (s *SimpleUI) DisplayBlocks(ctx context.Context, sys *m.System) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tableStr, total := renderBlockTable(sys)
	s.printf("%s", tableStr)
	s.printf("Total: %d block(s)\n", total)

	return nil
}

func renderBlockTable(sys *m.System) (string, int) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Type", "SID", "Display"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	total := 0

	sys.WalkBlocks(func(path []string, b *m.Block) {
		total++

		sid := ""
		if b.SID != nil {
			sid = fmt.Sprintf("%d", *b.SID)
		}

		display := ""
		if b.MaskDisplay != nil {
			display = *b.MaskDisplay
		}

		full := b.Name
		if len(path) > 0 {
			full = strings.Join(path, "/") + "/" + b.Name
		}

		table.Append([]string{full, b.Type, sid, display})
	})

	table.Render()

	return buf.String(), total
}

// DisplayTree renders the subsystem hierarchy with one line per block.
func (s *SimpleUI) DisplayTree(ctx context.Context, sys *m.System) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var out strings.Builder
	renderTree(&out, sys, "")
	s.printf("%s", out.String())

	return nil
}

func renderTree(out *strings.Builder, sys *m.System, prefix string) {
	for i := range sys.Blocks {
		b := &sys.Blocks[i]

		connector := treeConnectorTee
		childPrefix := prefix + treeConnectorPipe
		if i == len(sys.Blocks)-1 {
			connector = treeConnectorEnd
			childPrefix = prefix + treeIndent
		}

		out.WriteString(prefix + connector + renderTreeLabel(b) + "\n")

		if b.Subsystem != nil {
			renderTree(out, b.Subsystem, childPrefix)
		}
	}
}

func renderTreeLabel(b *m.Block) string {
	label := fmt.Sprintf("%s (%s)", b.Name, b.Type)

	switch {
	case b.Commented:
		label = commentedStyle.Render(label)
	case b.UnresolvedSubsystem():
		label = unresolvedStyle.Render(label + " [unresolved]")
	case b.Subsystem != nil:
		label = subsystemStyle.Render(label)
	}

	if b.MaskDisplay != nil {
		label += " " + maskDisplayStyle.Render("«"+*b.MaskDisplay+"»")
	}

	return label
}

// DisplayReferences renders the manifest entries, solver and library names.
func (s *SimpleUI) DisplayReferences(ctx context.Context, gi *m.GraphicalInterface) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Reference", "Kind", "SID", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, ref := range gi.References {
		kind := string(ref.Kind)
		if ref.Kind == m.RefKindUnknown && ref.KindRaw != "" {
			kind = fmt.Sprintf("unknown (%s)", ref.KindRaw)
		}
		table.Append([]string{ref.Reference, kind, ref.SID, ref.Path})
	}

	table.Render()

	s.printf("%s", buf.String())

	solver := string(gi.Solver)
	if gi.Solver == m.SolverUnset {
		solver = "unset"
		if gi.SolverRaw != "" {
			solver = fmt.Sprintf("unset (%s)", gi.SolverRaw)
		}
	}
	s.printf("Solver: %s\n", solver)

	if libs := gi.LibraryNames(); len(libs) > 0 {
		s.printf("Libraries: %s\n", strings.Join(libs, ", "))
	}

	return nil
}

// DisplayLibraries renders where each referenced library was located.
func (s *SimpleUI) DisplayLibraries(ctx context.Context, libs []m.LibraryResolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, lib := range libs {
		if lib.Found {
			s.printf("Library %s: %s\n", lib.Name, lib.Path)
			continue
		}
		s.printf("Library %s: %s\n", lib.Name, unresolvedStyle.Render("not found"))
	}

	return nil
}

// DisplayData writes already-serialized output.
func (s *SimpleUI) DisplayData(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(data)

	return err
}

// DisplayDiagnostics renders the non-fatal issues of a parse to stderr.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, warnings []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, w := range warnings {
		_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "warning: %s\n", w)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
