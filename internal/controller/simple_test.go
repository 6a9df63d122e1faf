package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "slinx.dev/pkg/slinx/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return NewSimpleUI(cmd), out, errOut
}

func maskedSystem() *m.System {
	sid := 52
	display := "Position"
	return &m.System{
		Blocks: []m.Block{
			{Type: "Product", Name: "Product1", SID: &sid},
			{
				Type:        "SubSystem",
				Name:        "ControlMode",
				MaskDisplay: &display,
				Subsystem: &m.System{
					Blocks: []m.Block{{Type: "Gain", Name: "Kp"}},
				},
			},
			{Type: "SubSystem", Name: "Broken", SystemRef: "system_99"},
		},
	}
}

func TestDisplayBlocks(t *testing.T) {
	ui, out, _ := newTestUI()

	require.NoError(t, ui.DisplayBlocks(context.Background(), maskedSystem()))

	output := out.String()
	assert.Contains(t, output, "Product1")
	assert.Contains(t, output, "52")
	assert.Contains(t, output, "ControlMode/Kp")
	assert.Contains(t, output, "Position")
	assert.Contains(t, output, "Total: 4 block(s)")
}

func TestDisplayTree(t *testing.T) {
	ui, out, _ := newTestUI()

	require.NoError(t, ui.DisplayTree(context.Background(), maskedSystem()))

	output := out.String()
	assert.Contains(t, output, "├── Product1 (Product)")
	assert.Contains(t, output, "Kp (Gain)")
	assert.Contains(t, output, "[unresolved]")
	assert.Contains(t, output, "«Position»")
}

func TestDisplayReferences(t *testing.T) {
	ui, out, _ := newTestUI()

	gi := &m.GraphicalInterface{
		References: []m.ExternalFileReference{
			{Path: "a.slx", Reference: "Regler/Joint_Interpolator", SID: "245474", Kind: m.RefKindLibraryBlock},
			{Path: "b.slx", Reference: "Plant/Arm", SID: "7", Kind: m.RefKindUnknown, KindRaw: "DATA_DICTIONARY"},
		},
		Solver: m.SolverFixedStepDiscrete,
	}

	require.NoError(t, ui.DisplayReferences(context.Background(), gi))

	output := out.String()
	assert.Contains(t, output, "Regler/Joint_Interpolator")
	assert.Contains(t, output, "245474")
	assert.Contains(t, output, "unknown (DATA_DICTIONARY)")
	assert.Contains(t, output, "Solver: FixedStepDiscrete")
	assert.Contains(t, output, "Libraries: Regler")
}

func TestDisplayReferences_UnsetSolver(t *testing.T) {
	ui, out, _ := newTestUI()

	gi := &m.GraphicalInterface{SolverRaw: "ode45"}
	require.NoError(t, ui.DisplayReferences(context.Background(), gi))
	assert.Contains(t, out.String(), "Solver: unset (ode45)")
}

func TestDisplayLibraries(t *testing.T) {
	ui, out, _ := newTestUI()

	libs := []m.LibraryResolution{
		{Name: "Regler", Path: "libraries/Regler.slx", Found: true},
		{Name: "Util"},
	}
	require.NoError(t, ui.DisplayLibraries(context.Background(), libs))

	output := out.String()
	assert.Contains(t, output, "Library Regler: libraries/Regler.slx")
	assert.Contains(t, output, "Library Util: not found")
}

func TestDisplayData(t *testing.T) {
	ui, out, _ := newTestUI()

	require.NoError(t, ui.DisplayData(context.Background(), []byte("blocks: []\n")))
	assert.Equal(t, "blocks: []\n", out.String())
}

func TestDisplayDiagnostics(t *testing.T) {
	ui, out, errOut := newTestUI()

	ui.DisplayDiagnostics(context.Background(), []string{"first issue", "second issue"})

	assert.Empty(t, out.String(), "warnings go to stderr")
	assert.Contains(t, errOut.String(), "warning: first issue")
	assert.Contains(t, errOut.String(), "warning: second issue")
}

func TestDisplayBlocks_CancelledContext(t *testing.T) {
	ui, out, _ := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.DisplayBlocks(ctx, maskedSystem()))
	assert.Empty(t, out.String())
}
