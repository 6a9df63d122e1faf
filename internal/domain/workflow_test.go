package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"slinx.dev/pkg/slinx/internal/adapter"
	m "slinx.dev/pkg/slinx/internal/model"
)

// recordingUI captures what the workflow asked the UI to render.
type recordingUI struct {
	blocks   *m.System
	tree     *m.System
	refs     *m.GraphicalInterface
	libs     []m.LibraryResolution
	data     []byte
	warnings []string
}

func (r *recordingUI) DisplayBlocks(_ context.Context, sys *m.System) error {
	r.blocks = sys
	return nil
}

func (r *recordingUI) DisplayTree(_ context.Context, sys *m.System) error {
	r.tree = sys
	return nil
}

func (r *recordingUI) DisplayReferences(_ context.Context, gi *m.GraphicalInterface) error {
	r.refs = gi
	return nil
}

func (r *recordingUI) DisplayLibraries(_ context.Context, libs []m.LibraryResolution) error {
	r.libs = libs
	return nil
}

func (r *recordingUI) DisplayData(_ context.Context, data []byte) error {
	r.data = data
	return nil
}

func (r *recordingUI) DisplayDiagnostics(_ context.Context, warnings []string) {
	r.warnings = append(r.warnings, warnings...)
}

func memFactory(files map[m.Path]string) SourceFactory {
	return func(_ m.Path) (adapter.ContentSource, error) {
		return adapter.NewMemorySource(files), nil
	}
}

const workflowSystemXML = `<System>
  <Block BlockType="Product" Name="Product1" SID="52"/>
</System>`

func TestWorkflowBlocks(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{"system_root.xml": workflowSystemXML}), adapter.NewGobModelStore(), ui)

	err := wf.Blocks(context.Background(), ParseArgs{Root: ".", File: "system_root.xml"})
	require.NoError(t, err)
	require.NotNil(t, ui.blocks)
	assert.NotNil(t, ui.blocks.BlockByName("Product1"))
}

func TestWorkflowTree(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{"system_root.xml": workflowSystemXML}), adapter.NewGobModelStore(), ui)

	err := wf.Tree(context.Background(), ParseArgs{Root: ".", File: "system_root.xml"})
	require.NoError(t, err)
	assert.NotNil(t, ui.tree)
}

func TestWorkflowBlocks_ParseFailure(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{}), adapter.NewGobModelStore(), ui)

	err := wf.Blocks(context.Background(), ParseArgs{Root: ".", File: "system_root.xml"})
	require.Error(t, err)
	assert.Nil(t, ui.blocks)
}

func TestWorkflowDiagnosticsSurfaceOnRequest(t *testing.T) {
	files := map[m.Path]string{
		"system_root.xml": `<System>
  <Block BlockType="SubSystem" Name="Broken" SID="1">
    <System Ref="system_gone"/>
  </Block>
</System>`,
	}

	t.Run("hidden by default", func(t *testing.T) {
		ui := &recordingUI{}
		wf := NewWorkflow(memFactory(files), adapter.NewGobModelStore(), ui)
		require.NoError(t, wf.Blocks(context.Background(), ParseArgs{Root: ".", File: "system_root.xml"}))
		assert.Empty(t, ui.warnings)
	})

	t.Run("shown when asked", func(t *testing.T) {
		ui := &recordingUI{}
		wf := NewWorkflow(memFactory(files), adapter.NewGobModelStore(), ui)
		require.NoError(t, wf.Blocks(context.Background(), ParseArgs{Root: ".", File: "system_root.xml", ShowDiagnostics: true}))
		require.Len(t, ui.warnings, 1)
		assert.Contains(t, ui.warnings[0], "Broken")
	})
}

func TestWorkflowRefs(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{
		"graphicalInterface.json": `{
  "GraphicalInterface": {
    "ExternalFileReferences": [
      {"Path": "a.slx", "Reference": "Lib/A", "SID": "1", "Type": "LIBRARY_BLOCK"}
    ],
    "SolverName": "FixedStepDiscrete"
  }
}`,
	}), adapter.NewGobModelStore(), ui)

	err := wf.Refs(context.Background(), RefsArgs{ParseArgs: ParseArgs{Root: ".", File: "graphicalInterface.json"}})
	require.NoError(t, err)
	require.NotNil(t, ui.refs)
	assert.Equal(t, m.SolverFixedStepDiscrete, ui.refs.Solver)
	assert.Nil(t, ui.libs)
}

func TestWorkflowRefs_ResolvesLibraries(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{
		"graphicalInterface.json": `{
  "GraphicalInterface": {
    "ExternalFileReferences": [
      {"Path": "Regler/A.slx", "Reference": "Regler/A", "SID": "1", "Type": "LIBRARY_BLOCK"},
      {"Path": "Util/B.slx", "Reference": "Util/B", "SID": "2", "Type": "LIBRARY_BLOCK"}
    ],
    "SolverName": "FixedStepDiscrete"
  }
}`,
		"libraries/Regler.slx": "",
	}), adapter.NewGobModelStore(), ui)

	err := wf.Refs(context.Background(), RefsArgs{
		ParseArgs:    ParseArgs{Root: ".", File: "graphicalInterface.json"},
		LibraryPaths: []m.Path{"libraries"},
	})
	require.NoError(t, err)
	require.Len(t, ui.libs, 2)
	assert.Equal(t, "Regler", ui.libs[0].Name)
	assert.True(t, ui.libs[0].Found)
	assert.Equal(t, m.Path("libraries/Regler.slx"), ui.libs[0].Path)
	assert.Equal(t, "Util", ui.libs[1].Name)
	assert.False(t, ui.libs[1].Found)
}

func TestWorkflowExport_YAML(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{"system_root.xml": workflowSystemXML}), adapter.NewGobModelStore(), ui)

	err := wf.Export(context.Background(), ExportArgs{
		ParseArgs: ParseArgs{Root: ".", File: "system_root.xml"},
		Format:    ExportYAML,
	})
	require.NoError(t, err)
	require.NotEmpty(t, ui.data)

	var decoded m.System
	require.NoError(t, yaml.Unmarshal(ui.data, &decoded))
	require.Len(t, decoded.Blocks, 1)
	assert.Equal(t, "Product1", decoded.Blocks[0].Name)
}

func TestWorkflowExport_Gob(t *testing.T) {
	ui := &recordingUI{}
	store := adapter.NewGobModelStore()
	wf := NewWorkflow(memFactory(map[m.Path]string{"system_root.xml": workflowSystemXML}), store, ui)

	out := filepath.Join(t.TempDir(), "model.bin")
	err := wf.Export(context.Background(), ExportArgs{
		ParseArgs: ParseArgs{Root: ".", File: "system_root.xml"},
		Format:    ExportGob,
		Out:       out,
	})
	require.NoError(t, err)

	loaded, err := store.Load(out)
	require.NoError(t, err)
	assert.NotNil(t, loaded.BlockByName("Product1"))
}

func TestWorkflowExport_Rejections(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(memFactory(map[m.Path]string{"system_root.xml": workflowSystemXML}), adapter.NewGobModelStore(), ui)

	t.Run("gob without output path", func(t *testing.T) {
		err := wf.Export(context.Background(), ExportArgs{
			ParseArgs: ParseArgs{Root: ".", File: "system_root.xml"},
			Format:    ExportGob,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output path")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := wf.Export(context.Background(), ExportArgs{
			ParseArgs: ParseArgs{Root: ".", File: "system_root.xml"},
			Format:    ExportFormat("toml"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported export format")
	})
}
