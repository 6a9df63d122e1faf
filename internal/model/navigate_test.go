package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *System {
	return &System{
		Blocks: []Block{
			{Type: "Inport", Name: "in"},
			{
				Type: "SubSystem",
				Name: "Controller",
				Subsystem: &System{
					Blocks: []Block{
						{Type: "Gain", Name: "Kp"},
						{
							Type: "SubSystem",
							Name: "Limiter",
							Subsystem: &System{
								Blocks: []Block{{Type: "Saturate", Name: "Sat"}},
							},
						},
					},
				},
			},
			{Type: "SubSystem", Name: "Broken", SystemRef: "system_99"},
			{Type: "Outport", Name: "out"},
		},
	}
}

func TestBlockByName(t *testing.T) {
	sys := sampleTree()

	blk := sys.BlockByName("Controller")
	require.NotNil(t, blk)
	assert.Equal(t, "SubSystem", blk.Type)

	assert.Nil(t, sys.BlockByName("Kp"), "lookup is not recursive")
	assert.Nil(t, sys.BlockByName("missing"))
}

func TestResolvePath(t *testing.T) {
	sys := sampleTree()

	t.Run("empty path resolves to the receiver", func(t *testing.T) {
		got, ok := sys.ResolvePath("")
		require.True(t, ok)
		assert.Same(t, sys, got)
	})

	t.Run("nested path", func(t *testing.T) {
		got, ok := sys.ResolvePath("Controller/Limiter")
		require.True(t, ok)
		require.Len(t, got.Blocks, 1)
		assert.Equal(t, "Sat", got.Blocks[0].Name)
	})

	t.Run("leading and trailing slashes are ignored", func(t *testing.T) {
		got, ok := sys.ResolvePath("/Controller/")
		require.True(t, ok)
		assert.Equal(t, "Kp", got.Blocks[0].Name)
	})

	t.Run("missing segment", func(t *testing.T) {
		_, ok := sys.ResolvePath("Controller/Nope")
		assert.False(t, ok)
	})

	t.Run("segment without a nested system", func(t *testing.T) {
		_, ok := sys.ResolvePath("in")
		assert.False(t, ok)
	})
}

func TestWalkBlocksOrder(t *testing.T) {
	sys := sampleTree()

	var visited []string
	sys.WalkBlocks(func(path []string, b *Block) {
		visited = append(visited, joinBlockPath(path, b.Name))
	})

	want := []string{
		"in",
		"Controller",
		"Controller/Kp",
		"Controller/Limiter",
		"Controller/Limiter/Sat",
		"Broken",
		"out",
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestFindBlocksByType(t *testing.T) {
	sys := sampleTree()

	matches := sys.FindBlocksByType("SubSystem")
	require.Len(t, matches, 3)
	assert.Equal(t, "Controller", matches[0].Path)
	assert.Equal(t, "Controller/Limiter", matches[1].Path)
	assert.Equal(t, "Broken", matches[2].Path)

	assert.Empty(t, sys.FindBlocksByType("Scope"))
}

func TestUnresolvedSubsystem(t *testing.T) {
	sys := sampleTree()

	assert.True(t, sys.BlockByName("Broken").UnresolvedSubsystem())
	assert.False(t, sys.BlockByName("Controller").UnresolvedSubsystem())
	assert.False(t, sys.BlockByName("in").UnresolvedSubsystem())
}
