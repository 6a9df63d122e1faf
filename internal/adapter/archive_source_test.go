package adapter

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "slinx.dev/pkg/slinx/internal/model"
)

func buildArchive(t *testing.T, files map[string]string) *zip.Reader {
	t.Helper()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return r
}

func TestArchiveSource_Read(t *testing.T) {
	src := NewArchiveSource(buildArchive(t, map[string]string{
		"simulink/systems/system_root.xml": "<System/>",
		"simulink/graphicalInterface.json": "{}",
	}))

	text, err := src.Read("simulink/systems/system_root.xml")
	require.NoError(t, err)
	assert.Equal(t, "<System/>", text)

	// Spellings normalize the same way the other sources do.
	text, err = src.Read("./simulink/graphicalInterface.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", text)

	_, err = src.Read("simulink/systems/missing.xml")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestArchiveSource_List(t *testing.T) {
	src := NewArchiveSource(buildArchive(t, map[string]string{
		"systems/b.xml":        "b",
		"systems/a.xml":        "a",
		"systems/nested/c.xml": "c",
	}))

	paths, err := src.List("systems")
	require.NoError(t, err)
	assert.Equal(t, []m.Path{"systems/a.xml", "systems/b.xml"}, paths)

	_, err = src.List("elsewhere")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestArchiveSource_CloseWithoutOwner(t *testing.T) {
	src := NewArchiveSource(buildArchive(t, map[string]string{"a.xml": "a"}))
	assert.NoError(t, src.Close())
}
