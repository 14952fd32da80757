package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w, err := New(t.TempDir())
	require.NoError(t, err)
	return w
}

func TestCreateAndRead(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	created, err := w.Create(ctx, map[string]any{"filename": "notes.txt", "content": "hello"})
	require.NoError(t, err)
	result := created.(map[string]any)
	assert.Equal(t, "notes.txt", result["filename"])
	assert.Equal(t, 5, result["size"])

	read, err := w.Read(ctx, map[string]any{"filename": "notes.txt"})
	require.NoError(t, err)
	result = read.(map[string]any)
	assert.Equal(t, "hello", result["content"])
	assert.Equal(t, 5, result["size"])
	assert.NotEmpty(t, result["modified"])
}

func TestCreateRefusesOverwrite(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	_, err := w.Create(ctx, map[string]any{"filename": "notes.txt", "content": "v1"})
	require.NoError(t, err)

	_, err = w.Create(ctx, map[string]any{"filename": "notes.txt", "content": "v2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	read, err := w.Read(ctx, map[string]any{"filename": "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, "v1", read.(map[string]any)["content"])
}

func TestReadMissingFile(t *testing.T) {
	w := newTestWorkspace(t)

	_, err := w.Read(context.Background(), map[string]any{"filename": "ghost.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestListFiles(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	empty, err := w.List(ctx, nil)
	require.NoError(t, err)
	result := empty.(map[string]any)
	assert.Equal(t, 0, result["count"])
	assert.Equal(t, w.Root(), result["workspace"])

	for _, name := range []string{"a.txt", "b.txt"} {
		_, err := w.Create(ctx, map[string]any{"filename": name, "content": "x"})
		require.NoError(t, err)
	}

	listed, err := w.List(ctx, nil)
	require.NoError(t, err)
	result = listed.(map[string]any)
	assert.Equal(t, 2, result["count"])
	files := result["files"].([]map[string]any)
	require.Len(t, files, 2)
	assert.NotEmpty(t, files[0]["name"])
	assert.NotEmpty(t, files[0]["modified"])
}

func TestDelete(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	_, err := w.Create(ctx, map[string]any{"filename": "temp.txt", "content": "x"})
	require.NoError(t, err)

	deleted, err := w.Delete(ctx, map[string]any{"filename": "temp.txt"})
	require.NoError(t, err)
	assert.Equal(t, true, deleted.(map[string]any)["deleted"])

	_, err = w.Delete(ctx, map[string]any{"filename": "temp.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRejectsEscapingFilenames(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	for _, name := range []string{"../outside.txt", "/etc/passwd", "a/../../b", ""} {
		_, err := w.Create(ctx, map[string]any{"filename": name, "content": "x"})
		assert.Error(t, err, "filename %q", name)
	}
}

func TestCapabilities(t *testing.T) {
	w := newTestWorkspace(t)

	descs := w.Capabilities()
	require.Len(t, descs, 4)

	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
		require.NotNil(t, d.Handler, "capability %s", d.Name)
	}
	assert.Equal(t, []string{"create_file", "read_file", "list_files", "delete_file"}, names)
}
