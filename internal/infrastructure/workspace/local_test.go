package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParentsAndReplaces(t *testing.T) {
	t.Chdir(t.TempDir())
	fs := NewLocal()

	require.NoError(t, fs.WriteFile(filepath.Join("nested", "dir", "a.txt"), []byte("first")))
	require.NoError(t, fs.WriteFile(filepath.Join("nested", "dir", "a.txt"), []byte("hi")))

	data, err := fs.ReadFile(filepath.Join("nested", "dir", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestRemoveDeletesOnlyTheFile(t *testing.T) {
	t.Chdir(t.TempDir())
	fs := NewLocal()
	require.NoError(t, os.WriteFile("a.txt", []byte("x"), 0o644))
	require.NoError(t, os.WriteFile("b.txt", []byte("y"), 0o644))

	require.NoError(t, fs.Remove("a.txt"))

	_, err := os.Stat("a.txt")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat("b.txt")
	assert.NoError(t, err)
}

func TestRemoveMissingFileFails(t *testing.T) {
	t.Chdir(t.TempDir())
	err := NewLocal().Remove("missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListNamesAndDetails(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("b.txt", []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir("a", 0o755))
	fs := NewLocal()

	names, err := fs.List(false)
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "a", names[0].Name)
	assert.True(t, names[0].IsDir)
	assert.Equal(t, "b.txt", names[1].Name)
	assert.Zero(t, names[1].Size)
	assert.Empty(t, names[1].Mode)

	details, err := fs.List(true)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.EqualValues(t, 5, details[1].Size)
	assert.NotEmpty(t, details[1].Mode)
	assert.False(t, details[1].ModTime.IsZero())
}
