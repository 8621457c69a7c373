package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Save(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root)

	relPath, err := store.Save("Thai prawn curry", "photo.JPG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "uploads/recipe/thai-prawn-curry_"), "path was %s", relPath)
	assert.True(t, strings.HasSuffix(relPath, ".jpg"), "extension should be lowercased, path was %s", relPath)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestDiskStore_Save_UniquePaths(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	first, err := store.Save("Same title", "a.png", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save("Same title", "b.png", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
