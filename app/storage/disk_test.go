package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return store
}

func TestDiskStoreSaveAndDelete(t *testing.T) {
	store := newTestStore(t)

	img, err := store.Save("aadhar", "card.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.ID, "aadhar"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(img.ID, ".png"))
	assert.True(t, strings.HasPrefix(img.URL, "/uploads/aadhar/"))

	data, err := os.ReadFile(filepath.Join(store.root, img.ID))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(img.ID))
	_, err = os.Stat(filepath.Join(store.root, img.ID))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreDistinctIDs(t *testing.T) {
	store := newTestStore(t)

	a, err := store.Save("aadhar", "card.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save("aadhar", "card.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestDiskStoreExtensionLowercased(t *testing.T) {
	store := newTestStore(t)

	img, err := store.Save("aadhar", "CARD.JPG", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(img.ID, ".jpg"))
}

func TestDiskStoreFolderSanitized(t *testing.T) {
	store := newTestStore(t)

	img, err := store.Save("../../etc", "f.png", strings.NewReader("x"))
	require.NoError(t, err)

	// The file must land under root regardless of the folder name.
	assert.True(t, strings.HasPrefix(img.ID, "etc"+string(filepath.Separator)))
	_, err = os.Stat(filepath.Join(store.root, img.ID))
	assert.NoError(t, err)
}

func TestDiskStoreDeleteMissingIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete("aadhar/does-not-exist.png"))
}

func TestDiskStoreDeleteRefusesEscape(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	outside := filepath.Join(dir, "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.NoError(t, store.Delete("../victim.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
