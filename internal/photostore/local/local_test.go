package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mealai/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestStoreSaveAndGet(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "history", domain.Image{Data: []byte("fake png"), MimeType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "history/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(key)))

	img, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, []byte("fake png"), img.Data)
}

func TestStoreSaveUnknownMimeDefaultsToJPEG(t *testing.T) {
	store, _ := newTestStore(t)

	key, err := store.Save(context.Background(), "history", domain.Image{Data: []byte{1, 2}, MimeType: "image/heic"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	img, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MimeType)
}

func TestStoreSaveRejectsEmptyImage(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Save(context.Background(), "history", domain.Image{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "history", domain.Image{Data: []byte("x"), MimeType: "image/jpeg"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, key), domain.ErrNotFound)
}

func TestStoreGetNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "history/missing.jpg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreRejectsTraversal(t *testing.T) {
	store, dir := newTestStore(t)
	outside := filepath.Join(filepath.Dir(dir), "secret.jpg")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0600))
	t.Cleanup(func() { _ = os.Remove(outside) })

	_, err := store.Get(context.Background(), "../secret.jpg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, store.Delete(context.Background(), "../secret.jpg"), domain.ErrInvalidInput)
	assert.FileExists(t, outside)
}
