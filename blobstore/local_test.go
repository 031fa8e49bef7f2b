package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(filepath.Join(t.TempDir(), "data"))

	require.NoError(t, s.Put(ctx, "idx.bin", []byte("payload")))

	got, err := s.Get(ctx, "idx.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "idx.bin", []byte("v1")))
	require.NoError(t, s.Put(ctx, "idx.bin", []byte("v2")))

	got, err := s.Get(ctx, "idx.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// No temp files left behind.
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"idx.bin"}, names)
}

func TestLocalStoreGetMissing(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	_, err := s.Get(context.Background(), "nope.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreListMissingRoot(t *testing.T) {
	s := NewLocalStore(filepath.Join(t.TempDir(), "never-created"))

	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStoreListSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.bin", []byte("x")))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bin"}, names)
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "a.bin", []byte("x")))
	require.NoError(t, s.Delete(ctx, "a.bin"))
	require.NoError(t, s.Delete(ctx, "a.bin")) // idempotent

	_, err := s.Get(ctx, "a.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreCreatesRootOnPut(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	s := NewLocalStore(root)

	require.NoError(t, s.Put(context.Background(), "a.bin", []byte("x")))

	_, err := os.Stat(filepath.Join(root, "a.bin"))
	assert.NoError(t, err)
}
