package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStorePutWritesObject(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	size, err := store.Put(context.Background(), "owner-1/avatar.png", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	require.Equal(t, int64(len("fake-bytes")), size)

	contents, err := os.ReadFile(filepath.Join(store.root, "owner-1", "avatar.png"))
	require.NoError(t, err)
	require.Equal(t, "fake-bytes", string(contents))
}

func TestDiskStorePutHonorsCancelledContext(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "owner-1/file.txt", strings.NewReader("x"))
	require.Error(t, err)
}

func TestDiskStorePutConfinesKeysToRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt"))
	require.True(t, os.IsNotExist(statErr), "object must not be written outside the root")
}
