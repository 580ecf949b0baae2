package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates file and parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "2025", "03", "note.md")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("body"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "body", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("overwrites and keeps requested mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "note.md")
		writeFile(t, path, "old")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(ctx, filepath.Join(dir, "a.md"), []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.md", entries[0].Name())
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		path := filepath.Join(t.TempDir(), "a.md")

		require.ErrorIs(t, fsutil.WriteAtomic(cctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.md")

	wrote, err := fsutil.WriteIfChanged(ctx, path, []byte("v1"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = fsutil.WriteIfChanged(ctx, path, []byte("v1"), 0)
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = fsutil.WriteIfChanged(ctx, path, []byte("v2"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)
}

func TestWriteGuarded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes when untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "v1")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, fsutil.WriteGuarded(ctx, snap, path, []byte("v2")))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("refuses after external edit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		writeFile(t, path, "v1")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		writeFile(t, path, "someone else")
		err = fsutil.WriteGuarded(ctx, snap, path, []byte("v2"))
		require.ErrorIs(t, err, fsutil.ErrChangedOnDisk)
	})

	t.Run("new file must not exist", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.md")
		require.NoError(t, fsutil.WriteGuarded(ctx, nil, path, []byte("first")))
		require.ErrorIs(t, fsutil.WriteGuarded(ctx, nil, path, []byte("again")), fsutil.ErrChangedOnDisk)
	})
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("---\nid: x\n---\n\n# Title"))
	f.Add([]byte("\x00\x01\x02\x03"))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.md")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, content, 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})
}
