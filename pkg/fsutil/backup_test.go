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

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.md.gojot.bak", fsutil.BackupPath("a.md", fsutil.BackupModeSidecar))
	assert.Empty(t, fsutil.BackupPath("a.md", fsutil.BackupModeNone))
}

func TestParseBackupMode(t *testing.T) {
	t.Parallel()

	mode, err := fsutil.ParseBackupMode("")
	require.NoError(t, err)
	assert.Equal(t, fsutil.BackupModeSidecar, mode)

	mode, err = fsutil.ParseBackupMode("none")
	require.NoError(t, err)
	assert.Equal(t, fsutil.BackupModeNone, mode)

	_, err = fsutil.ParseBackupMode("cloud")
	require.Error(t, err)
}

func TestBackupLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "note.md")
	writeFile(t, path, "original")
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	// A second backup keeps the first one.
	writeFile(t, path, "edited")
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	restored, err := fsutil.RestoreBackup(ctx, path, cfg.Mode)
	require.NoError(t, err)
	assert.True(t, restored)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	removed, err := fsutil.RemoveBackup(path, cfg.Mode)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, fsutil.BackupPath(path, cfg.Mode))

	removed, err = fsutil.RemoveBackup(path, cfg.Mode)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBackupDisabledOrMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	writeFile(t, path, "x")

	created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
	require.NoError(t, err)
	assert.False(t, created)

	created, err = fsutil.CreateBackup(ctx, filepath.Join(dir, "missing.md"),
		fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
	require.NoError(t, err)
	assert.False(t, created)

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.False(t, restored)
}
