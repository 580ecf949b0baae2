package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for new documents.
const DefaultFileMode os.FileMode = 0o644

// DefaultDirMode is the permission mode for directories created on save.
const DefaultDirMode os.FileMode = 0o755

// WriteAtomic replaces path with content through a temp file in the same
// directory, synced and renamed into place. Missing parent directories are
// created. If mode is 0, DefaultFileMode is used. On error the original file
// is left untouched and the temp file is removed.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteIfChanged writes content to path only when it differs from what is on
// disk. It reports whether a write happened.
func WriteIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return false, fmt.Errorf("read existing: %w", err)
	case bytes.Equal(existing, content):
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// WriteGuarded writes content to snap.Path unless the file changed since
// snap was taken, in which case it returns ErrChangedOnDisk. A nil snap
// means the file is new and must not exist yet.
func WriteGuarded(ctx context.Context, snap *Snapshot, path string, content []byte) error {
	mode := DefaultFileMode
	if snap == nil {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s already exists", ErrChangedOnDisk, path)
		}
	} else {
		changed, err := Changed(ctx, snap)
		if err != nil {
			return err
		}
		if changed {
			return fmt.Errorf("%w: %s", ErrChangedOnDisk, snap.Path)
		}
		mode = snap.Mode.Perm()
	}
	return WriteAtomic(ctx, path, content, mode)
}
