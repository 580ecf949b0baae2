package document

import (
	"context"
	"fmt"

	"github.com/yaklabco/gojot/pkg/fsutil"
)

// Load reads and parses the document at path. The file's state is recorded
// so Save can detect edits made by other programs in the meantime.
func Load(ctx context.Context, path string, opts ParseOptions) (*Document, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	doc, err := Parse(path, content, opts)
	if err != nil {
		return nil, err
	}
	doc.snap = snap
	return doc, nil
}

// Save writes d to d.Path. A document that was loaded is only overwritten
// if the file is unchanged since Load; a new document must not clobber an
// existing file. Either conflict returns fsutil.ErrChangedOnDisk. When
// backups are enabled the previous content is kept alongside first.
func Save(ctx context.Context, d *Document, backups fsutil.BackupConfig) error {
	if d.Path == "" {
		return fmt.Errorf("save document: %w", ErrNoPath)
	}

	if d.snap != nil {
		if _, err := fsutil.CreateBackup(ctx, d.Path, backups); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
	}

	if err := fsutil.WriteGuarded(ctx, d.snap, d.Path, Serialize(d)); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	_, snap, err := fsutil.ReadFile(ctx, d.Path)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	d.snap = snap
	return nil
}

// Loaded reports whether d came from, or has been written to, disk.
func (d *Document) Loaded() bool {
	return d.snap != nil
}
