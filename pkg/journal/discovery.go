package journal

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/gojot/pkg/fsutil"
)

// Discover finds documents under opts.Dir. It returns a sorted list of
// absolute paths. Hidden files and directories and backups are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	root, err := resolveDir(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve notes directory: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	extensions := opts.effectiveExtensions()
	var files []string

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path != root && (strings.HasPrefix(entry.Name(), ".") || excluded(relPath, opts.ExcludeGlobs)) {
				return filepath.SkipDir
			}
			return nil
		}

		// Directory symlinks are not followed.
		if entry.Type()&fs.ModeSymlink != 0 {
			target, statErr := os.Stat(path)
			if statErr != nil || target.IsDir() {
				return nil //nolint:nilerr // Broken and directory symlinks are skipped.
			}
		}

		if strings.HasPrefix(entry.Name(), ".") || strings.HasSuffix(entry.Name(), fsutil.BackupSuffix) {
			return nil
		}
		if hasExtension(path, extensions) && !excluded(relPath, opts.ExcludeGlobs) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// resolveDir resolves dir, defaulting to os.Getwd().
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// excluded matches relPath against the exclude globs.
func excluded(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			if relPath == prefix || strings.HasPrefix(relPath, prefix+"/") {
				return true
			}
			continue
		}
		if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}
