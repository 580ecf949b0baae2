package document_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/document"
	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

func TestSerialize(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)
	doc := &document.Document{
		Meta: document.Meta{
			ID:       "abc",
			Created:  created,
			Modified: created.Add(1500 * time.Millisecond),
		},
		Lines: []string{"# Title", "body"},
	}

	want := "---\nid: abc\ncreated: 2025-03-04T09:30:00.000Z\nmodified: 2025-03-04T09:30:01.500Z\n---\n\n# Title\nbody"
	assert.Equal(t, want, string(document.Serialize(doc)))
}

func TestSerializeUsesUTC(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("X", 2*60*60)
	doc := &document.Document{
		Meta:  document.Meta{ID: "x", Created: time.Date(2025, 1, 1, 2, 0, 0, 0, zone)},
		Lines: []string{""},
	}
	assert.Contains(t, string(document.Serialize(doc)), "created: 2025-01-01T00:00:00.000Z\n")
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 12, 31, 23, 59, 58, 123_000_000, time.UTC)
	original := &document.Document{
		Path:  "notes/entry.md",
		Meta:  document.Meta{ID: "id-1", Created: created, Modified: created.Add(time.Hour)},
		Lines: []string{"^ # Heading", "\t- bullet", "", "{{{JSX:<Timer duration={60} />}}}"},
	}

	parsed, err := document.Parse(original.Path, document.Serialize(original), document.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, original.Meta.ID, parsed.Meta.ID)
	assert.True(t, original.Meta.Created.Equal(parsed.Meta.Created))
	assert.True(t, original.Meta.Modified.Equal(parsed.Meta.Modified))
	assert.Equal(t, original.Lines, parsed.Lines)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("time from file name", func(t *testing.T) {
		t.Parallel()

		doc, err := document.Parse("/j/2025-03-04-093000.md", []byte("hello\nworld"),
			document.ParseOptions{Now: now, Location: time.UTC})
		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world"}, doc.Lines)
		assert.Equal(t, time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC), doc.Meta.Created)
		assert.Equal(t, doc.Meta.Created, doc.Meta.Modified)
		assert.Equal(t, document.IDFromPath("/j/2025-03-04-093000.md"), doc.Meta.ID)
	})

	t.Run("time from options", func(t *testing.T) {
		t.Parallel()

		doc, err := document.Parse("/j/random.md", []byte("text"), document.ParseOptions{Now: now})
		require.NoError(t, err)
		assert.Equal(t, now, doc.Meta.Created)
	})

	t.Run("stable id", func(t *testing.T) {
		t.Parallel()

		a, err := document.Parse("/j/a.md", nil, document.ParseOptions{Now: now})
		require.NoError(t, err)
		b, err := document.Parse("/j/a.md", []byte("other"), document.ParseOptions{Now: now})
		require.NoError(t, err)
		c, err := document.Parse("/j/c.md", nil, document.ParseOptions{Now: now})
		require.NoError(t, err)

		assert.Equal(t, a.Meta.ID, b.Meta.ID)
		assert.NotEqual(t, a.Meta.ID, c.Meta.ID)
		assert.Equal(t, []string{""}, a.Lines)
	})

	t.Run("opening rules are not frontmatter", func(t *testing.T) {
		t.Parallel()

		for _, content := range []string{
			"---\nsome notes\n---\n\nmore",
			"---\ntitle: [draft\n---\nmore",
			"---\nkey: value\n---\nmore",
			"---\n---\nmore",
		} {
			doc, err := document.Parse("/j/2025-01-02-030405.md", []byte(content),
				document.ParseOptions{Now: now, Location: time.UTC})
			require.NoError(t, err, content)
			assert.Equal(t, strings.Split(content, "\n"), doc.Lines, content)
			assert.Equal(t, document.IDFromPath("/j/2025-01-02-030405.md"), doc.Meta.ID)
			assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), doc.Meta.Created)
		}
	})

	t.Run("rule line in body is not frontmatter", func(t *testing.T) {
		t.Parallel()

		doc, err := document.Parse("/j/a.md", []byte("intro\n---\nmore"), document.ParseOptions{Now: now})
		require.NoError(t, err)
		assert.Equal(t, []string{"intro", "---", "more"}, doc.Lines)
	})
}

func TestParsePartialFrontmatter(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	doc, err := document.Parse("/j/x.md", []byte("---\nid: only-id\n---\n\nbody"), document.ParseOptions{Now: now})
	require.NoError(t, err)
	assert.Equal(t, "only-id", doc.Meta.ID)
	assert.Equal(t, now, doc.Meta.Created)
	assert.Equal(t, []string{"body"}, doc.Lines)
}

func TestParseCRLF(t *testing.T) {
	t.Parallel()

	doc, err := document.Parse("/j/x.md", []byte("---\r\nid: a\r\n---\r\n\r\none\r\ntwo"), document.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Meta.ID)
	assert.Equal(t, []string{"one", "two"}, doc.Lines)
}

func TestParseInvalidFrontmatter(t *testing.T) {
	t.Parallel()

	_, err := document.Parse("/j/x.md", []byte("---\nid: [a, b]\n---\n\nbody"), document.ParseOptions{})
	require.ErrorIs(t, err, document.ErrFrontmatter)

	_, err = document.Parse("/j/x.md", []byte("---\ncreated: yesterday\n---\n\nbody"), document.ParseOptions{})
	require.ErrorIs(t, err, document.ErrFrontmatter)
}

func TestNewAndFileName(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 30, 15, 0, time.UTC)
	doc := document.New("/journal", now, "")

	assert.Equal(t, filepath.Join("/journal", "2025-03-04-093015.md"), doc.Path)
	assert.Len(t, doc.Meta.ID, 36)
	assert.Equal(t, []string{""}, doc.Lines)

	got, ok := document.TimeFromFileName(doc.Path, time.UTC)
	require.True(t, ok)
	assert.Equal(t, now, got)

	_, ok = document.TimeFromFileName("notes.md", time.UTC)
	assert.False(t, ok)
}

func TestWithState(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	doc := &document.Document{Meta: document.Meta{ID: "x", Created: created, Modified: created}, Lines: []string{"a"}}

	same := doc.WithState(editor.SetCursor(doc.State(), 0, 1), later)
	assert.Equal(t, created, same.Meta.Modified)

	edited := doc.WithState(editor.InsertText(doc.State(), "b"), later)
	assert.Equal(t, []string{"ba"}, edited.Lines)
	assert.Equal(t, later, edited.Meta.Modified)
	assert.Equal(t, []string{"a"}, doc.Lines, "original is untouched")
}

func TestTitle(t *testing.T) {
	t.Parallel()

	doc := &document.Document{Lines: []string{"", "^ ## My day", "text"}}
	assert.Equal(t, "My day", doc.Title())
	assert.Empty(t, (&document.Document{Lines: []string{""}}).Title())

	linked := &document.Document{Lines: []string{"~S4~ # **Trip** to [Oslo](https://oslo.no)"}}
	assert.Equal(t, "Trip to Oslo", linked.Title())
}

func TestLoadSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	now := time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)

	doc := document.New(dir, now, "doc-1")
	doc.Lines = []string{"# Day", "entry"}
	require.False(t, doc.Loaded())
	require.NoError(t, document.Save(ctx, doc, fsutil.DefaultBackupConfig()))
	require.True(t, doc.Loaded())

	loaded, err := document.Load(ctx, doc.Path, document.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, doc.Lines, loaded.Lines)
	assert.Equal(t, "doc-1", loaded.Meta.ID)

	backups := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	edited := loaded.WithState(editor.FromLines([]string{"# Day", "changed"}), now.Add(time.Hour))
	require.NoError(t, document.Save(ctx, edited, backups))

	backup, err := os.ReadFile(fsutil.BackupPath(doc.Path, backups.Mode))
	require.NoError(t, err)
	assert.Contains(t, string(backup), "entry")

	reloaded, err := document.Load(ctx, doc.Path, document.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"# Day", "changed"}, reloaded.Lines)
}

func TestSaveConflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	now := time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)

	first := document.New(dir, now, "a")
	require.NoError(t, document.Save(ctx, first, fsutil.DefaultBackupConfig()))

	clash := document.New(dir, now, "b")
	require.ErrorIs(t, document.Save(ctx, clash, fsutil.DefaultBackupConfig()), fsutil.ErrChangedOnDisk)

	loaded, err := document.Load(ctx, first.Path, document.ParseOptions{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first.Path, []byte("external edit, longer than before"), 0o644))
	require.ErrorIs(t, document.Save(ctx, loaded, fsutil.DefaultBackupConfig()), fsutil.ErrChangedOnDisk)

	require.ErrorIs(t, document.Save(ctx, &document.Document{}, fsutil.DefaultBackupConfig()), document.ErrNoPath)
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := document.Load(context.Background(), filepath.Join(t.TempDir(), "none.md"), document.ParseOptions{})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}
