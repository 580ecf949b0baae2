package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/document"
	"github.com/yaklabco/gojot/pkg/journal"
)

// listDateLayout is how entry times are shown by list.
const listDateLayout = "2006-01-02 15:04"

type listFlags struct {
	query   string
	limit   int
	jobs    int
	exclude []string
	json    bool
}

// listItem is the JSON shape of a listed entry.
type listItem struct {
	Path     string    `json:"path"`
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Lines    int       `json:"lines"`
	Headings int       `json:"headings"`
}

func newListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Long: `Index the notes directory and list its entries, newest first. Entries
that cannot be read are reported and skipped.

Examples:
  gojot list                     Every entry
  gojot list -q oslo             Entries mentioning "oslo"
  gojot list --limit 5 --json    The five newest entries as JSON`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "Only entries whose text contains this, ignoring case")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", 0, "Show at most this many entries (0: all)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Number of files to read in parallel (0: one per CPU)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "Glob patterns to skip (e.g. 'archive/**')")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print entries as JSON")

	return cmd
}

func runList(cmd *cobra.Command, flags *listFlags) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	result, err := journal.Index(env.ctx, journal.Options{
		Dir:          env.cfg.NotesDir,
		ExcludeGlobs: flags.exclude,
		Jobs:         flags.jobs,
		Parse:        document.ParseOptions{Now: env.now},
	})
	if errors.Is(err, fs.ErrNotExist) {
		env.logger.Debug("notes directory does not exist yet", logging.FieldPath, env.cfg.NotesDir)
		result = &journal.Result{}
	} else if err != nil {
		return err
	}

	for _, entry := range result.Entries {
		if entry.Error != nil {
			env.logger.Warn("skipping entry", logging.FieldPath, entry.Path, logging.FieldError, entry.Error)
		}
	}
	env.logger.Debug("indexed notes",
		logging.FieldPath, env.cfg.NotesDir,
		"discovered", result.Stats.Discovered,
		"loaded", result.Stats.Loaded,
		logging.FieldLines, result.Stats.Lines,
		logging.FieldHeadings, result.Stats.Headings,
	)

	entries := result.Filter(flags.query)
	journal.ByCreated(entries)
	if flags.limit > 0 && len(entries) > flags.limit {
		entries = entries[:flags.limit]
	}

	if flags.json {
		return writeListJSON(env, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(env.out, env.styles.Dim.Render("no entries"))
		return nil
	}
	width := pretty.TerminalWidth(env.out)
	for _, entry := range entries {
		fmt.Fprintln(env.out, ansi.Truncate(formatListLine(env.styles, entry), width, "…"))
	}
	return nil
}

func formatListLine(styles *pretty.Styles, entry journal.Entry) string {
	doc := entry.Doc
	title := doc.Title()
	if title == "" {
		title = styles.Dim.Render("(empty)")
	} else {
		title = styles.SummaryTitle.Render(title)
	}
	return fmt.Sprintf("%s  %s  %s %s",
		styles.SummaryValue.Render(doc.Meta.Created.Local().Format(listDateLayout)),
		styles.FilePath.Render(filepath.Base(entry.Path)),
		title,
		styles.Dim.Render(fmt.Sprintf("(%d lines)", len(doc.Lines))),
	)
}

func writeListJSON(env *commandEnv, entries []journal.Entry) error {
	items := make([]listItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, listItem{
			Path:     entry.Path,
			ID:       entry.Doc.Meta.ID,
			Title:    entry.Doc.Title(),
			Created:  entry.Doc.Meta.Created,
			Modified: entry.Doc.Meta.Modified,
			Lines:    len(entry.Doc.Lines),
			Headings: entry.Headings(),
		})
	}

	enc := json.NewEncoder(env.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return nil
}
