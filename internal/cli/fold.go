package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/docdiff"
	"github.com/yaklabco/gojot/pkg/editor"
	"github.com/yaklabco/gojot/pkg/outline"
)

type foldFlags struct {
	scroll      int
	collapseAll bool
	expandAll   bool
	dryRun      bool
}

func newFoldCommand() *cobra.Command {
	flags := &foldFlags{}

	cmd := &cobra.Command{
		Use:   "fold FILE [LINE...]",
		Short: "Collapse, expand or size the sections of an entry",
		Long: `Toggle the collapse marker of the headings on the given 1-based lines,
or set their scroll window with --scroll. The entry is saved with the
configured backups and the change is summarised.

Examples:
  gojot fold entry.md 1 5            Toggle the headings on lines 1 and 5
  gojot fold entry.md 3 --scroll 10  Show at most 10 lines under line 3
  gojot fold entry.md 3 --scroll 0   Remove the scroll window
  gojot fold entry.md --expand-all   Expand every heading`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.scroll, "scroll", 0, "Set the scroll window of the given headings (0 removes it)")
	cmd.Flags().BoolVar(&flags.collapseAll, "collapse-all", false, "Collapse every heading")
	cmd.Flags().BoolVar(&flags.expandAll, "expand-all", false, "Expand every heading")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the diff without saving")
	cmd.MarkFlagsMutuallyExclusive("collapse-all", "expand-all", "scroll")

	return cmd
}

func runFold(cmd *cobra.Command, args []string, flags *foldFlags) error {
	targets, err := parseLineArgs(args[1:])
	if err != nil {
		return err
	}
	all := flags.collapseAll || flags.expandAll
	if all == (len(targets) > 0) {
		return fmt.Errorf("%w: give heading lines or one of --collapse-all/--expand-all", ErrUsage)
	}

	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	doc, err := env.loadDocument(args[0])
	if err != nil {
		return err
	}

	setScroll := cmd.Flags().Changed("scroll")
	if setScroll && flags.scroll < 0 {
		return fmt.Errorf("%w: --scroll must not be negative", ErrUsage)
	}

	lines := append([]string(nil), doc.Lines...)
	if all {
		setAllCollapsed(lines, flags.collapseAll)
	} else {
		for _, n := range targets {
			if n > len(lines) || outline.HeadingLevel(lines[n-1]) == 0 {
				return fmt.Errorf("%w: line %d is not a heading", ErrUsage, n)
			}
			if setScroll {
				lines[n-1] = outline.SetScrollWindow(lines[n-1], flags.scroll)
			} else {
				lines[n-1] = outline.ToggleCollapsed(lines[n-1])
			}
		}
	}

	next := doc.WithState(editor.FromLines(lines), env.now)
	diff := docdiff.Compute(doc.Path, []byte(doc.Text()), []byte(next.Text()))
	if !diff.HasChanges() {
		fmt.Fprintln(env.out, env.styles.FormatDiffStat(diff))
		return nil
	}

	if flags.dryRun {
		fmt.Fprint(env.out, env.styles.FormatDiff(diff))
		return nil
	}

	if _, err := env.saveDocument(next); err != nil {
		return err
	}
	env.logger.Debug("folded entry",
		logging.FieldPath, next.Path,
		logging.FieldAdditions, diff.Additions,
		logging.FieldDeletions, diff.Deletions,
	)
	fmt.Fprintln(env.out, env.styles.FormatDiffStat(diff))
	return nil
}

// setAllCollapsed puts every heading in lines into the given fold state.
func setAllCollapsed(lines []string, collapsed bool) {
	for i, line := range lines {
		info, ok := outline.ParseHeading(line)
		if ok && info.Collapsed != collapsed {
			lines[i] = outline.ToggleCollapsed(line)
		}
	}
}

// parseLineArgs reads 1-based line numbers.
func parseLineArgs(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q is not a line number", ErrUsage, arg)
		}
		out = append(out, n)
	}
	return out, nil
}
