package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/outline"
)

type showFlags struct {
	cursor  int
	peek    int
	numbers bool
	width   int
	all     bool
}

func newShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Render a journal entry in the terminal",
		Long: `Render a journal entry with folding applied. Collapsed headings hide
their sections and headings with a scroll window show only that many lines.
FILE may be a path or a file name in the notes directory.

Examples:
  gojot show 2026-10-19-090000.md     Render an entry
  gojot show entry.md --cursor 3      Show line 3 with its markup
  gojot show entry.md --peek 1        Outline view from the heading on line 1
  gojot show entry.md --all -n        Every line, with line numbers`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.cursor, "cursor", 0, "1-based line drawn with its markup visible")
	cmd.Flags().IntVar(&flags.peek, "peek", 0, "1-based heading line to peek the outline from")
	cmd.Flags().BoolVarP(&flags.numbers, "numbers", "n", false, "Show line numbers")
	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "Truncate lines to this width (default: terminal width, -1: never)")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Ignore folds and scroll windows")

	return cmd
}

func runShow(cmd *cobra.Command, arg string, flags *showFlags) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	doc, err := env.loadDocument(arg)
	if err != nil {
		return err
	}
	lines := doc.Lines

	if flags.cursor < 0 || flags.cursor > len(lines) {
		return fmt.Errorf("%w: --cursor %d is outside 1..%d", ErrUsage, flags.cursor, len(lines))
	}
	if flags.peek != 0 {
		if flags.peek < 0 || flags.peek > len(lines) || outline.HeadingLevel(lines[flags.peek-1]) == 0 {
			return fmt.Errorf("%w: --peek %d is not a heading line", ErrUsage, flags.peek)
		}
	}

	hidden := outline.LineSet{}
	if !flags.all {
		hidden = outline.FoldedLines(lines).Union(scrollHiddenLines(lines))
	}
	if flags.peek != 0 {
		hidden = hidden.Union(outline.HiddenLines(lines, flags.peek-1, nil))
	}

	width := flags.width
	switch {
	case width < 0:
		width = 0
	case width == 0:
		width = pretty.TerminalWidth(env.out)
	}

	fmt.Fprint(env.out, env.styles.RenderDocument(lines, pretty.ViewOptions{
		CursorLine:  flags.cursor - 1,
		Hidden:      hidden,
		LineNumbers: flags.numbers,
		Width:       width,
	}))
	return nil
}

// scrollHiddenLines hides the section lines beyond each heading's scroll
// window.
func scrollHiddenLines(lines []string) outline.LineSet {
	hidden := outline.LineSet{}
	for i, line := range lines {
		info, ok := outline.ParseHeading(line)
		if !ok || info.ScrollableLines <= 0 {
			continue
		}
		end := outline.SectionEnd(lines, i)
		for j := i + 1 + info.ScrollableLines; j <= end; j++ {
			hidden.Add(j)
		}
	}
	return hidden
}

func newOutlineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "List the headings of a journal entry",
		Long: `List every heading of a journal entry with its level, fold state,
scroll window and section length.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			doc, err := env.loadDocument(args[0])
			if err != nil {
				return err
			}

			rows := pretty.OutlineRows(doc.Lines)
			if len(rows) == 0 {
				fmt.Fprintln(env.out, env.styles.Dim.Render("no headings"))
				return nil
			}
			formatter := pretty.NewTableFormatter(env.styles, pretty.TerminalWidth(env.out))
			fmt.Fprint(env.out, formatter.FormatOutline(rows))
			return nil
		},
	}

	return cmd
}
