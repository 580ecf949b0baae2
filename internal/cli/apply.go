package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/docdiff"
	"github.com/yaklabco/gojot/pkg/macro"
	"github.com/yaklabco/gojot/pkg/script"
)

type applyFlags struct {
	dryRun  bool
	diff    bool
	summary bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply FILE SCRIPT",
		Short: "Replay an edit script against a journal entry",
		Long:  applyLongDescription,
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the diff without saving")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "Print the diff as well as saving")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print a summary block instead of one line")

	return cmd
}

const applyLongDescription = `Replay a YAML edit script against a journal entry and save the result.

The script runs the editor operations a person would: moving the cursor,
typing, formatting, folding, expanding macros, undo and redo. Typed URLs
are linked when followed by a space or newline.

Example script:
  steps:
    - op: move
      direction: doc-end
    - op: type
      text: "\n## Notes\n/date "
    - op: move
      direction: left
    - op: expand

Examples:
  gojot apply entry.md edit.yml            Apply and save
  gojot apply entry.md edit.yml --dry-run  Show what would change`

func runApply(cmd *cobra.Command, docArg, scriptPath string, flags *applyFlags) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	edits, err := script.Load(env.ctx, scriptPath)
	if err != nil {
		return err
	}
	doc, err := env.loadDocument(docArg)
	if err != nil {
		return err
	}

	ctx := logging.WithFields(env.ctx, logging.FieldScript, scriptPath, logging.FieldPath, doc.Path)
	logger := logging.FromContext(ctx)

	runner := script.New(script.Options{
		HistoryCapacity: env.cfg.History.Capacity,
		Macros:          env.macros(),
		Vars:            macro.DefaultVars(env.now),
	})
	result, err := runner.Run(ctx, doc.State(), edits)
	if err != nil {
		return fmt.Errorf("apply %s: %w", scriptPath, err)
	}
	logger.Debug("script finished",
		logging.FieldStep, result.Steps,
		logging.FieldChanged, result.Changed,
		logging.FieldUndoDepth, result.History.Len(),
	)

	next := doc.WithState(result.State, env.now)
	diff := docdiff.Compute(doc.Path, []byte(doc.Text()), []byte(next.Text()))

	stats := pretty.ApplyStats{
		Path:      doc.Path,
		Steps:     result.Steps,
		Changed:   result.Changed,
		UndoDepth: result.History.Len(),
		DryRun:    flags.dryRun,
	}
	if diff != nil {
		stats.Additions = diff.Additions
		stats.Deletions = diff.Deletions
	}

	if flags.dryRun || flags.diff {
		fmt.Fprint(env.out, env.styles.FormatDiff(diff))
	}

	if !flags.dryRun && diff.HasChanges() {
		backup, err := env.saveDocument(next)
		if err != nil {
			return err
		}
		stats.Saved = true
		stats.Backup = backup
		logger.Info("saved entry",
			logging.FieldAdditions, stats.Additions,
			logging.FieldDeletions, stats.Deletions,
		)
	}

	if flags.summary {
		fmt.Fprint(env.out, env.styles.FormatApplySummary(stats))
	} else {
		fmt.Fprint(env.out, env.styles.FormatApplySummaryOneLine(stats))
	}
	return nil
}
