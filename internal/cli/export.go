package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/export"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

// exportFilePermissions is the mode of exported files.
const exportFilePermissions = 0o644

type exportFlags struct {
	output   string
	flavor   string
	markdown bool
	noDetect bool
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a journal entry as HTML or plain Markdown",
		Long: `Convert a journal entry to HTML, or to standard Markdown with --markdown.
Heading control prefixes are dropped, tab-indented bullets become nested
lists and components become placeholders. Unlabelled code fences are given
a language when one can be detected.

Examples:
  gojot export entry.md                    HTML on stdout
  gojot export entry.md -o entry.html      Write to a file
  gojot export entry.md --markdown         Standard Markdown
  gojot export entry.md --flavor commonmark`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: gfm or commonmark (overrides export.flavor)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Write standard Markdown instead of HTML")
	cmd.Flags().BoolVar(&flags.noDetect, "no-detect", false, "Do not label unlabelled code fences")

	return cmd
}

func runExport(cmd *cobra.Command, arg string, flags *exportFlags) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	flavor := env.cfg.Export.Flavor
	if flags.flavor != "" {
		flavor = config.Flavor(flags.flavor)
		if flavor != config.FlavorGFM && flavor != config.FlavorCommonMark {
			return fmt.Errorf("%w: unknown flavor %q", ErrUsage, flags.flavor)
		}
	}

	doc, err := env.loadDocument(arg)
	if err != nil {
		return err
	}

	exporter := export.New(export.Options{
		Flavor:          string(flavor),
		DetectLanguages: env.cfg.DetectLanguages() && !flags.noDetect,
	})

	var content string
	if flags.markdown {
		content = exporter.Markdown(doc.Lines) + "\n"
	} else {
		content, err = exporter.HTML(env.ctx, doc.Lines)
		if err != nil {
			return err
		}
	}

	if flags.output == "" {
		fmt.Fprint(env.out, content)
		return nil
	}
	wrote, err := fsutil.WriteIfChanged(env.ctx, flags.output, []byte(content), exportFilePermissions)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if !wrote {
		env.logger.Info("export is up to date", logging.FieldOutput, flags.output)
		return nil
	}
	env.logger.Info("exported entry",
		logging.FieldPath, doc.Path,
		logging.FieldOutput, flags.output,
		logging.FieldFlavor, flavor,
	)
	return nil
}
