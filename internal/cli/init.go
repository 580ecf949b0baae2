package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/configloader"
	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gojot configuration file",
		Long: `Create a new .gojot.yml configuration file in the current directory.
The default template is a commented sketch of every setting; --full writes
the defaults themselves.

Examples:
  gojot init                      Create a commented .gojot.yml
  gojot init --full               Write every setting with its default
  gojot init --user               Create the per-user config instead
  gojot init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the per-user configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: "+configloader.ProjectConfigFiles[0]+")")
	cmd.MarkFlagsMutuallyExclusive("user", "output")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	// Determine output path
	outputPath := flags.output
	switch {
	case flags.user:
		dir := configloader.UserConfigDir(nil)
		if dir == "" {
			return errors.New("cannot locate the user configuration directory")
		}
		outputPath = filepath.Join(dir, "config.yaml")
	case outputPath == "":
		outputPath = configloader.ProjectConfigFiles[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gojot config' to see the resolved settings")

	return nil
}
