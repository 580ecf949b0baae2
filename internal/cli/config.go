package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/configloader"
	"github.com/yaklabco/gojot/pkg/config"
)

type configFlags struct {
	paths bool
	env   bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration gojot runs with after merging the system, user,
project and explicit config files, GOJOT_* environment variables and flags.

Examples:
  gojot config            The merged settings as YAML
  gojot config --paths    Which config files were found
  gojot config --env      The supported environment variables
  gojot config validate   Check the config files for mistakes`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.paths, "paths", false, "List the configuration file locations")
	cmd.Flags().BoolVar(&flags.env, "env", false, "List the supported environment variables")
	cmd.MarkFlagsMutuallyExclusive("paths", "env")

	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	if flags.env {
		out := cmd.OutOrStdout()
		for _, v := range configloader.ListEnvVars() {
			fmt.Fprintf(out, "%-28s %-26s %s\n", v.Name, v.Field, v.Description)
		}
		return nil
	}

	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	if flags.paths {
		paths := env.load.Paths
		for _, p := range []struct{ name, path string }{
			{"system", paths.System},
			{"user", paths.User},
			{"project", paths.Project},
			{"explicit", paths.Explicit},
		} {
			value := env.styles.Dim.Render("(none)")
			if p.path != "" {
				value = env.styles.FilePath.Render(p.path)
			}
			fmt.Fprintf(env.out, "%-9s %s\n", p.name+":", value)
		}
		return nil
	}

	header := config.DefaultTemplateHeader
	if len(env.load.LoadedFrom) > 0 {
		header += "\n# Loaded from:\n#   " + strings.Join(env.load.LoadedFrom, "\n#   ")
	}
	content, err := env.cfg.ToYAMLWithHeader(header)
	if err != nil {
		return err
	}
	_, err = env.out.Write(content)
	return err
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Check configuration files",
		Long: `Check configuration files for unknown keys and invalid values. Without
arguments the discovered config files are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				env, err := loadEnv(cmd)
				if err != nil {
					return err
				}
				files = env.load.LoadedFrom
			}
			return validateConfigFiles(cmd, files)
		},
	}
}

func validateConfigFiles(cmd *cobra.Command, files []string) error {
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "no configuration files found")
		return nil
	}

	failed := 0
	for _, file := range files {
		cfg, warnings, err := configloader.LoadFile(file)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: %v\n", file, err)
			continue
		}

		// A layer only sets some fields; check it on top of the defaults.
		result := configloader.ValidateWithFile(configloader.MergeAll(config.NewConfig(), cfg), file)
		for _, w := range warnings {
			fmt.Fprintln(out, "warning: "+w)
		}
		for _, msg := range result.AllMessages() {
			fmt.Fprintln(out, msg)
		}
		if !result.Valid() {
			failed++
			continue
		}
		if len(warnings) == 0 && !result.HasWarnings() {
			fmt.Fprintf(out, "%s: ok\n", file)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files invalid", ErrConfig, failed, len(files))
	}
	return nil
}
