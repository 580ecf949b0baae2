package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/configloader"
	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/document"
	"github.com/yaklabco/gojot/pkg/fsutil"
	"github.com/yaklabco/gojot/pkg/macro"
)

// commandEnv is the resolved configuration and output plumbing shared by
// the commands that read or write documents.
type commandEnv struct {
	ctx    context.Context
	cfg    *config.Config
	load   *configloader.LoadResult
	logger *log.Logger
	styles *pretty.Styles
	out    io.Writer
	now    time.Time
}

// commandContext returns the command's context, or Background when the
// command is run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadEnv resolves the configuration for cmd from files, environment and
// the global flags.
func loadEnv(cmd *cobra.Command) (*commandEnv, error) {
	ctx := commandContext(cmd)
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cliCfg, err := cliConfig(cmd)
	if err != nil {
		return nil, err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}
	cfg := loadResult.Config

	if cfg.Debug {
		logging.SetLevel(logging.LevelDebug)
	} else {
		logging.SetLevel(cfg.LogLevel)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		"notes_dir", cfg.NotesDir,
		"backups", cfg.BackupsEnabled(),
		logging.FieldFlavor, cfg.Export.Flavor,
	)

	out := cmd.OutOrStdout()
	return &commandEnv{
		ctx:    logging.WithLogger(ctx, logger),
		cfg:    cfg,
		load:   loadResult,
		logger: logger,
		styles: pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out)),
		out:    out,
		now:    time.Now(),
	}, nil
}

// cliConfig collects the global flags that override configuration. Only
// flags that were set take part.
func cliConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg := &config.Config{}

	debug, err := flags.GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("get debug flag: %w", err)
	}
	cfg.Debug = debug

	if flags.Changed("color") {
		color, err := flags.GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cfg.Color = config.ColorMode(color)
	}
	if flags.Changed("notes-dir") {
		dir, err := flags.GetString("notes-dir")
		if err != nil {
			return nil, fmt.Errorf("get notes-dir flag: %w", err)
		}
		cfg.NotesDir = dir
	}
	return cfg, nil
}

// backups returns the backup settings for saving documents.
func (e *commandEnv) backups() (fsutil.BackupConfig, error) {
	mode, err := fsutil.ParseBackupMode(e.cfg.Backups.Mode)
	if err != nil {
		return fsutil.BackupConfig{}, errors.Join(ErrConfig, err)
	}
	return fsutil.BackupConfig{Enabled: e.cfg.BackupsEnabled(), Mode: mode}, nil
}

// macros builds the active macro set: the built-ins unless disabled, then
// the configured macros, later triggers replacing earlier ones.
func (e *commandEnv) macros() *macro.Set {
	var all []macro.Macro
	if e.cfg.UseBuiltinMacros() {
		all = append(all, macro.Defaults()...)
	}
	for _, m := range e.cfg.Macros {
		all = append(all, macro.Macro{
			Trigger:     m.Trigger,
			Expansion:   m.Expansion,
			Description: m.Description,
		})
	}
	return macro.NewSet(all...)
}

// resolvePath finds the document named by arg. A path that does not exist
// as given is looked up in the notes directory.
func (e *commandEnv) resolvePath(arg string) string {
	if _, err := os.Stat(arg); err == nil || filepath.IsAbs(arg) {
		return arg
	}
	inNotes := filepath.Join(e.cfg.NotesDir, arg)
	if _, err := os.Stat(inNotes); err == nil {
		return inNotes
	}
	return arg
}

// loadDocument resolves and loads the document named by arg.
func (e *commandEnv) loadDocument(arg string) (*document.Document, error) {
	path := e.resolvePath(arg)
	doc, err := document.Load(e.ctx, path, document.ParseOptions{Now: e.now})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded document",
		logging.FieldPath, path,
		logging.FieldDocumentID, doc.Meta.ID,
		logging.FieldLines, len(doc.Lines),
	)
	return doc, nil
}

// saveDocument writes doc with the configured backups and returns the
// backup path when one was taken.
func (e *commandEnv) saveDocument(doc *document.Document) (string, error) {
	backups, err := e.backups()
	if err != nil {
		return "", err
	}
	existed := doc.Loaded()
	if err := document.Save(e.ctx, doc, backups); err != nil {
		return "", err
	}

	backup := ""
	if existed && backups.Enabled && backups.Mode != fsutil.BackupModeNone {
		backup = fsutil.BackupPath(doc.Path, backups.Mode)
	}
	e.logger.Debug("saved document", logging.FieldPath, doc.Path, logging.FieldBackup, backup)
	return backup, nil
}

// usageArgs wraps a cobra positional-argument check so its failures map to
// ExitInvalidUsage.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
