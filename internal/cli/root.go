// Package cli provides the Cobra command structure for gojot.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Command groups shown in help.
const (
	groupNotes = "notes"
	groupEdit  = "edit"
	groupSetup = "setup"
)

// NewRootCommand creates the root gojot command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var notesDir string

	rootCmd := &cobra.Command{
		Use:   "gojot",
		Short: "A plain-text outliner journal",
		Long: `gojot keeps a journal of Markdown entries with outliner features.

Headings fold and carry scroll windows, bullets nest by tabs, and inline
emphasis, links and components are rendered in the terminal. Entries are
edited through replayable edit scripts, saved atomically with optional
backups, and exported to HTML.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel(logging.LevelDebug)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&notesDir, "notes-dir", "",
		"directory holding journal entries (overrides notes_dir)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: groupNotes, Title: "Journal Commands:"},
		&cobra.Group{ID: groupEdit, Title: "Editing Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	rootCmd.SetHelpCommandGroupID(groupSetup)
	rootCmd.SetCompletionCommandGroupID(groupSetup)

	// Add subcommands.
	addToGroup(rootCmd, groupNotes,
		newNewCommand(),
		newListCommand(),
		newShowCommand(),
		newOutlineCommand(),
		newExportCommand(),
	)
	addToGroup(rootCmd, groupEdit,
		newApplyCommand(),
		newFoldCommand(),
		newRestoreCommand(),
		newMacrosCommand(),
	)
	addToGroup(rootCmd, groupSetup,
		newInitCommand(),
		newConfigCommand(),
		newVersionCommand(info),
	)

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

func addToGroup(root *cobra.Command, group string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = group
		root.AddCommand(cmd)
	}
}
