package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	var discard bool

	cmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Put back the backup of a journal entry",
		Long: `Replace a journal entry with the backup taken before it was first edited,
or delete that backup with --discard.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			// Backups are looked for even when taking them is switched off.
			mode := fsutil.BackupModeSidecar
			path := env.resolvePath(args[0])

			var done bool
			var action string
			if discard {
				done, err = fsutil.RemoveBackup(path, mode)
				action = "removed backup of"
			} else {
				done, err = fsutil.RestoreBackup(env.ctx, path, mode)
				action = "restored"
			}
			if err != nil {
				return err
			}
			if !done {
				return fmt.Errorf("%s: no backup: %w", path, fsutil.ErrNotFound)
			}

			env.logger.Debug(action, logging.FieldPath, path, logging.FieldBackup, fsutil.BackupPath(path, mode))
			fmt.Fprintln(env.out, env.styles.Success.Render(action)+" "+env.styles.FilePath.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&discard, "discard", false, "Delete the backup instead of restoring it")

	return cmd
}
