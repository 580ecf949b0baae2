package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/document"
	"github.com/yaklabco/gojot/pkg/script"
)

// notesDirPermissions is the mode for a notes directory created on demand.
const notesDirPermissions = 0o755

type newFlags struct {
	title string
	text  string
}

func newNewCommand() *cobra.Command {
	flags := &newFlags{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a journal entry",
		Long: `Create an empty journal entry in the notes directory, named after the
current time, and print its path.

Examples:
  gojot new                          Create an empty entry
  gojot new --title "Trip to Oslo"   Start the entry with a heading
  gojot new --text "see https://go.dev"  Type the first lines`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNew(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "Start the entry with a level-1 heading")
	cmd.Flags().StringVar(&flags.text, "text", "", "Type this text into the entry, as if at the keyboard")

	return cmd
}

func runNew(cmd *cobra.Command, flags *newFlags) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(env.cfg.NotesDir, notesDirPermissions); err != nil {
		return fmt.Errorf("create notes directory: %w", err)
	}

	doc := document.New(env.cfg.NotesDir, env.now, "")
	st := doc.State()
	if title := strings.TrimSpace(flags.title); title != "" {
		st = script.Type(st, "# "+title+"\n")
	}
	if flags.text != "" {
		st = script.Type(st, flags.text)
	}
	doc = doc.WithState(st, env.now)

	if _, err := env.saveDocument(doc); err != nil {
		return err
	}

	env.logger.Debug("created entry",
		logging.FieldPath, doc.Path,
		logging.FieldDocumentID, doc.Meta.ID,
		logging.FieldTitle, doc.Title(),
	)
	fmt.Fprintln(env.out, doc.Path)
	return nil
}
