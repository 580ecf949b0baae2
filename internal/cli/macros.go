package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMacrosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macros",
		Short: "List the active text macros",
		Long: `List the macros available to the expand step of edit scripts: the
built-in set (unless builtin_macros is false) followed by those from the
configuration. Longer triggers are tried first.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			macros := env.macros().Macros()
			if len(macros) == 0 {
				fmt.Fprintln(env.out, env.styles.Dim.Render("no macros"))
				return nil
			}

			width := 0
			for _, m := range macros {
				width = max(width, len(m.Trigger))
			}
			for _, m := range macros {
				line := env.styles.TableHeader.Render(fmt.Sprintf("%-*s", width, m.Trigger)) +
					"  " + strconv.Quote(m.Expansion)
				if m.Description != "" {
					line += "  " + env.styles.Dim.Render(m.Description)
				}
				fmt.Fprintln(env.out, line)
			}
			return nil
		},
	}

	return cmd
}
