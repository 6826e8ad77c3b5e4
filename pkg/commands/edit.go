package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of a saved entry.",
		Example: `
ami timeline --ids
ami edit 42 slept through the night for the first time
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			n := edit.Edit{
				Store:   e.client,
				Agent:   e.agent(ctx, ao.Agent),
				ID:      args[0],
				Message: strings.Join(args[1:], " "),
				Limit:   e.cfg.TimelineLimit(),
			}
			return n.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
