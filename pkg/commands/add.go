package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Save an entry directly, without chatting.",
		Example: `
ami add she said her first full sentence today
ami add --agent caretaker "Flu shot at the clinic"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a := add.Add{
				Store:   e.client,
				Agent:   e.agent(ctx, ao.Agent),
				Message: strings.Join(args, " "),
				Limit:   e.cfg.TimelineLimit(),
			}
			return a.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
