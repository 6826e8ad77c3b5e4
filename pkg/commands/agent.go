package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/commands/options"
	"tableflip.dev/ami/pkg/runner/agent"
)

func addAgent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "agent [name]",
		Short: "Show the agents, or switch the active one.",
		Example: `
ami agent
ami agent workbench
ami agent health
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: options.AgentCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			a := agent.Agent{Store: e.client}
			if len(args) == 1 {
				a.Name = args[0]
			}
			return a.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
