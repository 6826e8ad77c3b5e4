package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/agent"
)

// AgentOptions
type AgentOptions struct {
	Agent string
}

func AddAgentArgs(cmd *cobra.Command, o *AgentOptions) {
	cmd.PersistentFlags().StringVarP(&o.Agent, "agent", "a", "",
		"Agent to talk to. Defaults to the backend's active agent.")
	_ = cmd.RegisterFlagCompletionFunc("agent", AgentCompletions)
}

// AgentCompletions offers known agent ids.
func AgentCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	agents := agent.DefaultAgents()
	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		ids = append(ids, a.ID+"\t"+a.Subtitle)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
