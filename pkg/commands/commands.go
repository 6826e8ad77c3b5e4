package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ami/pkg/commands/options"
	"tableflip.dev/ami/pkg/store"
)

var (
	ao = &options.AgentOptions{}
	lo = &options.LogOptions{}
)

func New() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "ami",
		Short: base.Wrap80("A journaling companion on the command line. Chat with an agent, save what matters, and read back reflections."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&server, "server", "",
		"Backend base URL (default "+store.DefaultServer+").")
	options.AddLogArgs(cmd, lo)
	options.AddAgentArgs(cmd, ao)
	bindFlags(cmd)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addChat(topLevel)
	addTimeline(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addAgent(topLevel)
	addDraft(topLevel)
	addReflections(topLevel)
	addSummary(topLevel)
	addSync(topLevel)
	addHistory(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
