package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/runner/chat"
	"tableflip.dev/ami/pkg/session"
)

func addChat(topLevel *cobra.Command) {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk with the active agent.",
		Long: `Talk with the active agent. When the agent offers to save something,
answer y to save it to your journal or anything else to skip.

With a message, one exchange is made and the command exits.`,
		Example: `
ami chat
ami chat we went to the beach and she found a crab
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			opts := []session.HandlerOption{session.WithLogger(e.log)}
			if !noHistory {
				tr, err := e.transcript()
				if err != nil {
					return err
				}
				opts = append(opts, session.WithRecorder(tr))
			}

			c := chat.Chat{
				Handler: session.NewHandler(e.client, e.agent(ctx, ao.Agent), opts...),
				In:      cmd.InOrStdin(),
				Message: strings.Join(args, " "),
			}
			return c.Do(ctx)
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not archive this conversation locally.")

	topLevel.AddCommand(cmd)
}
