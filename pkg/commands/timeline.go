package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/commands/options"
	"tableflip.dev/ami/pkg/runner/timeline"
)

func addTimeline(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	li := &options.LimitOptions{}
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"log", "ls"},
		Short:   "Show the latest saved entries.",
		Example: `
ami timeline
ami timeline --agent workbench -n 20 --ids
ami timeline --since 2w -n -1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			f, err := oo.Format()
			if err != nil {
				return err
			}
			since, err := wo.Start(time.Now())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			t := timeline.Timeline{
				Source: e.client,
				Agent:  e.agent(ctx, ao.Agent),
				Limit:  li.Resolve(e.cfg.TimelineLimit()),
				Output: f,
				ShowID: li.IDs,
				Since:  since,
			}
			return oo.HandleError(t.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddLimitArgs(cmd, li)
	options.AddWindowArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
