package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/commands/options"
	"tableflip.dev/ami/pkg/runner/history"
	"tableflip.dev/ami/pkg/store"
)

func addHistory(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	wo := &options.WindowOptions{}
	var clear, all, ids bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show chat exchanges archived on this machine.",
		Example: `
ami history
ami history --all --since 3d
ami history --agent steward --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			tr, err := store.Load(cfg)
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
			h := history.History{
				Transcript: tr,
				Clear:      clear,
				Since:      since,
				ShowID:     ids,
				Output:     f,
			}
			if !all {
				h.Agent = ao.Agent
				if h.Agent == "" {
					h.Agent = cfg.Agent()
				}
			}
			return oo.HandleError(h.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Delete the archived exchanges instead of printing them.")
	cmd.Flags().BoolVar(&all, "all", false, "Include every agent.")
	cmd.Flags().BoolVar(&ids, "ids", false, "Show exchange ids.")
	options.AddOutputArg(cmd, oo)
	options.AddWindowArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
