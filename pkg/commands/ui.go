package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/printers"
	teaui "tableflip.dev/ami/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
ami ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			tr, err := e.transcript()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return teaui.Run(ctx, e.client, e.agent(ctx, ao.Agent),
				teaui.WithRecorder(tr),
				teaui.WithLogger(e.log),
				teaui.WithLimits(e.cfg.TimelineLimit(), e.cfg.ReportLimit()),
				teaui.WithMarkdownStyle(printers.MarkdownStyle()),
			)
		},
	}

	topLevel.AddCommand(cmd)
}
