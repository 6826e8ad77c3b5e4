package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/commands/options"
	"tableflip.dev/ami/pkg/runner/sheets"
)

func addSync(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync saved entries to Google Sheets (or a local export).",
		Example: `
ami sync
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
			s := sheets.Sync{Syncer: e.client, Output: f}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
