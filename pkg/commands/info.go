package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/runner/info"
	"tableflip.dev/ami/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where history is stored.",
		Example: `
ami info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			tr, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := info.Info{
				Config:     cfg,
				Transcript: tr,
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
