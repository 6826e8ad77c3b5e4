package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/commands/options"
	"tableflip.dev/ami/pkg/runner/draft"
)

func addDraft(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or edit the unsaved draft.",
		Example: `
ami draft show
ami draft set "picked apples with grandma"
ami draft save
ami draft watch ~/notes/today.md
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddPersistentOutputArg(cmd, oo)

	runner := func() (*draft.Draft, error) {
		e, err := loadEnv()
		if err != nil {
			return nil, err
		}
		f, err := oo.Format()
		if err != nil {
			return nil, err
		}
		return &draft.Draft{Store: e.client, Output: f, Log: e.log}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the draft.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, err := runner()
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(d.Show(cmd.Context()))
		},
	}, &cobra.Command{
		Use:   "set <text>",
		Short: "Replace the draft.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := runner()
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(d.Set(cmd.Context(), strings.Join(args, " ")))
		},
	}, &cobra.Command{
		Use:   "save",
		Short: "Save the draft as an entry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, err := runner()
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(d.Save(cmd.Context()))
		},
	}, &cobra.Command{
		Use:   "watch <file>",
		Short: "Push a local file to the draft whenever it changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := runner()
			if err != nil {
				return err
			}
			return d.Watch(cmd.Context(), args[0])
		},
	})

	topLevel.AddCommand(cmd)
}
