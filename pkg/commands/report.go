package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/commands/options"
	rep "tableflip.dev/ami/pkg/report"
	"tableflip.dev/ami/pkg/runner/report"
)

func addReflections(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	li := &options.LimitOptions{}
	var generate, html bool

	cmd := &cobra.Command{
		Use:     "reflections",
		Aliases: []string{"reflect"},
		Short:   "Show weekly reflections.",
		Example: `
ami reflections
ami reflections --generate
ami reflections --html > week.html
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return oo.HandleError(runReport(cmd, oo, rep.WeeklyReflection, generate, html, li))
		},
	}

	cmd.Flags().BoolVar(&generate, "generate", false, "Generate a fresh reflection first.")
	cmd.Flags().BoolVar(&html, "html", false, "Render markdown as HTML.")
	options.AddOutputArg(cmd, oo)
	options.AddLimitArgs(cmd, li)

	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var regenerate, html bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the category summary.",
		Example: `
ami summary
ami summary --regenerate
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return oo.HandleError(runReport(cmd, oo, rep.CategorySummary, regenerate, html, nil))
		},
	}

	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Regenerate the summary first.")
	cmd.Flags().BoolVar(&html, "html", false, "Render markdown as HTML.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, oo *options.OutputOptions, t rep.Type, regenerate, html bool, li *options.LimitOptions) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	f, err := oo.Format()
	if err != nil {
		return err
	}
	limit := e.cfg.ReportLimit()
	if li != nil {
		limit = li.Resolve(limit)
	}
	ctx := cmd.Context()
	r := report.Report{
		Source:     e.client,
		Agent:      e.agent(ctx, ao.Agent),
		Type:       t,
		Regenerate: regenerate,
		Limit:      limit,
		HTML:       html,
		Output:     f,
	}
	return r.Do(ctx)
}
