package options

import (
	"github.com/spf13/cobra"
)

// LimitOptions
type LimitOptions struct {
	Limit int
	IDs   bool
}

func AddLimitArgs(cmd *cobra.Command, o *LimitOptions) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"How many to show. Defaults to the configured limit; -1 shows all.")
	cmd.Flags().BoolVar(&o.IDs, "ids", false,
		"Show entry ids.")
}

// Resolve picks the flag value over the configured default.
func (o *LimitOptions) Resolve(configured int) int {
	switch {
	case o.Limit < 0:
		return 0
	case o.Limit > 0:
		return o.Limit
	}
	return configured
}
