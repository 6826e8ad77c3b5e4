package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error.")
}
