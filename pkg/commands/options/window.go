package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Since string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only show what happened within this window, e.g. "3d" or "2w".`)
}

// Start returns the beginning of the window, or the zero time for no window.
func (o *WindowOptions) Start(now time.Time) (time.Time, error) {
	d, _, err := timeutil.ParseWindow(o.Since)
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.Since(d, now), nil
}
