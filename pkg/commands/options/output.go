package options

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/ami/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// AddPersistentOutputArg is AddOutputArg for a command group.
func AddPersistentOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.PersistentFlags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Format resolves --json and --output; --json wins.
func (o *OutputOptions) Format() (printers.Format, error) {
	if o.JSON {
		return printers.FormatJSON, nil
	}
	return printers.ParseFormat(o.Output)
}

func (o *OutputOptions) HandleError(err error) error {
	if err == nil {
		return nil
	}
	f, ferr := o.Format()
	if ferr != nil || f == printers.FormatText {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	if err := printers.Structured(color.Output, f, out); err != nil {
		return fmt.Errorf("%w (while printing %v)", err, out["error"])
	}
	return nil
}
