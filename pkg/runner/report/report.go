// Package report prints, and optionally regenerates, weekly reflections and
// category summaries.
package report

import (
	"context"
	"os"

	"tableflip.dev/ami/pkg/printers"
	rep "tableflip.dev/ami/pkg/report"
)

type Source interface {
	Reports(ctx context.Context, agent string, t rep.Type) (rep.Response, error)
	Regenerate(ctx context.Context, agent string, t rep.Type) error
}

type Report struct {
	Source Source
	Agent  string
	Type   rep.Type
	// Regenerate asks the backend for a fresh report before printing.
	Regenerate bool
	Limit      int
	HTML       bool
	Output     printers.Format
}

func (r *Report) Do(ctx context.Context) error {
	if r.Regenerate {
		if err := r.Source.Regenerate(ctx, r.Agent, r.Type); err != nil {
			return err
		}
	}

	resp, err := r.Source.Reports(ctx, r.Agent, r.Type)
	if err != nil {
		return err
	}
	p := r.Panel(resp)

	if r.Output != printers.FormatText && r.Output != "" {
		return printers.Structured(os.Stdout, r.Output, p)
	}
	pp := printers.PrettyPrint{}
	return pp.Panel(p, r.HTML)
}

// Panel shapes resp for display.
func (r *Report) Panel(resp rep.Response) rep.Panel {
	if r.Type == rep.CategorySummary {
		return rep.SummaryPanel(resp)
	}
	return rep.ReflectionPanel(resp, r.Limit)
}
