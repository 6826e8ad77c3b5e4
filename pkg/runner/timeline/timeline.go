// Package timeline prints the latest saved entries for an agent.
package timeline

import (
	"context"
	"os"
	"time"

	"tableflip.dev/ami/pkg/agent"
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/printers"
)

// Source lists saved entries, newest first.
type Source interface {
	Observations(ctx context.Context, agent string) ([]entry.Entry, error)
}

type Timeline struct {
	Source Source
	Agent  string
	Limit  int
	Output printers.Format
	ShowID bool
	// Since drops entries dated before it. Entries without a readable date
	// are kept.
	Since time.Time
}

func (t *Timeline) Do(ctx context.Context) error {
	all, err := t.Source.Observations(ctx, t.Agent)
	if err != nil {
		return err
	}
	latest := entry.Latest(Within(all, t.Since), t.Limit)

	if t.Output != printers.FormatText && t.Output != "" {
		return printers.Structured(os.Stdout, t.Output, latest)
	}

	pp := printers.PrettyPrint{ShowID: t.ShowID}
	pp.TitleWithCount(agent.Lookup(t.Agent).Title, len(latest))
	pp.Timeline(latest...)
	return nil
}

// Within keeps the entries dated at or after since.
func Within(all []entry.Entry, since time.Time) []entry.Entry {
	if since.IsZero() {
		return all
	}
	kept := make([]entry.Entry, 0, len(all))
	for _, e := range all {
		if at, err := entry.ParseTime(e.Date); err == nil && at.Before(since) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
