// Package history prints the local archive of chat exchanges.
package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/ami/pkg/printers"
	"tableflip.dev/ami/pkg/store"
)

type History struct {
	Transcript store.Transcript
	// Agent limits the listing; empty lists every agent.
	Agent string
	Clear bool
	// Since drops exchanges older than it.
	Since  time.Time
	ShowID bool
	Output printers.Format
}

func (h *History) Do(ctx context.Context) error {
	if h.Clear {
		n, err := h.Transcript.Erase(ctx, h.Agent)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(color.Output, "Removed %d exchanges.\n", n)
		return nil
	}

	records := h.Transcript.List(ctx, h.Agent)
	if !h.Since.IsZero() {
		kept := records[:0]
		for _, r := range records {
			if !r.Created.Before(h.Since) {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	if h.Output != printers.FormatText && h.Output != "" {
		return printers.Structured(os.Stdout, h.Output, records)
	}
	pp := printers.PrettyPrint{ShowID: h.ShowID}
	pp.History(records...)
	return nil
}
