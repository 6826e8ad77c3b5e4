// Package sheets pushes saved entries to the backend's external sink.
package sheets

import (
	"context"
	"os"
	"time"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/printers"
)

type Syncer interface {
	SyncGoogle(ctx context.Context) (client.SyncResult, error)
}

type Sync struct {
	Syncer Syncer
	Output printers.Format
}

func (s *Sync) Do(ctx context.Context) error {
	res, err := s.Syncer.SyncGoogle(ctx)
	if err != nil {
		return err
	}
	if s.Output != printers.FormatText && s.Output != "" {
		return printers.Structured(os.Stdout, s.Output, res)
	}
	pp := printers.PrettyPrint{}
	pp.Status(res.Summary(time.Now()))
	return nil
}
