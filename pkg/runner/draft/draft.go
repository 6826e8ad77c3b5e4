// Package draft inspects and edits the backend's unsaved draft.
package draft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/printers"
	"tableflip.dev/ami/pkg/store"
)

type Store interface {
	Draft(ctx context.Context) (client.Draft, error)
	PutDraft(ctx context.Context, text string) error
	SaveDraft(ctx context.Context) (client.DraftSaveResult, error)
}

type Draft struct {
	Store  Store
	Output printers.Format
	Log    logrus.FieldLogger
	Out    io.Writer
}

func (d *Draft) out() io.Writer {
	if d.Out == nil {
		return color.Output
	}
	return d.Out
}

// Show prints the current draft.
func (d *Draft) Show(ctx context.Context) error {
	dr, err := d.Store.Draft(ctx)
	if err != nil {
		return err
	}
	if d.Output != printers.FormatText && d.Output != "" {
		return printers.Structured(d.out(), d.Output, dr)
	}
	if dr.Empty() {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(d.out(), "Draft is empty.")
		return nil
	}
	_, _ = fmt.Fprintln(d.out(), dr.Text())
	return nil
}

// Set replaces the draft with text.
func (d *Draft) Set(ctx context.Context, text string) error {
	return d.Store.PutDraft(ctx, text)
}

// Save turns the draft into a journal entry. An incomplete draft is not an
// error; the backend's message says what is missing.
func (d *Draft) Save(ctx context.Context) error {
	res, err := d.Store.SaveDraft(ctx)
	if err != nil {
		return err
	}
	if d.Output != printers.FormatText && d.Output != "" {
		return printers.Structured(d.out(), d.Output, res)
	}
	msg := res.Message
	switch {
	case msg != "":
	case res.Status == client.DraftSaved:
		msg = "Draft saved."
	case res.Status == client.DraftIncomplete:
		msg = "Draft is incomplete."
	default:
		msg = res.Status
	}
	_, _ = fmt.Fprintln(d.out(), msg)
	return nil
}

// Watch pushes the contents of path to the draft every time the file changes,
// until ctx is cancelled.
func (d *Draft) Watch(ctx context.Context, path string) error {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	log := d.Log.WithField("path", path)

	if err := d.push(ctx, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	events, err := store.WatchFile(ctx, path, d.Log)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(d.out(), "Watching %s for changes. Press ctrl+c to stop.\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Removed {
				log.Info("draft file removed, waiting for it to return")
				continue
			}
			if err := d.push(ctx, ev.Path); err != nil {
				log.WithError(err).Warn("failed to update draft")
				continue
			}
			log.Debug("draft updated")
		}
	}
}

func (d *Draft) push(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return d.Store.PutDraft(ctx, strings.TrimRight(string(b), "\n"))
}
