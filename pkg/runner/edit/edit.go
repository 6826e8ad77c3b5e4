// Package edit rewrites the text of a saved entry.
package edit

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/ami/pkg/runner/timeline"
)

type Store interface {
	timeline.Source
	UpdateObservation(ctx context.Context, agent, id, text string) error
}

type Edit struct {
	Store   Store
	Agent   string
	ID      string
	Message string
	Limit   int
}

func (n *Edit) Do(ctx context.Context) error {
	text := strings.TrimSpace(n.Message)
	if text == "" {
		return errors.New("edit: new text is empty")
	}
	if err := n.Store.UpdateObservation(ctx, n.Agent, n.ID, text); err != nil {
		return err
	}

	t := timeline.Timeline{Source: n.Store, Agent: n.Agent, Limit: n.Limit, ShowID: true}
	return t.Do(ctx)
}
