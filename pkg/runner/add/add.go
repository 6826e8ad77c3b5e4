// Package add saves a journal entry directly, skipping the chat.
package add

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/ami/pkg/runner/timeline"
)

type Store interface {
	timeline.Source
	CreateObservation(ctx context.Context, agent, text string) error
}

type Add struct {
	Store   Store
	Agent   string
	Message string
	// Limit caps the timeline printed after saving.
	Limit int
}

func (n *Add) Do(ctx context.Context) error {
	text := strings.TrimSpace(n.Message)
	if text == "" {
		return errors.New("add: nothing to save")
	}
	if err := n.Store.CreateObservation(ctx, n.Agent, text); err != nil {
		return err
	}

	t := timeline.Timeline{Source: n.Store, Agent: n.Agent, Limit: n.Limit}
	return t.Do(ctx)
}

