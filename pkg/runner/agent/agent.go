// Package agent shows and switches the active agent.
package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	ag "tableflip.dev/ami/pkg/agent"
)

// Store reads and writes the backend's active agent.
type Store interface {
	ActiveAgent(ctx context.Context) (string, error)
	SetActiveAgent(ctx context.Context, agent string) error
}

type Agent struct {
	Store Store
	// Name switches to this agent when set; otherwise the catalog is printed.
	Name string
}

func (a *Agent) Do(ctx context.Context) error {
	if a.Name != "" {
		return a.switchTo(ctx)
	}

	active, err := a.Store.ActiveAgent(ctx)
	if err != nil {
		return err
	}
	a.Legend(ctx, active)
	return nil
}

func (a *Agent) switchTo(ctx context.Context) error {
	id := strings.ToLower(strings.TrimSpace(a.Name))
	if known, err := ag.ForAlias(id); err == nil {
		id = known.ID
	}
	if err := a.Store.SetActiveAgent(ctx, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Switched to %s.\n", ag.Lookup(id).Title)
	return nil
}

// Legend prints the known agents, marking the active one.
func (a *Agent) Legend(_ context.Context, active string) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	agents := ag.DefaultAgents()
	sort.Sort(ag.ByOrder(agents))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Agent"), bold.Sprint("Aliases"), bold.Sprint("Purpose"))
	found := false
	for _, v := range agents {
		mark := ""
		if v.ID == active {
			mark = "*"
			found = true
		}
		tbl.AddRow(mark, v.Title, faint.Sprint(strings.Join(v.Aliases, ", ")), v.Subtitle)
	}
	if !found && active != "" {
		tbl.AddRow("*", active, "", faint.Sprint("unknown to this client"))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, "")
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}
