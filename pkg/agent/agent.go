// Package agent describes the personas the backend can be scoped to.
package agent

import (
	"fmt"
	"strings"
)

// Agent is a named persona/context that scopes backend data and reports.
type Agent struct {
	ID       string
	Title    string
	Subtitle string
	Aliases  []string
	Order    int
}

const (
	Ami       = "ami"
	Workbench = "workbench"
	Caretaker = "caretaker"
	Steward   = "steward"
)

// Default is used when neither config nor the backend names an agent.
const Default = Ami

func DefaultAgents() []Agent {
	return []Agent{{
		ID:       Ami,
		Title:    "Ami",
		Subtitle: "Notice and record everyday moments with your child",
		Aliases:  []string{"a", "child", "kid"},
		Order:    1,
	}, {
		ID:       Workbench,
		Title:    "Workbench",
		Subtitle: "Capture work learnings, insights, and professional notes",
		Aliases:  []string{"w", "work"},
		Order:    2,
	}, {
		ID:       Caretaker,
		Title:    "Caretaker",
		Subtitle: "Keep a clear record of family medical history and health events",
		Aliases:  []string{"c", "care", "health"},
		Order:    3,
	}, {
		ID:       Steward,
		Title:    "Steward",
		Subtitle: "Track and document long-running projects and decisions",
		Aliases:  []string{"s", "project", "projects"},
		Order:    4,
	}}
}

// ForAlias resolves an id or alias to a known agent.
func ForAlias(alias string) (Agent, error) {
	a := strings.ToLower(strings.TrimSpace(alias))
	if a == "" {
		return Agent{}, fmt.Errorf("agent: empty name")
	}
	for _, ag := range DefaultAgents() {
		if ag.ID == a {
			return ag, nil
		}
		for _, al := range ag.Aliases {
			if al == a {
				return ag, nil
			}
		}
	}
	return Agent{}, fmt.Errorf("agent: unknown agent %q", alias)
}

// Lookup returns the catalog entry for id, or a bare entry titled by the id
// when the backend knows an agent this client does not.
func Lookup(id string) Agent {
	if ag, err := ForAlias(id); err == nil {
		return ag
	}
	return Agent{ID: id, Title: id}
}

// Next returns the agent after id in catalog order, wrapping around.
func Next(id string) string {
	all := DefaultAgents()
	for i, ag := range all {
		if ag.ID == id {
			return all[(i+1)%len(all)].ID
		}
	}
	return all[0].ID
}

func (a Agent) String() string {
	if a.Subtitle == "" {
		return a.Title
	}
	return fmt.Sprintf("%s - %s", a.Title, a.Subtitle)
}

// ByOrder sorts agents by their catalog order.
type ByOrder []Agent

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i].Order < a[j].Order }
