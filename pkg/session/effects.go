package session

import (
	"tableflip.dev/ami/pkg/report"
)

// Effect is work Reduce asks its driver to perform.
type Effect interface {
	isEffect()
}

type (
	ChatRequest struct {
		Turn    uint64
		Agent   string
		Message string
	}
	SaveObservation struct {
		Agent string
		Text  string
	}
	UpdateObservation struct {
		Agent string
		ID    string
		Text  string
	}
	PersistAgent  struct{ Agent string }
	LoadTimeline  struct{ Agent string }
	LoadReport    struct {
		Agent string
		Type  report.Type
		// Fresh skips any cached copy.
		Fresh bool
	}
	TriggerReport struct {
		Agent string
		Type  report.Type
	}
	PutDraft     struct{ Text string }
	SubmitDraft  struct{}
	SyncExternal struct{}
)

func (ChatRequest) isEffect()       {}
func (SaveObservation) isEffect()   {}
func (UpdateObservation) isEffect() {}
func (PersistAgent) isEffect()      {}
func (LoadTimeline) isEffect()      {}
func (LoadReport) isEffect()        {}
func (TriggerReport) isEffect()     {}
func (PutDraft) isEffect()          {}
func (SubmitDraft) isEffect()       {}
func (SyncExternal) isEffect()      {}

// reloadAll refreshes every agent scoped panel.
func reloadAll(agent string) []Effect {
	return reload(agent, false)
}

func reload(agent string, fresh bool) []Effect {
	return []Effect{
		LoadTimeline{Agent: agent},
		LoadReport{Agent: agent, Type: report.WeeklyReflection, Fresh: fresh},
		LoadReport{Agent: agent, Type: report.CategorySummary, Fresh: fresh},
	}
}
