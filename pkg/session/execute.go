package session

import (
	"context"
	"time"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/report"
)

// Backend is the subset of the HTTP client the session needs.
type Backend interface {
	Chat(ctx context.Context, agent, message string) (reply.Reply, error)
	Observations(ctx context.Context, agent string) ([]entry.Entry, error)
	CreateObservation(ctx context.Context, agent, text string) error
	UpdateObservation(ctx context.Context, agent, id, text string) error
	Draft(ctx context.Context) (client.Draft, error)
	PutDraft(ctx context.Context, text string) error
	SaveDraft(ctx context.Context) (client.DraftSaveResult, error)
	SetActiveAgent(ctx context.Context, agent string) error
	Reports(ctx context.Context, agent string, t report.Type) (report.Response, error)
	Regenerate(ctx context.Context, agent string, t report.Type) error
	SyncGoogle(ctx context.Context) (client.SyncResult, error)
}

// ReportInvalidator is implemented by backends that cache reports.
type ReportInvalidator interface {
	InvalidateReports(agent string, t report.Type)
}

var (
	_ Backend           = (*client.Client)(nil)
	_ ReportInvalidator = (*client.Client)(nil)
)

// now is replaced in tests.
var now = time.Now

// Execute performs one effect against b and returns the message describing
// its outcome. Failures never escape; they come back as messages.
func Execute(ctx context.Context, b Backend, e Effect) Msg {
	switch e := e.(type) {
	case ChatRequest:
		r, err := b.Chat(ctx, e.Agent, e.Message)
		if err != nil {
			return ReplyFailed{Turn: e.Turn, Err: err}
		}
		return ReplyReceived{Turn: e.Turn, Message: e.Message, Reply: r}

	case SaveObservation:
		if err := b.CreateObservation(ctx, e.Agent, e.Text); err != nil {
			return SaveFailed{Agent: e.Agent, Err: err}
		}
		return SaveSucceeded{Agent: e.Agent, Text: e.Text}

	case UpdateObservation:
		if err := b.UpdateObservation(ctx, e.Agent, e.ID, e.Text); err != nil {
			return EditFailed{Err: err}
		}
		return EditSucceeded{Agent: e.Agent}

	case PersistAgent:
		if err := b.SetActiveAgent(ctx, e.Agent); err != nil {
			return AgentPersistFailed{Agent: e.Agent, Err: err}
		}
		return AgentPersisted{Agent: e.Agent}

	case LoadTimeline:
		// A missing draft never blocks the saved entries.
		var draft string
		if d, err := b.Draft(ctx); err == nil {
			draft = d.Text()
		}
		entries, err := b.Observations(ctx, e.Agent)
		if err != nil {
			return TimelineFailed{Agent: e.Agent, Err: err}
		}
		return TimelineLoaded{Agent: e.Agent, Entries: entries, Draft: draft}

	case LoadReport:
		if inv, ok := b.(ReportInvalidator); ok && e.Fresh {
			inv.InvalidateReports(e.Agent, e.Type)
		}
		resp, err := b.Reports(ctx, e.Agent, e.Type)
		if err != nil {
			return ReportFailed{Agent: e.Agent, Type: e.Type, Err: err}
		}
		return ReportLoaded{Agent: e.Agent, Type: e.Type, Response: resp}

	case TriggerReport:
		if err := b.Regenerate(ctx, e.Agent, e.Type); err != nil {
			return RegenerateFailed{Agent: e.Agent, Type: e.Type, Err: err}
		}
		return Regenerated{Agent: e.Agent, Type: e.Type}

	case PutDraft:
		if err := b.PutDraft(ctx, e.Text); err != nil {
			return DraftPushFailed{Err: err}
		}
		return DraftPushed{}

	case SubmitDraft:
		r, err := b.SaveDraft(ctx)
		if err != nil {
			return DraftSaveFailed{Err: err}
		}
		return DraftSaved{Result: r}

	case SyncExternal:
		r, err := b.SyncGoogle(ctx)
		if err != nil {
			return SyncFailed{Err: err}
		}
		return Synced{Result: r, At: now()}
	}
	return nil
}
