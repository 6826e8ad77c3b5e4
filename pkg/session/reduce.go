package session

import (
	"strings"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/report"
)

const (
	thinking       = "…"
	chatFailure    = "I’m having trouble responding right now. We can try again later."
	saveFailure    = "I couldn’t save that just now. We can try again later."
	savedConfirmed = "I’ve saved this."
)

// Reduce applies msg to s and returns the next state and the effects the
// driver must run. Messages that do not apply leave the state untouched.
func Reduce(s State, msg Msg) (State, []Effect) {
	n := s.clone()

	switch m := msg.(type) {
	case Send:
		text := strings.TrimSpace(m.Text)
		if text == "" {
			return s, nil
		}
		n.Status = ""
		n.clearPending()
		n.Turn++
		n.Chat = append(n.Chat,
			Message{Role: RoleUser, Text: text, Turn: n.Turn},
			Message{Role: RoleAssistant, Text: thinking, Turn: n.Turn, Placeholder: true},
		)
		return n, []Effect{ChatRequest{Turn: n.Turn, Agent: n.Agent, Message: text}}

	case ReplyReceived:
		if !n.fill(m.Turn, m.Reply.Text) {
			return s, nil
		}
		// An older turn still shows its text but no longer owns the
		// pending observation.
		if m.Turn != n.Turn {
			return n, nil
		}
		switch m.Reply.Action {
		case reply.ActionAskToSave:
			n.setPending(m.Message)
		case reply.ActionAutoSaved:
			n.clearPending()
			return n, []Effect{LoadTimeline{Agent: n.Agent}}
		default:
			n.clearPending()
		}
		return n, nil

	case ReplyFailed:
		if !n.fill(m.Turn, chatFailure) {
			return s, nil
		}
		return n, nil

	case ConfirmSave:
		text, ok := s.PendingText()
		if !ok || s.Saving {
			return s, nil
		}
		n.Status = ""
		n.Saving = true
		return n, []Effect{SaveObservation{Agent: n.Agent, Text: text}}

	case SaveSucceeded:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Saving = false
		// A newer ask may have replaced the observation while this one
		// was being saved; it stays pending.
		if text, ok := n.PendingText(); ok && text == m.Text {
			n.clearPending()
		}
		n.say(savedConfirmed)
		return n, []Effect{LoadTimeline{Agent: n.Agent}}

	case SaveFailed:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Saving = false
		n.Status = "Save failed"
		n.say(saveFailure)
		return n, nil

	case Dismiss:
		n.clearPending()
		return n, nil

	case SwitchAgent:
		agent := strings.TrimSpace(m.Agent)
		if agent == "" {
			return s, nil
		}
		fresh := New(agent)
		fresh.ReflectionLimit = n.ReflectionLimit
		// Replies still in flight belong to the previous agent.
		fresh.Turn = n.Turn + 1
		return fresh, []Effect{PersistAgent{Agent: agent}}

	case AgentPersisted:
		if m.Agent != n.Agent {
			return s, nil
		}
		return n, reloadAll(n.Agent)

	case AgentPersistFailed:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Status = "Could not switch the backend to " + m.Agent
		return n, reloadAll(n.Agent)

	case Refresh:
		n.Status = ""
		return n, reload(n.Agent, true)

	case TimelineLoaded:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Timeline = m.Entries
		n.Draft = m.Draft
		return n, nil

	case TimelineFailed:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Status = "Failed to load timeline"
		return n, nil

	case ReportLoaded:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.setPanel(m.Type, m.Response)
		return n, nil

	case ReportFailed:
		if m.Agent != n.Agent {
			return s, nil
		}
		if text := client.BackendMessage(m.Err); text != "" {
			n.setPanel(m.Type, report.Response{Status: report.StatusError, Message: text})
		} else if m.Type == report.CategorySummary {
			n.Summary = report.Failed(m.Type)
		} else {
			n.Reflections = report.Failed(m.Type)
		}
		return n, nil

	case GenerateReflection:
		n.Status = "Generating reflection…"
		n.Reflections = report.Loading(report.WeeklyReflection)
		return n, []Effect{TriggerReport{Agent: n.Agent, Type: report.WeeklyReflection}}

	case RegenerateSummary:
		n.Status = "Regenerating…"
		n.Summary = report.Loading(report.CategorySummary)
		return n, []Effect{TriggerReport{Agent: n.Agent, Type: report.CategorySummary}}

	case Regenerated:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Status = ""
		return n, []Effect{LoadReport{Agent: n.Agent, Type: m.Type}}

	case RegenerateFailed:
		if m.Agent != n.Agent {
			return s, nil
		}
		if m.Type == report.CategorySummary {
			n.Status = "Failed to regenerate summary."
		} else {
			n.Status = "Failed to generate reflection."
		}
		return n, []Effect{LoadReport{Agent: n.Agent, Type: m.Type}}

	case EditEntry:
		id, text := strings.TrimSpace(m.ID), strings.TrimSpace(m.Text)
		if id == "" || text == "" {
			return s, nil
		}
		n.Status = ""
		return n, []Effect{UpdateObservation{Agent: n.Agent, ID: id, Text: text}}

	case EditSucceeded:
		if m.Agent != n.Agent {
			return s, nil
		}
		n.Status = "Changes saved"
		return n, []Effect{LoadTimeline{Agent: n.Agent}}

	case EditFailed:
		n.Status = "Failed to save changes"
		return n, nil

	case DraftChanged:
		n.Draft = m.Text
		return n, []Effect{PutDraft{Text: m.Text}}

	case DraftPushed:
		return s, nil

	case DraftPushFailed:
		n.Status = "Failed to update draft"
		return n, nil

	case SaveDraft:
		n.Status = ""
		return n, []Effect{SubmitDraft{}}

	case DraftSaved:
		switch m.Result.Status {
		case client.DraftSaved:
			n.Status = "Saved"
			return n, []Effect{LoadTimeline{Agent: n.Agent}}
		case client.DraftIncomplete:
			n.Status = m.Result.Message
		default:
			n.Status = m.Result.Message
			if n.Status == "" {
				n.Status = m.Result.Status
			}
		}
		return n, nil

	case DraftSaveFailed:
		n.Status = "Failed to save"
		if text := client.BackendMessage(m.Err); text != "" {
			n.Status = text
		}
		return n, nil

	case Sync:
		if n.Syncing {
			return s, nil
		}
		n.Syncing = true
		n.Status = "Syncing…"
		return n, []Effect{SyncExternal{}}

	case Synced:
		n.Syncing = false
		n.Status = m.Result.Summary(m.At)
		return n, nil

	case SyncFailed:
		n.Syncing = false
		n.Status = "Sync failed"
		return n, nil
	}

	return s, nil
}

func (s *State) setPanel(t report.Type, resp report.Response) {
	if t == report.CategorySummary {
		s.Summary = report.SummaryPanel(resp)
		return
	}
	s.Reflections = report.ReflectionPanel(resp, s.ReflectionLimit)
}
