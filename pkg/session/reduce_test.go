package session

import (
	"errors"
	"testing"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/report"
)

func send(t *testing.T, s State, text string) (State, ChatRequest) {
	t.Helper()
	s, effects := Reduce(s, Send{Text: text})
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %#v", effects)
	}
	req, ok := effects[0].(ChatRequest)
	if !ok {
		t.Fatalf("expected chat request, got %T", effects[0])
	}
	return s, req
}

func TestSendBlankIsIgnored(t *testing.T) {
	s := New("ami")
	next, effects := Reduce(s, Send{Text: "   "})
	if len(effects) != 0 || len(next.Chat) != 0 || next.Turn != 0 {
		t.Fatalf("blank send should be a no-op: %#v %#v", next, effects)
	}
}

func TestSendAddsPlaceholderAndClearsPending(t *testing.T) {
	s := New("ami")
	s.setPending("earlier")

	s, req := send(t, s, "  she laughed today ")
	if req.Message != "she laughed today" || req.Agent != "ami" || req.Turn != 1 {
		t.Fatalf("unexpected request %#v", req)
	}
	if _, ok := s.PendingText(); ok || s.SaveControls {
		t.Fatalf("sending should clear the pending observation")
	}
	if len(s.Chat) != 2 || s.Chat[0].Role != RoleUser || !s.Chat[1].Placeholder {
		t.Fatalf("unexpected chat %#v", s.Chat)
	}
}

func TestReplyAskToSave(t *testing.T) {
	s, req := send(t, New("ami"), "first steps")
	s, effects := Reduce(s, ReplyReceived{Turn: req.Turn, Message: req.Message, Reply: reply.Classify("Shall I save that? [ASK_TO_SAVE]")})
	if len(effects) != 0 {
		t.Fatalf("unexpected effects %#v", effects)
	}
	got, ok := s.PendingText()
	if !ok || got != "first steps" {
		t.Fatalf("pending = %q, %v", got, ok)
	}
	if !s.SaveControls {
		t.Fatalf("save controls should be visible")
	}
	last := s.Chat[len(s.Chat)-1]
	if last.Text != "Shall I save that?" || last.Placeholder {
		t.Fatalf("unexpected reply bubble %#v", last)
	}
}

func TestReplyAutoSaved(t *testing.T) {
	s, req := send(t, New("ami"), "first steps")
	s.SaveControls = true
	s, effects := Reduce(s, ReplyReceived{Turn: req.Turn, Message: req.Message, Reply: reply.Classify("[AUTO_SAVED] Noted.")})
	if _, ok := s.PendingText(); ok || s.SaveControls {
		t.Fatalf("auto saved should clear pending and hide controls")
	}
	if len(effects) != 1 {
		t.Fatalf("expected a timeline reload, got %#v", effects)
	}
	if lt, ok := effects[0].(LoadTimeline); !ok || lt.Agent != "ami" {
		t.Fatalf("expected timeline reload, got %#v", effects[0])
	}
	if s.Chat[len(s.Chat)-1].Text != "Noted." {
		t.Fatalf("sentinel not stripped: %q", s.Chat[len(s.Chat)-1].Text)
	}
}

func TestReplyWithoutSentinel(t *testing.T) {
	s, req := send(t, New("ami"), "hello")
	s, effects := Reduce(s, ReplyReceived{Turn: req.Turn, Message: req.Message, Reply: reply.Classify("Hi there.")})
	if len(effects) != 0 {
		t.Fatalf("unexpected effects %#v", effects)
	}
	if _, ok := s.PendingText(); ok || s.SaveControls {
		t.Fatalf("no save should be pending")
	}
}

func TestReplyFailedShowsInlineMessage(t *testing.T) {
	s, req := send(t, New("ami"), "hello")
	s, _ = Reduce(s, ReplyFailed{Turn: req.Turn, Err: errors.New("boom")})
	if got := s.Chat[len(s.Chat)-1]; got.Text != chatFailure || got.Placeholder {
		t.Fatalf("unexpected bubble %#v", got)
	}
}

func TestStaleReplyDoesNotOwnPending(t *testing.T) {
	s, first := send(t, New("ami"), "first")
	s, second := send(t, s, "second")

	// The first reply resolves after the second send.
	s, _ = Reduce(s, ReplyReceived{Turn: first.Turn, Message: first.Message, Reply: reply.Classify("save? [ASK_TO_SAVE]")})
	if _, ok := s.PendingText(); ok {
		t.Fatalf("stale reply must not set pending")
	}
	if s.Chat[1].Text != "save?" {
		t.Fatalf("stale reply should still fill its bubble, got %#v", s.Chat[1])
	}

	s, _ = Reduce(s, ReplyReceived{Turn: second.Turn, Message: second.Message, Reply: reply.Classify("save? [ASK_TO_SAVE]")})
	if got, _ := s.PendingText(); got != "second" {
		t.Fatalf("pending = %q, want second", got)
	}
}

func TestConfirmWithoutPendingDoesNothing(t *testing.T) {
	s := New("ami")
	next, effects := Reduce(s, ConfirmSave{})
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	if next.SaveControls {
		t.Fatalf("unexpected state change")
	}
}

func TestConfirmSaveFlow(t *testing.T) {
	s := New("workbench")
	s.setPending("shipped it")

	s, effects := Reduce(s, ConfirmSave{})
	save, ok := effects[0].(SaveObservation)
	if !ok || save.Text != "shipped it" || save.Agent != "workbench" {
		t.Fatalf("unexpected effects %#v", effects)
	}

	if !s.Saving {
		t.Fatalf("expected save in flight")
	}

	s, effects = Reduce(s, SaveSucceeded{Agent: "workbench", Text: "shipped it"})
	if s.Saving {
		t.Fatalf("save success should end the save")
	}
	if _, ok := s.PendingText(); ok || s.SaveControls {
		t.Fatalf("save success should clear pending")
	}
	if _, ok := effects[0].(LoadTimeline); !ok {
		t.Fatalf("expected timeline reload, got %#v", effects)
	}
	if s.Chat[len(s.Chat)-1].Text != savedConfirmed {
		t.Fatalf("expected confirmation bubble")
	}
}

func TestSaveFailedKeepsPending(t *testing.T) {
	s := New("ami")
	s.setPending("keep me")
	s, effects := Reduce(s, SaveFailed{Agent: "ami", Err: errors.New("boom")})
	if len(effects) != 0 {
		t.Fatalf("no retry expected, got %#v", effects)
	}
	if got, ok := s.PendingText(); !ok || got != "keep me" {
		t.Fatalf("pending changed: %q %v", got, ok)
	}
	if !s.SaveControls {
		t.Fatalf("controls should stay visible")
	}
	if s.Status == "" {
		t.Fatalf("expected a failure status")
	}
}

func TestLateSaveKeepsNewerPending(t *testing.T) {
	s, first := send(t, New("ami"), "first")
	s, _ = Reduce(s, ReplyReceived{Turn: first.Turn, Message: first.Message, Reply: reply.Classify("save? [ASK_TO_SAVE]")})
	s, effects := Reduce(s, ConfirmSave{})
	save := effects[0].(SaveObservation)

	s, second := send(t, s, "second")
	s, _ = Reduce(s, ReplyReceived{Turn: second.Turn, Message: second.Message, Reply: reply.Classify("and this? [ASK_TO_SAVE]")})

	s, _ = Reduce(s, SaveSucceeded{Agent: save.Agent, Text: save.Text})
	if got, ok := s.PendingText(); !ok || got != "second" {
		t.Fatalf("pending = %q %v, want second", got, ok)
	}
	if !s.SaveControls {
		t.Fatalf("controls for the newer observation should stay visible")
	}
	if s.Saving {
		t.Fatalf("save should no longer be in flight")
	}
}

func TestConfirmWhileSavingIsIgnored(t *testing.T) {
	s := New("ami")
	s.setPending("once")

	s, effects := Reduce(s, ConfirmSave{})
	if len(effects) != 1 {
		t.Fatalf("expected one save, got %#v", effects)
	}
	s, effects = Reduce(s, ConfirmSave{})
	if len(effects) != 0 {
		t.Fatalf("second confirm must not save again, got %#v", effects)
	}

	s, _ = Reduce(s, SaveFailed{Agent: "ami", Err: errors.New("boom")})
	if s.Saving {
		t.Fatalf("failed save should end the save")
	}
	if _, effects = Reduce(s, ConfirmSave{}); len(effects) != 1 {
		t.Fatalf("retry after failure should save, got %#v", effects)
	}
}

func TestSaveResultForOtherAgentIgnored(t *testing.T) {
	s := New("ami")
	s.setPending("mine")
	s, _ = Reduce(s, ConfirmSave{})

	next, effects := Reduce(s, SaveFailed{Agent: "workbench", Err: errors.New("boom")})
	if len(effects) != 0 || !next.Saving || next.Status != "" {
		t.Fatalf("result for another agent should be dropped: %#v %#v", next, effects)
	}
}

func TestDismiss(t *testing.T) {
	s := New("ami")
	s.setPending("x")
	s, effects := Reduce(s, Dismiss{})
	if len(effects) != 0 {
		t.Fatalf("dismiss should not call the backend")
	}
	if _, ok := s.PendingText(); ok || s.SaveControls {
		t.Fatalf("dismiss should clear pending")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := New("ami")
	s.setPending("original")
	s.Chat = []Message{{Role: RoleUser, Text: "hi"}}

	_, _ = Reduce(s, Dismiss{})
	_, _ = Reduce(s, Send{Text: "more"})
	if got, _ := s.PendingText(); got != "original" || len(s.Chat) != 1 {
		t.Fatalf("input state mutated: %#v", s)
	}
}

func TestSwitchAgentClearsSession(t *testing.T) {
	s, req := send(t, New("ami"), "hello")
	s.setPending("hello")
	s.Timeline = []entry.Entry{{ID: "1"}}

	s, effects := Reduce(s, SwitchAgent{Agent: "steward"})
	if s.Agent != "steward" || len(s.Chat) != 0 || s.SaveControls || len(s.Timeline) != 0 {
		t.Fatalf("switch did not clear state: %#v", s)
	}
	if _, ok := s.PendingText(); ok {
		t.Fatalf("pending survived switch")
	}
	if p, ok := effects[0].(PersistAgent); !ok || p.Agent != "steward" {
		t.Fatalf("expected persist effect, got %#v", effects)
	}

	// The reply to the old agent's message arrives late and is dropped.
	after, _ := Reduce(s, ReplyReceived{Turn: req.Turn, Message: "hello", Reply: reply.Classify("save? [ASK_TO_SAVE]")})
	if len(after.Chat) != 0 {
		t.Fatalf("late reply leaked into new chat: %#v", after.Chat)
	}
	if _, ok := after.PendingText(); ok {
		t.Fatalf("late reply set pending")
	}

	s, effects = Reduce(s, AgentPersisted{Agent: "steward"})
	if len(effects) != 3 {
		t.Fatalf("expected three reloads, got %#v", effects)
	}
	for _, e := range effects {
		switch e := e.(type) {
		case LoadTimeline:
			if e.Agent != "steward" {
				t.Fatalf("reload for wrong agent %#v", e)
			}
		case LoadReport:
			if e.Agent != "steward" {
				t.Fatalf("reload for wrong agent %#v", e)
			}
		default:
			t.Fatalf("unexpected effect %T", e)
		}
	}
}

func TestLoadedForOtherAgentIsDiscarded(t *testing.T) {
	s := New("ami")
	next, _ := Reduce(s, TimelineLoaded{Agent: "workbench", Entries: []entry.Entry{{ID: "x"}}})
	if len(next.Timeline) != 0 {
		t.Fatalf("foreign timeline applied")
	}
	next, _ = Reduce(s, TimelineLoaded{Agent: "ami", Entries: []entry.Entry{{ID: "x"}}, Draft: "draft"})
	if len(next.Timeline) != 1 || next.Draft != "draft" {
		t.Fatalf("timeline not applied: %#v", next)
	}
}

func TestReportPanels(t *testing.T) {
	s := New("ami")
	s, _ = Reduce(s, ReportLoaded{Agent: "ami", Type: report.WeeklyReflection, Response: report.Response{Status: report.StatusNoData}})
	if s.Reflections.Placeholder != "No reflections yet." {
		t.Fatalf("unexpected reflections %#v", s.Reflections)
	}
	err := &client.Error{Op: "list reports", Kind: client.KindBackend, Status: 400, Message: "Active agent is not Ami"}
	s, _ = Reduce(s, ReportFailed{Agent: "ami", Type: report.CategorySummary, Err: err})
	if s.Summary.Placeholder != "Active agent is not Ami" {
		t.Fatalf("unexpected summary %#v", s.Summary)
	}
	s, _ = Reduce(s, ReportFailed{Agent: "ami", Type: report.WeeklyReflection, Err: errors.New("dial tcp")})
	if s.Reflections.Placeholder != "Failed to load reflections." {
		t.Fatalf("unexpected reflections %#v", s.Reflections)
	}
}

func TestRegenerate(t *testing.T) {
	s := New("ami")
	s, effects := Reduce(s, RegenerateSummary{})
	if tr, ok := effects[0].(TriggerReport); !ok || tr.Type != report.CategorySummary {
		t.Fatalf("unexpected effects %#v", effects)
	}
	_, effects = Reduce(s, RegenerateFailed{Agent: "ami", Type: report.CategorySummary, Err: errors.New("x")})
	if lr, ok := effects[0].(LoadReport); !ok || lr.Type != report.CategorySummary {
		t.Fatalf("expected summary reload after failure, got %#v", effects)
	}
}

func TestEditEntry(t *testing.T) {
	s := New("ami")
	if _, effects := Reduce(s, EditEntry{ID: "3", Text: "  "}); len(effects) != 0 {
		t.Fatalf("blank edit should be ignored")
	}
	_, effects := Reduce(s, EditEntry{ID: "3", Text: " fixed "})
	if u, ok := effects[0].(UpdateObservation); !ok || u.Text != "fixed" || u.ID != "3" {
		t.Fatalf("unexpected effects %#v", effects)
	}
	_, effects = Reduce(s, EditSucceeded{Agent: "ami"})
	if _, ok := effects[0].(LoadTimeline); !ok {
		t.Fatalf("edit should reload the timeline")
	}
}

func TestDraftSaveStatuses(t *testing.T) {
	s := New("ami")
	next, effects := Reduce(s, DraftSaved{Result: client.DraftSaveResult{Status: client.DraftSaved}})
	if next.Status != "Saved" || len(effects) != 1 {
		t.Fatalf("unexpected %#v %#v", next.Status, effects)
	}
	next, effects = Reduce(s, DraftSaved{Result: client.DraftSaveResult{Status: client.DraftIncomplete, Message: "Add a date."}})
	if next.Status != "Add a date." || len(effects) != 0 {
		t.Fatalf("unexpected %#v %#v", next.Status, effects)
	}
}

func TestSyncIgnoresDoubleTrigger(t *testing.T) {
	s := New("ami")
	s, effects := Reduce(s, Sync{})
	if len(effects) != 1 || !s.Syncing {
		t.Fatalf("expected sync to start")
	}
	_, effects = Reduce(s, Sync{})
	if len(effects) != 0 {
		t.Fatalf("second sync should be ignored while syncing")
	}
	s, _ = Reduce(s, SyncFailed{Err: errors.New("x")})
	if s.Syncing || s.Status != "Sync failed" {
		t.Fatalf("unexpected state %#v", s)
	}
}
