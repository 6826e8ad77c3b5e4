package session

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/report"
)

var errOffline = errors.New("offline")

// fakeBackend records every call and answers from canned fields.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	reply     string
	chatErr   error
	saveErr   error
	agentErr  error
	saved     []string
	entries   map[string][]entry.Entry
	listed    []string
	reports   map[report.Type]report.Response
	reportErr error
	draftSave client.DraftSaveResult
	sync      client.SyncResult
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		entries: map[string][]entry.Entry{},
		reports: map[report.Type]report.Response{},
	}
}

func (f *fakeBackend) call(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Chat(_ context.Context, _, _ string) (reply.Reply, error) {
	f.call("chat")
	if f.chatErr != nil {
		return reply.Reply{}, f.chatErr
	}
	return reply.Classify(f.reply), nil
}

func (f *fakeBackend) Observations(_ context.Context, agent string) ([]entry.Entry, error) {
	f.call("observations")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = append(f.listed, agent)
	return f.entries[agent], nil
}

func (f *fakeBackend) CreateObservation(_ context.Context, agent, text string) error {
	f.call("create")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, text)
	f.entries[agent] = append([]entry.Entry{{ID: "new", Text: text, Domain: agent}}, f.entries[agent]...)
	return nil
}

func (f *fakeBackend) UpdateObservation(_ context.Context, _, _, _ string) error {
	f.call("update")
	return f.saveErr
}

func (f *fakeBackend) Draft(_ context.Context) (client.Draft, error) {
	f.call("draft")
	return client.Draft{}, nil
}

func (f *fakeBackend) PutDraft(_ context.Context, _ string) error {
	f.call("put draft")
	return nil
}

func (f *fakeBackend) SaveDraft(_ context.Context) (client.DraftSaveResult, error) {
	f.call("save draft")
	return f.draftSave, nil
}

func (f *fakeBackend) SetActiveAgent(_ context.Context, _ string) error {
	f.call("set agent")
	return f.agentErr
}

func (f *fakeBackend) Reports(_ context.Context, _ string, t report.Type) (report.Response, error) {
	f.call("reports")
	if f.reportErr != nil {
		return report.Response{}, f.reportErr
	}
	return f.reports[t], nil
}

func (f *fakeBackend) InvalidateReports(_ string, _ report.Type) {
	f.call("invalidate")
}

func (f *fakeBackend) Regenerate(_ context.Context, _ string, _ report.Type) error {
	f.call("regenerate")
	return nil
}

func (f *fakeBackend) SyncGoogle(_ context.Context) (client.SyncResult, error) {
	f.call("sync")
	return f.sync, nil
}

type memoryRecorder struct {
	records []string
}

func (m *memoryRecorder) Record(agent, message, answer string, action reply.Action) error {
	m.records = append(m.records, agent+"|"+message+"|"+answer+"|"+string(action))
	return nil
}
