package session

import (
	"time"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/report"
)

// Msg is an input to Reduce: a user action or the result of an Effect.
type Msg interface {
	isMsg()
}

// User actions.
type (
	Send               struct{ Text string }
	ConfirmSave        struct{}
	Dismiss            struct{}
	SwitchAgent        struct{ Agent string }
	Refresh            struct{}
	EditEntry          struct{ ID, Text string }
	DraftChanged       struct{ Text string }
	SaveDraft          struct{}
	GenerateReflection struct{}
	RegenerateSummary  struct{}
	Sync               struct{}
)

// Effect results.
type (
	ReplyReceived struct {
		Turn    uint64
		Message string
		Reply   reply.Reply
	}
	ReplyFailed struct {
		Turn uint64
		Err  error
	}
	SaveSucceeded struct {
		Agent string
		Text  string
	}
	SaveFailed struct {
		Agent string
		Err   error
	}
	AgentPersisted     struct{ Agent string }
	AgentPersistFailed struct {
		Agent string
		Err   error
	}
	TimelineLoaded struct {
		Agent   string
		Entries []entry.Entry
		Draft   string
	}
	TimelineFailed struct {
		Agent string
		Err   error
	}
	ReportLoaded struct {
		Agent    string
		Type     report.Type
		Response report.Response
	}
	ReportFailed struct {
		Agent string
		Type  report.Type
		Err   error
	}
	Regenerated struct {
		Agent string
		Type  report.Type
	}
	RegenerateFailed struct {
		Agent string
		Type  report.Type
		Err   error
	}
	EditSucceeded   struct{ Agent string }
	EditFailed      struct{ Err error }
	DraftPushed     struct{}
	DraftPushFailed struct{ Err error }
	DraftSaved      struct{ Result client.DraftSaveResult }
	DraftSaveFailed struct{ Err error }
	Synced          struct {
		Result client.SyncResult
		At     time.Time
	}
	SyncFailed      struct{ Err error }
)

func (Send) isMsg()               {}
func (ConfirmSave) isMsg()        {}
func (Dismiss) isMsg()            {}
func (SwitchAgent) isMsg()        {}
func (Refresh) isMsg()            {}
func (EditEntry) isMsg()          {}
func (DraftChanged) isMsg()       {}
func (SaveDraft) isMsg()          {}
func (GenerateReflection) isMsg() {}
func (RegenerateSummary) isMsg()  {}
func (Sync) isMsg()               {}
func (ReplyReceived) isMsg()      {}
func (ReplyFailed) isMsg()        {}
func (SaveSucceeded) isMsg()      {}
func (SaveFailed) isMsg()         {}
func (AgentPersisted) isMsg()     {}
func (AgentPersistFailed) isMsg() {}
func (TimelineLoaded) isMsg()     {}
func (TimelineFailed) isMsg()     {}
func (ReportLoaded) isMsg()       {}
func (ReportFailed) isMsg()       {}
func (Regenerated) isMsg()        {}
func (RegenerateFailed) isMsg()   {}
func (EditSucceeded) isMsg()      {}
func (EditFailed) isMsg()         {}
func (DraftPushed) isMsg()        {}
func (DraftPushFailed) isMsg()    {}
func (DraftSaved) isMsg()         {}
func (DraftSaveFailed) isMsg()    {}
func (Synced) isMsg()             {}
func (SyncFailed) isMsg()         {}
