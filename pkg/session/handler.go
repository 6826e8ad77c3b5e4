package session

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"tableflip.dev/ami/pkg/reply"
)

// Recorder archives completed chat exchanges.
type Recorder interface {
	Record(agent, message, answer string, action reply.Action) error
}

// Handler drives Reduce synchronously: each Dispatch runs every effect it
// causes, in order, before returning. Dispatch calls are serialized, so one
// chat exchange finishes before the next begins.
type Handler struct {
	backend  Backend
	recorder Recorder
	log      logrus.FieldLogger

	mu    sync.Mutex
	state State
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

func WithRecorder(r Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = r
	}
}

func WithLogger(l logrus.FieldLogger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithState seeds the handler with an existing state.
func WithState(s State) HandlerOption {
	return func(h *Handler) {
		h.state = s
	}
}

func NewHandler(b Backend, agent string, opts ...HandlerOption) *Handler {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	h := &Handler{
		backend: b,
		log:     quiet,
		state:   New(agent),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// State returns a snapshot of the current state.
func (h *Handler) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.clone()
}

// Dispatch applies msg and every follow-up effect, returning the final state.
func (h *Handler) Dispatch(ctx context.Context, msg Msg) State {
	h.mu.Lock()
	defer h.mu.Unlock()

	queue := []Msg{msg}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]

		var effects []Effect
		h.state, effects = Reduce(h.state, m)
		for _, e := range effects {
			out := Execute(ctx, h.backend, e)
			if out == nil {
				continue
			}
			h.observe(e, out)
			queue = append(queue, out)
		}
	}
	return h.state.clone()
}

// observe logs failures and archives finished chat turns.
func (h *Handler) observe(e Effect, out Msg) {
	switch m := out.(type) {
	case ReplyReceived:
		if h.recorder != nil {
			agent := e.(ChatRequest).Agent
			if err := h.recorder.Record(agent, m.Message, m.Reply.Text, m.Reply.Action); err != nil {
				h.log.WithError(err).Warn("record transcript")
			}
		}
	case ReplyFailed:
		h.log.WithError(m.Err).Warn("chat failed")
	case SaveFailed:
		h.log.WithError(m.Err).Warn("save failed")
	case TimelineFailed:
		h.log.WithError(m.Err).Warn("timeline failed")
	case ReportFailed:
		h.log.WithError(m.Err).WithField("type", m.Type).Warn("report failed")
	case AgentPersistFailed:
		h.log.WithError(m.Err).Warn("switch agent failed")
	case SyncFailed:
		h.log.WithError(m.Err).Warn("sync failed")
	case EditFailed:
		h.log.WithError(m.Err).Warn("edit failed")
	case DraftSaveFailed:
		h.log.WithError(m.Err).Warn("draft save failed")
	}
}
