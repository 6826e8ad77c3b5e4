// Package session holds the client-side state of one journaling session and
// the reducer that applies user actions and backend results to it.
//
// Reduce is pure: it returns the next State and the Effects to perform. A
// driver (Handler, or the terminal UI) performs the effects and feeds the
// resulting messages back in.
package session

import (
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/report"
)

// Role says who wrote a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one bubble in the chat log.
type Message struct {
	Role        Role   `json:"role"`
	Text        string `json:"text"`
	Turn        uint64 `json:"turn,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// State is everything the client shows. It is a value; Reduce never mutates
// the State it is given in place.
type State struct {
	Agent string

	// Pending is the text the user may confirm saving. At most one is
	// outstanding; a newer ask replaces it.
	Pending      *string
	SaveControls bool
	// Saving is set while a confirmed save is in flight.
	Saving bool

	Chat []Message
	Turn uint64

	Timeline    []entry.Entry
	Draft       string
	Reflections report.Panel
	Summary     report.Panel

	Status  string
	Syncing bool

	// ReflectionLimit caps how many reflections the panel keeps.
	ReflectionLimit int
}

// New returns the initial state for agent.
func New(agent string) State {
	return State{
		Agent:           agent,
		Reflections:     report.Loading(report.WeeklyReflection),
		Summary:         report.Loading(report.CategorySummary),
		ReflectionLimit: 5,
	}
}

// PendingText returns the pending observation and whether one is set.
func (s State) PendingText() (string, bool) {
	if s.Pending == nil {
		return "", false
	}
	return *s.Pending, true
}

func (s State) clone() State {
	n := s
	n.Chat = append([]Message(nil), s.Chat...)
	if s.Pending != nil {
		p := *s.Pending
		n.Pending = &p
	}
	return n
}

func (s *State) setPending(text string) {
	s.Pending = &text
	s.SaveControls = true
}

func (s *State) clearPending() {
	s.Pending = nil
	s.SaveControls = false
}

func (s *State) say(text string) {
	s.Chat = append(s.Chat, Message{Role: RoleAssistant, Text: text})
}

// fill replaces the placeholder for turn with text. It reports false when
// the placeholder is gone, e.g. after the chat log was cleared.
func (s *State) fill(turn uint64, text string) bool {
	for i := len(s.Chat) - 1; i >= 0; i-- {
		m := s.Chat[i]
		if m.Role == RoleAssistant && m.Placeholder && m.Turn == turn {
			s.Chat[i] = Message{Role: RoleAssistant, Text: text, Turn: turn}
			return true
		}
	}
	return false
}
