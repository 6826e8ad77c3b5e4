// Package reply interprets chat replies from the backend: the structured
// {text, action} envelope and the older sentinel markers embedded in text.
package reply

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// AskToSave asks the client to offer saving the user's last message.
	AskToSave = "[ASK_TO_SAVE]"
	// AutoSaved reports that the backend already persisted the message.
	AutoSaved = "[AUTO_SAVED]"
)

// Action is what a reply asks the client to do with the pending observation.
type Action string

const (
	ActionNone      Action = "none"
	ActionAskToSave Action = "ask_to_save"
	ActionAutoSaved Action = "auto_saved"
)

func (a Action) Known() bool {
	switch a {
	case ActionNone, ActionAskToSave, ActionAutoSaved:
		return true
	}
	return false
}

// Reply is a chat reply ready for display.
type Reply struct {
	Text   string `json:"text"`
	Action Action `json:"action"`
}

type envelope struct {
	Text   *string `json:"text"`
	Action Action  `json:"action"`
	Reply  string  `json:"reply"`
}

// Decode reads a chat response body. An envelope with a known action is
// trusted as is; anything else falls back to sentinel detection on the text.
func Decode(body []byte) (Reply, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Reply{}, fmt.Errorf("reply: decode: %w", err)
	}
	text := env.Reply
	if env.Text != nil {
		text = *env.Text
	}
	if env.Action != "" && env.Action.Known() {
		// Strip stray markers anyway so they never reach the screen.
		r := Classify(text)
		r.Action = env.Action
		return r, nil
	}
	return Classify(text), nil
}

// Classify detects sentinel markers by substring containment and strips
// them. When both markers appear, AutoSaved wins since the backend has
// already stored the entry.
func Classify(text string) Reply {
	ask := strings.Contains(text, AskToSave)
	saved := strings.Contains(text, AutoSaved)

	r := Reply{Action: ActionNone}
	switch {
	case saved:
		r.Action = ActionAutoSaved
	case ask:
		r.Action = ActionAskToSave
	}
	text = strings.ReplaceAll(text, AskToSave, "")
	text = strings.ReplaceAll(text, AutoSaved, "")
	r.Text = strings.TrimSpace(text)
	return r
}
