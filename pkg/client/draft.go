package client

import (
	"context"
	"net/http"
	"strings"
)

// Draft is the unsaved buffer the backend keeps between chat turns.
type Draft struct {
	Content []string `json:"content"`
}

// Text joins the draft lines.
func (d Draft) Text() string {
	return strings.Join(d.Content, "\n")
}

func (d Draft) Empty() bool {
	return len(d.Content) == 0
}

const (
	DraftSaved      = "saved"
	DraftIncomplete = "incomplete"
)

// DraftSaveResult is the body of POST /api/draft/save.
type DraftSaveResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) Draft(ctx context.Context) (Draft, error) {
	var d Draft
	err := c.doJSON(ctx, "load draft", http.MethodGet, "/api/draft", nil, nil, &d)
	return d, err
}

func (c *Client) PutDraft(ctx context.Context, text string) error {
	return c.doJSON(ctx, "update draft", http.MethodPut, "/api/draft", nil,
		map[string]string{"text": text}, nil)
}

// SaveDraft asks the backend to turn the draft into an entry. An error
// field in a successful response is reported as a backend failure.
func (c *Client) SaveDraft(ctx context.Context) (DraftSaveResult, error) {
	const op = "save draft"
	var r DraftSaveResult
	if err := c.doJSON(ctx, op, http.MethodPost, "/api/draft/save", nil, nil, &r); err != nil {
		return r, err
	}
	if r.Error != "" {
		return r, &Error{Op: op, Kind: KindBackend, Message: r.Error}
	}
	return r, nil
}
