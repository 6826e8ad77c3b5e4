package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"tableflip.dev/ami/pkg/entry"
)

type observationRequest struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
}

// Observations lists the saved entries for agent, newest first.
func (c *Client) Observations(ctx context.Context, agent string) ([]entry.Entry, error) {
	const op = "list observations"
	q := url.Values{}
	if agent != "" {
		q.Set("agent", agent)
	}
	data, err := c.do(ctx, op, http.MethodGet, "/api/observations", q, nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, decodeErr(op, errors.New("response is not JSON"))
	}
	if r := gjson.ParseBytes(data); r.Type == gjson.Null {
		return []entry.Entry{}, nil
	} else if !r.IsArray() {
		return nil, decodeErr(op, errors.New("expected a list of observations"))
	}
	return entry.NormalizeList(data), nil
}

// CreateObservation persists one entry.
func (c *Client) CreateObservation(ctx context.Context, agent, text string) error {
	return c.doJSON(ctx, "save observation", http.MethodPost, "/api/observations", nil,
		observationRequest{Agent: agent, Text: text}, nil)
}

// UpdateObservation replaces the text of entry id.
func (c *Client) UpdateObservation(ctx context.Context, agent, id, text string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &Error{Op: "update observation", Kind: KindBackend, Message: "entry id required"}
	}
	return c.doJSON(ctx, "update observation", http.MethodPut, "/api/observations/"+url.PathEscape(id), nil,
		observationRequest{Agent: agent, Text: text}, nil)
}
