package client

import (
	"context"
	"net/http"
)

type agentBody struct {
	Agent string `json:"agent"`
}

// ActiveAgent returns the agent the backend currently serves.
func (c *Client) ActiveAgent(ctx context.Context) (string, error) {
	var b agentBody
	if err := c.doJSON(ctx, "get agent", http.MethodGet, "/api/agent", nil, nil, &b); err != nil {
		return "", err
	}
	return b.Agent, nil
}

// SetActiveAgent switches the backend's active agent.
func (c *Client) SetActiveAgent(ctx context.Context, agent string) error {
	return c.doJSON(ctx, "set agent", http.MethodPost, "/api/agent", nil, agentBody{Agent: agent}, nil)
}
