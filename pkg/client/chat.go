package client

import (
	"context"
	"net/http"

	"tableflip.dev/ami/pkg/reply"
)

type chatRequest struct {
	Agent   string `json:"agent"`
	Message string `json:"message"`
}

// Chat sends one user message and returns the interpreted reply.
func (c *Client) Chat(ctx context.Context, agent, message string) (reply.Reply, error) {
	const op = "chat"
	data, err := c.do(ctx, op, http.MethodPost, "/api/chat", nil, chatRequest{Agent: agent, Message: message})
	if err != nil {
		return reply.Reply{}, err
	}
	r, err := reply.Decode(data)
	if err != nil {
		return reply.Reply{}, decodeErr(op, err)
	}
	return r, nil
}
