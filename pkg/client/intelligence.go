package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/patrickmn/go-cache"

	"tableflip.dev/ami/pkg/report"
)

func reportKey(agent string, t report.Type) string {
	return agent + "/" + string(t)
}

// Reports lists generated reports of type t for agent, newest first.
func (c *Client) Reports(ctx context.Context, agent string, t report.Type) (report.Response, error) {
	key := reportKey(agent, t)
	if c.reports != nil {
		if v, ok := c.reports.Get(key); ok {
			return v.(report.Response), nil
		}
	}

	var r report.Response
	q := url.Values{"type": []string{string(t)}}
	path := "/api/intelligence/" + url.PathEscape(agent) + "/reports"
	if err := c.doJSON(ctx, "list reports", http.MethodGet, path, q, nil, &r); err != nil {
		return r, err
	}
	if c.reports != nil && r.Status != report.StatusError {
		c.reports.Set(key, r, cache.DefaultExpiration)
	}
	return r, nil
}

// InvalidateReports drops the cached reports of type t for agent so the next
// Reports call goes to the backend.
func (c *Client) InvalidateReports(agent string, t report.Type) {
	if c.reports != nil {
		c.reports.Delete(reportKey(agent, t))
	}
}

// Regenerate asks the backend to produce a fresh report of type t. The
// response body carries nothing the client needs.
func (c *Client) Regenerate(ctx context.Context, agent string, t report.Type) error {
	path := "/api/intelligence/" + url.PathEscape(agent) + "/" + string(t)
	err := c.doJSON(ctx, "generate "+string(t), http.MethodPost, path, nil, nil, nil)
	c.InvalidateReports(agent, t)
	return err
}
