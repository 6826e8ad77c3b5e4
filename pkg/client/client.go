// Package client talks HTTP+JSON to the journaling assistant backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// RequestIDHeader carries a per request id so backend logs can be matched.
const RequestIDHeader = "X-Request-ID"

// Client is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     logrus.FieldLogger
	reports *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			cp := *c.http
			cp.Timeout = d
			c.http = &cp
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithReportCache keeps report listings for ttl. Zero disables caching.
func WithReportCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.reports = cache.New(ttl, 2*ttl)
		} else {
			c.reports = nil
		}
	}
}

// New returns a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("client: base url required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q needs a scheme and host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Client{
		base: u,
		http: &http.Client{},
		log:  quiet,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one round trip and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, &Error{Op: op, Kind: KindTransport, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithFields(logrus.Fields{
		"op":         op,
		"method":     method,
		"path":       path,
		"request_id": reqID,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Debug("read body failed")
		return nil, &Error{Op: op, Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}
	log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	}).Debug("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Op:      op,
			Kind:    KindBackend,
			Status:  resp.StatusCode,
			Message: failureMessage(data, resp.Status),
		}
	}
	return data, nil
}

// doJSON performs a round trip and decodes the body into out when set.
func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	data, err := c.do(ctx, op, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return nil
}

// failureMessage digs the human readable part out of an error body.
func failureMessage(data []byte, fallback string) string {
	if gjson.ValidBytes(data) {
		for _, k := range []string{"error", "message"} {
			if m := gjson.GetBytes(data, k); m.Type == gjson.String && m.String() != "" {
				return m.String()
			}
		}
	}
	if s := strings.TrimSpace(string(data)); s != "" && len(s) < 200 && !strings.HasPrefix(s, "<") {
		return s
	}
	return fallback
}

func decodeErr(op string, err error) error {
	return &Error{Op: op, Kind: KindDecode, Err: err}
}
