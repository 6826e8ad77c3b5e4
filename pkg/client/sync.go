package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SyncResult is the body of POST /api/sync/google. Path is set when the
// backend exported to a local spreadsheet instead of Google Sheets.
type SyncResult struct {
	Inserted    int    `json:"inserted"`
	Updated     int    `json:"updated"`
	Total       int    `json:"total,omitempty"`
	Path        string `json:"path,omitempty"`
	RowsWritten int    `json:"rows_written,omitempty"`
}

// Local reports whether the sync went to a local export.
func (r SyncResult) Local() bool {
	return r.Path != ""
}

// Summary describes the result for a status line.
func (r SyncResult) Summary(at time.Time) string {
	when := at.Format(time.Kitchen)
	if r.Local() {
		return fmt.Sprintf("Exported locally at %s (%d rows)", when, r.RowsWritten)
	}
	return fmt.Sprintf("Last synced at %s (%d new, %d updated)", when, r.Inserted, r.Updated)
}

func (c *Client) SyncGoogle(ctx context.Context) (SyncResult, error) {
	var r SyncResult
	err := c.doJSON(ctx, "sync", http.MethodPost, "/api/sync/google", nil, struct{}{}, &r)
	return r, err
}
