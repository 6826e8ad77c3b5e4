// Package report turns intelligence report responses into displayable panels.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"tableflip.dev/ami/pkg/entry"
)

// Type names the kind of generated report.
type Type string

const (
	WeeklyReflection Type = "weekly_reflection"
	CategorySummary  Type = "category_summary"
)

const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
	StatusError  = "error"
)

// Response is the body of GET /api/intelligence/{agent}/reports.
type Response struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Reports []Report `json:"reports,omitempty"`
}

// Report is one generated report. Content is markdown text for reflections
// and a structured object for category summaries.
type Report struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Agent     string          `json:"agent,omitempty"`
	Type      Type            `json:"type,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
}

// Panel is a rendered side panel: either a placeholder or a list of items.
type Panel struct {
	Title       string `json:"title"`
	Placeholder string `json:"placeholder,omitempty"`
	Items       []Item `json:"items,omitempty"`
}

// Item is one block in a panel. Markdown is rendered by the printer.
type Item struct {
	Heading  string `json:"heading,omitempty"`
	Meta     string `json:"meta,omitempty"`
	Markdown string `json:"markdown"`
}

const (
	noReflections     = "No reflections yet."
	failedReflections = "Failed to load reflections."
	noSummary         = "No summary yet. Regenerate to create one."
	failedSummary     = "Failed to load summary."
)

// ReflectionPanel shows the latest limit weekly reflections.
func ReflectionPanel(resp Response, limit int) Panel {
	p := Panel{Title: "Reflections"}
	switch resp.Status {
	case StatusNoData:
		p.Placeholder = noReflections
		return p
	case StatusError:
		p.Placeholder = failedReflections
		if resp.Message != "" {
			p.Placeholder = resp.Message
		}
		return p
	}
	if len(resp.Reports) == 0 {
		p.Placeholder = noReflections
		return p
	}
	reports := resp.Reports
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	for _, r := range reports {
		generated := "Unknown time"
		if r.CreatedAt != "" {
			generated = entry.DisplayDate(r.CreatedAt)
		}
		p.Items = append(p.Items, Item{
			Meta:     fmt.Sprintf("Weekly reflection · Generated %s", generated),
			Markdown: contentText(r.Content),
		})
	}
	return p
}

// SummaryPanel shows the newest category summary.
func SummaryPanel(resp Response) Panel {
	p := Panel{Title: "Summary"}
	if resp.Status == StatusError {
		p.Placeholder = failedSummary
		if resp.Message != "" {
			p.Placeholder = resp.Message
		}
		return p
	}
	if len(resp.Reports) == 0 {
		p.Placeholder = noSummary
		return p
	}
	summary := contentObject(resp.Reports[0].Content)
	if label := summary.Get("category_label"); label.Type == gjson.String && label.String() != "" {
		p.Title = "Summary by " + label.String()
	}
	items := summary.Get("items")
	if !items.IsArray() || len(items.Array()) == 0 {
		p.Placeholder = noSummary
		return p
	}
	for _, it := range items.Array() {
		p.Items = append(p.Items, Item{
			Heading:  it.Get("category").String(),
			Markdown: it.Get("content").String(),
		})
	}
	return p
}

// Failed is the panel shown when a report request fails outright.
func Failed(t Type) Panel {
	if t == CategorySummary {
		return Panel{Title: "Summary", Placeholder: failedSummary}
	}
	return Panel{Title: "Reflections", Placeholder: failedReflections}
}

// Loading is shown while a panel is being fetched.
func Loading(t Type) Panel {
	if t == CategorySummary {
		return Panel{Title: "Summary", Placeholder: "Loading summary…"}
	}
	return Panel{Title: "Reflections", Placeholder: "Loading reflections…"}
}

func contentText(raw json.RawMessage) string {
	c := gjson.ParseBytes(raw)
	switch {
	case !c.Exists(), c.Type == gjson.Null:
		return ""
	case c.Type == gjson.String:
		return c.String()
	}
	return c.Raw
}

// contentObject accepts summary content either as an object or as a JSON
// string holding one; the backend stores both.
func contentObject(raw json.RawMessage) gjson.Result {
	c := gjson.ParseBytes(raw)
	if c.Type == gjson.String && gjson.Valid(c.String()) {
		return gjson.Parse(c.String())
	}
	return c
}
