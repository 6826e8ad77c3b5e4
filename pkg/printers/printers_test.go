package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/report"
	"tableflip.dev/ami/pkg/session"
	"tableflip.dev/ami/pkg/store"
)

func init() {
	color.NoColor = true
}

func TestTimeline(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Timeline(entry.Entry{ID: "42", Text: "Lost a tooth", Date: "2024-01-02", Domain: "ami"})

	out := buf.String()
	for _, want := range []string{"42", "Jan 2, 2024", "ami", "Lost a tooth"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestTimelineEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Timeline()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestChatWrapsAndLabels(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 20}
	pp.Chat("Ami",
		session.Message{Role: session.RoleUser, Text: "hello"},
		session.Message{Role: session.RoleAssistant, Text: "a reply long enough to need wrapping here"},
	)
	out := buf.String()
	if !strings.Contains(out, "You\n  hello") {
		t.Fatalf("missing user bubble in %q", out)
	}
	if !strings.Contains(out, "Ami\n") {
		t.Fatalf("missing agent label in %q", out)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if len(line) > 20 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.History(&store.Record{
		Agent:   "ami",
		Message: "first steps",
		Reply:   "Want me to save that?",
		Action:  reply.ActionAskToSave,
		Created: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	out := buf.String()
	for _, want := range []string{"ami", "> first steps", "(ask_to_save)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestPanelPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.Panel(report.Panel{Title: "Reflections", Placeholder: "No reflections yet."}, false); err != nil {
		t.Fatalf("panel: %v", err)
	}
	if !strings.Contains(buf.String(), "No reflections yet.") {
		t.Fatalf("missing placeholder in %q", buf.String())
	}
}

func TestPanelHTML(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	p := report.Panel{Title: "Summary", Items: []report.Item{{Heading: "Sleep", Markdown: "Slept **well**."}}}
	if err := pp.Panel(p, true); err != nil {
		t.Fatalf("panel: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<h3>Sleep</h3>") || !strings.Contains(out, "<strong>well</strong>") {
		t.Fatalf("unexpected html %q", out)
	}
}

func TestMarkdownNoTTY(t *testing.T) {
	out, err := Markdown("# Hi\n\nthere", "notty", 40)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if !strings.Contains(out, "Hi") || !strings.Contains(out, "there") {
		t.Fatalf("unexpected render %q", out)
	}
}

func TestStructured(t *testing.T) {
	e := entry.Entry{ID: "1", Text: "hi", Date: "2024-01-01", Domain: "ami"}

	var js bytes.Buffer
	if err := Structured(&js, FormatJSON, e); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"domain": "ami"`) {
		t.Fatalf("unexpected json %q", js.String())
	}

	var ym bytes.Buffer
	if err := Structured(&ym, FormatYAML, e); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "domain: ami") {
		t.Fatalf("unexpected yaml %q", ym.String())
	}

	if err := Structured(&js, FormatText, e); err == nil {
		t.Fatal("expected error for text format")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Fatalf("expected text default, got %q %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}
