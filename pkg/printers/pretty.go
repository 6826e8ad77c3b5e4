package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/reply"
	"tableflip.dev/ami/pkg/session"
	"tableflip.dev/ami/pkg/store"
)

// PrettyPrint renders session data for a terminal.
type PrettyPrint struct {
	ShowID bool
	// Width wraps chat bubbles and markdown. Zero means 80.
	Width int
	Out   io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Timeline prints entries as a date/domain/text table.
func (pp *PrettyPrint) Timeline(entries ...entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width())
	tbl.Wrap = true
	for _, e := range entries {
		date, domain, text := e.Row()
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), d.Sprint(date), domain, text)
		} else {
			tbl.AddRow(d.Sprint(date), domain, text)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Chat prints the chat log as indented bubbles.
func (pp *PrettyPrint) Chat(agentTitle string, messages ...session.Message) {
	you := color.New(color.Bold, color.FgCyan)
	them := color.New(color.Bold, color.FgMagenta)
	wait := color.New(color.Faint, color.Italic)

	for _, m := range messages {
		body := wordwrap.String(m.Text, pp.width()-4)
		switch {
		case m.Role == session.RoleUser:
			_, _ = you.Fprintln(pp.out(), "You")
		default:
			_, _ = them.Fprintln(pp.out(), agentTitle)
		}
		if m.Placeholder {
			body = wait.Sprint(body)
		}
		_, _ = fmt.Fprintln(pp.out(), indent.String(body, 2))
	}
}

// SavePrompt shows the pending observation with the save controls.
func (pp *PrettyPrint) SavePrompt(text string) {
	q := color.New(color.FgHiYellow)
	f := color.New(color.Faint)
	_, _ = q.Fprintln(pp.out(), "Save this to your journal?")
	pp.Quote(text)
	_, _ = f.Fprintln(pp.out(), "  [y] save  [n] dismiss")
}

// Quote prints text wrapped and indented under the previous line.
func (pp *PrettyPrint) Quote(text string) {
	_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(text, pp.width()-4), 2))
}

// Status prints an inline notice, e.g. a sync summary.
func (pp *PrettyPrint) Status(status string) {
	if status == "" {
		return
	}
	_, _ = color.New(color.Faint).Fprintln(pp.out(), status)
}

// History prints archived chat exchanges grouped by agent.
func (pp *PrettyPrint) History(records ...*store.Record) {
	if len(records) == 0 {
		pp.none()
		return
	}

	f := color.New(color.Faint)
	current := ""
	for _, r := range records {
		if r.Agent != current {
			if current != "" {
				pp.NewLine()
			}
			current = r.Agent
			pp.Title(r.Agent)
		}
		when := entry.DisplayDate(entry.FormatTime(r.Created))
		if pp.ShowID {
			_, _ = f.Fprintf(pp.out(), "%s  %s\n", r.ID, when)
		} else {
			_, _ = f.Fprintln(pp.out(), when)
		}
		_, _ = fmt.Fprintln(pp.out(), indent.String("> "+wordwrap.String(r.Message, pp.width()-6), 2))
		answer := r.Reply
		if r.Action.Known() && r.Action != reply.ActionNone {
			answer = strings.TrimSpace(answer) + f.Sprintf(" (%s)", r.Action)
		}
		_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(answer, pp.width()-4), 2))
	}
	pp.NewLine()
}
