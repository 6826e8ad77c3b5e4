// Package chat runs a line-oriented conversation with the active agent.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/ami/pkg/agent"
	"tableflip.dev/ami/pkg/printers"
	"tableflip.dev/ami/pkg/session"
)

type Chat struct {
	Handler *session.Handler
	In      io.Reader
	Out     io.Writer
	Width   int

	// Message sends one message and returns once any save prompt is answered.
	Message string

	// Interactive asks save questions with a terminal prompt. Do sets it
	// when In is a terminal; piped input is read a line at a time.
	Interactive bool

	seen    int
	scanner *bufio.Scanner
	pp      *printers.PrettyPrint
}

func (c *Chat) Do(ctx context.Context) error {
	if c.In == nil {
		c.In = os.Stdin
	}
	if f, ok := c.In.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.Interactive = true
	}
	if c.Out == nil {
		c.Out = color.Output
	}
	c.scanner = bufio.NewScanner(c.In)
	c.pp = &printers.PrettyPrint{Out: c.Out, Width: c.Width}
	c.seen = len(c.Handler.State().Chat)

	if c.Message != "" {
		c.send(ctx, c.Message)
		return nil
	}

	st := c.Handler.State()
	_, _ = color.New(color.Faint).Fprintf(c.Out,
		"Talking to %s. /agent <name> to switch, /quit to leave.\n", agent.Lookup(st.Agent).Title)

	for {
		line, ok := c.readLine("> ")
		if !ok {
			return c.scanner.Err()
		}
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return nil
		case strings.HasPrefix(line, "/agent"):
			name := strings.TrimSpace(strings.TrimPrefix(line, "/agent"))
			if name == "" {
				_, _ = fmt.Fprintln(c.Out, agent.Lookup(c.Handler.State().Agent).Title)
				continue
			}
			if a, err := agent.ForAlias(name); err == nil {
				name = a.ID
			}
			c.show(c.Handler.Dispatch(ctx, session.SwitchAgent{Agent: name}))
			_, _ = fmt.Fprintf(c.Out, "Now talking to %s.\n", agent.Lookup(c.Handler.State().Agent).Title)
		default:
			c.send(ctx, line)
		}
	}
}

func (c *Chat) send(ctx context.Context, text string) {
	st := c.Handler.Dispatch(ctx, session.Send{Text: text})
	c.show(st)

	if !st.SaveControls {
		return
	}
	pending, _ := st.PendingText()
	if c.confirmSave(pending) {
		st = c.Handler.Dispatch(ctx, session.ConfirmSave{})
	} else {
		st = c.Handler.Dispatch(ctx, session.Dismiss{})
	}
	c.show(st)
}

func (c *Chat) confirmSave(pending string) bool {
	if !c.Interactive {
		c.pp.SavePrompt(pending)
		answer, ok := c.readLine("? ")
		return ok && isYes(answer)
	}
	c.pp.Quote(pending)
	p := savePrompt(c.In, c.Out)
	// Any answer but yes, including ctrl+c, dismisses.
	_, err := p.Run()
	return err == nil
}

func savePrompt(in io.Reader, out io.Writer) promptui.Prompt {
	return promptui.Prompt{
		Label:     "Save this to your journal",
		IsConfirm: true,
		Stdin:     io.NopCloser(in),
		Stdout:    nopWriteCloser{out},
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// show prints assistant messages added since the last call.
func (c *Chat) show(st session.State) {
	if c.seen > len(st.Chat) {
		c.seen = 0
	}
	fresh := make([]session.Message, 0, len(st.Chat)-c.seen)
	for _, m := range st.Chat[c.seen:] {
		if m.Role == session.RoleAssistant {
			fresh = append(fresh, m)
		}
	}
	c.seen = len(st.Chat)
	c.pp.Chat(agent.Lookup(st.Agent).Title, fresh...)
}

func (c *Chat) readLine(prompt string) (string, bool) {
	_, _ = fmt.Fprint(c.Out, prompt)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "save":
		return true
	}
	return false
}
