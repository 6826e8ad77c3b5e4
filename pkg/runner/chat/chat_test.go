package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/ami/pkg/client"
	"tableflip.dev/ami/pkg/session"
)

func init() {
	color.NoColor = true
}

type backend struct {
	mu     sync.Mutex
	reply  string
	saved  []string
	agents []string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	body, _ := io.ReadAll(r.Body)
	switch {
	case r.URL.Path == "/api/chat":
		_, _ = io.WriteString(w, b.reply)
	case r.URL.Path == "/api/observations" && r.Method == http.MethodPost:
		var in map[string]string
		_ = json.Unmarshal(body, &in)
		b.saved = append(b.saved, in["text"])
		_, _ = io.WriteString(w, `{}`)
	case r.URL.Path == "/api/observations":
		_, _ = io.WriteString(w, `[]`)
	case r.URL.Path == "/api/agent":
		var in map[string]string
		_ = json.Unmarshal(body, &in)
		b.agents = append(b.agents, in["agent"])
		_, _ = io.WriteString(w, `{}`)
	case r.URL.Path == "/api/draft":
		_, _ = io.WriteString(w, `{"content": []}`)
	case strings.HasPrefix(r.URL.Path, "/api/intelligence/"):
		_, _ = io.WriteString(w, `{"status": "no_data"}`)
	default:
		http.NotFound(w, r)
	}
}

func newChat(t *testing.T, b *backend, input string) (*Chat, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	var out bytes.Buffer
	return &Chat{
		Handler: session.NewHandler(c, "ami"),
		In:      strings.NewReader(input),
		Out:     &out,
	}, &out
}

func TestChatConfirmSave(t *testing.T) {
	b := &backend{reply: `{"text": "That sounds lovely. Save it?", "action": "ask_to_save"}`}
	c, out := newChat(t, b, "She rode her bike today\ny\n/quit\n")

	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("chat: %v", err)
	}

	if c.Interactive {
		t.Fatal("piped input should not use the terminal prompt")
	}
	if len(b.saved) != 1 || b.saved[0] != "She rode her bike today" {
		t.Fatalf("expected the message to be saved once, got %v", b.saved)
	}
	got := out.String()
	for _, want := range []string{"That sounds lovely. Save it?", "Save this to your journal?", "I’ve saved this."} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestChatDismiss(t *testing.T) {
	b := &backend{reply: `{"reply": "Want me to keep that? [ASK_TO_SAVE]"}`}
	c, _ := newChat(t, b, "nothing much\nn\n")

	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(b.saved) != 0 {
		t.Fatalf("expected nothing saved, got %v", b.saved)
	}
	if st := c.Handler.State(); st.SaveControls {
		t.Fatal("expected save controls hidden after dismiss")
	}
}

func TestChatSingleMessageNoPrompt(t *testing.T) {
	b := &backend{reply: `{"text": "Noted.", "action": "none"}`}
	c, out := newChat(t, b, "")
	c.Message = "hi"

	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if strings.Contains(out.String(), "Save this") {
		t.Fatalf("unexpected save prompt:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Noted.") {
		t.Fatalf("missing reply:\n%s", out.String())
	}
}

func TestChatSwitchAgent(t *testing.T) {
	b := &backend{reply: `{"text": "ok"}`}
	c, out := newChat(t, b, "/agent work\n/quit\n")

	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(b.agents) != 1 || b.agents[0] != "workbench" {
		t.Fatalf("expected switch to workbench, got %v", b.agents)
	}
	if !strings.Contains(out.String(), "Now talking to Workbench.") {
		t.Fatalf("missing switch notice:\n%s", out.String())
	}
}

func TestSavePromptIsConfirm(t *testing.T) {
	var out bytes.Buffer
	p := savePrompt(strings.NewReader("y\n"), &out)
	if !p.IsConfirm {
		t.Fatal("expected a yes/no prompt")
	}
	if p.Label != "Save this to your journal" {
		t.Fatalf("unexpected label %v", p.Label)
	}
	if p.Stdin == nil || p.Stdout == nil {
		t.Fatal("prompt must use the chat's streams")
	}
	if _, err := p.Stdout.Write([]byte("x")); err != nil || out.String() != "x" {
		t.Fatalf("prompt output not routed to chat output: %q %v", out.String(), err)
	}
	if err := p.Stdout.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
