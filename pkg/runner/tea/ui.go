package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sirupsen/logrus"

	"tableflip.dev/ami/pkg/agent"
	"tableflip.dev/ami/pkg/entry"
	"tableflip.dev/ami/pkg/printers"
	"tableflip.dev/ami/pkg/report"
	"tableflip.dev/ami/pkg/runner/tea/internal/help"
	"tableflip.dev/ami/pkg/runner/tea/internal/panel"
	"tableflip.dev/ami/pkg/runner/tea/internal/theme"
	"tableflip.dev/ami/pkg/session"
)

const keyHelp = "enter send · ctrl+s save · ctrl+d dismiss · tab agent · ctrl+w reflect · ctrl+r summary · ctrl+g sync · ctrl+l refresh · f1 help · esc quit"

// Model renders session.State and turns keys into session messages.
type Model struct {
	backend  session.Backend
	recorder session.Recorder
	log      logrus.FieldLogger
	ctx      context.Context

	state session.State

	input textinput.Model
	chat  viewport.Model
	side  []panel.Model
	help  *help.Model

	showHelp bool

	theme         theme.Theme
	markdownStyle string
	timelineLimit int

	termWidth  int
	termHeight int
}

// Option configures a Model.
type Option func(*Model)

func WithRecorder(r session.Recorder) Option {
	return func(m *Model) { m.recorder = r }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithLimits caps the timeline and reflection panels.
func WithLimits(timeline, reflections int) Option {
	return func(m *Model) {
		m.timelineLimit = timeline
		if reflections > 0 {
			m.state.ReflectionLimit = reflections
		}
	}
}

// WithMarkdownStyle picks the glamour style for report panels.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) { m.markdownStyle = style }
}

// New creates a UI model for agent backed by b.
func New(b session.Backend, agentID string, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Tell me about your day"
	ti.CharLimit = 2000
	ti.Prompt = "> "
	ti.Focus()

	th := theme.Default()
	m := Model{
		backend:       b,
		log:           logrus.StandardLogger(),
		ctx:           context.Background(),
		state:         session.New(agentID),
		input:         ti,
		chat:          viewport.New(80, 20),
		theme:         th,
		markdownStyle: "notty",
		timelineLimit: 5,
	}
	for i := 0; i < 3; i++ {
		m.side = append(m.side, panel.New(th.Side.Frame, th.Side.Title))
	}
	for _, o := range opts {
		o(&m)
	}
	m.applySizes()
	return m
}

// State returns the current session state.
func (m Model) State() session.State {
	return m.state
}

// Init loads every panel for the starting agent.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return session.Refresh{} })
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "f1", "q":
				m.showHelp = false
				return m, nil
			}
			return m, m.help.Update(msg)
		}
		switch msg.String() {
		case "f1":
			m.showHelp = true
			m.help = help.New(m.chat.Width, m.chat.Height, m.markdownStyle)
			return m, nil
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			text := m.input.Value()
			m.input.Reset()
			return m.dispatch(session.Send{Text: text})
		case "ctrl+s":
			return m.dispatch(session.ConfirmSave{})
		case "ctrl+d":
			return m.dispatch(session.Dismiss{})
		case "tab":
			return m.dispatch(session.SwitchAgent{Agent: agent.Next(m.state.Agent)})
		case "ctrl+r":
			return m.dispatch(session.RegenerateSummary{})
		case "ctrl+w":
			return m.dispatch(session.GenerateReflection{})
		case "ctrl+g":
			return m.dispatch(session.Sync{})
		case "ctrl+l":
			return m.dispatch(session.Refresh{})
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case session.Msg:
		return m.dispatch(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) dispatch(msg session.Msg) (tea.Model, tea.Cmd) {
	var effects []session.Effect
	m.state, effects = session.Reduce(m.state, msg)
	m.render()
	return m, m.run(effects)
}

// run performs effects off the UI goroutine; each result comes back through
// Update as a session.Msg.
func (m Model) run(effects []session.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		cmds = append(cmds, func() tea.Msg {
			out := session.Execute(m.ctx, m.backend, e)
			m.archive(e, out)
			if out == nil {
				return nil
			}
			return out
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) archive(e session.Effect, out session.Msg) {
	got, ok := out.(session.ReplyReceived)
	if !ok || m.recorder == nil {
		return
	}
	req := e.(session.ChatRequest)
	if err := m.recorder.Record(req.Agent, got.Message, got.Reply.Text, got.Reply.Action); err != nil {
		m.log.WithError(err).Warn("record transcript")
	}
}

func (m *Model) applySizes() {
	w, h := m.termWidth, m.termHeight
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}
	sideWidth := w / 3
	if sideWidth < 24 {
		sideWidth = 24
	}
	chatWidth := w - sideWidth - 1
	if chatWidth < 20 {
		chatWidth = 20
	}
	for i := range m.side {
		m.side[i].SetWidth(sideWidth)
	}
	m.input.Width = chatWidth - len(m.input.Prompt) - 1
	m.chat.Width = chatWidth
	// header (2) + save bar (3) + input (1) + footer (2)
	m.chat.Height = h - 8
	if m.chat.Height < 3 {
		m.chat.Height = 3
	}
	m.render()
}

// render rebuilds the chat log and side panels from state.
func (m *Model) render() {
	m.chat.SetContent(m.renderChat())
	m.chat.GotoBottom()

	m.side[0].SetContent(fmt.Sprintf("Timeline (%d)", len(m.state.Timeline)), m.timelineLines(m.side[0].InnerWidth()))
	m.side[1].SetContent(m.state.Reflections.Title, m.panelLines(m.state.Reflections, m.side[1].InnerWidth()))
	m.side[2].SetContent(m.state.Summary.Title, m.panelLines(m.state.Summary, m.side[2].InnerWidth()))
}

func (m *Model) renderChat() string {
	th := m.theme.Chat
	width := m.chat.Width - th.Body.GetHorizontalFrameSize()
	title := agent.Lookup(m.state.Agent).Title

	var b strings.Builder
	for _, msg := range m.state.Chat {
		body := wordwrap.String(msg.Text, width)
		switch {
		case msg.Role == session.RoleUser:
			b.WriteString(th.You.Render("You"))
		default:
			b.WriteString(th.Agent.Render(title))
		}
		b.WriteString("\n")
		if msg.Placeholder {
			b.WriteString(th.Thinking.Render(body))
		} else {
			b.WriteString(th.Body.Render(body))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) timelineLines(width int) []string {
	entries := entry.Latest(m.state.Timeline, m.timelineLimit)
	var lines []string
	if d := strings.TrimSpace(m.state.Draft); d != "" {
		lines = append(lines, m.theme.Side.Meta.Render("Draft"), wordwrap.String(d, width))
	}
	if len(entries) == 0 {
		return append(lines, m.theme.Side.Empty.Render("Nothing saved yet."))
	}
	for _, e := range entries {
		date, _, text := e.Row()
		lines = append(lines, m.theme.Side.Meta.Render(date))
		lines = append(lines, wordwrap.String(text, width))
	}
	return lines
}

func (m *Model) panelLines(p report.Panel, width int) []string {
	if len(p.Items) == 0 {
		return []string{m.theme.Side.Empty.Render(wordwrap.String(p.Placeholder, width))}
	}
	var lines []string
	for _, it := range p.Items {
		if it.Heading != "" {
			lines = append(lines, m.theme.Side.Title.Render(it.Heading))
		}
		if it.Meta != "" {
			lines = append(lines, m.theme.Side.Meta.Render(wordwrap.String(it.Meta, width)))
		}
		body, err := printers.Markdown(it.Markdown, m.markdownStyle, width)
		if err != nil {
			body = wordwrap.String(it.Markdown, width)
		}
		lines = append(lines, body)
	}
	return lines
}

// View renders the header, chat, side panels and footer.
func (m Model) View() string {
	th := m.theme
	a := agent.Lookup(m.state.Agent)
	header := lipgloss.JoinVertical(lipgloss.Left,
		th.Header.Title.Render(a.Title),
		th.Header.Subtitle.Render(a.Subtitle),
	)

	left := []string{m.chat.View()}
	if m.showHelp && m.help != nil {
		left = []string{m.help.View()}
	}
	if text, ok := m.state.PendingText(); ok && m.state.SaveControls {
		bar := lipgloss.JoinVertical(lipgloss.Left,
			th.Chat.SaveQuote.Render(truncate(text, m.chat.Width)),
			th.Chat.SaveKey.Render("ctrl+s")+" save  "+th.Chat.SaveKey.Render("ctrl+d")+" dismiss",
		)
		left = append(left, th.Chat.SaveBar.Width(m.chat.Width).Render(bar))
	}
	left = append(left, m.input.View())

	sides := make([]string, 0, len(m.side))
	for _, p := range m.side {
		v, _ := p.View()
		sides = append(sides, v)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		" ",
		lipgloss.JoinVertical(lipgloss.Left, sides...),
	)

	status := m.state.Status
	switch {
	case m.state.Syncing:
		status = "Syncing…"
	case m.state.Saving:
		status = "Saving…"
	}
	footer := th.Footer.Help.Render(keyHelp)
	if status != "" {
		footer = th.Footer.Status.Render(status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
