package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/ami/pkg/printers"
)

//go:embed help.md
var helpMarkdown string

// Model renders the key reference inside a bordered, scrollable viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	style    string

	frame lipgloss.Style
	err   error
}

// New constructs a help overlay sized to the provided bounds, rendering
// markdown with the given glamour style.
func New(width, height int, style string) *Model {
	m := &Model{
		viewport: viewport.New(1, 1),
		style:    style,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()),
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width - m.frame.GetHorizontalBorderSize()).Render(body)
}

// SetSize configures the overlay dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	width = max(width, 32)
	height = max(height, 8)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	inner := max(width-m.frame.GetHorizontalFrameSize(), 1)
	m.viewport.Width = inner
	m.viewport.Height = max(height-m.frame.GetVerticalFrameSize(), 1)

	content, err := printers.Markdown(strings.TrimSpace(helpMarkdown), m.style, max(inner, 10))
	m.err = err
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}
