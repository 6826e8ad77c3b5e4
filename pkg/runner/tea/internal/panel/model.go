package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Model renders a generic information panel with a title and body lines.
type Model struct {
	title      string
	lines      []string
	width      int
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

// New returns a panel model framed with frame.
func New(frame, title lipgloss.Style) Model {
	return Model{
		frameStyle: frame,
		titleStyle: title,
		bodyStyle:  lipgloss.NewStyle(),
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetWidth sets the outer width, border included.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// InnerWidth is the usable text width inside the frame.
func (m Model) InnerWidth() int {
	w := m.width - m.frameStyle.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(line))
	}
	frame := m.frameStyle
	if m.width > 0 {
		frame = frame.Width(m.width - frame.GetHorizontalBorderSize())
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, lipgloss.Height(view)
}
