package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/ami/pkg/session"
)

// Run launches the Bubble Tea UI and blocks until the user quits.
func Run(ctx context.Context, b session.Backend, agentID string, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(b, agentID, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
