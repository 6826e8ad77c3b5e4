package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Chat   ChatTheme
	Side   SideTheme
	Footer FooterTheme
}

type HeaderTheme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
}

// ChatTheme styles the conversation pane.
type ChatTheme struct {
	You       lipgloss.Style
	Agent     lipgloss.Style
	Body      lipgloss.Style
	Thinking  lipgloss.Style
	SaveBar   lipgloss.Style
	SaveKey   lipgloss.Style
	SaveQuote lipgloss.Style
}

// SideTheme styles the timeline and report panels.
type SideTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Meta  lipgloss.Style
	Empty lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Key    lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	faint := lipgloss.Color("244")

	return Theme{
		Header: HeaderTheme{
			Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
			Subtitle: lipgloss.NewStyle().Foreground(faint).Italic(true),
		},
		Chat: ChatTheme{
			You:       lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
			Agent:     lipgloss.NewStyle().Foreground(accent).Bold(true),
			Body:      lipgloss.NewStyle().PaddingLeft(2),
			Thinking:  lipgloss.NewStyle().PaddingLeft(2).Foreground(faint).Italic(true),
			SaveBar:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("221")),
			SaveKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true),
			SaveQuote: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true),
		},
		Side: SideTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Meta:  lipgloss.NewStyle().Foreground(faint),
			Empty: lipgloss.NewStyle().Foreground(faint).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Key:    lipgloss.NewStyle().Foreground(accent),
		},
	}
}
