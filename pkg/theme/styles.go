package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Normal    lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Border    lipgloss.Style
	Focused   lipgloss.Style
	Title     lipgloss.Style
	Secondary lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
}

// NewStyles builds the style set for p.
func NewStyles(p Palette) Styles {
	fg := p.Foreground.Terminal()
	bg := p.Background.Terminal()
	return Styles{
		Normal:    lipgloss.NewStyle().Foreground(fg).Background(bg),
		Highlight: lipgloss.NewStyle().Foreground(p.Highlight.Terminal()).Background(bg).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(bg).Background(p.Primary.Terminal()).Bold(true),
		Border:    lipgloss.NewStyle().BorderForeground(p.Border.Terminal()),
		Focused:   lipgloss.NewStyle().BorderForeground(p.Highlight.Terminal()),
		Title:     lipgloss.NewStyle().Foreground(p.Primary.Terminal()).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(p.Secondary.Terminal()),
		Error:     lipgloss.NewStyle().Foreground(p.Error.Terminal()).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(p.Success.Terminal()).Bold(true),
	}
}
