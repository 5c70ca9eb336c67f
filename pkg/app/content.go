package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
)

// content renders the inside of a widget. Player data is not wired in
// here; widgets show what they are and the space they were given, which is
// what a layout author needs to see.
func (m Model) content(spec config.WidgetSpec, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	switch spec.Type {
	case config.StatusBar:
		return m.statusLine(width)
	case config.ProgressBar:
		return progressLine(width, height)
	}
	return m.placeholder(spec, width, height)
}

// placeholder shows the widget type and its size, centred vertically.
func (m Model) placeholder(spec config.WidgetSpec, width, height int) string {
	label := m.styles.Secondary.Render(ansi.Truncate(string(spec.Type), width, "…"))
	dims := m.styles.Normal.UnsetBackground().Faint(true).Render(
		ansi.Truncate(fmt.Sprintf("%dx%d", width, height), width, ""))

	lines := make([]string, 0, height)
	for i := 0; i < (height-2)/2; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, label)
	if height > 1 {
		lines = append(lines, dims)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

// statusLine shows the current notice, or the short key help when there is
// none.
func (m Model) statusLine(width int) string {
	if m.notice != "" {
		style := m.styles.Success
		if m.noticeErr {
			style = m.styles.Error
		}
		return style.Render(ansi.Truncate(m.notice, width, "…"))
	}
	h := m.help
	h.ShowAll = false
	h.Width = width
	return h.View(m.helpMap)
}

// progressLine draws an idle transport bar on the middle row.
func progressLine(width, height int) string {
	const stamp = "0:00"
	bar := stamp
	if inner := width - 2*len(stamp) - 2; inner > 0 {
		bar = stamp + " " + "●" + strings.Repeat("─", inner-1) + " " + stamp
	}
	bar = ansi.Truncate(bar, width, "")

	lines := make([]string, height)
	lines[(height-1)/2] = bar
	return strings.Join(lines, "\n")
}
