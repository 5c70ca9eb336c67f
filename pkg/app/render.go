package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/region"
)

// View renders every region into a width x height frame.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	boxes := make(map[string][]string, m.regions.Len())
	for _, r := range m.regions.Regions {
		box := m.renderRegion(r)
		if box == "" {
			continue
		}
		boxes[r.Name()] = strings.Split(m.zones.Mark(m.zoneID(r.Name()), box), "\n")
	}
	return m.zones.Scan(compose(m.regions, boxes, m.width, m.height))
}

// renderRegion draws one widget, bordered when the widget asks for it and
// there is room for the frame.
func (m Model) renderRegion(r region.Region) string {
	w, h := r.Rect.Width, r.Rect.Height
	if w <= 0 || h <= 0 {
		return ""
	}
	spec := r.Widget

	if !spec.Border || w < 2 || h < 2 {
		return lipgloss.NewStyle().
			Width(w).Height(h).MaxWidth(w).MaxHeight(h).
			Render(m.content(spec, w, h))
	}

	frame := m.styles.Border
	if spec.Name == m.focused {
		frame = m.styles.Focused
	}
	border := lipgloss.RoundedBorder()
	inner := r.Rect.Inner(1)
	box := frame.
		Border(border).
		Width(inner.Width).Height(inner.Height).
		MaxWidth(w).MaxHeight(h).
		Render(m.content(spec, inner.Width, inner.Height))

	if spec.Title == "" || w < 5 {
		return box
	}
	lines := strings.Split(box, "\n")
	lines[0] = m.titleBar(border, frame, spec.Title, w)
	return strings.Join(lines, "\n")
}

// titleBar builds a top border with the title set into it:
//
//	╭─ Title ──────╮
func (m Model) titleBar(b lipgloss.Border, frame lipgloss.Style, title string, width int) string {
	edge := lipgloss.NewStyle().Foreground(frame.GetBorderTopForeground())
	title = ansi.Truncate(title, width-6, "…")
	label := " " + m.styles.Title.Render(title) + " "
	fill := width - 3 - ansi.StringWidth(label)
	if fill < 0 {
		fill = 0
	}
	return edge.Render(b.TopLeft+b.Top) + label + edge.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}

// compose stitches region boxes into screen rows. Regions never overlap, so
// each row is the covering boxes' lines laid out left to right, with gaps
// filled by spaces.
func compose(set region.Set, boxes map[string][]string, width, height int) string {
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		x := 0
		for _, r := range rowRegions(set, y) {
			if r.Rect.X > x {
				b.WriteString(strings.Repeat(" ", r.Rect.X-x))
			}
			var line string
			if lines := boxes[r.Name()]; y-r.Rect.Y < len(lines) {
				line = lines[y-r.Rect.Y]
			}
			b.WriteString(fit(line, r.Rect.Width))
			x = r.Rect.Right()
		}
		if x < width {
			b.WriteString(strings.Repeat(" ", width-x))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// rowRegions returns the non-empty regions covering row y, ordered by x.
func rowRegions(set region.Set, y int) []region.Region {
	var out []region.Region
	for _, r := range set.Regions {
		if r.Rect.Empty() || y < r.Rect.Y || y >= r.Rect.Bottom() {
			continue
		}
		i := len(out)
		for i > 0 && out[i-1].Rect.X > r.Rect.X {
			i--
		}
		out = append(out, region.Region{})
		copy(out[i+1:], out[i:])
		out[i] = r
	}
	return out
}

// fit pads or cuts s to exactly w cells.
func fit(s string, w int) string {
	sw := ansi.StringWidth(s)
	switch {
	case sw > w:
		return ansi.Truncate(s, w, "")
	case sw < w:
		return s + strings.Repeat(" ", w-sw)
	}
	return s
}

func (m Model) renderHelp() string {
	body := m.help.View(m.helpMap)
	box := m.styles.Focused.
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(m.styles.Title.Render("Keys") + "\n\n" + body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
