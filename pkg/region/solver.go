package region

import (
	"sort"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/layout"
)

// Region is the rectangle assigned to one widget.
type Region struct {
	Widget   config.WidgetSpec
	Rect     layout.Rect
	Position config.Position
}

// Name returns the widget name.
func (r Region) Name() string { return r.Widget.Name }

// Set is the result of one solve. Regions are ordered top to bottom, then
// left to right.
type Set struct {
	Area    layout.Rect
	Class   config.Class
	Regions []Region
	// Collapsed lists widgets dropped by the responsive rule.
	Collapsed []string
}

// Get returns the region for the named widget.
func (s Set) Get(name string) (Region, bool) {
	for _, r := range s.Regions {
		if r.Widget.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Names returns the widget names in region order.
func (s Set) Names() []string {
	out := make([]string, len(s.Regions))
	for i, r := range s.Regions {
		out[i] = r.Widget.Name
	}
	return out
}

// Hit returns the region containing cell (x, y).
func (s Set) Hit(x, y int) (Region, bool) {
	for _, r := range s.Regions {
		if r.Rect.Contains(x, y) {
			return r, true
		}
	}
	return Region{}, false
}

// Len returns the number of regions.
func (s Set) Len() int { return len(s.Regions) }

// Solve computes regions for d inside area. It is pure: the same descriptor
// and area always give the same result, and nothing is cached.
//
// Top is split over the full height and Bottom over what Top leaves, so a
// Fill in either bucket takes everything left to it. The middle band gets
// only the rows between them.
func Solve(d *config.Descriptor, area layout.Rect) Set {
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}

	tree := Build(d)
	set := Set{Area: area, Class: d.ResponsiveClass(area.Width)}

	// Collapse before solving so dropped buckets claim no space.
	if set.Class == config.Compact && d.Settings().Responsive.CollapseSides {
		for _, p := range []config.Position{config.Left, config.Right} {
			for _, w := range tree.Bucket(p) {
				set.Collapsed = append(set.Collapsed, w.Name)
			}
		}
		tree = tree.Collapse()
	}

	middle := solveVertical(tree, area, &set)
	if tree.HasMiddle() {
		solveHorizontal(tree, middle, &set)
	}

	sort.SliceStable(set.Regions, func(i, j int) bool {
		a, b := set.Regions[i].Rect, set.Regions[j].Rect
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return set
}

func constraints(ws []config.WidgetSpec) []layout.Constraint {
	cs := make([]layout.Constraint, len(ws))
	for i, w := range ws {
		cs[i] = w.Size.Constraint()
	}
	return cs
}

// solveVertical places Top and Bottom and returns the middle band between
// them. Top packs down from the top edge; Bottom is split over the rows Top
// left and packs up against the bottom edge.
func solveVertical(tree Tree, area layout.Rect, set *Set) layout.Rect {
	tops := layout.SplitVertical(area, constraints(tree.Top)...)
	used := 0
	for i, w := range tree.Top {
		set.Regions = append(set.Regions, Region{Widget: w, Rect: tops[i], Position: config.Top})
		used += tops[i].Height
	}
	rest := layout.Rect{X: area.X, Y: area.Y + used, Width: area.Width, Height: area.Height - used}

	bottoms := layout.SplitVertical(rest, constraints(tree.Bottom)...)
	height := 0
	for _, r := range bottoms {
		height += r.Height
	}
	slack := rest.Height - height
	for i, w := range tree.Bottom {
		r := bottoms[i]
		r.Y += slack
		set.Regions = append(set.Regions, Region{Widget: w, Rect: r, Position: config.Bottom})
	}

	return layout.Rect{X: rest.X, Y: rest.Y, Width: rest.Width, Height: slack}
}

// solveHorizontal splits the middle band across Left, Center and Right on
// one axis. Left packs from the left edge, Center directly after Left, and
// Right against the right edge.
func solveHorizontal(tree Tree, band layout.Rect, set *Set) {
	var ws []config.WidgetSpec
	for _, p := range []config.Position{config.Left, config.Center, config.Right} {
		ws = append(ws, tree.Bucket(p)...)
	}
	rects := layout.SplitHorizontal(band, constraints(ws)...)

	width := 0
	for _, r := range rects {
		width += r.Width
	}
	slack := band.Width - width
	firstRight := len(ws) - len(tree.Right)
	for i, w := range ws {
		r := rects[i]
		if i >= firstRight {
			r.X += slack
		}
		set.Regions = append(set.Regions, Region{Widget: w, Rect: r, Position: w.Position})
	}
}
