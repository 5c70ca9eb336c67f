// Package region turns a layout descriptor and a terminal size into one
// rectangle per visible widget.
package region

import "gitlab.com/tinyland/lab/turtle-layout/pkg/config"

// Tree holds the visible widgets grouped by bucket. Each bucket keeps
// declaration order.
type Tree struct {
	Top    []config.WidgetSpec
	Bottom []config.WidgetSpec
	Left   []config.WidgetSpec
	Center []config.WidgetSpec
	Right  []config.WidgetSpec
}

// Build groups the visible widgets of d into buckets. Invisible widgets
// stay in d but get no bucket.
func Build(d *config.Descriptor) Tree {
	return Tree{
		Top:    d.WidgetsByPosition(config.Top),
		Bottom: d.WidgetsByPosition(config.Bottom),
		Left:   d.WidgetsByPosition(config.Left),
		Center: d.WidgetsByPosition(config.Center),
		Right:  d.WidgetsByPosition(config.Right),
	}
}

// Bucket returns the widgets in bucket p.
func (t Tree) Bucket(p config.Position) []config.WidgetSpec {
	switch p {
	case config.Top:
		return t.Top
	case config.Bottom:
		return t.Bottom
	case config.Left:
		return t.Left
	case config.Center:
		return t.Center
	case config.Right:
		return t.Right
	}
	return nil
}

// HasMiddle reports whether any widget sits in the horizontal band.
func (t Tree) HasMiddle() bool {
	return len(t.Left)+len(t.Center)+len(t.Right) > 0
}

// Collapse drops the side buckets, as done for compact terminals.
func (t Tree) Collapse() Tree {
	t.Left = nil
	t.Right = nil
	return t
}
