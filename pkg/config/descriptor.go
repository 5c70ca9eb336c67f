package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/keys"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/layout"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/theme"
)

// Position is the screen bucket a widget is placed in.
type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
	Center Position = "center"
)

// Positions lists every bucket in solve order.
var Positions = []Position{Top, Bottom, Left, Center, Right}

func validPosition(s string) bool {
	for _, p := range Positions {
		if string(p) == s {
			return true
		}
	}
	return false
}

// WidgetType names the kind of content a region will show.
type WidgetType string

const (
	Sidebar      WidgetType = "sidebar"
	PlaylistView WidgetType = "playlist_view"
	NowPlaying   WidgetType = "now_playing"
	ProgressBar  WidgetType = "progress_bar"
	StatusBar    WidgetType = "status_bar"
	AlbumArt     WidgetType = "album_art"
	SearchBox    WidgetType = "search_box"
)

// WidgetTypes lists every widget type.
var WidgetTypes = []WidgetType{Sidebar, PlaylistView, NowPlaying, ProgressBar, StatusBar, AlbumArt, SearchBox}

func validWidgetType(s string) bool {
	for _, t := range WidgetTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// SizeKind discriminates a Size.
type SizeKind int

const (
	SizeFill SizeKind = iota
	SizePercentage
	SizeLength
)

// Size is a widget's sizing policy along its bucket's axis.
type Size struct {
	Kind  SizeKind
	Value int
}

// Percentage returns a percentage size policy.
func Percentage(p int) Size { return Size{Kind: SizePercentage, Value: p} }

// Length returns a fixed size policy in cells.
func Length(n int) Size { return Size{Kind: SizeLength, Value: n} }

// Fill returns the fill size policy.
func Fill() Size { return Size{Kind: SizeFill} }

// Constraint converts s for the axis solver.
func (s Size) Constraint() layout.Constraint {
	switch s.Kind {
	case SizePercentage:
		return layout.Percentage{Value: s.Value}
	case SizeLength:
		return layout.Length{Value: s.Value}
	default:
		return layout.Fill{}
	}
}

func (s Size) String() string {
	switch s.Kind {
	case SizePercentage:
		return strconv.Itoa(s.Value) + "%"
	case SizeLength:
		return strconv.Itoa(s.Value)
	default:
		return "fill"
	}
}

// WidgetSpec declares one widget.
type WidgetSpec struct {
	Name     string
	Type     WidgetType
	Position Position
	Size     Size
	Visible  bool
	Border   bool
	Title    string
}

// Class is a responsive width class.
type Class int

const (
	Compact Class = iota
	Narrow
	Normal
	Wide
)

func (c Class) String() string {
	switch c {
	case Compact:
		return "compact"
	case Narrow:
		return "narrow"
	case Normal:
		return "normal"
	default:
		return "wide"
	}
}

// Responsive holds the width breakpoints. Thresholds are strictly ascending.
type Responsive struct {
	SmallWidth    int
	MediumWidth   int
	LargeWidth    int
	CollapseSides bool
}

// Classify maps a terminal width onto a class.
func (r Responsive) Classify(width int) Class {
	switch {
	case width < r.SmallWidth:
		return Compact
	case width < r.MediumWidth:
		return Narrow
	case width < r.LargeWidth:
		return Normal
	default:
		return Wide
	}
}

// Settings are the engine knobs carried by a layout.
type Settings struct {
	AutoSave   bool
	DebounceMS int
	Responsive Responsive
}

// Debounce returns the reload debounce window.
func (s Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// DefaultSettings returns the settings used for anything a layout omits.
func DefaultSettings() Settings {
	return Settings{
		AutoSave:   true,
		DebounceMS: 300,
		Responsive: Responsive{
			SmallWidth:    80,
			MediumWidth:   120,
			LargeWidth:    160,
			CollapseSides: true,
		},
	}
}

// Descriptor is a validated, immutable layout. Swapping layouts means
// replacing the pointer, never editing one in place.
type Descriptor struct {
	id          uuid.UUID
	path        string
	version     string
	name        string
	description string
	theme       theme.Source
	widgets     []WidgetSpec
	keymap      keys.Keymap
	settings    Settings
	warnings    []string
}

// ID identifies this descriptor. Parsing identical text yields the same ID.
func (d *Descriptor) ID() uuid.UUID { return d.id }

// Path is the file the descriptor was read from, empty for built-ins.
func (d *Descriptor) Path() string { return d.path }

func (d *Descriptor) Version() string     { return d.version }
func (d *Descriptor) Name() string        { return d.name }
func (d *Descriptor) Description() string { return d.description }

// Theme returns a copy of the palette source.
func (d *Descriptor) Theme() theme.Source { return d.theme.Clone() }

// Keymap returns the merged key bindings.
func (d *Descriptor) Keymap() keys.Keymap { return d.keymap }

// Settings returns the engine settings.
func (d *Descriptor) Settings() Settings { return d.settings }

// Warnings lists non-fatal problems found while parsing, such as unknown keys.
func (d *Descriptor) Warnings() []string {
	return append([]string(nil), d.warnings...)
}

// Widgets returns a copy of every widget in declaration order.
func (d *Descriptor) Widgets() []WidgetSpec {
	return append([]WidgetSpec(nil), d.widgets...)
}

// Widget looks up a widget by name.
func (d *Descriptor) Widget(name string) (WidgetSpec, bool) {
	for _, w := range d.widgets {
		if w.Name == name {
			return w, true
		}
	}
	return WidgetSpec{}, false
}

// IsWidgetVisible reports whether the named widget exists and is visible.
func (d *Descriptor) IsWidgetVisible(name string) bool {
	w, ok := d.Widget(name)
	return ok && w.Visible
}

// VisibleWidgets returns the visible widgets in declaration order.
func (d *Descriptor) VisibleWidgets() []WidgetSpec {
	var out []WidgetSpec
	for _, w := range d.widgets {
		if w.Visible {
			out = append(out, w)
		}
	}
	return out
}

// WidgetsByPosition returns the visible widgets in bucket pos, in
// declaration order.
func (d *Descriptor) WidgetsByPosition(pos Position) []WidgetSpec {
	var out []WidgetSpec
	for _, w := range d.widgets {
		if w.Visible && w.Position == pos {
			out = append(out, w)
		}
	}
	return out
}

// WidgetsOfType returns every widget of type t, visible or not.
func (d *Descriptor) WidgetsOfType(t WidgetType) []WidgetSpec {
	var out []WidgetSpec
	for _, w := range d.widgets {
		if w.Type == t {
			out = append(out, w)
		}
	}
	return out
}

// ResponsiveClass classifies width against this layout's breakpoints.
func (d *Descriptor) ResponsiveClass(width int) Class {
	return d.settings.Responsive.Classify(width)
}

// derive copies d under a new ID derived from d's ID and change.
func (d *Descriptor) derive(change string) *Descriptor {
	nd := *d
	nd.id = uuid.NewSHA1(d.id, []byte(change))
	nd.widgets = d.Widgets()
	nd.theme = d.theme.Clone()
	nd.warnings = d.Warnings()
	return &nd
}

// WithWidgetVisible returns a copy of d with the named widget shown or
// hidden.
func (d *Descriptor) WithWidgetVisible(name string, visible bool) (*Descriptor, error) {
	if _, ok := d.Widget(name); !ok {
		return nil, fmt.Errorf("config: no widget named %q", name)
	}
	nd := d.derive(fmt.Sprintf("visible:%s=%t", name, visible))
	for i := range nd.widgets {
		if nd.widgets[i].Name == name {
			nd.widgets[i].Visible = visible
		}
	}
	return nd, nil
}

// WithTheme returns a copy of d using the named base theme. Per-slot
// overrides from the layout file are dropped so the theme shows as built.
func (d *Descriptor) WithTheme(name string) *Descriptor {
	nd := d.derive("theme:" + strings.ToLower(name))
	nd.theme = theme.Source{Name: name}
	return nd
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%s, %d widgets)", d.name, d.id, len(d.widgets))
}
