// Package theme resolves palette sources from a layout file into concrete
// terminal colors, keeps the registry of built-in themes, and builds the
// lipgloss styles the preview renders with.
package theme

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Slot names one of the eight palette entries.
type Slot string

const (
	Primary    Slot = "primary"
	Secondary  Slot = "secondary"
	Background Slot = "background"
	Foreground Slot = "foreground"
	Border     Slot = "border"
	Highlight  Slot = "highlight"
	Error      Slot = "error"
	Success    Slot = "success"
)

// Slots lists every palette slot in display order.
var Slots = []Slot{Primary, Secondary, Background, Foreground, Border, Highlight, Error, Success}

// ValidSlot reports whether s names a palette slot.
func ValidSlot(s string) bool {
	for _, slot := range Slots {
		if string(slot) == s {
			return true
		}
	}
	return false
}

// Palette is a fully resolved set of colors.
type Palette struct {
	Name string

	Primary    Color
	Secondary  Color
	Background Color
	Foreground Color
	Border     Color
	Highlight  Color
	Error      Color
	Success    Color
}

// Get returns the color in slot.
func (p Palette) Get(s Slot) Color {
	switch s {
	case Primary:
		return p.Primary
	case Secondary:
		return p.Secondary
	case Background:
		return p.Background
	case Foreground:
		return p.Foreground
	case Border:
		return p.Border
	case Highlight:
		return p.Highlight
	case Error:
		return p.Error
	case Success:
		return p.Success
	}
	return Color{}
}

// set stores c in slot.
func (p *Palette) set(s Slot, c Color) {
	switch s {
	case Primary:
		p.Primary = c
	case Secondary:
		p.Secondary = c
	case Background:
		p.Background = c
	case Foreground:
		p.Foreground = c
	case Border:
		p.Border = c
	case Highlight:
		p.Highlight = c
	case Error:
		p.Error = c
	case Success:
		p.Success = c
	}
}

// Tokens returns the palette as slot -> token strings.
func (p Palette) Tokens() map[string]string {
	out := make(map[string]string, len(Slots))
	for _, s := range Slots {
		out[string(s)] = p.Get(s).String()
	}
	return out
}

// Source is the unresolved theme block of a layout file: an optional base
// theme name plus per-slot color tokens.
type Source struct {
	Name   string
	Colors map[string]string
}

// Clone returns a deep copy of s.
func (s Source) Clone() Source {
	out := Source{Name: s.Name}
	if s.Colors != nil {
		out.Colors = make(map[string]string, len(s.Colors))
		for k, v := range s.Colors {
			out.Colors[k] = v
		}
	}
	return out
}

// Diagnostic describes a palette entry that could not be used as written.
type Diagnostic struct {
	Slot    string
	Token   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("theme color %q = %q: %s", d.Slot, d.Token, d.Message)
}

// Resolve turns src into a Palette. Each slot takes the user token when it
// parses, else the built-in theme named by src.Name, else the default
// palette. Problems are returned as diagnostics and never fail resolution.
func Resolve(src Source) (Palette, []Diagnostic) {
	var diags []Diagnostic

	base := Default()
	if src.Name != "" {
		if p, ok := Lookup(src.Name); ok {
			base = p
		}
	}
	p := base
	p.Name = src.Name
	if p.Name == "" {
		p.Name = base.Name
	}

	keys := make([]string, 0, len(src.Colors))
	for k := range src.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		token := src.Colors[k]
		slot := strings.ToLower(strings.TrimSpace(k))
		if !ValidSlot(slot) {
			diags = append(diags, Diagnostic{Slot: k, Token: token, Message: "unknown palette slot, ignored"})
			continue
		}
		c, err := ParseColor(token)
		if err != nil {
			diags = append(diags, Diagnostic{
				Slot:    k,
				Token:   token,
				Message: fmt.Sprintf("%v; using %s", err, base.Get(Slot(slot))),
			})
			continue
		}
		p.set(Slot(slot), c)
	}
	return p, diags
}

var (
	mu       sync.RWMutex
	registry = map[string]Palette{}
	order    []string
)

func init() {
	thRegisterBuiltins()
}

// Default returns the fallback palette used for any slot nothing else fills.
func Default() Palette {
	p, _ := Lookup("default")
	return p
}

// Lookup returns the built-in theme called name.
func Lookup(name string) (Palette, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[strings.ToLower(name)]
	return p, ok
}

// Get returns a named theme, falling back to Default if not found.
func Get(name string) Palette {
	if p, ok := Lookup(name); ok {
		return p
	}
	return Default()
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the theme that follows name in registration order, wrapping
// around. Unknown names start the cycle from the beginning.
func Next(name string) string {
	mu.RLock()
	defer mu.RUnlock()
	if len(order) == 0 {
		return ""
	}
	name = strings.ToLower(name)
	for i, n := range order {
		if n == name {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// Register adds a theme to the registry under its lowercase name,
// replacing any theme of the same name.
func Register(p Palette) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(p.Name)
	if _, exists := registry[key]; !exists {
		order = append(order, key)
	}
	registry[key] = p
}
