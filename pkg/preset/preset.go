// Package preset provides the named builtin layouts that the switch_layout
// action cycles through. Each preset is an ordinary layout file embedded in
// the binary and parsed with the same rules as a user's layout.
package preset

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
)

// Builtin preset names in cycling order.
const (
	LofiNight = "lofi-night"
	Minimal   = "minimal"
	Wide      = "wide"
	Focus     = "focus"
)

//go:embed layouts/*.toml
var layoutFS embed.FS

// Preset is a named, parsed layout.
type Preset struct {
	Name       string
	Descriptor *config.Descriptor
}

var (
	loadOnce sync.Once
	builtins map[string]Preset
	order    []string
)

func load() {
	builtins = map[string]Preset{
		LofiNight: {Name: LofiNight, Descriptor: config.Default()},
	}
	order = []string{LofiNight}
	for _, name := range []string{Minimal, Wide, Focus} {
		data, err := layoutFS.ReadFile("layouts/" + name + ".toml")
		if err != nil {
			panic(fmt.Sprintf("preset: embedded %s missing: %v", name, err))
		}
		p, err := LoadFromTOML(name, data)
		if err != nil {
			panic(fmt.Sprintf("preset: embedded %s invalid: %v", name, err))
		}
		builtins[name] = p
		order = append(order, name)
	}
}

// LoadFromTOML parses a preset from layout TOML.
func LoadFromTOML(name string, data []byte) (Preset, error) {
	if strings.TrimSpace(name) == "" {
		return Preset{}, fmt.Errorf("preset: missing name")
	}
	d, err := config.Parse(data, config.TOML)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", name, err)
	}
	return Preset{Name: name, Descriptor: d}, nil
}

// Get returns a named preset, falling back to lofi-night if not found.
func Get(name string) Preset {
	loadOnce.Do(load)
	if p, ok := builtins[strings.ToLower(name)]; ok {
		return p
	}
	return builtins[LofiNight]
}

// Lookup returns a named preset and whether it exists.
func Lookup(name string) (Preset, bool) {
	loadOnce.Do(load)
	p, ok := builtins[strings.ToLower(name)]
	return p, ok
}

// Names returns all available preset names in sorted order.
func Names() []string {
	loadOnce.Do(load)
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Next returns the preset after name in cycling order, wrapping at the end.
// An unknown name starts the cycle over.
func Next(name string) string {
	loadOnce.Do(load)
	for i, n := range order {
		if n == strings.ToLower(name) {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// NameOf returns the builtin preset d was taken from, or "" when d is not
// a builtin.
func NameOf(d *config.Descriptor) string {
	loadOnce.Do(load)
	for _, name := range order {
		if builtins[name].Descriptor.ID() == d.ID() {
			return name
		}
	}
	return ""
}

// SelectForSize suggests a preset for a terminal width using the default
// breakpoints: minimal below the small width, wide from the large width up.
func SelectForSize(width int) string {
	switch config.DefaultSettings().Responsive.Classify(width) {
	case config.Compact:
		return Minimal
	case config.Wide:
		return Wide
	default:
		return LofiNight
	}
}
