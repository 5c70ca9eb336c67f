// Package keys maps key tokens to player actions. A Keymap is built from
// the default bindings overlaid with user overrides and is resolved by exact
// token match; unmapped tokens are no-ops.
package keys

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Action is a symbolic tag emitted for a key press.
type Action string

// Known actions. Keymaps may carry tags outside this set; those are passed
// through untouched to whoever consumes actions.
const (
	TogglePlay    Action = "toggle_play"
	NextTrack     Action = "next_track"
	PreviousTrack Action = "previous_track"
	MoveUp        Action = "move_up"
	MoveDown      Action = "move_down"
	Select        Action = "select"
	VolumeUp      Action = "volume_up"
	VolumeDown    Action = "volume_down"
	Help          Action = "help"
	SwitchLayout  Action = "switch_layout"
	SwitchTheme   Action = "switch_theme"
	ReloadLayout  Action = "reload_layout"
	Quit          Action = "quit"
	Search        Action = "search"
	ToggleArt     Action = "toggle_art"
)

var knownActions = map[Action]string{
	TogglePlay:    "play/pause",
	NextTrack:     "next track",
	PreviousTrack: "previous track",
	MoveUp:        "up",
	MoveDown:      "down",
	Select:        "select",
	VolumeUp:      "volume up",
	VolumeDown:    "volume down",
	Help:          "help",
	SwitchLayout:  "switch layout",
	SwitchTheme:   "switch theme",
	ReloadLayout:  "reload layout",
	Quit:          "quit",
	Search:        "search",
	ToggleArt:     "toggle art",
}

// Known reports whether a is one of the built-in actions.
func Known(a Action) bool {
	_, ok := knownActions[a]
	return ok
}

// Description returns a short help label for a, or the tag itself for
// custom actions.
func (a Action) Description() string {
	if d, ok := knownActions[a]; ok {
		return d
	}
	return strings.ReplaceAll(string(a), "_", " ")
}

// Keymap is an immutable token -> action table.
type Keymap struct {
	bindings map[string]Action
}

// Defaults returns the built-in bindings.
func Defaults() Keymap {
	return Keymap{bindings: map[string]Action{
		"space": TogglePlay,
		"n":     NextTrack,
		"p":     PreviousTrack,
		"up":    MoveUp,
		"down":  MoveDown,
		"enter": Select,
		"+":     VolumeUp,
		"-":     VolumeDown,
		"f1":    Help,
		"f2":    SwitchLayout,
		"f3":    SwitchTheme,
		"f5":    ReloadLayout,
		"q":     Quit,
		"esc":   Quit,
		"/":     Search,
		"a":     ToggleArt,
	}}
}

// Merge overlays overrides on base. Overrides win per token; tokens absent
// from overrides keep their base action.
func Merge(base Keymap, overrides map[string]string) Keymap {
	out := make(map[string]Action, len(base.bindings)+len(overrides))
	for k, a := range base.bindings {
		out[k] = a
	}
	for k, a := range overrides {
		out[NormalizeToken(k)] = Action(strings.TrimSpace(a))
	}
	return Keymap{bindings: out}
}

// Resolve returns the action bound to token. The match is exact.
func (k Keymap) Resolve(token string) (Action, bool) {
	a, ok := k.bindings[token]
	return a, ok
}

// ResolveKey resolves a bubbletea key message.
func (k Keymap) ResolveKey(msg tea.KeyMsg) (Action, bool) {
	return k.Resolve(Token(msg))
}

// Len returns the number of bindings.
func (k Keymap) Len() int {
	return len(k.bindings)
}

// Map returns a copy of the bindings as plain strings.
func (k Keymap) Map() map[string]string {
	out := make(map[string]string, len(k.bindings))
	for tok, a := range k.bindings {
		out[tok] = string(a)
	}
	return out
}

// Tokens returns the bound tokens in sorted order.
func (k Keymap) Tokens() []string {
	out := make([]string, 0, len(k.bindings))
	for tok := range k.bindings {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// KeysFor returns the tokens bound to a, sorted.
func (k Keymap) KeysFor(a Action) []string {
	var out []string
	for tok, bound := range k.bindings {
		if bound == a {
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two keymaps hold the same bindings.
func (k Keymap) Equal(other Keymap) bool {
	if len(k.bindings) != len(other.bindings) {
		return false
	}
	for tok, a := range k.bindings {
		if other.bindings[tok] != a {
			return false
		}
	}
	return true
}
