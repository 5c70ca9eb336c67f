package keys

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Token converts a bubbletea key message into the token form used in
// layout files ("space", "esc", "f5", "ctrl+r", "a").
func Token(msg tea.KeyMsg) string {
	return NormalizeToken(msg.String())
}

// NormalizeToken maps the aliases bubbletea and users produce onto the
// canonical token. Letter case is preserved so "N" and "n" stay distinct.
func NormalizeToken(s string) string {
	switch s {
	case " ":
		return "space"
	}
	switch lower := strings.ToLower(strings.TrimSpace(s)); lower {
	case "space", "esc", "enter", "tab", "backspace", "delete",
		"up", "down", "left", "right", "home", "end", "pgup", "pgdown":
		return lower
	case "escape":
		return "esc"
	case "return":
		return "enter"
	case "del":
		return "delete"
	}
	s = strings.TrimSpace(s)
	if len(s) > 1 && (s[0] == 'F' || s[0] == 'f') && isDigits(s[1:]) {
		return strings.ToLower(s)
	}
	if strings.Contains(s, "+") && len(s) > 1 {
		// ctrl+r, alt+x: modifiers are lowercase, the key keeps its case.
		idx := strings.LastIndex(s, "+")
		if idx == len(s)-1 {
			// "ctrl++"
			idx = strings.LastIndex(s[:len(s)-1], "+")
		}
		if idx > 0 {
			return strings.ToLower(s[:idx]) + s[idx:]
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HelpMap adapts a Keymap to the bubbles help.KeyMap interface.
type HelpMap struct {
	bindings []key.Binding
}

// Bindings builds one bubbles binding per action, in a stable order:
// known actions first, then custom actions alphabetically.
func (k Keymap) Bindings() HelpMap {
	seen := make(map[Action]bool)
	var actions []Action
	for _, a := range k.bindings {
		if !seen[a] {
			seen[a] = true
			actions = append(actions, a)
		}
	}
	order := func(a Action) int {
		for i, known := range helpOrder {
			if known == a {
				return i
			}
		}
		return len(helpOrder)
	}
	sort.Slice(actions, func(i, j int) bool {
		oi, oj := order(actions[i]), order(actions[j])
		if oi != oj {
			return oi < oj
		}
		return actions[i] < actions[j]
	})

	var hm HelpMap
	for _, a := range actions {
		toks := k.KeysFor(a)
		hm.bindings = append(hm.bindings, key.NewBinding(
			key.WithKeys(toks...),
			key.WithHelp(strings.Join(toks, "/"), a.Description()),
		))
	}
	return hm
}

var helpOrder = []Action{
	TogglePlay, NextTrack, PreviousTrack, VolumeUp, VolumeDown,
	MoveUp, MoveDown, Select, Search, ToggleArt,
	SwitchLayout, SwitchTheme, ReloadLayout, Help, Quit,
}

// ShortHelp implements help.KeyMap.
func (h HelpMap) ShortHelp() []key.Binding {
	const short = 6
	if len(h.bindings) <= short {
		return h.bindings
	}
	// Keep help and quit visible in the short view.
	out := append([]key.Binding{}, h.bindings[:short-2]...)
	for _, b := range h.bindings[short-2:] {
		desc := b.Help().Desc
		if desc == Help.Description() || desc == Quit.Description() {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (h HelpMap) FullHelp() [][]key.Binding {
	const perColumn = 5
	var cols [][]key.Binding
	for i := 0; i < len(h.bindings); i += perColumn {
		end := min(i+perColumn, len(h.bindings))
		cols = append(cols, h.bindings[i:end])
	}
	return cols
}

// Len returns the number of help bindings.
func (h HelpMap) Len() int {
	return len(h.bindings)
}
