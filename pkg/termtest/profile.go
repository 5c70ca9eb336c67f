// Package termtest holds terminal emulator profiles and render snapshots
// for checking that detection and drawing behave the same across the
// terminals turtle runs in. It is used from tests.
package termtest

// Profile describes what a terminal announces in its environment and what
// detection should conclude from it.
type Profile struct {
	Name     string            // Human-readable terminal name
	Env      map[string]string // Environment vars this terminal sets
	Emulator string            // Expected emulator name
	Depth    int               // Colour depth in bits: 24, 8, 4 or 1
	Mux      bool              // Runs inside a multiplexer
}

// Getenv looks up name in the profile's environment. Anything the profile
// does not set is empty.
func (p Profile) Getenv(name string) string {
	return p.Env[name]
}

// Profiles returns all known terminal profiles.
func Profiles() []Profile {
	return []Profile{
		{
			Name: "Ghostty",
			Env: map[string]string{
				"TERM_PROGRAM": "ghostty",
				"TERM":         "xterm-ghostty",
				"COLORTERM":    "truecolor",
			},
			Emulator: "ghostty",
			Depth:    24,
		},
		{
			Name: "Kitty",
			Env: map[string]string{
				"TERM":            "xterm-kitty",
				"COLORTERM":       "truecolor",
				"KITTY_WINDOW_ID": "1",
			},
			Emulator: "kitty",
			Depth:    24,
		},
		{
			Name: "iTerm2",
			Env: map[string]string{
				"TERM_PROGRAM":     "iTerm.app",
				"TERM":             "xterm-256color",
				"COLORTERM":        "truecolor",
				"ITERM_SESSION_ID": "w0t0p0:ABCDEF-1234",
			},
			Emulator: "iterm2",
			Depth:    24,
		},
		{
			Name: "WezTerm",
			Env: map[string]string{
				"TERM_PROGRAM":       "WezTerm",
				"TERM":               "xterm-256color",
				"COLORTERM":          "truecolor",
				"WEZTERM_EXECUTABLE": "/usr/bin/wezterm",
			},
			Emulator: "wezterm",
			Depth:    24,
		},
		{
			Name: "Tilix",
			Env: map[string]string{
				"TERM":        "xterm-256color",
				"VTE_VERSION": "7600",
				"TILIX_ID":    "abc",
			},
			Emulator: "tilix",
			Depth:    8,
		},
		{
			Name: "Alacritty",
			Env: map[string]string{
				"TERM":      "alacritty",
				"COLORTERM": "truecolor",
			},
			Emulator: "alacritty",
			Depth:    24,
		},
		{
			Name: "Terminal.app",
			Env: map[string]string{
				"TERM_PROGRAM": "Apple_Terminal",
				"TERM":         "xterm-256color",
			},
			Emulator: "apple-terminal",
			Depth:    8,
		},
		{
			Name: "tmux",
			Env: map[string]string{
				"TERM": "tmux-256color",
				"TMUX": "/tmp/tmux-1000/default,1234,0",
			},
			Emulator: "generic",
			Depth:    8,
			Mux:      true,
		},
		{
			Name: "Linux console",
			Env: map[string]string{
				"TERM": "linux",
			},
			Emulator: "generic",
			Depth:    4,
		},
	}
}

// ProfileByName returns the profile matching the given name, or nil if not found.
func ProfileByName(name string) *Profile {
	for _, p := range Profiles() {
		if p.Name == name {
			cp := p
			return &cp
		}
	}
	return nil
}
