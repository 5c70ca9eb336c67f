// Package terminal answers the questions the renderer has about the
// terminal it runs in: how big it is, how many colours it shows and whether
// it sits inside a multiplexer.
package terminal

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Capabilities summarizes the current terminal.
type Capabilities struct {
	Size       Size
	Profile    termenv.Profile
	ColorDepth int // 24, 8, 4 or 1 bits
	TrueColor  bool
	TTY        bool
	Emulator   string
	SSH        bool
	Tmux       bool
	Mux        bool // tmux, screen or zellij
}

var (
	mu     sync.Mutex
	cached *Capabilities
)

// DetectCapabilities inspects the terminal once and caches the result.
func DetectCapabilities() *Capabilities {
	mu.Lock()
	defer mu.Unlock()
	if cached == nil {
		cached = detect(os.Getenv, termenv.EnvColorProfile(), isatty.IsTerminal(os.Stdout.Fd()))
		cached.Size = GetSize()
	}
	return cached
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func detect(getenv func(string) string, profile termenv.Profile, tty bool) *Capabilities {
	tmux := getenv("TMUX") != ""
	c := &Capabilities{
		Size:     sizeFromEnv(getenv),
		Profile:  profile,
		TTY:      tty,
		Emulator: emulator(getenv),
		SSH:      getenv("SSH_TTY") != "" || getenv("SSH_CONNECTION") != "" || getenv("SSH_CLIENT") != "",
		Tmux:     tmux,
		Mux:      tmux || getenv("STY") != "" || getenv("ZELLIJ") != "",
	}
	c.ColorDepth = Depth(profile)
	c.TrueColor = c.ColorDepth == 24
	return c
}

// Depth converts a termenv profile to bits per colour.
func Depth(p termenv.Profile) int {
	switch p {
	case termenv.TrueColor:
		return 24
	case termenv.ANSI256:
		return 8
	case termenv.ANSI:
		return 4
	default:
		return 1
	}
}

// emulator names the terminal from environment hints, most reliable first.
func emulator(getenv func(string) string) string {
	switch strings.ToLower(getenv("TERM_PROGRAM")) {
	case "ghostty":
		return "ghostty"
	case "wezterm":
		return "wezterm"
	case "iterm.app":
		return "iterm2"
	case "vscode":
		return "vscode"
	case "apple_terminal":
		return "apple-terminal"
	case "alacritty":
		return "alacritty"
	}
	switch term := getenv("TERM"); {
	case term == "xterm-kitty" || getenv("KITTY_WINDOW_ID") != "":
		return "kitty"
	case term == "xterm-ghostty":
		return "ghostty"
	case strings.HasPrefix(term, "alacritty"):
		return "alacritty"
	}
	if getenv("WEZTERM_EXECUTABLE") != "" {
		return "wezterm"
	}
	if getenv("VTE_VERSION") != "" {
		if getenv("TILIX_ID") != "" {
			return "tilix"
		}
		return "gnome-terminal"
	}
	if getenv("INSIDE_EMACS") != "" {
		return "emacs"
	}
	return "generic"
}
