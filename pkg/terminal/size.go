package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
)

// Size is the terminal size in character cells.
type Size struct {
	Cols int
	Rows int
}

// DefaultSize is used when nothing else reports a size.
var DefaultSize = Size{Cols: 80, Rows: 24}

// GetSize returns the current terminal dimensions. It tries, in order:
//  1. the tty attached to stdout, then stderr
//  2. COLUMNS/LINES environment variables
//  3. 80x24
func GetSize() Size {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if s, ok := SizeOf(f.Fd()); ok {
			return s
		}
	}
	return sizeFromEnv(os.Getenv)
}

// SizeOf queries the terminal behind fd.
func SizeOf(fd uintptr) (Size, bool) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return Size{}, false
	}
	return Size{Cols: w, Rows: h}, true
}

func sizeFromEnv(getenv func(string) string) Size {
	return Size{
		Cols: envInt(getenv, "COLUMNS", DefaultSize.Cols),
		Rows: envInt(getenv, "LINES", DefaultSize.Rows),
	}
}

// envInt reads a positive integer from the named variable, returning
// fallback when it is unset or malformed.
func envInt(getenv func(string) string, name string, fallback int) int {
	v := getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
