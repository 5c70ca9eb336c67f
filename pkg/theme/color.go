package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorKind discriminates how a Color is expressed on the terminal.
type ColorKind int

const (
	// Reset uses the terminal's own default color.
	Reset ColorKind = iota
	// Named is one of the 16 ANSI colors.
	Named
	// Indexed is a 256-color palette entry.
	Indexed
	// RGB is a 24-bit true color.
	RGB
)

// Color is a resolved, terminal-safe color.
type Color struct {
	Kind    ColorKind
	Index   uint8 // ANSI index for Named and Indexed
	R, G, B uint8
}

// ansiNames maps color tokens to their 16-color ANSI index.
var ansiNames = map[string]uint8{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"gray":           7,
	"grey":           7,
	"dark_gray":      8,
	"dark_grey":      8,
	"light_red":      9,
	"bright_red":     9,
	"light_green":    10,
	"bright_green":   10,
	"light_yellow":   11,
	"bright_yellow":  11,
	"light_blue":     12,
	"bright_blue":    12,
	"light_magenta":  13,
	"bright_magenta": 13,
	"light_cyan":     14,
	"bright_cyan":    14,
	"white":          15,
}

// canonicalNames is the token each ANSI index prints back as.
var canonicalNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "gray",
	"dark_gray", "light_red", "light_green", "light_yellow", "light_blue",
	"light_magenta", "light_cyan", "white",
}

// ParseColor parses a color token: a terminal color name, "#RRGGBB", or a
// palette index 0-255. Names are case-insensitive.
func ParseColor(token string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return Color{}, fmt.Errorf("theme: empty color")
	}
	if s == "reset" {
		return Color{Kind: Reset}, nil
	}
	if idx, ok := ansiNames[s]; ok {
		return Color{Kind: Named, Index: idx}, nil
	}
	if strings.HasPrefix(s, "#") {
		r, g, b, ok := thParseHex(s)
		if !ok {
			return Color{}, fmt.Errorf("theme: invalid hex color %q (want #RRGGBB)", token)
		}
		return Color{Kind: RGB, R: r, G: g, B: b}, nil
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return Color{Kind: Indexed, Index: uint8(n)}, nil
	}
	return Color{}, fmt.Errorf("theme: unknown color %q", token)
}

// MustParseColor is ParseColor for built-in tables. It panics on error.
func MustParseColor(token string) Color {
	c, err := ParseColor(token)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the token form of c, suitable for writing back to a
// layout file.
func (c Color) String() string {
	switch c.Kind {
	case Named:
		return canonicalNames[c.Index&0x0f]
	case Indexed:
		return strconv.Itoa(int(c.Index))
	case RGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "reset"
	}
}

// Terminal converts c into a lipgloss color.
func (c Color) Terminal() lipgloss.TerminalColor {
	switch c.Kind {
	case Named, Indexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	case RGB:
		return lipgloss.Color(c.String())
	default:
		return lipgloss.NoColor{}
	}
}
