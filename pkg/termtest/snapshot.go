package termtest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Snapshot captures the rendered output for comparison testing.
type Snapshot struct {
	Name     string // Descriptive name for the snapshot
	Terminal string // Terminal profile name used
	Width    int    // Render width in columns
	Height   int    // Render height in rows
	Content  string // The rendered string
}

// Capture renders content at the given dimensions and stores it.
func Capture(name string, p Profile, render func(w, h int) string, width, height int) Snapshot {
	return Snapshot{
		Name:     name,
		Terminal: p.Name,
		Width:    width,
		Height:   height,
		Content:  render(width, height),
	}
}

// Plain returns the content with escape sequences removed.
func (s Snapshot) Plain() string {
	return ansi.Strip(s.Content)
}

// Diff describes a single line difference between two snapshots.
type Diff struct {
	Line     int    // 1-based line number where the difference occurs
	Expected string // The expected line content
	Actual   string // The actual line content
}

func (d Diff) String() string {
	return fmt.Sprintf("line %d:\n  want %q\n  got  %q", d.Line, d.Expected, d.Actual)
}

// Compare checks two snapshots for differences in their visible text.
// Colours are ignored so the same layout can be compared across profiles.
// Returns nil if the snapshots are identical.
func Compare(expected, actual Snapshot) []Diff {
	expectedLines := splitLines(expected.Plain())
	actualLines := splitLines(actual.Plain())

	n := max(len(expectedLines), len(actualLines))
	var diffs []Diff
	for i := 0; i < n; i++ {
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			diffs = append(diffs, Diff{Line: i + 1, Expected: eLine, Actual: aLine})
		}
	}
	return diffs
}

// CheckFrame verifies the snapshot exactly covers its screen: Height lines,
// each Width cells wide.
func CheckFrame(s Snapshot) error {
	lines := splitLines(s.Content)
	if len(lines) != s.Height {
		return fmt.Errorf("%s on %s: %d lines, want %d", s.Name, s.Terminal, len(lines), s.Height)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != s.Width {
			return fmt.Errorf("%s on %s: line %d is %d cells, want %d", s.Name, s.Terminal, i+1, w, s.Width)
		}
	}
	return nil
}

// splitLines treats an empty string as a single empty line.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
