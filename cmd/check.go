package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/layout"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/preset"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/region"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/terminal"
)

// errInvalidLayout is returned by check when the layout file cannot be used.
var errInvalidLayout = errors.New("layout is invalid")

func newCheckCmd(v *viper.Viper) *cobra.Command {
	var width, height int
	c := &cobra.Command{
		Use:   "check",
		Short: "Validate the layout file and print its regions",
		Long: `check parses and validates the layout file, then solves it for the
given terminal size and prints one row per region.

Exits non-zero if the file does not parse or validate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := readOptions(v)
			if width <= 0 || height <= 0 {
				size := terminal.GetSize()
				if width <= 0 {
					width = size.Cols
				}
				if height <= 0 {
					height = size.Rows
				}
			}
			return runCheck(cmd.OutOrStdout(), opts.LayoutConfig, width, height)
		},
	}
	c.Flags().IntVar(&width, "width", 0, "Terminal width to solve for (0 = detect)")
	c.Flags().IntVar(&height, "height", 0, "Terminal height to solve for (0 = detect)")
	return c
}

// runCheck loads the layout strictly. Unlike startup, a broken file is
// reported instead of replaced by the default.
func runCheck(out io.Writer, flag string, width, height int) error {
	path := config.ResolvePath(flag)

	var d *config.Descriptor
	if path == "" {
		name := preset.SelectForSize(width)
		fmt.Fprintf(out, "no layout file found, checking the builtin %s preset\n", name)
		d = preset.Get(name).Descriptor
	} else {
		var err error
		d, err = config.LoadFromFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %s error\n", path, config.Kind(err))
			for _, line := range diagnostics(err) {
				fmt.Fprintf(out, "  %s\n", line)
			}
			return fmt.Errorf("%w: %s", errInvalidLayout, path)
		}
		fmt.Fprintf(out, "%s: ok\n", path)
	}

	fmt.Fprintf(out, "layout:  %s (version %s)\n", d.Name(), d.Version())
	fmt.Fprintf(out, "id:      %s\n", d.ID())
	for _, w := range d.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	set := region.Solve(d, layout.Rect{Width: width, Height: height})
	fmt.Fprintf(out, "size:    %dx%d (%s)\n", width, height, set.Class)
	if len(set.Collapsed) > 0 {
		fmt.Fprintf(out, "hidden:  %s\n", strings.Join(set.Collapsed, ", "))
	}
	fmt.Fprintln(out, regionTable(set))
	return nil
}

// diagnostics splits an aggregated validation error into one line per
// problem.
func diagnostics(err error) []string {
	var ves *config.ValidationErrors
	if errors.As(err, &ves) {
		lines := make([]string, 0, len(ves.Errors))
		for _, ve := range ves.Errors {
			lines = append(lines, ve.Error())
		}
		return lines
	}
	return []string{err.Error()}
}

func regionTable(set region.Set) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WIDGET", "TYPE", "POSITION", "X", "Y", "W", "H").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, r := range set.Regions {
		t.Row(
			r.Name(),
			string(r.Widget.Type),
			string(r.Position),
			strconv.Itoa(r.Rect.X),
			strconv.Itoa(r.Rect.Y),
			strconv.Itoa(r.Rect.Width),
			strconv.Itoa(r.Rect.Height),
		)
	}
	return t.String()
}
