package config

import (
	"errors"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/keys"
)

const minimalTOML = `
version = "1.0"
name = "test"

[[widgets]]
name = "playlist"
type = "playlist_view"
position = "center"
size = "fill"
`

// mustParse is a test helper that fails on parse errors.
func mustParse(t *testing.T, src string) *Descriptor {
	t.Helper()
	d, err := Parse([]byte(src), TOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

// validationErrors is a test helper that asserts err is *ValidationErrors.
func validationErrors(t *testing.T, err error) []*ValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error %T (%v) is not *ValidationErrors", err, err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false")
	}
	return verrs.Errors
}

// --- Default layout ---

func TestDefaultLayout(t *testing.T) {
	d := Default()
	if d.Name() != "Lofi Night" {
		t.Errorf("Name = %q, want Lofi Night", d.Name())
	}
	if d.Version() != "1.0" {
		t.Errorf("Version = %q", d.Version())
	}
	if got := len(d.Widgets()); got != 6 {
		t.Fatalf("widgets = %d, want 6", got)
	}
	want := []struct {
		name string
		pos  Position
		size Size
	}{
		{"sidebar", Left, Percentage(25)},
		{"playlist", Center, Fill()},
		{"now_playing", Right, Percentage(30)},
		{"album_art", Right, Percentage(25)},
		{"progress", Bottom, Length(3)},
		{"status", Bottom, Length(1)},
	}
	for i, w := range d.Widgets() {
		if w.Name != want[i].name || w.Position != want[i].pos || w.Size != want[i].size {
			t.Errorf("widget[%d] = %s/%s/%v, want %s/%s/%v", i, w.Name, w.Position, w.Size, want[i].name, want[i].pos, want[i].size)
		}
	}
	if w, _ := d.Widget("progress"); w.Border {
		t.Error("progress should have no border")
	}
	if d.Settings() != DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", d.Settings())
	}
	if d.Theme().Name != "lofi_night" || d.Theme().Colors["primary"] != "#bd93f9" {
		t.Errorf("Theme = %+v", d.Theme())
	}
	if !d.Keymap().Equal(keys.Defaults()) {
		t.Errorf("Keymap = %v, want defaults", d.Keymap().Map())
	}
	if len(d.Warnings()) != 0 {
		t.Errorf("Warnings = %v", d.Warnings())
	}
	if Default() != d {
		t.Error("Default should be parsed once")
	}
}

// --- Parsing ---

func TestParseDefaultsForOmittedFields(t *testing.T) {
	d := mustParse(t, minimalTOML)
	w, ok := d.Widget("playlist")
	if !ok {
		t.Fatal("playlist missing")
	}
	if !w.Visible || !w.Border {
		t.Errorf("visible/border should default to true, got %v/%v", w.Visible, w.Border)
	}
	if d.Settings() != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", d.Settings())
	}
	if d.Keymap().Len() != keys.Defaults().Len() {
		t.Errorf("keymap len = %d", d.Keymap().Len())
	}
}

func TestParseSizeShapes(t *testing.T) {
	tests := []struct {
		size string
		want Size
	}{
		{`"fill"`, Fill()},
		{`"Fill"`, Fill()},
		{`{ percentage = 40 }`, Percentage(40)},
		{`{ percentage = 0 }`, Percentage(0)},
		{`{ percentage = 100 }`, Percentage(100)},
		{`{ length = 3 }`, Length(3)},
		{`{ length = 0 }`, Length(0)},
	}
	for _, tt := range tests {
		src := strings.Replace(minimalTOML, `size = "fill"`, "size = "+tt.size, 1)
		d := mustParse(t, src)
		if w, _ := d.Widget("playlist"); w.Size != tt.want {
			t.Errorf("size %s = %v, want %v", tt.size, w.Size, tt.want)
		}
	}
}

func TestParseSizeRejects(t *testing.T) {
	tests := []struct {
		size  string
		field string
		code  ValidationErrorCode
	}{
		{`{ percentage = 150 }`, "size.percentage", ErrCodeOutOfRange},
		{`{ percentage = -1 }`, "size.percentage", ErrCodeOutOfRange},
		{`{ length = -2 }`, "size.length", ErrCodeOutOfRange},
		{`{ percentage = 2.5 }`, "size.percentage", ErrCodeShape},
		{`{ percentage = 20, length = 3 }`, "size", ErrCodeShape},
		{`{ ratio = 2 }`, "size", ErrCodeShape},
		{`"auto"`, "size", ErrCodeShape},
		{`7`, "size", ErrCodeShape},
	}
	for _, tt := range tests {
		src := strings.Replace(minimalTOML, `size = "fill"`, "size = "+tt.size, 1)
		_, err := Parse([]byte(src), TOML)
		errs := validationErrors(t, err)
		if len(errs) != 1 {
			t.Errorf("size %s: %d errors, want 1: %v", tt.size, len(errs), err)
			continue
		}
		if errs[0].Widget != "playlist" || errs[0].Field != tt.field || errs[0].Code != tt.code {
			t.Errorf("size %s: got %s/%s/%s, want playlist/%s/%s", tt.size, errs[0].Widget, errs[0].Field, errs[0].Code, tt.field, tt.code)
		}
	}
}

func TestParseMissingSize(t *testing.T) {
	src := strings.Replace(minimalTOML, `size = "fill"`, "", 1)
	errs := validationErrors(t, func() error { _, err := Parse([]byte(src), TOML); return err }())
	if errs[0].Field != "size" || errs[0].Code != ErrCodeRequiredMissing {
		t.Errorf("got %v", errs[0])
	}
}

func TestDuplicateWidgetName(t *testing.T) {
	src := minimalTOML + `
[[widgets]]
name = "playlist"
type = "sidebar"
position = "left"
size = { percentage = 20 }
`
	_, err := Parse([]byte(src), TOML)
	errs := validationErrors(t, err)
	if len(errs) != 1 || errs[0].Code != ErrCodeDuplicate || errs[0].Widget != "playlist" {
		t.Fatalf("errors = %v", err)
	}
	if !strings.Contains(err.Error(), `widget "playlist"`) {
		t.Errorf("message %q should name the widget", err.Error())
	}
}

func TestValidationCollectsAllErrors(t *testing.T) {
	src := `
version = ""
name = ""

[[widgets]]
type = "visualizer"
position = "middle"
size = "fill"

[settings]
debounce_ms = -5

[settings.responsive]
small_width = 120
medium_width = 100
large_width = 160

[keybindings]
x = ""
`
	_, err := Parse([]byte(src), TOML)
	errs := validationErrors(t, err)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Widget+"|"+e.Field] = true
	}
	for _, want := range []string{
		"|version",
		"|name",
		"widgets[0]|name",
		"widgets[0]|type",
		"widgets[0]|position",
		"|settings.debounce_ms",
		"|settings.responsive",
		"|keybindings.x",
	} {
		if !fields[want] {
			t.Errorf("missing error for %s; got %v", want, err)
		}
	}
}

func TestBreakpointsMustAscend(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		wantErr bool
	}{
		{"ascending", "small_width = 60\nmedium_width = 100\nlarge_width = 140", false},
		{"equal", "small_width = 100\nmedium_width = 100", true},
		{"partial override ok", "large_width = 200", false},
		{"partial override breaks", "small_width = 130", true},
		{"zero", "small_width = 0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := minimalTOML + "\n[settings.responsive]\n" + tt.block + "\n"
			_, err := Parse([]byte(src), TOML)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollapseSidesOverride(t *testing.T) {
	d := mustParse(t, minimalTOML+"\n[settings.responsive]\ncollapse_sides = false\n")
	if d.Settings().Responsive.CollapseSides {
		t.Error("collapse_sides = false not applied")
	}
	if d.Settings().Responsive.SmallWidth != 80 {
		t.Errorf("small_width = %d, want default 80", d.Settings().Responsive.SmallWidth)
	}
}

func TestParseErrorHasPosition(t *testing.T) {
	src := "version = \"1.0\"\nname = \"x\"\n[[widgets]\nname = 1\n"
	_, err := Parse([]byte(src), TOML)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T (%v) is not *ParseError", err, err)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
	if !errors.Is(err, ErrParse) || Kind(err) != "parse" {
		t.Errorf("Kind = %q", Kind(err))
	}
}

func TestUnknownKeysAreWarnings(t *testing.T) {
	d := mustParse(t, minimalTOML+"\n[extras]\nfoo = 1\n")
	if len(d.Warnings()) == 0 {
		t.Fatal("expected a warning for unknown key")
	}
	if !strings.Contains(d.Warnings()[0], "extras") {
		t.Errorf("warning = %q", d.Warnings()[0])
	}
}

func TestUnknownYAMLKeysAreWarnings(t *testing.T) {
	src := minimalYAML + "extras:\n  foo: 1\n"
	src = strings.Replace(src, "    border: false\n", "    border: false\n    colour: red\n", 1)
	d, err := Parse([]byte(src), YAML)
	if err != nil {
		t.Fatalf("Parse YAML: %v", err)
	}
	got := strings.Join(d.Warnings(), "\n")
	for _, want := range []string{`"extras"`, `"widgets.colour"`} {
		if !strings.Contains(got, want) {
			t.Errorf("warnings %q missing %s", d.Warnings(), want)
		}
	}
	if len(d.Warnings()) != 2 {
		t.Errorf("warnings = %q, want exactly 2", d.Warnings())
	}
}

func TestKnownYAMLKeysGiveNoWarnings(t *testing.T) {
	d, err := Parse([]byte(minimalYAML), YAML)
	if err != nil {
		t.Fatalf("Parse YAML: %v", err)
	}
	if len(d.Warnings()) != 0 {
		t.Errorf("warnings = %q", d.Warnings())
	}
}

func TestKeybindingErrorsAreSorted(t *testing.T) {
	src := minimalTOML + "\n[keybindings]\nz = \"\"\nm = \"\"\na = \"\"\nk = \"\"\n"
	want := []string{"keybindings.a", "keybindings.k", "keybindings.m", "keybindings.z"}
	for range 20 {
		_, err := Parse([]byte(src), TOML)
		var got []string
		for _, e := range validationErrors(t, err) {
			got = append(got, e.Field)
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("fields = %v, want %v", got, want)
		}
	}
}

func TestKeybindingOverlay(t *testing.T) {
	d := mustParse(t, minimalTOML+"\n[keybindings]\nq = \"search\"\nF6 = \"reload_layout\"\n")
	km := d.Keymap()
	if a, _ := km.Resolve("q"); a != keys.Search {
		t.Errorf("q = %q, want search", a)
	}
	if a, _ := km.Resolve("f6"); a != keys.ReloadLayout {
		t.Errorf("f6 = %q, want reload_layout", a)
	}
	if a, _ := km.Resolve("space"); a != keys.TogglePlay {
		t.Errorf("default space binding lost: %q", a)
	}
}

func TestIDIsContentDerived(t *testing.T) {
	a := mustParse(t, minimalTOML)
	b := mustParse(t, minimalTOML)
	c := mustParse(t, minimalTOML+"\n")
	if a.ID() != b.ID() {
		t.Error("identical text should give identical IDs")
	}
	if a.ID() == c.ID() {
		t.Error("different text should give different IDs")
	}
}

// --- YAML ---

const minimalYAML = `
version: "1.0"
name: test
widgets:
  - name: sidebar
    type: sidebar
    position: left
    size: {percentage: 25}
  - name: playlist
    type: playlist_view
    position: center
    size: fill
  - name: status
    type: status_bar
    position: bottom
    size: {length: 1}
    border: false
keybindings:
  x: quit
settings:
  debounce_ms: 150
`

func TestParseYAML(t *testing.T) {
	d, err := Parse([]byte(minimalYAML), YAML)
	if err != nil {
		t.Fatalf("Parse YAML: %v", err)
	}
	if w, _ := d.Widget("sidebar"); w.Size != Percentage(25) {
		t.Errorf("sidebar size = %v", w.Size)
	}
	if w, _ := d.Widget("status"); w.Size != Length(1) || w.Border {
		t.Errorf("status = %+v", w)
	}
	if d.Settings().DebounceMS != 150 {
		t.Errorf("debounce = %d", d.Settings().DebounceMS)
	}
	if a, _ := d.Keymap().Resolve("x"); a != keys.Quit {
		t.Errorf("x = %q", a)
	}
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := Parse([]byte("version: 1.0\nname: [unclosed\n"), YAML)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T (%v) is not *ParseError", err, err)
	}
	if pe.Line == 0 {
		t.Errorf("expected a line number, got %v", pe)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"layout.toml":       TOML,
		"layout.yaml":       YAML,
		"/etc/turtle/l.YML": YAML,
		"layout":            TOML,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

// --- Queries and derivations ---

func TestWidgetQueries(t *testing.T) {
	d := mustParse(t, minimalTOML+`
[[widgets]]
name = "art"
type = "album_art"
position = "right"
size = { percentage = 20 }
visible = false
`)
	if d.IsWidgetVisible("art") {
		t.Error("art should be hidden")
	}
	if d.IsWidgetVisible("nope") {
		t.Error("unknown widget reported visible")
	}
	if got := len(d.VisibleWidgets()); got != 1 {
		t.Errorf("VisibleWidgets = %d, want 1", got)
	}
	if got := d.WidgetsByPosition(Right); len(got) != 0 {
		t.Errorf("WidgetsByPosition(right) = %v, want none visible", got)
	}
	if got := d.WidgetsOfType(AlbumArt); len(got) != 1 {
		t.Errorf("WidgetsOfType(album_art) = %d", len(got))
	}
}

func TestWithWidgetVisible(t *testing.T) {
	d := Default()
	hidden, err := d.WithWidgetVisible("album_art", false)
	if err != nil {
		t.Fatal(err)
	}
	if hidden.IsWidgetVisible("album_art") {
		t.Error("album_art still visible")
	}
	if !d.IsWidgetVisible("album_art") {
		t.Error("original descriptor was mutated")
	}
	if hidden.ID() == d.ID() {
		t.Error("derived descriptor must have a new ID")
	}
	again, _ := d.WithWidgetVisible("album_art", false)
	if again.ID() != hidden.ID() {
		t.Error("same derivation should give the same ID")
	}
	if _, err := d.WithWidgetVisible("missing", true); err == nil {
		t.Error("expected error for unknown widget")
	}
}

func TestWidgetsReturnsCopy(t *testing.T) {
	d := Default()
	ws := d.Widgets()
	ws[0].Name = "mutated"
	if w := d.Widgets()[0]; w.Name == "mutated" {
		t.Error("Widgets() exposed internal slice")
	}
	th := d.Theme()
	th.Colors["primary"] = "red"
	if d.Theme().Colors["primary"] == "red" {
		t.Error("Theme() exposed internal map")
	}
}

func TestWithTheme(t *testing.T) {
	d := Default().WithTheme("gruvbox")
	if d.Theme().Name != "gruvbox" || len(d.Theme().Colors) != 0 {
		t.Errorf("Theme = %+v", d.Theme())
	}
	if Default().Theme().Name != "lofi_night" {
		t.Error("original mutated")
	}
}

func TestResponsiveClassify(t *testing.T) {
	r := DefaultSettings().Responsive
	tests := []struct {
		width int
		want  Class
	}{
		{0, Compact},
		{60, Compact},
		{79, Compact},
		{80, Narrow},
		{119, Narrow},
		{120, Normal},
		{159, Normal},
		{160, Wide},
		{400, Wide},
	}
	for _, tt := range tests {
		if got := r.Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ParseError{Message: "x"}, "parse"},
		{&ValidationErrors{Errors: []*ValidationError{{Field: "name"}}}, "validation"},
		{&IOError{Path: "p", Err: errors.New("denied")}, "io"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
