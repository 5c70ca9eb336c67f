package preset

import (
	"slices"
	"testing"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/layout"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/region"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/theme"
)

// --- Get / Names tests ---

func TestGetBuiltins(t *testing.T) {
	for _, name := range []string{LofiNight, Minimal, Wide, Focus} {
		p := Get(name)
		if p.Name != name {
			t.Errorf("Get(%q).Name = %q", name, p.Name)
		}
		if p.Descriptor == nil {
			t.Fatalf("Get(%q) has no descriptor", name)
		}
		if len(p.Descriptor.Warnings()) != 0 {
			t.Errorf("%s warnings: %v", name, p.Descriptor.Warnings())
		}
	}
}

func TestGetUnknownFallsToLofiNight(t *testing.T) {
	p := Get("unknown-preset-name")
	if p.Name != LofiNight {
		t.Errorf("Get('unknown').Name = %q, want %q", p.Name, LofiNight)
	}
	if p.Descriptor != config.Default() {
		t.Error("lofi-night should be the default layout")
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	if _, ok := Lookup("WIDE"); !ok {
		t.Error("Lookup(WIDE) should find wide")
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should miss")
	}
}

func TestNamesReturnsAll(t *testing.T) {
	want := []string{"focus", "lofi-night", "minimal", "wide"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestNextCycles(t *testing.T) {
	tests := []struct{ from, want string }{
		{LofiNight, Minimal},
		{Minimal, Wide},
		{Wide, Focus},
		{Focus, LofiNight},
		{"", LofiNight},
		{"custom", LofiNight},
	}
	for _, tt := range tests {
		if got := Next(tt.from); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.from, got, tt.want)
		}
	}
}

// --- Preset content tests ---

func TestPresetThemesExist(t *testing.T) {
	for _, name := range Names() {
		src := Get(name).Descriptor.Theme()
		if _, ok := theme.Lookup(src.Name); !ok {
			t.Errorf("%s uses unknown theme %q", name, src.Name)
		}
	}
}

func TestMinimalWidgets(t *testing.T) {
	d := Get(Minimal).Descriptor
	var names []string
	for _, w := range d.VisibleWidgets() {
		names = append(names, w.Name)
	}
	if !slices.Equal(names, []string{"playlist", "progress"}) {
		t.Errorf("minimal visible widgets = %v", names)
	}
}

func TestFocusHidesPlaylist(t *testing.T) {
	d := Get(Focus).Descriptor
	if d.IsWidgetVisible("playlist") {
		t.Error("focus should hide the playlist")
	}
	if _, ok := d.Widget("playlist"); !ok {
		t.Error("focus should still declare the playlist so toggles work")
	}
}

func TestPresetIDsDiffer(t *testing.T) {
	seen := map[string]string{}
	for _, name := range Names() {
		id := Get(name).Descriptor.ID().String()
		if other, ok := seen[id]; ok {
			t.Errorf("%s and %s share ID %s", name, other, id)
		}
		seen[id] = name
	}
}

func TestNameOf(t *testing.T) {
	for _, name := range Names() {
		if got := NameOf(Get(name).Descriptor); got != name {
			t.Errorf("NameOf(%s) = %q", name, got)
		}
	}
	hidden, _ := config.Default().WithWidgetVisible("sidebar", false)
	if got := NameOf(hidden); got != "" {
		t.Errorf("derived layout should not match a preset, got %q", got)
	}
}

// --- Selection ---

func TestSelectForSize(t *testing.T) {
	tests := []struct {
		width int
		want  string
	}{
		{40, Minimal},
		{79, Minimal},
		{80, LofiNight},
		{159, LofiNight},
		{160, Wide},
		{300, Wide},
	}
	for _, tt := range tests {
		if got := SelectForSize(tt.width); got != tt.want {
			t.Errorf("SelectForSize(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

// --- Solving ---

func solve(name string, width, height int) region.Set {
	return region.Solve(Get(name).Descriptor, layout.Rect{Width: width, Height: height})
}

func TestResolveEveryPreset(t *testing.T) {
	for _, name := range Names() {
		set := solve(name, 200, 50)
		d := Get(name).Descriptor
		for _, w := range d.VisibleWidgets() {
			if _, ok := set.Get(w.Name); !ok {
				t.Errorf("%s: no region for %s", name, w.Name)
			}
		}
		for i, a := range set.Regions {
			for _, b := range set.Regions[i+1:] {
				if a.Rect.Overlaps(b.Rect) {
					t.Errorf("%s: %s overlaps %s", name, a.Name(), b.Name())
				}
			}
		}
	}
}

func TestWideAlbumArtLength(t *testing.T) {
	set := solve(Wide, 200, 50)
	art, ok := set.Get("album_art")
	if !ok || art.Rect.Width != 40 || art.Rect.Right() != 200 {
		t.Errorf("album_art = %+v, want 40 wide flush right", art.Rect)
	}
}

// --- LoadFromTOML ---

func TestLoadFromTOML(t *testing.T) {
	data := []byte(`
version = "1"
name = "mine"

[[widgets]]
name = "p"
type = "playlist_view"
position = "center"
size = "fill"
`)
	p, err := LoadFromTOML("mine", data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if p.Descriptor.Name() != "mine" {
		t.Errorf("Name = %q", p.Descriptor.Name())
	}
}

func TestLoadFromTOMLErrors(t *testing.T) {
	if _, err := LoadFromTOML("", []byte(`name = "x"`)); err == nil {
		t.Error("empty preset name should fail")
	}
	_, err := LoadFromTOML("bad", []byte(`version = "1"`))
	if config.Kind(err) != "validation" {
		t.Errorf("missing name: Kind = %q, want validation", config.Kind(err))
	}
}
