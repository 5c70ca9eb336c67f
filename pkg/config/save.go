package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Encode serializes d in the given syntax. The output parses back into an
// equivalent descriptor.
func Encode(d *Descriptor, format Format) ([]byte, error) {
	raw := toRaw(d)
	switch format {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("config: encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("config: encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
			return nil, fmt.Errorf("config: encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// WriteFile writes d to path, choosing the syntax from the extension.
// Missing parent directories are created.
func WriteFile(d *Descriptor, path string) error {
	data, err := Encode(d, FormatForPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func toRaw(d *Descriptor) rawLayout {
	raw := rawLayout{
		Version:     d.version,
		Name:        d.name,
		Description: d.description,
		Theme:       rawTheme{Name: d.theme.Name, Colors: d.theme.Clone().Colors},
		Keybindings: d.keymap.Map(),
	}
	for _, w := range d.widgets {
		visible, border := w.Visible, w.Border
		raw.Widgets = append(raw.Widgets, rawWidget{
			Name:     w.Name,
			Type:     string(w.Type),
			Position: string(w.Position),
			Size:     sizeToRaw(w.Size),
			Visible:  &visible,
			Border:   &border,
			Title:    w.Title,
		})
	}

	s := d.settings
	autoSave := s.AutoSave
	debounce := int64(s.DebounceMS)
	small, medium, large := int64(s.Responsive.SmallWidth), int64(s.Responsive.MediumWidth), int64(s.Responsive.LargeWidth)
	collapse := s.Responsive.CollapseSides
	raw.Settings = &rawSettings{
		AutoSave:   &autoSave,
		DebounceMS: &debounce,
		Responsive: &rawResponsive{
			SmallWidth:    &small,
			MediumWidth:   &medium,
			LargeWidth:    &large,
			CollapseSides: &collapse,
		},
	}
	return raw
}

func sizeToRaw(s Size) any {
	switch s.Kind {
	case SizePercentage:
		return map[string]int64{"percentage": int64(s.Value)}
	case SizeLength:
		return map[string]int64{"length": int64(s.Value)}
	default:
		return "fill"
	}
}
