package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format is a layout file syntax.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatForPath picks the syntax from a file extension. Anything other
// than .yaml or .yml is TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return TOML
	}
}

// layoutNamespace seeds descriptor IDs.
var layoutNamespace = uuid.MustParse("6f1f3c3e-5b8a-4c8e-9d0a-2a7b4f1e9c55")

// rawLayout is the on-disk representation shared by TOML and YAML.
type rawLayout struct {
	Version     string            `toml:"version" yaml:"version"`
	Name        string            `toml:"name" yaml:"name"`
	Description string            `toml:"description,omitempty" yaml:"description,omitempty"`
	Theme       rawTheme          `toml:"theme" yaml:"theme"`
	Widgets     []rawWidget       `toml:"widgets" yaml:"widgets"`
	Keybindings map[string]string `toml:"keybindings,omitempty" yaml:"keybindings,omitempty"`
	Settings    *rawSettings      `toml:"settings,omitempty" yaml:"settings,omitempty"`
}

type rawTheme struct {
	Name   string            `toml:"name,omitempty" yaml:"name,omitempty"`
	Colors map[string]string `toml:"colors,omitempty" yaml:"colors,omitempty"`
}

type rawWidget struct {
	Name     string `toml:"name" yaml:"name"`
	Type     string `toml:"type" yaml:"type"`
	Position string `toml:"position" yaml:"position"`
	Size     any    `toml:"size" yaml:"size"`
	Visible  *bool  `toml:"visible,omitempty" yaml:"visible,omitempty"`
	Border   *bool  `toml:"border,omitempty" yaml:"border,omitempty"`
	Title    string `toml:"title,omitempty" yaml:"title,omitempty"`
}

type rawSettings struct {
	AutoSave   *bool          `toml:"auto_save,omitempty" yaml:"auto_save,omitempty"`
	DebounceMS *int64         `toml:"debounce_ms,omitempty" yaml:"debounce_ms,omitempty"`
	Responsive *rawResponsive `toml:"responsive,omitempty" yaml:"responsive,omitempty"`
}

type rawResponsive struct {
	SmallWidth    *int64 `toml:"small_width,omitempty" yaml:"small_width,omitempty"`
	MediumWidth   *int64 `toml:"medium_width,omitempty" yaml:"medium_width,omitempty"`
	LargeWidth    *int64 `toml:"large_width,omitempty" yaml:"large_width,omitempty"`
	CollapseSides *bool  `toml:"collapse_sides,omitempty" yaml:"collapse_sides,omitempty"`
}

// Parse decodes and validates layout text. The returned descriptor is
// immutable; errors are *ParseError or *ValidationErrors.
func Parse(data []byte, format Format) (*Descriptor, error) {
	return parse(data, format, "")
}

// ParseFile decodes layout text read from path, using the path for error
// messages and the extension for the syntax.
func ParseFile(data []byte, path string) (*Descriptor, error) {
	return parse(data, FormatForPath(path), path)
}

func parse(data []byte, format Format, path string) (*Descriptor, error) {
	var raw rawLayout
	var warnings []string

	switch format {
	case YAML:
		var doc yaml.Node
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			// An empty document decodes to io.EOF.
			if !errors.Is(err, io.EOF) {
				return nil, yamlParseError(path, err)
			}
		} else {
			if err := doc.Decode(&raw); err != nil {
				return nil, yamlParseError(path, err)
			}
			for _, k := range yamlUnknownKeys(&doc, reflect.TypeOf(raw), nil) {
				warnings = append(warnings, fmt.Sprintf("unknown key %q ignored", k))
			}
		}
	default:
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, tomlParseError(path, err)
		}
		for _, k := range md.Undecoded() {
			if isSizeKey(k) {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("unknown key %q ignored", k.String()))
		}
	}

	d, verrs := build(&raw)
	if verrs != nil {
		verrs.Path = path
		return nil, verrs
	}
	d.id = uuid.NewSHA1(layoutNamespace, data)
	d.path = path
	d.warnings = warnings
	return d, nil
}

// yamlUnknownKeys walks n alongside the yaml tags of t and returns the
// dotted paths of mapping keys t has no field for. Map and interface
// fields accept any key.
func yamlUnknownKeys(n *yaml.Node, t reflect.Type, prefix []string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return yamlUnknownKeys(n.Content[0], t, prefix)
	}

	var out []string
	switch t.Kind() {
	case reflect.Slice:
		if n.Kind != yaml.SequenceNode {
			return nil
		}
		for _, c := range n.Content {
			out = append(out, yamlUnknownKeys(c, t.Elem(), prefix)...)
		}
	case reflect.Struct:
		if n.Kind != yaml.MappingNode {
			return nil
		}
		fields := make(map[string]reflect.Type, t.NumField())
		for i := range t.NumField() {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			fields[name] = f.Type
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			path := append(slices.Clone(prefix), key)
			ft, ok := fields[key]
			if !ok {
				out = append(out, strings.Join(path, "."))
				continue
			}
			out = append(out, yamlUnknownKeys(n.Content[i+1], ft, path)...)
		}
	}
	return out
}

// isSizeKey reports keys inside a widget's size table. Those are decoded
// by hand from an untyped value, so the decoder never marks them.
func isSizeKey(k toml.Key) bool {
	return len(k) >= 3 && k[0] == "widgets" && k[1] == "size"
}

func tomlParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var terr toml.ParseError
	if errors.As(err, &terr) {
		pe.Line = terr.Position.Line
		pe.Column = terr.Position.Col
		pe.Message = terr.Message
		if pe.Message == "" {
			pe.Message = err.Error()
		}
	}
	return pe
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

func yamlParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: strings.TrimPrefix(err.Error(), "yaml: "), Err: err}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
