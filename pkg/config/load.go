package config

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// AppName is the directory name used under the XDG config home.
const AppName = "turtle"

// DefaultFileName is the layout file looked for in the working directory.
const DefaultFileName = "layout.toml"

// EnvLayoutConfig overrides the layout file path.
const EnvLayoutConfig = "TURTLE_LAYOUT_CONFIG"

//go:embed default_layout.toml
var defaultLayout []byte

var (
	defaultOnce sync.Once
	defaultDesc *Descriptor
)

// Default returns the embedded layout. It is parsed once.
func Default() *Descriptor {
	defaultOnce.Do(func() {
		d, err := Parse(defaultLayout, TOML)
		if err != nil {
			panic("config: embedded default layout is invalid: " + err.Error())
		}
		defaultDesc = d
	})
	return defaultDesc
}

// DefaultTOML returns the embedded layout text.
func DefaultTOML() []byte {
	return bytes.Clone(defaultLayout)
}

// LoadResult is the outcome of Load. Descriptor is never nil.
type LoadResult struct {
	Descriptor *Descriptor
	// Path is the file that was tried, empty when none was found.
	Path string
	// Fallback is true when Descriptor is the embedded default.
	Fallback bool
	// Err explains why the file could not be used, nil on success or when
	// no file exists.
	Err error
}

// Load reads the layout at path. Search order when path is empty:
//  1. $TURTLE_LAYOUT_CONFIG
//  2. ./layout.toml
//  3. $XDG_CONFIG_HOME/turtle/layout.{toml,yaml,yml}
//  4. ~/.config/turtle/layout.{toml,yaml,yml}
//
// A missing file is not an error; any failure falls back to the embedded
// default so startup never fails on a bad layout.
func Load(path string) LoadResult {
	if path == "" {
		path = ResolvePath("")
	}
	if path == "" {
		return LoadResult{Descriptor: Default(), Fallback: true}
	}

	d, err := LoadFromFile(path)
	if err != nil {
		res := LoadResult{Descriptor: Default(), Path: path, Fallback: true}
		if !errors.Is(err, fs.ErrNotExist) {
			res.Err = err
		}
		return res
	}
	return LoadResult{Descriptor: d, Path: path}
}

// LoadFromFile reads and parses a specific layout file. Read failures are
// *IOError; a missing file matches fs.ErrNotExist.
func LoadFromFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()
	return LoadFromReader(f, path)
}

// LoadFromReader parses a layout from r. path selects the syntax and labels
// errors; it may be empty for TOML input.
func LoadFromReader(r io.Reader, path string) (*Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return ParseFile(data, path)
}

// ResolvePath picks the layout file to use. An explicit flag wins, then the
// environment, then the first search path that exists. The flag value is
// returned even if the file does not exist yet, so it can be watched.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(EnvLayoutConfig); v != "" {
		return v
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SearchPaths returns the ordered list of layout file paths to try.
func SearchPaths() []string {
	paths := []string{DefaultFileName}

	home, _ := os.UserHomeDir()
	xdg := xdgConfigHome(home)
	dirs := []string{filepath.Join(xdg, AppName)}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		dirs = append(dirs, filepath.Join(defaultXDG, AppName))
	}
	for _, dir := range dirs {
		for _, name := range []string{"layout.toml", "layout.yaml", "layout.yml"} {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
