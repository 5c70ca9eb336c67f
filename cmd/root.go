// Package cmd implements the turtle command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/app"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/preset"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/terminal"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/watcher"
)

var version, commit, date = "0.1.0", "dev", "unknown"

// SetVersionInfo sets version information from ldflags.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

// Viper keys.
const (
	keyLayoutConfig = "layout-config"
	keyDumpLayout   = "dump-layout"
	keyVerbose      = "verbose"
	keyLogFile      = "log-file"
)

// isInteractive reports whether the TUI can take over the terminal.
var isInteractive = func() bool { return terminal.IsTTY(os.Stdout) && terminal.IsTTY(os.Stdin) }

// options is the resolved flag and environment state for one run.
type options struct {
	LayoutConfig string
	DumpLayout   string
	Verbose      bool
	LogFile      string
}

func readOptions(v *viper.Viper) options {
	return options{
		LayoutConfig: v.GetString(keyLayoutConfig),
		DumpLayout:   v.GetString(keyDumpLayout),
		Verbose:      v.GetBool(keyVerbose),
		LogFile:      v.GetString(keyLogFile),
	}
}

// NewRootCmd builds the command tree. Each call gets its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TURTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "turtle",
		Short: "Terminal music player layout engine",
		Long: `turtle resolves a declarative layout file into screen regions and
redraws them when the file changes on disk.

Without a terminal attached it prints the resolved layout like "turtle check".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, readOptions(v))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = version
	root.SetVersionTemplate(versionTemplate())

	pf := root.PersistentFlags()
	pf.String(keyLayoutConfig, "", "Path to the layout file (TOML or YAML)")
	pf.BoolP(keyVerbose, "v", false, "Enable debug logging")
	pf.String(keyLogFile, "", "Write logs to this file")
	root.Flags().String(keyDumpLayout, "", "Write the effective layout to FILE and exit")

	for _, name := range []string{keyLayoutConfig, keyVerbose, keyLogFile} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}
	_ = v.BindPFlag(keyDumpLayout, root.Flags().Lookup(keyDumpLayout))

	root.AddCommand(newCheckCmd(v))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func versionTemplate() string {
	if commit != "dev" && commit != "" {
		return fmt.Sprintf("turtle %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("turtle %s\n", version)
}

// newLogger opens the log file. With no file the TUI discards logs and
// the other modes write to stderr.
func newLogger(opts options, fallback io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	w, closer := fallback, func() {}
	if opts.LogFile != "" {
		if dir := filepath.Dir(opts.LogFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func runRoot(cmd *cobra.Command, opts options) error {
	interactive := isInteractive() && opts.DumpLayout == ""

	fallback := cmd.ErrOrStderr()
	if interactive {
		fallback = io.Discard
	}
	logger, closeLog, err := newLogger(opts, fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	if opts.DumpLayout != "" {
		return dumpLayout(cmd.OutOrStdout(), logger, opts)
	}
	if !interactive {
		size := terminal.GetSize()
		return runCheck(cmd.OutOrStdout(), opts.LayoutConfig, size.Cols, size.Rows)
	}
	return runTUI(logger, opts)
}

// dumpLayout writes the layout that would be used, falling back to the
// embedded default like startup does.
func dumpLayout(out io.Writer, logger *slog.Logger, opts options) error {
	res := config.Load(opts.LayoutConfig)
	if res.Err != nil {
		logger.Warn("using default layout", "path", res.Path, "kind", config.Kind(res.Err), "error", res.Err)
	}
	if err := config.WriteFile(res.Descriptor, opts.DumpLayout); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%s)\n", opts.DumpLayout, res.Descriptor.Name())
	return nil
}

func runTUI(logger *slog.Logger, opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := config.Load(opts.LayoutConfig)
	switch {
	case res.Err != nil:
		logger.Warn("using default layout", "path", res.Path, "kind", config.Kind(res.Err), "error", res.Err)
	case res.Fallback:
		logger.Info("no layout file found")
	default:
		logger.Info("layout loaded", "path", res.Path, "id", res.Descriptor.ID().String())
	}

	caps := terminal.DetectCapabilities()
	logger.Debug("terminal", "cols", caps.Size.Cols, "rows", caps.Size.Rows,
		"depth", caps.ColorDepth, "emulator", caps.Emulator, "mux", caps.Mux)

	d := startupLayout(res, caps.Size.Cols)
	if res.Path == "" {
		logger.Info("using builtin preset", "preset", preset.NameOf(d), "cols", caps.Size.Cols)
	}

	path := watchPath(res)
	w := watcher.New(path, nil,
		watcher.WithLogger(logger),
		watcher.WithDebounce(d.Settings().Debounce()),
		watcher.WithInitialID(d.ID()),
	)
	if err := w.Start(ctx); err != nil {
		logger.Warn("hot-reload disabled", "path", path, "kind", config.Kind(err), "error", err)
	}
	defer w.Stop()

	m := app.New(d, app.Options{
		Watcher:    w,
		Logger:     logger,
		ColorDepth: caps.ColorDepth,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// startupLayout picks the layout to run. With no layout file at all the
// builtin preset suited to the terminal width stands in.
func startupLayout(res config.LoadResult, width int) *config.Descriptor {
	if res.Path == "" {
		return preset.Get(preset.SelectForSize(width)).Descriptor
	}
	return res.Descriptor
}

// watchPath returns the file to hot-reload. With no layout file the
// working directory's layout.toml is watched, so creating it takes effect.
func watchPath(res config.LoadResult) string {
	if res.Path != "" {
		return res.Path
	}
	if abs, err := filepath.Abs(config.DefaultFileName); err == nil {
		return abs
	}
	return config.DefaultFileName
}
