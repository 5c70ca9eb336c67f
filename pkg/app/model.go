package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/keys"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/layout"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/preset"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/region"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/theme"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/watcher"
)

// DefaultNoticeTimeout is how long a status notice stays up.
const DefaultNoticeTimeout = 4 * time.Second

// Options wires the model to the rest of the program. Every field is
// optional.
type Options struct {
	// Watcher supplies reloads and serves the reload_layout action.
	Watcher *watcher.Watcher
	// Actions receives actions the model does not handle itself. Sends
	// never block; a full channel drops the action.
	Actions chan<- ActionEvent
	Logger  *slog.Logger
	// ColorDepth is the terminal's bits per colour (24, 8, 4). Zero means
	// true colour.
	ColorDepth    int
	NoticeTimeout time.Duration
	// Preset names the builtin layout d came from, empty for a user file.
	Preset string
}

// Model is the root bubbletea model.
type Model struct {
	opts Options
	log  *slog.Logger

	desc    *config.Descriptor
	palette theme.Palette
	styles  theme.Styles
	keymap  keys.Keymap
	helpMap keys.HelpMap
	regions region.Set

	width, height int
	focused       string
	preset        string

	notice    string
	noticeErr bool
	noticeSeq int

	showHelp bool
	help     help.Model

	zones      *zone.Manager
	zonePrefix string
}

// New builds a model showing d.
func New(d *config.Descriptor, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ColorDepth == 0 {
		opts.ColorDepth = 24
	}
	if opts.NoticeTimeout <= 0 {
		opts.NoticeTimeout = DefaultNoticeTimeout
	}
	if opts.Preset == "" {
		opts.Preset = preset.NameOf(d)
	}
	zones := zone.New()
	m := Model{
		opts:       opts,
		log:        opts.Logger,
		preset:     opts.Preset,
		help:       help.New(),
		zones:      zones,
		zonePrefix: zones.NewPrefix(),
	}
	m.apply(d)
	return m
}

// Init starts draining the watcher.
func (m Model) Init() tea.Cmd {
	if m.opts.Watcher == nil {
		return nil
	}
	return WaitForReload(m.opts.Watcher.Events())
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case ReloadMsg:
		cmd := m.handleReload(msg.Event)
		if m.opts.Watcher != nil {
			cmd = tea.Batch(cmd, WaitForReload(m.opts.Watcher.Events()))
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.focusAt(msg)
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice, m.noticeErr = "", false
		}
		return m, nil

	case WidgetFocusEvent:
		m.FocusWidget(msg.WidgetID)
		return m, nil

	case ThemeChangeEvent:
		m.apply(m.desc.WithTheme(msg.Theme))
		return m, m.setNotice("theme: "+m.palette.Name, false)

	case LayoutPresetEvent:
		p, ok := preset.Lookup(msg.Preset)
		if !ok {
			return m, m.setNotice(fmt.Sprintf("unknown layout %q", msg.Preset), true)
		}
		m.preset = p.Name
		m.apply(p.Descriptor)
		return m, m.setNotice("layout: "+p.Descriptor.Name(), false)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if action, ok := m.keymap.ResolveKey(msg); ok {
		return m.dispatch(action)
	}
	switch msg.Type {
	case tea.KeyTab:
		m.CycleFocusForward()
	case tea.KeyShiftTab:
		m.CycleFocusBackward()
	}
	return m, nil
}

// dispatch runs action. Layout-level actions are handled here; the rest go
// to the Actions channel.
func (m Model) dispatch(action keys.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keys.Quit:
		return m, tea.Quit

	case keys.ReloadLayout:
		if m.opts.Watcher == nil {
			return m, m.setNotice("no layout file to reload", true)
		}
		m.opts.Watcher.Reload()
		return m, m.setNotice("reloading layout…", false)

	case keys.SwitchTheme:
		next := theme.Next(m.palette.Name)
		m.apply(m.desc.WithTheme(next))
		return m, m.setNotice("theme: "+next, false)

	case keys.SwitchLayout:
		m.preset = preset.Next(m.preset)
		p := preset.Get(m.preset)
		m.apply(p.Descriptor)
		return m, m.setNotice("layout: "+p.Descriptor.Name(), false)

	case keys.ToggleArt:
		arts := m.desc.WidgetsOfType(config.AlbumArt)
		if len(arts) == 0 {
			return m, nil
		}
		d := m.desc
		for _, w := range arts {
			nd, err := d.WithWidgetVisible(w.Name, !w.Visible)
			if err != nil {
				m.log.Warn("toggle album art", "widget", w.Name, "error", err)
				continue
			}
			d = nd
		}
		m.apply(d)
		state := "hidden"
		if d.IsWidgetVisible(arts[0].Name) {
			state = "shown"
		}
		return m, m.setNotice("album art "+state, false)

	case keys.Help:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	m.forward(action)
	return m, nil
}

func (m Model) forward(action keys.Action) {
	if m.opts.Actions == nil {
		return
	}
	select {
	case m.opts.Actions <- ActionEvent{Action: action, Time: time.Now()}:
	default:
		m.log.Debug("action dropped", "action", string(action))
	}
}

func (m *Model) handleReload(ev watcher.ReloadEvent) tea.Cmd {
	if !ev.OK() {
		m.log.Warn("keeping current layout", "id", m.desc.ID().String(), "error", ev.Err)
		return m.setNotice("reload failed: "+ev.Err.Error(), true)
	}
	m.preset = preset.NameOf(ev.Descriptor)
	m.apply(ev.Descriptor)
	return m.setNotice("layout reloaded: "+ev.Descriptor.Name(), false)
}

// apply makes d the active layout and rebuilds everything derived from it.
func (m *Model) apply(d *config.Descriptor) {
	m.desc = d

	palette, diags := theme.Resolve(d.Theme())
	for _, diag := range diags {
		m.log.Warn("theme", "slot", diag.Slot, "token", diag.Token, "message", diag.Message)
	}
	m.palette = theme.Adapt(palette, m.opts.ColorDepth)
	m.styles = theme.NewStyles(m.palette)

	if km := d.Keymap(); !km.Equal(m.keymap) {
		m.keymap = km
		m.helpMap = km.Bindings()
	}

	if m.opts.Watcher != nil {
		m.opts.Watcher.SetDebounce(d.Settings().Debounce())
	}
	m.relayout()
}

// relayout recomputes regions for the current size.
func (m *Model) relayout() {
	m.regions = region.Solve(m.desc, layout.Rect{Width: m.width, Height: m.height})
	m.keepFocus()
}

func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice, m.noticeErr = text, isErr
	return noticeCmd(m.opts.NoticeTimeout, m.noticeSeq)
}

func (m *Model) focusAt(msg tea.MouseMsg) {
	for _, r := range m.regions.Regions {
		if z := m.zones.Get(m.zoneID(r.Name())); z != nil && z.InBounds(msg) {
			m.focused = r.Name()
			return
		}
	}
	if r, ok := m.regions.Hit(msg.X, msg.Y); ok {
		m.focused = r.Name()
	}
}

func (m Model) zoneID(name string) string { return m.zonePrefix + name }

// Close releases the mouse zone tracker.
func (m Model) Close() { m.zones.Close() }

// Descriptor returns the active layout.
func (m Model) Descriptor() *config.Descriptor { return m.desc }

// Regions returns the current regions.
func (m Model) Regions() region.Set { return m.regions }

// Palette returns the active, depth-adapted palette.
func (m Model) Palette() theme.Palette { return m.palette }

// Keymap returns the active key bindings.
func (m Model) Keymap() keys.Keymap { return m.keymap }

// Width returns the terminal width.
func (m Model) Width() int { return m.width }

// Height returns the terminal height.
func (m Model) Height() int { return m.height }

// FocusedWidgetID returns the focused widget's name.
func (m Model) FocusedWidgetID() string { return m.focused }

// Notice returns the status notice and whether it reports an error.
func (m Model) Notice() (string, bool) { return m.notice, m.noticeErr }

// ShowingHelp reports whether the full help view is open.
func (m Model) ShowingHelp() bool { return m.showHelp }

// Preset returns the active builtin layout name, empty for a user file.
func (m Model) Preset() string { return m.preset }
