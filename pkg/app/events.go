// Package app is the interactive consumer of layout descriptors. Its
// bubbletea model is the only writer of the active layout: window resizes,
// watcher reloads and key actions all arrive as messages on the update loop.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/keys"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/watcher"
)

// ReloadMsg carries one watcher outcome into the update loop.
type ReloadMsg struct {
	Event watcher.ReloadEvent
}

// ActionEvent is what the model forwards to the player for actions it does
// not handle itself (transport, volume, list movement and so on).
type ActionEvent struct {
	Action keys.Action
	Time   time.Time
}

// WidgetFocusEvent requests that focus move to a specific widget.
type WidgetFocusEvent struct {
	WidgetID string
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}

// LayoutPresetEvent switches to a named builtin layout (e.g. "minimal",
// "wide").
type LayoutPresetEvent struct {
	Preset string
}

// noticeExpiredMsg clears the status notice if it is still the one that
// scheduled it.
type noticeExpiredMsg struct {
	seq int
}
