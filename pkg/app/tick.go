package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/watcher"
)

// noticeCmd returns a Cmd that expires notice seq after d.
func noticeCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// WaitForReload returns a Cmd that blocks for the next watcher event and
// delivers it as a ReloadMsg. The model re-arms it after every reload; a
// closed channel ends the chain.
func WaitForReload(events <-chan watcher.ReloadEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ReloadMsg{Event: ev}
	}
}
