package watcher

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
)

// Trigger says what caused a reparse.
type Trigger int

const (
	// TriggerFile is a debounced file-system change.
	TriggerFile Trigger = iota
	// TriggerManual is an explicit Reload call.
	TriggerManual
)

func (t Trigger) String() string {
	if t == TriggerManual {
		return "manual"
	}
	return "file"
}

// ReloadEvent is the outcome of one reparse. Exactly one of Descriptor and
// Err is set.
type ReloadEvent struct {
	// PreviousID is the ID of the last descriptor this watcher produced
	// successfully, or the initial ID.
	PreviousID uuid.UUID
	// NewID is the new descriptor's ID, uuid.Nil on failure.
	NewID      uuid.UUID
	Time       time.Time
	Trigger    Trigger
	Err        error
	Descriptor *config.Descriptor
}

// OK reports whether the reparse succeeded.
func (e ReloadEvent) OK() bool { return e.Err == nil }

func (e ReloadEvent) String() string {
	if e.Err != nil {
		return fmt.Sprintf("reload (%s) failed: %v", e.Trigger, e.Err)
	}
	return fmt.Sprintf("reload (%s) %s -> %s", e.Trigger, e.PreviousID, e.NewID)
}

// WatchError reports that the layout file could not be subscribed to.
// Manual reloads keep working.
type WatchError struct {
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("watch %s: %v (hot-reload disabled)", e.Path, e.Err)
}

func (e *WatchError) Unwrap() error { return e.Err }

// Is matches config.ErrWatch.
func (e *WatchError) Is(target error) bool { return target == config.ErrWatch }
