// Package watcher reloads a layout file when it changes on disk. Bursts of
// file events are debounced into one reparse; results are delivered on a
// channel so the consumer stays the only writer of its active layout.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/config"
)

// DefaultDebounce is used when no debounce is configured.
const DefaultDebounce = 300 * time.Millisecond

// eventBuffer is the capacity of the Events channel.
const eventBuffer = 8

// ErrStopped is returned by Start on a watcher that was already stopped.
var ErrStopped = errors.New("watcher: stopped")

// LoadFunc reads and parses the layout at path.
type LoadFunc func(path string) (*config.Descriptor, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last file event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce.Store(int64(d)) }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// WithInitialID seeds PreviousID for the first event.
func WithInitialID(id uuid.UUID) Option {
	return func(w *Watcher) { w.lastID = id }
}

// Watcher watches one layout file.
type Watcher struct {
	path     string
	load     LoadFunc
	log      *slog.Logger
	debounce atomic.Int64

	events chan ReloadEvent
	reload chan struct{}
	poke   chan string

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	fsw     *fsnotify.Watcher
	wg      sync.WaitGroup

	// owned by the loop goroutine
	lastID uuid.UUID
}

// New creates a watcher for path. A nil load uses config.LoadFromFile.
func New(path string, load LoadFunc, opts ...Option) *Watcher {
	if load == nil {
		load = config.LoadFromFile
	}
	w := &Watcher{
		path:   path,
		load:   load,
		log:    slog.Default(),
		events: make(chan ReloadEvent, eventBuffer),
		reload: make(chan struct{}, 1),
		poke:   make(chan string),
	}
	w.debounce.Store(int64(DefaultDebounce))
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Events delivers reload outcomes. It is closed by Stop.
func (w *Watcher) Events() <-chan ReloadEvent { return w.events }

// Debounce returns the current debounce window.
func (w *Watcher) Debounce() time.Duration { return time.Duration(w.debounce.Load()) }

// SetDebounce changes the debounce window. It applies from the next file
// event; a pending timer keeps its original deadline.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d < 0 {
		d = 0
	}
	w.debounce.Store(int64(d))
}

// Start launches the watch loop. If the file cannot be subscribed to, Start
// returns a *WatchError but the loop still runs so Reload keeps working.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrStopped
	}
	if w.started {
		return errors.New("watcher: already started")
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)

	var watchErr error
	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		// Watch the directory so editors that save by rename are seen.
		if err = fsw.Add(filepath.Dir(w.path)); err != nil {
			fsw.Close()
			fsw = nil
		}
	}
	if err != nil {
		watchErr = &WatchError{Path: w.path, Err: err}
		w.log.Warn("layout watch unavailable", "path", w.path, "error", err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop(ctx, fsw)
	return watchErr
}

// Reload requests an immediate reparse, skipping any pending debounce.
func (w *Watcher) Reload() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

// Stop ends the loop and releases the subscription. No event is sent after
// Stop returns. Calling Stop more than once is safe.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started, cancel, fsw := w.started, w.cancel, w.fsw
	w.mu.Unlock()

	if started {
		cancel()
		w.wg.Wait()
		if fsw != nil {
			fsw.Close()
		}
	}
	close(w.events)
}

// notify feeds a file event into the loop as if fsnotify had reported it.
func (w *Watcher) notify(name string) {
	w.poke <- name
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	if fsw != nil {
		fsEvents, fsErrors = fsw.Events, fsw.Errors
	}

	var timer *time.Timer
	var fire <-chan time.Time
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		fire = nil
	}
	defer stopTimer()

	arm := func() {
		d := w.Debounce()
		if timer == nil {
			timer = time.NewTimer(d)
		} else {
			timer.Reset(d)
		}
		fire = timer.C
	}

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			if filepath.Base(ev.Name) != base || !relevant(ev.Op) {
				continue
			}
			w.log.Debug("layout file event", "path", ev.Name, "op", ev.Op.String())
			arm()

		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			w.log.Warn("layout watch error", "path", w.path, "error", err)

		case name := <-w.poke:
			if filepath.Base(name) == base {
				arm()
			}

		case <-fire:
			fire = nil
			w.reparse(ctx, TriggerFile)

		case <-w.reload:
			stopTimer()
			w.reparse(ctx, TriggerManual)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}

func (w *Watcher) reparse(ctx context.Context, trigger Trigger) {
	d, err := w.load(w.path)
	ev := ReloadEvent{
		PreviousID: w.lastID,
		Time:       time.Now(),
		Trigger:    trigger,
	}
	if err != nil {
		ev.Err = err
		w.log.Warn("layout reload failed",
			"path", w.path, "trigger", trigger.String(), "kind", config.Kind(err), "error", err)
	} else {
		ev.NewID = d.ID()
		ev.Descriptor = d
		w.lastID = d.ID()
		w.log.Info("layout reloaded",
			"path", w.path, "trigger", trigger.String(), "id", d.ID().String(), "previous", ev.PreviousID.String())
	}

	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}
