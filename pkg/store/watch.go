package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// FileEvent is emitted by WatchFile after a burst of writes to the file settles.
type FileEvent struct {
	Path    string
	Removed bool
}

// WatchDelay is how long WatchFile waits for writes to settle.
var WatchDelay = 100 * time.Millisecond

// WatchFile streams change events for a single file until ctx is cancelled.
// The parent directory is watched so editors that replace the file on save are
// still observed. The channel is closed once ctx is done or the watcher fails.
// Watcher errors are logged to log; nil uses the standard logger.
func WatchFile(ctx context.Context, path string, log logrus.FieldLogger) (<-chan FileEvent, error) {
	if path == "" {
		return nil, errors.New("store: watch path unknown")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("store: watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	log = log.WithField("path", abs)
	events := make(chan FileEvent, 8)
	go func() {
		defer func() {
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("close watcher")
			}
		}()
		watchLoop(ctx, abs, watcher.Events, watcher.Errors, events, log)
	}()
	return events, nil
}

// watchLoop turns raw notifications for abs into throttled FileEvents on out
// and closes out when ctx is done or either source closes.
func watchLoop(ctx context.Context, abs string, raw <-chan fsnotify.Event, errs <-chan error, out chan<- FileEvent, log logrus.FieldLogger) {
	defer close(out)

	var sendMu sync.Mutex
	done := false
	send := func(ev FileEvent) {
		sendMu.Lock()
		defer sendMu.Unlock()
		if done {
			return
		}
		select {
		case out <- ev:
		default:
			// Consumer is behind; the next event carries the latest contents.
		}
	}

	throttle := newEventThrottle(WatchDelay)
	defer func() {
		throttle.Stop()
		sendMu.Lock()
		done = true
		sendMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			log.WithError(err).Warn("watch failed")
		case evt, ok := <-raw:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != abs {
				continue
			}
			removed := evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0
			if removed {
				// Replace-on-save shows up as a remove followed by a create.
				if _, err := os.Stat(abs); err == nil {
					removed = false
				}
			}
			throttle.Enqueue(FileEvent{Path: abs, Removed: removed}, send)
		}
	}
}

// eventThrottle coalesces rapid change notifications so a burst of writes is
// reported once, carrying the most recent state.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]FileEvent
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]FileEvent),
	}
}

func (t *eventThrottle) Enqueue(ev FileEvent, send func(FileEvent)) {
	t.mu.Lock()
	t.pending[ev.Path] = ev

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(FileEvent)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]FileEvent)
	t.timer = nil
	t.mu.Unlock()

	for _, ev := range pending {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
