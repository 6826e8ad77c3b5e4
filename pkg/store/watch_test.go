package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestWatchFileEmitsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := WatchFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	select {
	case evt := <-ch:
		want, _ := filepath.Abs(path)
		if evt.Path != want {
			t.Fatalf("expected path %q, got %q", want, evt.Path)
		}
		if evt.Removed {
			t.Fatal("expected file to still exist")
		}
	case <-deadline:
		t.Fatal("timed out waiting for file change event")
	}
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := WatchFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case evt := <-ch:
		t.Fatalf("unexpected event %+v", evt)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchFileMissingDirectory(t *testing.T) {
	_, err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "draft.txt"), nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWatchFileClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := WatchFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// Drain any straggler then expect close.
			if _, ok := <-ch; ok {
				t.Fatal("expected channel to close")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	var mu sync.Mutex
	var got []FileEvent
	done := make(chan struct{}, 1)
	send := func(ev FileEvent) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		done <- struct{}{}
	}

	th.Enqueue(FileEvent{Path: "a", Removed: true}, send)
	th.Enqueue(FileEvent{Path: "a"}, send)
	th.Enqueue(FileEvent{Path: "a"}, send)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("expected one coalesced event, got %d", len(got))
	}
	if got[0].Removed {
		t.Fatal("expected the latest event to win")
	}
}

func TestWatchLoopLogsErrors(t *testing.T) {
	log, hook := test.NewNullLogger()
	raw := make(chan fsnotify.Event)
	errs := make(chan error)
	out := make(chan FileEvent, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	finished := make(chan struct{})
	go func() {
		watchLoop(ctx, "/tmp/draft.txt", raw, errs, out, log)
		close(finished)
	}()

	errs <- errors.New("queue overflow")
	close(raw)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop when events closed")
	}
	if _, ok := <-out; ok {
		t.Fatal("expected output closed")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %+v", hook.AllEntries())
	}
	if err, _ := entry.Data[logrus.ErrorKey].(error); err == nil || err.Error() != "queue overflow" {
		t.Fatalf("unexpected logged error %v", entry.Data)
	}
}
