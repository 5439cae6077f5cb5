package spritebatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAtlasWatcher_PollAppliesUpdate(t *testing.T) {
	w := &AtlasWatcher{Updates: make(chan *Atlas, 1)}
	b := New(nil, DefaultOptions())

	if w.Poll(b) {
		t.Fatal("Poll reported an update on an empty channel")
	}
	a := newTestAtlas(t, "a")
	w.Updates <- a
	if !w.Poll(b) {
		t.Fatal("Poll missed a pending update")
	}
	if b.Atlas() != a {
		t.Error("atlas not applied")
	}
}

func TestAtlasWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprites.json")
	if err := os.WriteFile(path, testAtlasJSON("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchAtlas(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, testAtlasJSON("a", "b"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case a := <-w.Updates:
		if !a.Has("b") {
			t.Errorf("reloaded atlas names = %v, want b present", a.Names())
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestAtlasWatcher_BadJSONReportsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprites.json")
	os.WriteFile(path, testAtlasJSON("a"), 0o644)

	w, err := WatchAtlas(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	os.WriteFile(path, []byte("{not json"), 0o644)

	select {
	case err := <-w.Errors:
		var loadErr *BackingStoreLoadError
		if !errors.As(err, &loadErr) {
			t.Errorf("err = %v, want *BackingStoreLoadError", err)
		}
	case <-w.Updates:
		t.Fatal("bad JSON produced an atlas")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestAtlasWatcher_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.json")
	os.WriteFile(path, testAtlasJSON("a"), 0o644)
	w, err := WatchAtlas(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if _, ok := <-w.Updates; ok {
		t.Error("Updates not closed")
	}
}

func TestWatchAtlas_MissingDir(t *testing.T) {
	if _, err := WatchAtlas(filepath.Join(t.TempDir(), "nope", "sprites.json")); err == nil {
		t.Error("expected error for missing directory")
	}
}
