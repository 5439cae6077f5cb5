package spritebatch

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// AtlasWatcher reloads an atlas JSON file whenever it changes on disk and
// delivers the new Atlas on Updates. It never touches a Batch itself: the
// game loop applies updates between frames, typically via Poll.
type AtlasWatcher struct {
	Updates chan *Atlas
	Errors  chan error

	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchAtlas starts watching the atlas file at path. The containing
// directory is watched so that editors that replace the file on save are
// picked up.
func WatchAtlas(path string) (*AtlasWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	aw := &AtlasWatcher{
		Updates: make(chan *Atlas, 1),
		Errors:  make(chan error, 1),
		path:    abs,
		watcher: w,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go aw.run()
	return aw, nil
}

// Poll applies a pending reload to b without blocking. It reports whether
// the atlas was replaced.
func (w *AtlasWatcher) Poll(b *Batch) bool {
	select {
	case a, ok := <-w.Updates:
		if !ok || a == nil {
			return false
		}
		b.SetAtlas(a)
		return true
	default:
		return false
	}
}

// Close stops the watcher and closes Updates and Errors.
func (w *AtlasWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *AtlasWatcher) run() {
	defer close(w.done)

	// Editors often emit several events per save; reload once they settle.
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *AtlasWatcher) reload() {
	a, err := LoadAtlasFile(w.path)
	if err != nil {
		Logger().Warn("spritebatch: atlas reload failed", slog.String("path", w.path), slog.Any("err", err))
		w.sendErr(err)
		return
	}
	// Keep only the newest atlas if the consumer has not caught up.
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- a:
		Logger().Info("spritebatch: atlas reloaded", slog.String("path", w.path))
	case <-w.closeCh:
	}
}

func (w *AtlasWatcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
