package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFunc receives the outcome of each run triggered by Watch.
type WatchFunc func(*Result, error)

// Watch runs an initial synchronization, then reruns it whenever media files
// under the roots change. Bursts of events are coalesced: a run starts once
// no event has arrived for debounce. Runs never overlap. Watch blocks until
// ctx is canceled.
func (s *Scanner) Watch(ctx context.Context, refresh bool, debounce time.Duration, fn WatchFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	for _, r := range s.roots {
		s.addWatchRecursive(w, r.Path)
	}

	// A pending trigger is enough; extra ones are dropped.
	trigger := make(chan struct{}, 1)
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	schedule := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	fn(s.Run(ctx, refresh))
	s.logger.Info("watching for changes", "roots", len(s.roots), "debounce", debounce)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if s.relevant(w, event) {
				schedule()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		case <-trigger:
			// Only the first run honors refresh; later passes are incremental.
			fn(s.Run(ctx, false))
		}
	}
}

// relevant reports whether event can change the catalog. New directories are
// added to the watch list as a side effect.
func (s *Scanner) relevant(w *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			s.addWatchRecursive(w, event.Name)
			return true
		}
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		return true
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		name := filepath.Base(event.Name)
		return !strings.HasPrefix(name, ".") && s.exts[strings.ToLower(filepath.Ext(name))]
	}
	return false
}

func (s *Scanner) addWatchRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("walk error", "path", p, "error", err)
			return nil
		}
		if d.IsDir() {
			if err := w.Add(p); err != nil {
				s.logger.Warn("watch failed", "path", p, "error", err)
			}
		}
		return nil
	})
}
