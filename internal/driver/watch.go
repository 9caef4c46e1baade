package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Exts limits which file changes count; nil accepts any file.
	Exts     []string
	Debounce time.Duration
	// OnError receives watcher errors; nil drops them.
	OnError func(error)
}

// Watch calls onChange after files under paths change, at most once per
// debounce window, until ctx is done. Directories are watched recursively
// except hidden ones; subdirectories created later are added on the fly.
// onChange never runs concurrently with itself.
func Watch(ctx context.Context, paths []string, opts WatchOptions, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if err := watchTree(w, p); err != nil {
			return err
		}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
		runMu sync.Mutex
	)
	fire := func() {
		runMu.Lock()
		defer runMu.Unlock()
		if ctx.Err() == nil {
			onChange()
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watchTree(w, ev.Name)
					continue
				}
			}
			if !relevant(ev, opts.Exts) {
				continue
			}
			mu.Lock()
			if timer == nil {
				timer = time.AfterFunc(opts.Debounce, fire)
			} else {
				timer.Reset(opts.Debounce)
			}
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}
		}
	}
}

func relevant(ev fsnotify.Event, exts []string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	return exts == nil || slices.Contains(exts, strings.ToLower(filepath.Ext(ev.Name)))
}

// watchTree adds root and every non-hidden directory below it. A plain file
// is watched through its parent directory.
func watchTree(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		return nil
	})
}
