// Package watcher reports image files dropped into a directory.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultExtensions are the image types the backend accepts
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Operation is what happened to a file
type Operation int

const (
	Created Operation = iota + 1
	Modified
)

func (o Operation) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Event is a file that has stopped changing
type Event struct {
	Path      string
	Operation Operation
}

// Watcher wraps an fsnotify watcher filtered by extension. Events for a
// path are held until it has been quiet for the settle delay, so a file
// is reported once its writer is done.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	settle     time.Duration
}

// New creates a watcher. nil extensions means DefaultExtensions.
func New(extensions []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	return &Watcher{
		watcher:    w,
		extensions: extensions,
		settle:     300 * time.Millisecond,
	}, nil
}

// SetSettleDelay changes how long a path must be quiet before it is reported
func (w *Watcher) SetSettleDelay(d time.Duration) {
	w.settle = d
}

// Watch starts monitoring dir. The channel closes when ctx is done or the
// watcher is closed.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan Event, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan Event, 100)
	ready := make(chan Event)

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		first   = make(map[string]Operation)
	)

	schedule := func(path string, op Operation) {
		mu.Lock()
		defer mu.Unlock()

		if _, seen := first[path]; !seen {
			first[path] = op
		}
		if t, ok := pending[path]; ok {
			t.Reset(w.settle)
			return
		}
		pending[path] = time.AfterFunc(w.settle, func() {
			mu.Lock()
			ev := Event{Path: path, Operation: first[path]}
			delete(pending, path)
			delete(first, path)
			mu.Unlock()

			select {
			case ready <- ev:
			case <-ctx.Done():
			}
		})
	}

	go func() {
		defer close(events)
		defer func() {
			mu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ready:
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}

				switch {
				case event.Op&fsnotify.Create == fsnotify.Create:
					schedule(event.Name, Created)
				case event.Op&fsnotify.Write == fsnotify.Write:
					schedule(event.Name, Modified)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Str("dir", dir).Msg("watch error")
			}
		}
	}()

	return events, nil
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
