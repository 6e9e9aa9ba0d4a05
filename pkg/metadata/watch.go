package metadata

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// ReloadEvent reports a reload triggered by a change to a declaration file.
type ReloadEvent struct {
	File    string
	Classes int
	Err     error
}

// String implements lifecycle.Event.
func (e ReloadEvent) String() string {
	if e.Err != nil {
		return fmt.Sprintf("reload failed (%s): %v", e.File, e.Err)
	}
	return fmt.Sprintf("reloaded %d classes (%s)", e.Classes, e.File)
}

// Watch reloads the declarations whenever a file matching the patterns changes.
// It returns once the watcher is set up; watching stops when ctx is cancelled.
//
// Reloading only affects classes a Registry has not resolved yet.
func (s *FileSource) Watch(ctx context.Context) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return fmt.Errorf("resource declarations already watched")
	}
	s.watching = true
	s.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.setWatching(false)
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, pattern := range s.config.Patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if err := addTree(watcher, filepath.FromSlash(base)); err != nil {
			_ = watcher.Close()
			s.setWatching(false)
			return err
		}
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatching(false)
		defer s.closeEvents()
		defer watcher.Close()
		return s.watchLoop(ctx, watcher)
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.config.Logger != nil {
			s.config.Logger.Error("resource watcher stopped", "error", err)
		}
	}))
	return nil
}

func (s *FileSource) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) {
				// New subdirectories may hold declarations matched by "**".
				_ = addTree(watcher, event.Name)
			}
			if !s.matches(event.Name) {
				continue
			}
			err := s.Load()
			if err != nil && s.config.Logger != nil {
				s.config.Logger.Error("reload of resource declarations failed", "file", event.Name, "error", err)
			}
			if !s.emit(ctx, ReloadEvent{File: event.Name, Classes: len(s.Classes()), Err: err}) {
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if s.config.Logger != nil {
				s.config.Logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}

// Events returns the reload events of the running or next watcher. The channel is closed
// when that watcher stops. Call it before Watch: once requested, events must be consumed or
// the watcher blocks after the buffer fills.
func (s *FileSource) Events() <-chan lifecycle.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events == nil {
		s.events = make(chan lifecycle.Event, 8)
	}
	return s.events
}

// Start implements lifecycle.Source by starting Watch.
func (s *FileSource) Start(ctx context.Context) error {
	return s.Watch(ctx)
}

// emit sends e to the events channel, if one was requested. It reports false when ctx
// ended first.
func (s *FileSource) emit(ctx context.Context, e ReloadEvent) bool {
	s.mu.RLock()
	ch := s.events
	s.mu.RUnlock()
	if ch == nil {
		return true
	}
	select {
	case ch <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *FileSource) closeEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events != nil {
		close(s.events)
		s.events = nil
	}
}

var _ lifecycle.Source = (*FileSource)(nil)

// Watching reports whether a watcher is running.
func (s *FileSource) Watching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watching
}

func (s *FileSource) setWatching(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watching = active
}

func (s *FileSource) matches(name string) bool {
	name = filepath.ToSlash(filepath.Clean(name))
	for _, pattern := range s.config.Patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(filepath.Clean(pattern)), name); ok {
			return true
		}
	}
	return false
}

// addTree watches root and its subdirectories. Missing paths and plain files are ignored.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
