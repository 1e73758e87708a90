// Package watcher watches the Claude projects directory for session JSONL
// changes and emits one event per write, for the watch command to fold into
// the usage store.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mizutanik/promptpulse/internal/session"
)

// Event is one session file change.
type Event struct {
	Path      string
	Project   string
	SessionID string
}

// Watcher watches for JSONL file changes in the projects directory.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	projectsDir string
	events      chan Event
	errors      chan error
	done        chan struct{}
	mu          sync.RWMutex
	watching    map[string]bool
}

// New creates a Watcher for the given projects directory.
func New(projectsDir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:   fsWatcher,
		projectsDir: projectsDir,
		events:      make(chan Event, 100),
		errors:      make(chan error, 10),
		done:        make(chan struct{}),
		watching:    make(map[string]bool),
	}, nil
}

// Start begins watching. Existing project directories are added up front;
// new ones are picked up from create events on the root.
func (w *Watcher) Start() error {
	if err := w.scanDirectories(); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(w.projectsDir); err != nil {
		return err
	}

	go w.watchLoop()
	return nil
}

// Events returns the channel of session file events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) scanDirectories() error {
	entries, err := os.ReadDir(w.projectsDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			dirPath := filepath.Join(w.projectsDir, entry.Name())
			if err := w.watchDirectory(dirPath); err != nil {
				w.errors <- err
			}
		}
	}
	return nil
}

func (w *Watcher) watchDirectory(dirPath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching[dirPath] {
		return nil
	}
	if err := w.fsWatcher.Add(dirPath); err != nil {
		return err
	}
	w.watching[dirPath] = true
	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New project directory: start watching it.
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.watchDirectory(event.Name); err != nil {
				select {
				case w.errors <- err:
				default:
				}
			}
			return
		}
	}

	if !strings.HasSuffix(event.Name, ".jsonl") {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	select {
	case w.events <- Event{
		Path:      event.Name,
		Project:   session.ProjectFromPath(event.Name),
		SessionID: session.SessionIDFromPath(event.Name),
	}:
	default:
		// Channel full, drop; the next write re-triggers.
	}
}
