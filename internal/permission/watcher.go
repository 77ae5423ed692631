package permission

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/telnet2/cmdtree/internal/event"
	"github.com/telnet2/cmdtree/internal/logging"
)

// Watcher reloads a Store when its file changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	store   *Store
	bus     *event.Bus
	path    string
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	mu      sync.Mutex
}

// NewWatcher watches the directory holding the store's file. The store
// must be backed by the OS filesystem for events to arrive.
func NewWatcher(store *Store, bus *event.Bus) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path, err := filepath.Abs(store.Path())
	if err != nil {
		w.Close()
		return nil, err
	}

	// Watch the directory; editors replace files rather than writing them.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	logging.Debug().Str("path", path).Msg("permission watcher initialized")

	return &Watcher{
		watcher: w,
		store:   store,
		bus:     bus,
		path:    path,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()
	go w.run()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(ev.Name) == w.path {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error().Err(err).Msg("permission watcher error")
		}
	}
}

func (w *Watcher) reload() {
	data := event.PermissionReloadedData{Path: w.path}
	if err := w.store.Load(); err != nil {
		logging.Warn().Err(err).Str("path", w.path).Msg("permission reload failed, keeping previous rules")
		data.Error = err.Error()
	} else {
		logging.Info().Str("path", w.path).Msg("permissions reloaded")
	}

	if w.bus != nil {
		w.bus.PublishSync(event.Event{Type: event.PermissionReloaded, Data: data})
	}
}

// Stop stops the watcher and waits for it to finish.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()

	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}

	if started {
		<-w.doneCh
	}

	return w.watcher.Close()
}
