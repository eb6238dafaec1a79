// Package watch monitors the dataset file for changes so the dashboard can
// reload without restarting. Events are debounced because editors and the
// generator's rename-into-place both produce bursts of filesystem events.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"searchpulse/internal/logging"
)

// DatasetWatcher watches the directory holding the dataset file and invokes
// a callback once writes to the file have settled.
type DatasetWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string // absolute path of the dataset file
	dir         string // directory being watched
	onChange    func()
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	EventsSeen    int
	ReloadsFired  int
	Errors        int
	LastEventTime time.Time
	LastEventOp   string
}

// New creates a DatasetWatcher for the given file. onChange runs on the
// watcher goroutine; keep it cheap and hand real work to the UI loop.
func New(path string, onChange func()) (*DatasetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &DatasetWatcher{
		watcher:     watcher,
		path:        abs,
		dir:         filepath.Dir(abs),
		onChange:    onChange,
		debounceMap: make(map[string]time.Time),
		debounceDur: 300 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watcher runs in a goroutine.
// The directory is watched rather than the file itself so rename-into-place
// writes are not lost.
func (dw *DatasetWatcher) Start(ctx context.Context) error {
	dw.mu.Lock()
	if dw.running {
		dw.mu.Unlock()
		return nil
	}
	dw.running = true
	dw.mu.Unlock()

	if err := dw.watcher.Add(dw.dir); err != nil {
		dw.mu.Lock()
		dw.running = false
		dw.mu.Unlock()
		return err
	}
	logging.Watcher("watching %s for changes to %s", dw.dir, filepath.Base(dw.path))

	go dw.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the goroutine to exit.
func (dw *DatasetWatcher) Stop() {
	dw.mu.Lock()
	if !dw.running {
		dw.mu.Unlock()
		return
	}
	dw.running = false
	dw.mu.Unlock()

	close(dw.stopCh)
	<-dw.doneCh

	if err := dw.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatcher).Error("error closing watcher: %v", err)
	}
	logging.Watcher("stopped")
}

// GetStats returns a snapshot of watcher activity.
func (dw *DatasetWatcher) GetStats() Stats {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.stats
}

func (dw *DatasetWatcher) run(ctx context.Context) {
	defer close(dw.doneCh)

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-dw.stopCh:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handleEvent(event)

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatcher).Error("watch error: %v", err)
			dw.mu.Lock()
			dw.stats.Errors++
			dw.mu.Unlock()

		case <-debounceTicker.C:
			dw.processDebounced()
		}
	}
}

func (dw *DatasetWatcher) handleEvent(event fsnotify.Event) {
	// Only the dataset file itself matters; the generator's temp files and
	// neighbors in the directory do not.
	if filepath.Clean(event.Name) != dw.path {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	logging.Get(logging.CategoryWatcher).Debug("%s event for %s", event.Op, event.Name)

	dw.mu.Lock()
	dw.stats.EventsSeen++
	dw.stats.LastEventTime = time.Now()
	dw.stats.LastEventOp = event.Op.String()
	dw.debounceMap[dw.path] = time.Now()
	dw.mu.Unlock()
}

func (dw *DatasetWatcher) processDebounced() {
	dw.mu.Lock()
	now := time.Now()
	fire := false
	if t, ok := dw.debounceMap[dw.path]; ok && now.Sub(t) >= dw.debounceDur {
		delete(dw.debounceMap, dw.path)
		fire = true
		dw.stats.ReloadsFired++
	}
	dw.mu.Unlock()

	if fire && dw.onChange != nil {
		logging.Watcher("dataset settled, firing reload")
		dw.onChange()
	}
}
