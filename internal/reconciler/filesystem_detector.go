package reconciler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"realmform/internal/source"
	"realmform/pkg/logging"
)

// FilesystemDetector implements ChangeDetector for realm document files.
//
// A watched directory reports changes of every realm document directly
// inside it. A watched file is observed through its parent directory, so an
// editor that replaces the file is noticed too.
type FilesystemDetector struct {
	mu sync.Mutex

	paths    []string
	interval time.Duration

	// dirs are directories whose documents are all watched
	dirs map[string]bool
	// files are individually watched documents
	files map[string]bool

	watcher  *fsnotify.Watcher
	debounce *debouncer
	stopCh   chan struct{}
	running  bool
}

// NewFilesystemDetector creates a detector for files and directories.
func NewFilesystemDetector(paths []string, debounceInterval time.Duration) *FilesystemDetector {
	return &FilesystemDetector{
		paths:    paths,
		interval: debounceInterval,
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
	}
}

// Start begins watching for filesystem changes.
func (d *FilesystemDetector) Start(ctx context.Context, changes chan<- ChangeEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	d.watcher = watcher
	d.debounce = newDebouncer("FilesystemDetector", d.interval, changes)
	d.running = true
	d.stopCh = make(chan struct{})

	for _, path := range d.paths {
		if err := d.addWatch(path); err != nil {
			logging.Warn("FilesystemDetector", "Failed to watch %s: %v", path, err)
		}
	}

	go d.processEvents(ctx, watcher, d.stopCh, d.debounce)

	logging.Info("FilesystemDetector", "Started watching %d path(s) for realm changes", len(d.paths))
	return nil
}

// addWatch registers one configured path.
func (d *FilesystemDetector) addWatch(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	dir := path
	if info.IsDir() {
		d.dirs[path] = true
	} else {
		d.files[path] = true
		dir = filepath.Dir(path)
	}
	if err := d.watcher.Add(dir); err != nil {
		return err
	}

	logging.Debug("FilesystemDetector", "Watching directory: %s", dir)
	return nil
}

// relevant reports whether a change of path concerns a watched document.
func (d *FilesystemDetector) relevant(path string) bool {
	path = filepath.Clean(path)
	if d.files[path] {
		return true
	}
	return d.dirs[filepath.Dir(path)] && source.IsDocument(path)
}

func (d *FilesystemDetector) processEvents(ctx context.Context, watcher *fsnotify.Watcher, stopCh chan struct{}, debounce *debouncer) {
	defer debounce.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if change, ok := d.translate(event); ok {
				debounce.push(change)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("FilesystemDetector", err, "Filesystem watcher error")
		}
	}
}

// translate maps an fsnotify event on a watched document to a change event.
func (d *FilesystemDetector) translate(event fsnotify.Event) (ChangeEvent, bool) {
	d.mu.Lock()
	relevant := d.relevant(event.Name)
	d.mu.Unlock()
	if !relevant {
		return ChangeEvent{}, false
	}

	var operation ChangeOperation
	switch {
	case event.Has(fsnotify.Create):
		operation = OperationCreate
	case event.Has(fsnotify.Write):
		operation = OperationUpdate
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A rename target that is watched reports its own create.
		operation = OperationDelete
	default:
		return ChangeEvent{}, false
	}
	return ChangeEvent{
		Operation: operation,
		Timestamp: time.Now(),
		Source:    SourceFilesystem,
		Name:      event.Name,
	}, true
}

// Stop closes the watcher. A pending event is dropped.
func (d *FilesystemDetector) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}

	d.running = false
	close(d.stopCh)
	d.debounce.stop()

	if d.watcher != nil {
		if err := d.watcher.Close(); err != nil {
			logging.Error("FilesystemDetector", err, "Error closing filesystem watcher")
		}
		d.watcher = nil
	}

	logging.Info("FilesystemDetector", "Stopped filesystem detector")
	return nil
}

// GetSource returns the change source type.
func (d *FilesystemDetector) GetSource() ChangeSource {
	return SourceFilesystem
}
