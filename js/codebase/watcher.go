package codebase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
)

// FileWatcher keeps a Codebase in sync with the files under its root
// directory. Directories are watched individually, including ones created
// after Start.
type FileWatcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	done     chan struct{}
	started  bool
	log      commonlog.Logger

	// OnChange is called from the watcher goroutine after path was parsed
	// again, or with a nil file after path was removed.
	OnChange func(path string, file *FileInfo)
}

func NewFileWatcher(c *Codebase) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		codebase: c,
		watcher:  watcher,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		log:      c.log,
	}, nil
}

// Start parses every file under the root directory, registers the
// directories with the watcher and starts processing events.
func (w *FileWatcher) Start() error {
	if err := w.codebase.ScanAll(); err != nil {
		return err
	}
	if err := w.watchTree(w.codebase.RootDir()); err != nil {
		return err
	}
	w.started = true
	go w.run()
	return nil
}

// Stop ends event processing and releases the watcher.
func (w *FileWatcher) Stop() {
	if w.started {
		close(w.stopCh)
		<-w.done
	}
	w.watcher.Close()
}

func (w *FileWatcher) watchTree(root string) error {
	return afero.Walk(w.codebase.Fs(), root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if path != root && skipDir(info.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.log.Debugf("watching %s", path)
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func (w *FileWatcher) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher: %v", err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	path := ev.Name
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if w.codebase.GetFile(path) == nil {
			return
		}
		w.codebase.RemoveFile(path)
		w.log.Infof("removed %s", path)
		w.notify(path, nil)

	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := w.codebase.Fs().Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			if ev.Op&fsnotify.Create != 0 && !skipDir(info.Name()) {
				if err := w.codebase.Scan(path); err != nil {
					w.log.Warningf("scan %s: %v", path, err)
				}
				if err := w.watchTree(path); err != nil {
					w.log.Warningf("watch %s: %v", path, err)
				}
			}
			return
		}
		if !w.codebase.HasExtension(path) {
			return
		}
		if err := w.codebase.ScanFile(path); err != nil {
			w.log.Warningf("scan %s: %v", path, err)
			return
		}
		w.notify(path, w.codebase.GetFile(path))
	}
}

func (w *FileWatcher) notify(path string, file *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, file)
	}
}
