package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

// Watch calls fn with the reloaded config after every write to path.
// Files that fail to load are logged and skipped. fn runs on the
// watcher's goroutine.
func Watch(path string, fn func(Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{w: fw, done: make(chan struct{})}
	target := filepath.Clean(path)
	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Printf("[CONFIG] Ignoring change to %s: %v", path, err)
					continue
				}
				log.Printf("[CONFIG] Reloaded %s", path)
				fn(cfg)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Printf("[CONFIG] Watch error: %v", err)
			}
		}
	}()
	return w, nil
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}
