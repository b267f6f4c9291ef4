package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vcpick/logger"
)

// BuildFileWatcher watches every non-ignored directory under a root and
// invokes onChange when a solution or project file is created, written,
// renamed, or removed. Bursts of events are coalesced into one callback.
type BuildFileWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

func NewBuildFileWatcher(root string, onChange func()) (*BuildFileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	bw := &BuildFileWatcher{
		watcher:  watcher,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
	}
	if err := bw.addDirs(root); err != nil {
		watcher.Close()
		return nil, err
	}

	go bw.loop()
	return bw, nil
}

func (bw *BuildFileWatcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isIgnoredDir(d.Name()) {
			return filepath.SkipDir
		}
		return bw.watcher.Add(path)
	})
}

func (bw *BuildFileWatcher) loop() {
	for {
		select {
		case event, ok := <-bw.watcher.Events:
			if !ok {
				return
			}
			// new subdirectories need their own watch
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !isIgnoredDir(filepath.Base(event.Name)) {
						_ = bw.watcher.Add(event.Name)
					}
					continue
				}
			}
			if isBuildFile(event.Name) {
				logger.Debug("Build file change: %s (%s)", event.Name, event.Op)
				bw.schedule()
			}

		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)

		case <-bw.done:
			return
		}
	}
}

func isBuildFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case solutionExt, projectExt:
		return true
	}
	return false
}

// schedule arms the debounce timer, replacing any pending one so a burst of
// events produces a single callback.
func (bw *BuildFileWatcher) schedule() {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.pending != nil {
		bw.pending.Stop()
	}
	bw.pending = time.AfterFunc(bw.debounce, bw.onChange)
}

func (bw *BuildFileWatcher) Close() error {
	close(bw.done)
	bw.mu.Lock()
	if bw.pending != nil {
		bw.pending.Stop()
	}
	bw.mu.Unlock()
	return bw.watcher.Close()
}
