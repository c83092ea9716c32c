package utils

import (
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"path/filepath"
	"time"
)

// FileWatcher calls a function once a watched file has been quiet for the
// debounce period after a write, create or rename.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	debounce time.Duration
	f        func()
	done     chan struct{}
}

func (fw *FileWatcher) loop() {
	var timer *time.Timer
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return
			}
			if filepath.Clean(event.Name) != fw.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.WithFields(log.Fields{
				"name": event.Name,
				"op":   event.Op,
			}).Debug("File watcher")
			if timer == nil {
				timer = time.AfterFunc(fw.debounce, fw.f)
			} else {
				timer.Reset(fw.debounce)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Error("File watcher")
		}
	}
}

func NewFileWatcher(filePath string, debounce time.Duration, f func()) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{
		watcher:  watcher,
		filePath: filepath.Clean(filePath),
		debounce: debounce,
		f:        f,
		done:     make(chan struct{}),
	}
	if err = watcher.Add(filepath.Dir(fw.filePath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	go fw.loop()
	return fw, nil
}

func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
