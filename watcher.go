package editor

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DataWatcher reports external edits to the data directory. The editor
// works on whole files, so a change made outside it (a text editor, git
// checkout) silently invalidates anything loaded into an edit session.
type DataWatcher struct {
	watcher *fsnotify.Watcher

	onChange func(filename string)
}

func NewDataWatcher(dir string, onChange func(filename string)) (*DataWatcher, error) {
	watcher, err := fsnotify.NewWatcher()

	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()

		return nil, err
	}

	dw := &DataWatcher{
		watcher:  watcher,
		onChange: onChange,
	}

	go panicCapture(dw.loop)

	return dw, nil
}

func (dw *DataWatcher) loop() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			name := filepath.Base(event.Name)

			if filepath.Ext(name) != ".json" {
				continue
			}

			logrus.Infof("data file %s changed on disk", name)

			if dw.onChange != nil {
				dw.onChange(name)
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}

			logrus.WithError(err).Error("data watcher error")
		}
	}
}

func (dw *DataWatcher) Close() error {
	return dw.watcher.Close()
}
