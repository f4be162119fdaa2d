package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor produces on save.
const reloadDebounce = 100 * time.Millisecond

// fileChangedMsg reports that the browsed document changed on disk.
type fileChangedMsg struct {
	path string
}

// watchErrMsg reports an error from the file watcher.
type watchErrMsg struct {
	err error
}

// newWatcher watches the directory holding path. Watching the directory
// rather than the file keeps working when an editor replaces the file.
func newWatcher(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// waitForChange blocks until path is written or recreated, then waits for
// the events to settle. It returns nil once the watcher is closed.
func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !isChange(event, path) {
					continue
				}
				if !settle(w, path) {
					return nil
				}
				return fileChangedMsg{path: path}

			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// settle drains events until path has been quiet for reloadDebounce. It
// reports false if the watcher closed meanwhile.
func settle(w *fsnotify.Watcher, path string) bool {
	timer := time.NewTimer(reloadDebounce)
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return false
			}
			if isChange(event, path) {
				timer.Reset(reloadDebounce)
			}
		case <-timer.C:
			return true
		}
	}
}

func isChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
