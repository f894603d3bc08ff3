package storage

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Tiliavir/clocklog/internal/logging"
)

// Watch calls onChange whenever one of the files in paths is written,
// created or replaced, until ctx is done. The parent directories are watched
// so that files replaced by AppendLines' rename are still seen.
func Watch(ctx context.Context, paths []string, onChange func(path string), log *logging.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		log.Debug("watching", logging.F("dir", dir))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debugf("%s changed (%s)", event.Name, event.Op)
				onChange(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Log error but continue running
			log.Error("file monitoring error", logging.F("error", err))
		}
	}
}
