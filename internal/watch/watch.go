// Package watch re-runs a callback when the project file or the content tree
// changes. Bursts of file events are debounced into one call.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before the callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a project file and its content directory.
type Watcher struct {
	configPath string
	contentDir string
	debounce   time.Duration
	onChange   func(ctx context.Context) error
	watcher    *fsnotify.Watcher
}

// New creates a watcher. contentDir may be empty or missing; it is then not
// watched. onChange errors are logged and do not stop the watcher.
func New(configPath, contentDir string, debounce time.Duration, onChange func(ctx context.Context) error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Resolve absolute paths for consistent matching
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	var absContent string
	if contentDir != "" {
		if absContent, err = filepath.Abs(contentDir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to resolve content dir: %w", err)
		}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		configPath: absConfig,
		contentDir: absContent,
		debounce:   debounce,
		onChange:   onChange,
		watcher:    watcher,
	}, nil
}

// Run watches until ctx is canceled, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Watch the directory containing the config file (more reliable than watching the file directly)
	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}
	if w.contentDir != "" {
		if err := w.addTree(w.contentDir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to watch content directory: %w", err)
		}
	}
	slog.Info("Watching for changes", logfields.Path(w.configPath), slog.String("content", w.contentDir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
			if event.Has(fsnotify.Create) && w.inContent(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// addTree watches root and every non-hidden directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func (w *Watcher) inContent(name string) bool {
	if w.contentDir == "" {
		return false
	}
	rel, err := filepath.Rel(w.contentDir, name)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// relevant reports whether event should trigger the callback: any change to
// the project file, and content changes other than pure chmods that touch a
// document or could be a directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == w.configPath {
		return true
	}
	if !w.inContent(name) {
		return false
	}
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	return content.IsDocFile(name) || filepath.Ext(name) == ""
}
