package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/models"
)

type FileWatcher interface {
	Watch(ctx context.Context) error
	Close() error
}

// Invalidator forgets whatever it remembers about a changed file.
type Invalidator interface {
	InvalidateFile(path string)
}

type FileWatcherImpl struct {
	FileWatcher *models.FileWatcher
	Invalidator Invalidator
	log         logger.Logger

	// running is held for the duration of OnChange; pending records changes
	// that arrived meanwhile.
	running sync.Mutex
	pending atomic.Bool
}

func NewFileWatcher(log logger.Logger, rootDir string, excludePaths []string, opts ...Option) (*FileWatcherImpl, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rootDir, err)
	}
	fw, err := models.NewFileWatcher(absRoot, excludePaths, o.debounce)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	log.Debug("Excluding paths: %v", fw.ExcludePaths)

	return &FileWatcherImpl{
		FileWatcher: fw,
		Invalidator: o.invalidator,
		log:         log,
	}, nil
}

// Watch blocks until ctx is done or the watcher fails. OnChange fires once
// per burst of events, after the debounce delay.
func (fw *FileWatcherImpl) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.FileWatcher.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	if err := fw.FileWatcher.OnStart(); err != nil {
		fw.log.Error("Watcher.OnStart failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.FileWatcher.Watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if fw.shouldExcludePath(event.Name) {
				continue
			}

			fw.log.Debug("File event: %s %s", event.Op, event.Name)

			if fw.Invalidator != nil && (event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				fw.Invalidator.InvalidateFile(event.Name)
			}

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					fw.log.Debug("Adding watcher for new directory: %s", event.Name)
					if err := fw.addWatchersRecursively(event.Name); err != nil {
						fw.log.Error("Failed to watch %s: %v", event.Name, err)
					}
				}
			}

			fw.debounceChange(ctx)

		case err, ok := <-fw.FileWatcher.Watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.log.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcherImpl) debounceChange(ctx context.Context) {
	fw.FileWatcher.Mutex.Lock()
	defer fw.FileWatcher.Mutex.Unlock()

	if fw.FileWatcher.DebounceTimer != nil {
		fw.FileWatcher.DebounceTimer.Stop()
	}

	fw.FileWatcher.DebounceTimer = time.AfterFunc(fw.FileWatcher.Debounce, func() {
		fw.runChange(ctx)
	})
}

// runChange never lets two OnChange calls overlap. A change that lands while
// one is running is folded into a single follow-up run.
func (fw *FileWatcherImpl) runChange(ctx context.Context) {
	for {
		if !fw.running.TryLock() {
			fw.pending.Store(true)
			fw.log.Debug("Regeneration in progress, queued another run")
			return
		}
		fw.pending.Store(false)

		if ctx.Err() == nil {
			fw.log.Info("File changes detected, regenerating...")
			if err := fw.FileWatcher.OnChange(); err != nil {
				fw.log.Error("Watcher.OnChange failed: %v", err)
			}
		}
		fw.running.Unlock()

		if ctx.Err() != nil || !fw.pending.Load() {
			return
		}
	}
}

func (fw *FileWatcherImpl) Close() error {
	fw.FileWatcher.Mutex.Lock()
	defer fw.FileWatcher.Mutex.Unlock()

	if fw.FileWatcher.DebounceTimer != nil {
		fw.FileWatcher.DebounceTimer.Stop()
	}

	if err := fw.FileWatcher.OnClose(); err != nil {
		fw.log.Error("Watcher.OnClose failed: %v", err)
	}

	return fw.FileWatcher.Watcher.Close()
}

// shouldExcludePath matches plain entries as path prefixes relative to the
// root and entries with glob metacharacters as doublestar patterns.
func (fw *FileWatcherImpl) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(fw.FileWatcher.RootDir, path)
	if err != nil {
		return false
	}

	relPath = filepath.Clean(relPath)
	slashPath := filepath.ToSlash(relPath)

	for _, excludePath := range fw.FileWatcher.ExcludePaths {
		if strings.ContainsAny(excludePath, "*?[{") {
			if matched, err := doublestar.Match(excludePath, slashPath); err == nil && matched {
				return true
			}
			continue
		}

		excludePath = filepath.Clean(excludePath)

		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (fw *FileWatcherImpl) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if fw.shouldExcludePath(path) {
			fw.log.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		fw.log.Debug("Adding watcher for: %s", path)
		if err := fw.FileWatcher.Watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
