package cache

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/models"
)

// FileCache remembers extracted markdown per source file. Entries are
// dropped once the file changes on disk or the TTL passes.
type FileCache struct {
	entries *lru.Cache[string, *models.CacheEntry]
	config  *CacheConfig
	log     logger.Logger
	now     func() time.Time

	mutex   sync.Mutex
	metrics CacheMetrics
}

func NewFileCache(log logger.Logger, config *CacheConfig) (*FileCache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}
	fc := &FileCache{
		config: config,
		log:    log,
		now:    time.Now,
	}

	entries, err := lru.NewWithEvict[string, *models.CacheEntry](config.MaxEntries, func(path string, _ *models.CacheEntry) {
		fc.mutex.Lock()
		fc.metrics.Invalidations++
		fc.mutex.Unlock()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	fc.entries = entries

	log.Debug("Created new file cache with config: MaxEntries=%d, TTL=%v",
		config.MaxEntries, config.DefaultTTL)

	return fc, nil
}

// ValidateAndGet returns the cached markdown while the file is unchanged.
// Entries held by the LRU are treated as immutable: a touched but identical
// file gets a fresh copy stored in its place.
func (fc *FileCache) ValidateAndGet(filePath string) (string, bool) {
	entry, exists := fc.entries.Get(filePath)
	if !exists {
		fc.incrementMisses()
		fc.log.Debug("Cache miss for %s - entry not found", filePath)
		return "", false
	}

	valid, modTime, err := entry.IsValid()
	if err != nil {
		fc.log.Debug("Cache validation error for %s: %v", filePath, err)
		fc.InvalidateFile(filePath)
		fc.incrementMisses()
		return "", false
	}

	if !valid {
		fc.log.Debug("Cache miss for %s - file modified", filePath)
		fc.InvalidateFile(filePath)
		fc.incrementMisses()
		return "", false
	}

	if fc.config.DefaultTTL > 0 && fc.now().Sub(entry.CreatedAt) > fc.config.DefaultTTL {
		fc.log.Debug("Cache miss for %s - entry expired", filePath)
		fc.InvalidateFile(filePath)
		fc.incrementMisses()
		return "", false
	}

	if !modTime.Equal(entry.ModTime) {
		fc.entries.Add(filePath, entry.WithModTime(modTime))
	}

	fc.incrementHits()
	fc.log.Debug("Cache hit for %s", filePath)
	return entry.Markdown, true
}

func (fc *FileCache) Set(filePath string, markdown string) error {
	entry, err := models.NewCacheEntry(filePath, markdown)
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	entry.CreatedAt = fc.now()

	fc.entries.Add(filePath, entry)
	fc.log.Debug("Cached markdown for %s", filePath)
	return nil
}

// InvalidateFile is called by the watcher for every changed path.
func (fc *FileCache) InvalidateFile(filePath string) {
	if fc.entries.Remove(filePath) {
		fc.log.Debug("Invalidated cache entry for %s", filePath)
	}
}

func (fc *FileCache) Clear() {
	n := fc.entries.Len()
	fc.entries.Purge()
	fc.log.Debug("Cleared entire cache, invalidated %d entries", n)
}

func (fc *FileCache) GetMetrics() *CacheMetrics {
	fc.mutex.Lock()
	metrics := fc.metrics
	fc.mutex.Unlock()

	metrics.TotalEntries = fc.entries.Len()
	metrics.CalculateHitRate()
	return &metrics
}

func (fc *FileCache) LogStats() {
	metrics := fc.GetMetrics()
	fc.log.Debug("Cache stats: Hits=%d, Misses=%d, Hit Rate=%.1f%%, Total Entries=%d, Invalidations=%d",
		metrics.Hits, metrics.Misses, metrics.HitRate, metrics.TotalEntries, metrics.Invalidations)
}

func (fc *FileCache) incrementHits() {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.metrics.Hits++
}

func (fc *FileCache) incrementMisses() {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.metrics.Misses++
}
