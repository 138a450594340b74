package models

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"time"
)

// CacheEntry is the extracted markdown of one source file plus the
// file state it was produced from.
type CacheEntry struct {
	FilePath  string
	ModTime   time.Time
	Size      int64
	FileHash  string
	Markdown  string
	CreatedAt time.Time
}

func NewCacheEntry(filePath string, markdown string) (*CacheEntry, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}

	hash, err := calculateFileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate hash for file %s: %w", filePath, err)
	}

	return &CacheEntry{
		FilePath:  filePath,
		ModTime:   stat.ModTime(),
		Size:      stat.Size(),
		FileHash:  hash,
		Markdown:  markdown,
		CreatedAt: time.Now(),
	}, nil
}

// IsValid reports whether the file still matches the entry. It also returns
// the file's current mtime, which differs from ModTime when the file was
// touched without changing its content. The entry itself is never modified.
func (ce *CacheEntry) IsValid() (bool, time.Time, error) {
	stat, err := os.Stat(ce.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, time.Time{}, nil
		}
		return false, time.Time{}, fmt.Errorf("failed to stat file %s: %w", ce.FilePath, err)
	}

	modTime := stat.ModTime()
	if stat.Size() != ce.Size {
		return false, modTime, nil
	}

	if modTime.Equal(ce.ModTime) {
		return true, modTime, nil
	}

	currentHash, err := calculateFileHash(ce.FilePath)
	if err != nil {
		return false, modTime, fmt.Errorf("failed to calculate current hash for file %s: %w", ce.FilePath, err)
	}

	return currentHash == ce.FileHash, modTime, nil
}

// WithModTime returns a copy of the entry recording modTime.
func (ce *CacheEntry) WithModTime(modTime time.Time) *CacheEntry {
	updated := *ce
	updated.ModTime = modTime
	return &updated
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
