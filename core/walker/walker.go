package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tristendillon/docsbuilder/core/logger"
)

var ErrBadPattern = errors.New("bad glob pattern")

// DefaultExclude never holds documentable sources.
var DefaultExclude = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/dist/**",
}

type FileWalker interface {
	Discover(ctx context.Context, pattern string) ([]string, error)
}

type Walker struct {
	Root    string
	Exclude []string
	log     logger.Logger
}

func NewWalker(log logger.Logger, root string) *Walker {
	return &Walker{
		Root:    root,
		Exclude: DefaultExclude,
		log:     log,
	}
}

// Discover returns slash separated paths of the files matching pattern, in
// lexical walk order. Relative patterns resolve against Root and yield
// relative paths; absolute patterns yield absolute paths.
func (w *Walker) Discover(ctx context.Context, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	pattern = strings.TrimPrefix(pattern, "./")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	root := w.Root
	prefix := ""
	if path.IsAbs(pattern) || filepath.IsAbs(filepath.FromSlash(pattern)) {
		base, rest := doublestar.SplitPattern(pattern)
		root, prefix, pattern = filepath.FromSlash(base), base, rest
	}

	var matches []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.excluded(p) {
			w.log.Debug("Excluding %s", p)
			return nil
		}
		if prefix != "" {
			p = path.Join(prefix, p)
		}
		matches = append(matches, p)
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
		return nil, fmt.Errorf("failed to walk %s for %q: %w", root, pattern, err)
	}

	w.log.Debug("Discovered %d files for %q", len(matches), pattern)
	return matches, nil
}

func (w *Walker) excluded(p string) bool {
	for _, ex := range w.Exclude {
		if matched, err := doublestar.Match(ex, p); err == nil && matched {
			return true
		}
	}
	return false
}
