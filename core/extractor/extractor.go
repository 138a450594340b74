// Package extractor produces the markdown for a single source file by
// running an external documentation tool.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/tristendillon/docsbuilder/core/cache"
	"github.com/tristendillon/docsbuilder/core/logger"
	"mvdan.cc/sh/v3/shell"
)

var (
	ErrNoExtractor = errors.New("no extractor for file extension")
	ErrEmptyOutput = errors.New("extractor produced no output")
)

type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

type ExtractorFunc func(ctx context.Context, path string) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// CommandExtractor runs Command with $FILE bound to the source path and
// returns its stdout. When Command never mentions $FILE the path is appended
// as the last argument.
type CommandExtractor struct {
	Command string
	Dir     string
}

func NewCommandExtractor(command, dir string) *CommandExtractor {
	return &CommandExtractor{Command: command, Dir: dir}
}

func (c *CommandExtractor) Args(file string) ([]string, error) {
	usesFile := false
	args, err := shell.Fields(c.Command, func(name string) string {
		if name == "FILE" {
			usesFile = true
			return file
		}
		return os.Getenv(name)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid extractor command %q: %w", c.Command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("invalid extractor command %q: empty", c.Command)
	}
	if !usesFile {
		args = append(args, file)
	}
	return args, nil
}

func (c *CommandExtractor) Extract(ctx context.Context, file string) (string, error) {
	args, err := c.Args(file)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", args[0], err)
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%s %s: %w", args[0], file, ErrEmptyOutput)
	}
	return out, nil
}

// Registry picks an extractor by lowercase file extension.
type Registry struct {
	byExt map[string]Extractor
}

func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Extractor)}
}

// NewCommandRegistry builds a registry from an extension to command line map.
// Empty command lines are skipped.
func NewCommandRegistry(commands map[string]string, dir string) *Registry {
	r := NewRegistry()
	for ext, command := range commands {
		if strings.TrimSpace(command) == "" {
			continue
		}
		r.Register(ext, NewCommandExtractor(command, dir))
	}
	return r
}

func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	return out
}

func (r *Registry) Extract(ctx context.Context, file string) (string, error) {
	ext := strings.ToLower(path.Ext(file))
	e, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrNoExtractor, ext)
	}
	return e.Extract(ctx, file)
}

// Cached serves unchanged files from fc and stores fresh results.
type Cached struct {
	next Extractor
	fc   *cache.FileCache
	dir  string
	log  logger.Logger
}

func NewCached(log logger.Logger, next Extractor, fc *cache.FileCache, dir string) *Cached {
	return &Cached{next: next, fc: fc, dir: dir, log: log}
}

func (c *Cached) Extract(ctx context.Context, file string) (string, error) {
	key := c.resolve(file)
	if md, ok := c.fc.ValidateAndGet(key); ok {
		return md, nil
	}
	md, err := c.next.Extract(ctx, file)
	if err != nil {
		return "", err
	}
	if err := c.fc.Set(key, md); err != nil {
		c.log.Debug("Not caching %s: %v", file, err)
	}
	return md, nil
}

func (c *Cached) resolve(file string) string {
	p := filepath.FromSlash(file)
	if filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}
