package renderer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tristendillon/docsbuilder/core/assembler"
	"github.com/tristendillon/docsbuilder/core/config"
	"github.com/tristendillon/docsbuilder/core/extractor"
	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/markdown"
	"github.com/tristendillon/docsbuilder/core/models"
	"github.com/tristendillon/docsbuilder/core/tree"
)

var ErrUnknownRenderer = errors.New("unknown render method")

const (
	Tree = "tree"
	Flat = "flat"
	None = ""
)

// Job is what a render method receives for one build.
type Job struct {
	Config    config.BuildConfig
	Files     []models.FileMetadata
	Extractor extractor.Extractor
	Log       logger.Logger
}

func (j Job) assembler() *assembler.Assembler {
	return assembler.New(j.Log, j.Extractor, assembler.Options{
		HeadingOffset:  j.Config.HeadingOffset,
		Concurrency:    j.Config.Concurrency,
		IncludeUntyped: j.Config.IncludeUntyped,
	})
}

type RenderFunc func(ctx context.Context, job Job) (string, error)

type Registry struct {
	mu      sync.RWMutex
	methods map[string]RenderFunc
}

// NewRegistry comes with tree, flat and the empty no-op method.
func NewRegistry() *Registry {
	r := &Registry{methods: make(map[string]RenderFunc)}
	r.Register(Tree, renderTree)
	r.Register(Flat, renderFlat)
	r.Register(None, func(context.Context, Job) (string, error) { return "", nil })
	return r
}

// Register adds or replaces a named method.
func (r *Registry) Register(name string, fn RenderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[name] = fn
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		if name != None {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// MethodName is tree when the tree flag is set, otherwise renderMethod.
func MethodName(cfg config.BuildConfig) string {
	if cfg.Tree {
		return Tree
	}
	return string(cfg.RenderMethod)
}

// Render runs the selected method and prefixes the title when the body is
// not empty.
func (r *Registry) Render(ctx context.Context, job Job) (string, error) {
	name := MethodName(job.Config)

	r.mu.RLock()
	fn, ok := r.methods[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w %q (known: %v)", ErrUnknownRenderer, name, r.Names())
	}

	body, err := fn(ctx, job)
	if err != nil {
		return "", err
	}
	if body == "" || job.Config.Title == "" {
		return body, nil
	}
	return markdown.Title(job.Config.Title) + body, nil
}

func renderTree(ctx context.Context, job Job) (string, error) {
	mt := tree.Build(job.Files)
	job.Log.Debug("Rendering %d modules (%d files)", len(mt), mt.FileCount())
	return job.assembler().Assemble(ctx, mt)
}

func renderFlat(ctx context.Context, job Job) (string, error) {
	return job.assembler().Flat(ctx, job.Files)
}
