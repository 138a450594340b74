package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tristendillon/docsbuilder/core/cache"
	"github.com/tristendillon/docsbuilder/core/classifier"
	"github.com/tristendillon/docsbuilder/core/config"
	"github.com/tristendillon/docsbuilder/core/extractor"
	"github.com/tristendillon/docsbuilder/core/filter"
	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/markdown"
	"github.com/tristendillon/docsbuilder/core/models"
	"github.com/tristendillon/docsbuilder/core/renderer"
	"github.com/tristendillon/docsbuilder/core/walker"
	"golang.org/x/sync/errgroup"
)

var ErrNoDocument = errors.New("no document produced")

// ExtractorFactory returns the extractor used by one build.
type ExtractorFactory func(cfg config.BuildConfig) extractor.Extractor

type DocGenerator struct {
	wd        string
	Walker    walker.FileWalker
	Renderers *renderer.Registry
	Extractor ExtractorFactory
	Cache     *cache.FileCache
	log       logger.Logger

	// serializes the shared stdout banner when builds run in parallel
	bannerMu sync.Mutex
}

func NewDocGenerator(log logger.Logger, wd string) *DocGenerator {
	g := &DocGenerator{
		wd:        wd,
		Walker:    walker.NewWalker(log, wd),
		Renderers: renderer.NewRegistry(),
		log:       log,
	}
	g.Extractor = g.commandExtractors
	return g
}

// WithCache makes every default extractor consult fc first.
func (g *DocGenerator) WithCache(fc *cache.FileCache) *DocGenerator {
	g.Cache = fc
	return g
}

func (g *DocGenerator) commandExtractors(cfg config.BuildConfig) extractor.Extractor {
	var ex extractor.Extractor = extractor.NewCommandRegistry(cfg.Extractors, g.wd)
	if g.Cache != nil {
		ex = extractor.NewCached(g.log, ex, g.Cache, g.wd)
	}
	return ex
}

// Collect discovers, classifies and filters the files of one build.
func (g *DocGenerator) Collect(ctx context.Context, cfg config.BuildConfig) ([]models.FileMetadata, error) {
	paths, err := g.Walker.Discover(ctx, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files for %s: %w", cfg.Input, err)
	}

	files := classifier.ClassifyAll(paths, cfg.ModulesFolderName)
	files = filter.KeepIncludedModules(files, cfg.IncludeModules)
	files = filter.RemoveExcluded(files, cfg.ExcludeModules, cfg.ExcludeTypes, cfg.InModule)
	for _, prefix := range cfg.ExcludePrefixes {
		files = filter.ExcludeByFieldValue(g.log, files, models.FieldNamePrefixes, prefix)
	}

	for ext := range cfg.Extractors {
		if n := len(filter.KeepByFieldValue(files, models.FieldExtension, ext)); n > 0 {
			g.log.Debug("%d %s files to process", n, ext)
		}
	}
	if cfg.Verbose {
		g.log.Info("%d files has been found for %s request.", len(files), cfg.Input)
	}
	return files, nil
}

// Render returns the document body of one build, without front matter.
func (g *DocGenerator) Render(ctx context.Context, cfg config.BuildConfig) (string, error) {
	files, err := g.Collect(ctx, cfg)
	if err != nil {
		return "", err
	}
	return g.Renderers.Render(ctx, renderer.Job{
		Config:    cfg,
		Files:     files,
		Extractor: g.Extractor(cfg),
		Log:       g.log,
	})
}

// Generate renders one build and writes it to its output. An empty document
// is not written unless OverwriteEmpty is set; ErrNoDocument is returned
// either way.
func (g *DocGenerator) Generate(ctx context.Context, cfg config.BuildConfig) error {
	if cfg.Verbose {
		g.banner(cfg)
	}

	doc, err := g.Render(ctx, cfg)
	if err != nil {
		return err
	}
	if g.Cache != nil {
		g.Cache.LogStats()
	}

	if doc == "" {
		g.log.Warn("No doc has been created, for %s request", cfg.Input)
		if cfg.OverwriteEmpty {
			if err := g.write(cfg.Output, markdown.FrontMatter); err != nil {
				return err
			}
		}
		return fmt.Errorf("%s: %w", cfg.Input, ErrNoDocument)
	}

	if err := g.write(cfg.Output, markdown.FrontMatter+doc); err != nil {
		return err
	}
	g.log.Info("Generated %s from %s", cfg.Output, cfg.Input)
	return nil
}

// GenerateAll runs every build, concurrently when cfg.Parallel is set. A
// failing build does not stop the others; ErrNoDocument is only reported.
func (g *DocGenerator) GenerateAll(ctx context.Context, cfg *config.Config) error {
	errs := make([]error, len(cfg.Builds))

	run := func(i int) {
		err := g.Generate(ctx, cfg.Builds[i])
		if err == nil || errors.Is(err, ErrNoDocument) {
			return
		}
		g.log.Error("Build %d (%s) failed: %v", i, cfg.Builds[i].Input, err)
		errs[i] = fmt.Errorf("build %d: %w", i, err)
	}

	if !cfg.Parallel {
		for i := range cfg.Builds {
			if err := ctx.Err(); err != nil {
				return err
			}
			run(i)
		}
		return errors.Join(errs...)
	}

	var eg errgroup.Group
	for i := range cfg.Builds {
		eg.Go(func() error {
			run(i)
			return nil
		})
	}
	_ = eg.Wait()
	return errors.Join(errs...)
}

// OutputPaths lists every build output, absolute.
func (g *DocGenerator) OutputPaths(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.Builds))
	for _, b := range cfg.Builds {
		out = append(out, g.resolve(b.Output))
	}
	return out
}

func (g *DocGenerator) write(output, content string) error {
	path := g.resolve(output)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", output, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

func (g *DocGenerator) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.wd, p)
}

func (g *DocGenerator) banner(cfg config.BuildConfig) {
	g.bannerMu.Lock()
	defer g.bannerMu.Unlock()

	g.log.Info("-------------")
	g.log.Info("Build doc for %s request", cfg.Input)
	g.log.Info("In modules folder: %t", cfg.InModule)
	g.log.Info("Include modules: %v", cfg.IncludeModules)
	g.log.Info("Exclude modules: %v", cfg.ExcludeModules)
	g.log.Info("Exclude types: %v", cfg.ExcludeTypes)
	g.log.Info("Render method: %q", renderer.MethodName(cfg))
	g.log.Info("Output: %s", cfg.Output)
	g.log.Info("-------------")
}
