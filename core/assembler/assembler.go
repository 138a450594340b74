package assembler

import (
	"context"
	"strings"

	"github.com/tristendillon/docsbuilder/core/extractor"
	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/markdown"
	"github.com/tristendillon/docsbuilder/core/models"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	HeadingOffset  int
	Concurrency    int
	IncludeUntyped bool
}

func DefaultOptions() Options {
	return Options{
		HeadingOffset: markdown.DefaultHeadingOffset,
		Concurrency:   4,
	}
}

type Assembler struct {
	extractor extractor.Extractor
	opts      Options
	log       logger.Logger
}

func New(log logger.Logger, ex extractor.Extractor, opts Options) *Assembler {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Assembler{extractor: ex, opts: opts, log: log}
}

type fragment struct {
	meta models.FileMetadata
	doc  string
	ok   bool
}

// Assemble renders the tree. Extraction runs concurrently but fragments are
// concatenated in tree order. A file whose extraction fails is left out.
func (a *Assembler) Assemble(ctx context.Context, mt models.ModuleTree) (string, error) {
	return a.render(ctx, a.plan(mt))
}

// Flat renders every file in the given order without section headings.
func (a *Assembler) Flat(ctx context.Context, coll []models.FileMetadata) (string, error) {
	return a.render(ctx, []section{{files: fragments(coll)}})
}

func (a *Assembler) render(ctx context.Context, sections []section) (string, error) {
	var jobs []*fragment
	for _, s := range sections {
		jobs = append(jobs, s.files...)
	}
	if err := a.extractAll(ctx, jobs); err != nil {
		return "", err
	}

	var doc strings.Builder
	for _, s := range sections {
		doc.WriteString(s.heading)
		for _, f := range s.files {
			if !f.ok {
				continue
			}
			doc.WriteString(markdown.DemoteHeadings(f.doc, a.opts.HeadingOffset))
			doc.WriteString(markdown.SourceFooter(f.meta.Path))
		}
	}
	return doc.String(), nil
}

type section struct {
	heading string
	files   []*fragment
}

// plan lays out headings and the files under each of them. Untyped buckets
// only contribute when IncludeUntyped is set, and then sit right under the
// module heading.
func (a *Assembler) plan(mt models.ModuleTree) []section {
	var out []section
	for _, group := range mt {
		label := group.Label()
		moduleSection := section{heading: markdown.ModuleHeading(label)}
		if a.opts.IncludeUntyped {
			moduleSection.files = fragments(group.Untyped())
		}
		out = append(out, moduleSection)

		for _, typ := range group.Types {
			if typ == models.NoType {
				continue
			}
			out = append(out, section{
				heading: markdown.TypeHeading(label, typ),
				files:   fragments(group.ByType[typ]),
			})
		}
	}
	return out
}

func fragments(coll []models.FileMetadata) []*fragment {
	out := make([]*fragment, 0, len(coll))
	for _, m := range coll {
		out = append(out, &fragment{meta: m})
	}
	return out
}

func (a *Assembler) extractAll(ctx context.Context, jobs []*fragment) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := a.extractor.Extract(ctx, job.meta.Path)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				a.log.Error("Problem with %s: %v", job.meta.Path, err)
				return nil
			}
			job.doc, job.ok = doc, true
			return nil
		})
	}
	return g.Wait()
}
