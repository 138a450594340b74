/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/docsbuilder/core/cache"
	"github.com/tristendillon/docsbuilder/core/generator"
	"github.com/tristendillon/docsbuilder/core/watcher"
)

var (
	watchMode bool
	parallel  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generates the documentation of every configured build",
	Long: `Generates the documentation of every configured build.
With --watch the builds are re-run whenever a file under watchDir changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()
		s.log.Debug("build called")

		if parallel {
			s.cfg.Parallel = true
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fc, err := cache.NewFileCache(s.log, cache.DefaultCacheConfig())
		if err != nil {
			return err
		}
		gen := generator.NewDocGenerator(s.log, s.wd).WithCache(fc)

		if !watchMode && !s.cfg.Watch {
			if err := gen.GenerateAll(ctx, s.cfg); err != nil {
				return fmt.Errorf("failed to generate docs: %w", err)
			}
			return nil
		}

		return runWatch(ctx, s, gen, fc)
	},
}

func runWatch(ctx context.Context, s *session, gen *generator.DocGenerator, fc *cache.FileCache) error {
	watchDir := s.resolve(s.cfg.WatchDir)

	excludes := append([]string(nil), s.cfg.WatchExclude...)
	for _, out := range gen.OutputPaths(s.cfg) {
		rel, err := filepath.Rel(watchDir, out)
		if err == nil && !strings.HasPrefix(rel, "..") {
			excludes = append(excludes, rel)
		}
	}

	w, err := watcher.NewFileWatcher(s.log, watchDir, excludes,
		watcher.WithDebounce(s.cfg.Debounce),
		watcher.WithInvalidator(fc),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	rebuild := func() error {
		err := gen.GenerateAll(ctx, s.cfg)
		if err == nil {
			s.log.Info("Docs are up to date, watching %s", s.cfg.WatchDir)
		}
		return err
	}
	w.FileWatcher.AddOnStartFunc(rebuild)
	// watchDir, excludes and debounce stay as they were at startup
	w.FileWatcher.AddOnChangeFunc(func() error {
		s.reload()
		return rebuild()
	})
	w.FileWatcher.AddOnCloseFunc(func() error {
		s.log.Info("Stopped watching %s", s.cfg.WatchDir)
		return nil
	})

	return w.Watch(ctx)
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Rebuild on file changes")
	buildCmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "Run builds concurrently")
}
