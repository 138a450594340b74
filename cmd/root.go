/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/docsbuilder/core/config"
	"github.com/tristendillon/docsbuilder/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "docsbuilder",
	Short: "Builds markdown documentation for modular frontend projects.",
	Long: `Docsbuilder collects components laid out as Modules/<Module>/<Type>/<File>,
runs a documentation extractor over each one and assembles a single markdown
document grouped by module and type.`,
	SilenceUsage: true,
}

var logfile string
var verbose bool
var configPath string

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: docsbuilder.yaml in the working directory)")
}

// session holds what every command works with.
type session struct {
	log   *logger.ColoredLogger
	wd    string
	cfg   *config.Config
	close func()
}

func newLogger(cmd *cobra.Command) (*logger.ColoredLogger, func(), error) {
	log := logger.New(cmd.OutOrStdout(), verbose)
	log.SetWriter(logger.ERROR, cmd.ErrOrStderr())

	if logfile == "" {
		return log, func() {}, nil
	}

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logfile, err)
	}
	log.AddWriterForAll(f)
	return log, func() { f.Close() }, nil
}

func loadSession(cmd *cobra.Command) (*session, error) {
	log, closeLog, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(log, wd, configPath)
	if err != nil {
		closeLog()
		return nil, err
	}
	log.Debug("Loaded %d builds", len(cfg.Builds))

	return &session{log: log, wd: wd, cfg: cfg, close: closeLog}, nil
}

// reload re-reads the config file. A config that no longer loads is logged
// and the previous one stays in use.
func (s *session) reload() {
	cfg, err := config.Load(s.log, s.wd, configPath)
	if err != nil {
		s.log.Error("Keeping previous config: %v", err)
		return
	}
	if parallel {
		cfg.Parallel = true
	}
	s.cfg = cfg
}

func (s *session) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.wd, p)
}

// pick returns the build at index n, or every build when n is negative.
func (s *session) pick(n int) ([]config.BuildConfig, error) {
	if n < 0 {
		return s.cfg.Builds, nil
	}
	if n >= len(s.cfg.Builds) {
		return nil, fmt.Errorf("build %d does not exist (%d configured)", n, len(s.cfg.Builds))
	}
	return []config.BuildConfig{s.cfg.Builds[n]}, nil
}
