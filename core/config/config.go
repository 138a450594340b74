package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tristendillon/docsbuilder/core/logger"
	"gopkg.in/yaml.v3"
)

var ErrConfigNotFound = errors.New("config file not found")

// FileNames are tried in order inside the working directory.
var FileNames = []string{"docsbuilder.yaml", "docsbuilder.yml", "docsbuilder.json"}

type Config struct {
	Builds       []BuildConfig `yaml:"builds" validate:"min=1,dive"`
	Watch        bool          `yaml:"watch"`
	WatchDir     string        `yaml:"watchDir"`
	WatchExclude []string      `yaml:"watchExclude"`
	Debounce     time.Duration `yaml:"debounce" validate:"gte=0"`
	Parallel     bool          `yaml:"parallel"`
}

type BuildConfig struct {
	Input             string            `yaml:"input" validate:"required"`
	Output            string            `yaml:"output" validate:"required"`
	InModule          bool              `yaml:"inModule"`
	Verbose           bool              `yaml:"verbose"`
	Tree              bool              `yaml:"tree"`
	RenderMethod      RenderMethod      `yaml:"renderMethod"`
	IncludeModules    []string          `yaml:"includeModules"`
	ExcludeModules    []string          `yaml:"excludeModules"`
	ExcludeTypes      []string          `yaml:"excludeTypes"`
	ExcludePrefixes   []string          `yaml:"excludePrefixes"`
	ModulesFolderName string            `yaml:"modulesFolderName" validate:"required"`
	Title             string            `yaml:"title"`
	IncludeUntyped    bool              `yaml:"includeUntyped"`
	HeadingOffset     int               `yaml:"headingOffset" validate:"gte=0"`
	Concurrency       int               `yaml:"concurrency" validate:"gte=1"`
	OverwriteEmpty    bool              `yaml:"overwriteEmpty"`
	Extractors        map[string]string `yaml:"extractors"`
}

// RenderMethod is a renderer name. YAML false decodes to the empty name.
type RenderMethod string

func (r *RenderMethod) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("line %d: renderMethod must be a renderer name or false", value.Line)
		}
		*r = ""
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*r = RenderMethod(s)
	return nil
}

func Default() *Config {
	return &Config{
		WatchDir: "front",
		Debounce: 500 * time.Millisecond,
	}
}

func DefaultBuild() BuildConfig {
	return BuildConfig{
		Input:             "front/**/*.vue",
		Output:            "docs/README.md",
		Verbose:           true,
		IncludeModules:    []string{},
		ExcludeModules:    []string{},
		ExcludeTypes:      []string{},
		ModulesFolderName: "Modules",
		HeadingOffset:     2,
		Concurrency:       4,
		Extractors: map[string]string{
			".vue": `vuedoc.md "$FILE"`,
			".js":  `jsdoc2md "$FILE"`,
		},
	}
}

type rawConfig struct {
	Builds       []yaml.Node    `yaml:"builds"`
	Watch        *bool          `yaml:"watch"`
	WatchDir     *string        `yaml:"watchDir"`
	WatchExclude []string       `yaml:"watchExclude"`
	Debounce     *time.Duration `yaml:"debounce"`
	Parallel     *bool          `yaml:"parallel"`
}

// Find returns the first config file present in wd.
func Find(wd string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(wd, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %v)", ErrConfigNotFound, wd, FileNames)
}

// Load reads path, or the first of FileNames in wd when path is empty.
func Load(log logger.Logger, wd, path string) (*Config, error) {
	if path == "" {
		found, err := Find(wd)
		if err != nil {
			return nil, err
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	log.Debug("Config file found: %s", path)
	log.Debug("Config: %+v", *cfg)

	return cfg, nil
}

// Parse decodes YAML or JSON and merges every build over DefaultBuild.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg := Default()
	if raw.Watch != nil {
		cfg.Watch = *raw.Watch
	}
	if raw.WatchDir != nil {
		cfg.WatchDir = *raw.WatchDir
	}
	if raw.Debounce != nil {
		cfg.Debounce = *raw.Debounce
	}
	if raw.Parallel != nil {
		cfg.Parallel = *raw.Parallel
	}
	cfg.WatchExclude = raw.WatchExclude

	for i := range raw.Builds {
		build := DefaultBuild()
		if err := raw.Builds[i].Decode(&build); err != nil {
			return nil, fmt.Errorf("build %d: %w", i, err)
		}
		cfg.Builds = append(cfg.Builds, build)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExtractorFor returns the command configured for ext, if any.
func (b BuildConfig) ExtractorFor(ext string) (string, bool) {
	cmd, ok := b.Extractors[ext]
	return cmd, ok && cmd != ""
}
