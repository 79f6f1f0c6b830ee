package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	nerrors "github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
	"github.com/go-drift/neutral/pkg/widget"
)

// FileName is the name of the optional project configuration file.
const FileName = "neutral.yaml"

// DefaultGenerator is used when neutral.yaml does not name one.
const DefaultGenerator = "neutral.test"

// Config represents the optional neutral.yaml configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Layout    LayoutConfig    `yaml:"layout"`
	Errors    ErrorsConfig    `yaml:"errors"`
}

// GeneratorConfig selects the backend.
type GeneratorConfig struct {
	Default string `yaml:"default,omitempty"`
	API     string `yaml:"api,omitempty"`
}

// LayoutConfig contains layout lifecycle settings.
type LayoutConfig struct {
	DoubleLoad string `yaml:"doubleLoad,omitempty"`
}

// ErrorsConfig controls error reporting.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root             string
	ModulePath       string
	DefaultGenerator string
	API              string
	DoubleLoad       widget.DoubleLoadPolicy
	Verbose          bool
}

// LoadOptional reads neutral.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads neutral.yaml (if present) and resolves defaults. Invalid
// values are reported as configuration errors.
func Resolve(dir string) (*Resolved, error) {
	const op = "config.Resolve"

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, nerrors.Raise(op, nerrors.KindConfig, err)
	}

	gen := strings.TrimSpace(cfg.Generator.Default)
	if gen == "" {
		gen = DefaultGenerator
	}

	api := strings.TrimSpace(cfg.Generator.API)
	if api == "" {
		api = generator.APIVersion
	}
	if err := generator.CheckAPIVersion(api); err != nil {
		return nil, nerrors.Raise(op, nerrors.KindConfig, fmt.Errorf("generator.api: %w", err))
	}

	policy, err := widget.ParseDoubleLoadPolicy(strings.TrimSpace(cfg.Layout.DoubleLoad))
	if err != nil {
		return nil, nerrors.Raise(op, nerrors.KindConfig, fmt.Errorf("layout.doubleLoad: %w", err))
	}

	return &Resolved{
		Root:             dir,
		ModulePath:       modulePath(dir),
		DefaultGenerator: gen,
		API:              api,
		DoubleLoad:       policy,
		Verbose:          cfg.Errors.Verbose,
	}, nil
}

// FindProjectRoot walks up from the current directory to the first
// directory holding neutral.yaml or go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s or go.mod found", FileName)
		}
		dir = parent
	}
}

// modulePath returns the module declared by dir/go.mod, or "" when there is
// none.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
