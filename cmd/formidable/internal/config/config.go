// Package config loads the optional formidable.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "formidable.yaml"

// EnvDraftsPath overrides drafts.path.
const EnvDraftsPath = "FORMIDABLE_DRAFTS"

// Color modes for output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents formidable.yaml.
type Config struct {
	Drafts DraftsConfig `yaml:"drafts"`
	Output OutputConfig `yaml:"output"`
}

// DraftsConfig configures the draft store.
type DraftsConfig struct {
	Path string `yaml:"path,omitempty"`
}

// OutputConfig configures terminal output.
type OutputConfig struct {
	Color   string `yaml:"color,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	DraftsPath string
	Color      string
	Verbose    bool
}

// LoadOptional reads formidable.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads the configuration and resolves defaults. configPath, when
// non-empty, names an explicit file that must exist; otherwise
// formidable.yaml in dir is used if present.
func Resolve(dir, configPath string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if configPath != "" {
		cfg, err = Load(configPath)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", configPath)
		}
	} else {
		cfg, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	draftsPath := strings.TrimSpace(os.Getenv(EnvDraftsPath))
	if draftsPath == "" {
		draftsPath = strings.TrimSpace(cfg.Drafts.Path)
	}
	if draftsPath == "" {
		draftsPath, err = defaultDraftsPath()
		if err != nil {
			return nil, err
		}
	} else if !filepath.IsAbs(draftsPath) {
		draftsPath = filepath.Join(dir, draftsPath)
	}

	color := strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	if color == "" {
		color = ColorAuto
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		DraftsPath: draftsPath,
		Color:      color,
		Verbose:    cfg.Output.Verbose,
	}, nil
}

func defaultDraftsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".formidable", "drafts.db"), nil
}

func validateColor(color string) error {
	switch color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("output.color must be %s, %s or %s (got %q)", ColorAuto, ColorAlways, ColorNever, color)
}
