package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries interpreter settings. All fields have usable defaults;
// a .mython.yaml next to the script or in the working directory
// overrides them.
type Config struct {
	// MaxDepth is the evaluator recursion limit.
	MaxDepth int `yaml:"max_depth"`
	// Color controls diagnostic styling: auto, always or never.
	Color string `yaml:"color"`
}

func Default() *Config {
	return &Config{
		MaxDepth: DefaultMaxDepth,
		Color:    "auto",
	}
}

// Load reads path into a Config over the defaults. Unknown keys are
// rejected so typos don't silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: max_depth must be positive", path)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("%s: color must be auto, always or never", path)
	}

	return cfg, nil
}

// Discover looks for a config file next to the script and in the
// working directory; missing files yield the defaults.
func Discover(scriptPath string) (*Config, error) {
	var candidates []string
	if scriptPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(scriptPath), ConfigFileName))
	}
	candidates = append(candidates, ConfigFileName)

	for _, candidate := range candidates {
		cfg, err := Load(candidate)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return Default(), nil
}
