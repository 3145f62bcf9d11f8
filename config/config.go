// Package config loads engine configuration from a YAML file and
// registers any extra platform descriptors it declares. Adding a
// platform this way is a pure data change: no normalizer is touched.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"product-extractor/internal/types"
	"product-extractor/platform"
)

// duration wraps time.Duration so YAML values can use the "2s", "500ms"
// notation; the yaml package has no native duration support.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

// File is the on-disk configuration shape.
type File struct {
	RequestDelay       duration        `yaml:"request_delay"`
	MaxRetries         int             `yaml:"max_retries"`
	Timeout            duration        `yaml:"timeout"`
	MaxConcurrent      int             `yaml:"max_concurrent"`
	BatchSize          int             `yaml:"batch_size"`
	UseHeadlessBrowser bool            `yaml:"use_headless_browser"`
	UserAgent          string          `yaml:"user_agent"`
	Platforms          []PlatformEntry `yaml:"platforms"`
}

// PlatformEntry declares one additional platform.
type PlatformEntry struct {
	Name      string   `yaml:"name"`
	Domains   []string `yaml:"domains"`
	IDPattern string   `yaml:"id_pattern"`
	Fields    []string `yaml:"fields"`
}

// Load reads a YAML config file, applies it over DefaultConfig and
// registers any declared platforms. Must run during startup, before
// detection begins.
func Load(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := types.DefaultConfig()
	if file.RequestDelay > 0 {
		cfg.RequestDelay = time.Duration(file.RequestDelay)
	}
	if file.MaxRetries > 0 {
		cfg.MaxRetries = file.MaxRetries
	}
	if file.Timeout > 0 {
		cfg.Timeout = time.Duration(file.Timeout)
	}
	if file.MaxConcurrent > 0 {
		cfg.MaxConcurrentRequests = file.MaxConcurrent
	}
	if file.BatchSize > 0 {
		cfg.BatchSize = file.BatchSize
	}
	if file.UserAgent != "" {
		cfg.UserAgent = file.UserAgent
	}
	cfg.UseHeadlessBrowser = file.UseHeadlessBrowser

	for _, entry := range file.Platforms {
		desc, err := entry.descriptor()
		if err != nil {
			return nil, err
		}
		platform.Register(desc)
	}

	return cfg, nil
}

func (e PlatformEntry) descriptor() (platform.Descriptor, error) {
	if e.Name == "" || len(e.Domains) == 0 {
		return platform.Descriptor{}, fmt.Errorf("platform entry needs a name and at least one domain")
	}

	var pattern *regexp.Regexp
	if e.IDPattern != "" {
		var err error
		pattern, err = regexp.Compile(e.IDPattern)
		if err != nil {
			return platform.Descriptor{}, fmt.Errorf("invalid id_pattern for platform %s: %w", e.Name, err)
		}
	}

	fields := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		fields[f] = true
	}

	return platform.Descriptor{
		Name:            e.Name,
		Domains:         e.Domains,
		IDPattern:       pattern,
		SupportedFields: fields,
	}, nil
}
