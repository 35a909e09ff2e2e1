// Package config loads pipeline configuration from JSON, YAML, or TOML
// files and assembles filtering predicates and observer sets from it.
package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailored-agentic-units/sieve"
	"gopkg.in/yaml.v3"
)

// Config describes a pipeline: severity thresholds plus the observers
// events should reach.
type Config struct {
	// DefaultLevel gates namespaces with no configured threshold.
	DefaultLevel string `json:"default_level,omitempty" yaml:"default_level,omitempty" toml:"default_level,omitempty"`

	// RootLevel overrides DefaultLevel as the resolution backstop
	// without touching any namespace entry.
	RootLevel string `json:"root_level,omitempty" yaml:"root_level,omitempty" toml:"root_level,omitempty"`

	// Namespaces maps dot-separated namespaces to threshold names.
	Namespaces map[string]string `json:"namespaces,omitempty" yaml:"namespaces,omitempty" toml:"namespaces,omitempty"`

	// Observers names registered observers to deliver to.
	Observers []string `json:"observers,omitempty" yaml:"observers,omitempty" toml:"observers,omitempty"`
}

// DefaultConfig returns the configuration used where no file overrides
// it.
func DefaultConfig() *Config {
	return &Config{
		DefaultLevel: sieve.DefaultThreshold.String(),
		Observers:    []string{"stderr"},
	}
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.DefaultLevel != "" {
		c.DefaultLevel = other.DefaultLevel
	}
	if other.RootLevel != "" {
		c.RootLevel = other.RootLevel
	}
	if len(other.Namespaces) > 0 {
		if c.Namespaces == nil {
			c.Namespaces = make(map[string]string, len(other.Namespaces))
		}
		maps.Copy(c.Namespaces, other.Namespaces)
	}
	if len(other.Observers) > 0 {
		c.Observers = slices.Clone(other.Observers)
	}
}

// Load reads a configuration file, with the format chosen by extension:
// .json, .yaml or .yml, .toml. The result is the default configuration
// with the file's fields overlaid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var file Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg := DefaultConfig()
	cfg.Merge(&file)
	return cfg, nil
}

// Predicate builds the level filter the configuration describes.
func (c *Config) Predicate() (*sieve.LevelFilterPredicate, error) {
	var opts []sieve.LevelFilterOption
	if c.DefaultLevel != "" {
		lvl, err := sieve.ParseLevel(c.DefaultLevel)
		if err != nil {
			return nil, fmt.Errorf("default_level: %w", err)
		}
		opts = append(opts, sieve.WithDefaultThreshold(lvl))
	}
	p := sieve.NewLevelFilterPredicate(opts...)
	if c.RootLevel != "" {
		lvl, err := sieve.ParseLevel(c.RootLevel)
		if err != nil {
			return nil, fmt.Errorf("root_level: %w", err)
		}
		if err := p.SetRootThreshold(lvl); err != nil {
			return nil, fmt.Errorf("root_level: %w", err)
		}
	}
	for ns, name := range c.Namespaces {
		lvl, err := sieve.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("namespace %q: %w", ns, err)
		}
		if err := p.SetThreshold(ns, lvl); err != nil {
			return nil, fmt.Errorf("namespace %q: %w", ns, err)
		}
	}
	return p, nil
}

// Observer assembles the configured pipeline: the named observers
// behind the configured level filter. With no observers configured the
// filter forwards into a noop observer.
func (c *Config) Observer() (sieve.Observer, error) {
	p, err := c.Predicate()
	if err != nil {
		return nil, err
	}
	var target sieve.Observer
	switch len(c.Observers) {
	case 0:
		target = sieve.NoOpObserver{}
	case 1:
		o, err := sieve.GetObserver(c.Observers[0])
		if err != nil {
			return nil, err
		}
		target = o
	default:
		pub := sieve.NewPublisher()
		for _, name := range c.Observers {
			o, err := sieve.GetObserver(name)
			if err != nil {
				return nil, err
			}
			pub.AddObserver(o)
		}
		target = pub
	}
	return sieve.NewFilteringObserver(target, p), nil
}
