// Package config loads the proxy core configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/properties"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxSessions  int           `yaml:"max_sessions"`
	// FlushWorkers bounds how many sessions are flushed concurrently per tick; 0 is unbounded.
	FlushWorkers int            `yaml:"flush_workers"`
	Tap          TapConfig      `yaml:"tap"`
	Families     []FamilyConfig `yaml:"families,omitempty"`
}

// TapConfig configures the websocket packet tap. An empty Addr disables it.
type TapConfig struct {
	Addr         string        `yaml:"addr"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// Buffer is the number of packets queued per observer before it is dropped.
	Buffer int `yaml:"buffer"`
}

// FamilyConfig adds custom properties to an entity family. They are registered
// after the built-in properties of the family.
type FamilyConfig struct {
	Name       string           `yaml:"name"`
	Properties []PropertyConfig `yaml:"properties"`
}

type PropertyConfig struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Values []string `yaml:"values,omitempty"`
}

func Default() Config {
	return Config{
		LogLevel:     "info",
		TickInterval: 50 * time.Millisecond,
		MaxSessions:  1000,
		FlushWorkers: 8,
		Tap: TapConfig{
			WriteTimeout: time.Second,
			Buffer:       256,
		},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	}
	if c.FlushWorkers < 0 {
		return fmt.Errorf("%w: flush_workers must not be negative", ErrInvalidConfig)
	}
	if c.Tap.Addr != "" && (c.Tap.WriteTimeout <= 0 || c.Tap.Buffer <= 0) {
		return fmt.Errorf("%w: tap needs a positive write_timeout and buffer", ErrInvalidConfig)
	}
	if _, err := c.PropertyDefinitions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	return log.ParseLevel(c.LogLevel)
}

// PropertyDefinitions converts the configured families into property
// definitions keyed by family name.
func (c Config) PropertyDefinitions() (map[string][]properties.Definition, error) {
	out := make(map[string][]properties.Definition, len(c.Families))
	for _, family := range c.Families {
		if family.Name == "" {
			return nil, errors.New("family without name")
		}
		for _, p := range family.Properties {
			kind, err := properties.ParseKind(p.Kind)
			if err != nil {
				return nil, fmt.Errorf("family %s: property %s: %w", family.Name, p.Name, err)
			}
			out[family.Name] = append(out[family.Name], properties.Definition{
				Name:   p.Name,
				Kind:   kind,
				Values: p.Values,
			})
		}
	}
	return out, nil
}
