// Package config holds the simulation settings that build a cache geometry.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/geometry"
)

// DefaultWays is the set-associative way count used when none is given.
const DefaultWays = 2

// Config describes one simulation run.
type Config struct {
	// CacheSize is the total cache capacity in bytes.
	CacheSize int `yaml:"cache_size"`

	// WordsPerBlock is the block size in words.
	WordsPerBlock int `yaml:"words_per_block"`

	// WordSize is the number of bytes in a word. Default: 4.
	WordSize int `yaml:"word_size"`

	// Ways is the set-associative way count. Zero selects DefaultWays; the
	// value is clamped into [1, number of blocks].
	Ways int `yaml:"ways"`

	// Engine is "native" or "akita".
	Engine string `yaml:"engine"`

	// Addresses is an optional inline trace.
	Addresses []uint32 `yaml:"addresses,omitempty"`
}

// Default returns a Config for a 1KB, 2-way cache with 16-byte blocks.
func Default() *Config {
	return &Config{
		CacheSize:     1024,
		WordsPerBlock: 4,
		WordSize:      geometry.DefaultWordSize,
		Ways:          DefaultWays,
		Engine:        string(cache.EngineNative),
	}
}

// Load reads a Config from a YAML file. Fields missing from the file keep
// their defaults and unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Save writes the Config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BlockSize returns the block size in bytes.
func (c *Config) BlockSize() int {
	return c.WordsPerBlock * c.WordSize
}

// EffectiveWays returns the way count actually simulated.
func (c *Config) EffectiveWays() int {
	ways := c.Ways
	if ways <= 0 {
		ways = DefaultWays
	}

	if bs := c.BlockSize(); bs > 0 {
		if numBlocks := c.CacheSize / bs; ways > numBlocks {
			ways = numBlocks
		}
	}

	if ways < 1 {
		ways = 1
	}

	return ways
}

// Geometry builds the set-associative geometry this Config describes.
func (c *Config) Geometry() (geometry.Geometry, error) {
	return geometry.FromWords(c.CacheSize, c.WordsPerBlock, c.WordSize, c.EffectiveWays())
}

// CacheEngine returns the parsed engine.
func (c *Config) CacheEngine() (cache.Engine, error) {
	return cache.ParseEngine(c.Engine)
}

// Validate checks that the Config describes a runnable simulation.
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0")
	}
	if c.WordsPerBlock <= 0 {
		return fmt.Errorf("words_per_block must be > 0")
	}
	if c.WordSize <= 0 {
		return fmt.Errorf("word_size must be > 0")
	}
	if _, err := c.CacheEngine(); err != nil {
		return err
	}
	if _, err := c.Geometry(); err != nil {
		return err
	}

	return nil
}
