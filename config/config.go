// Package config holds the settings of the pseudoc command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sarchlab/pseudoc/core"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Color choices.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
)

// Environment variables that override the configuration file.
const (
	EnvComments = "PSEUDOC_COMMENTS"
	EnvSections = "PSEUDOC_SECTIONS"
	EnvFuse     = "PSEUDOC_FUSE"
	EnvWorkers  = "PSEUDOC_WORKERS"
	EnvMaxData  = "PSEUDOC_MAX_DATA"
	EnvColor    = "PSEUDOC_COLOR"
)

var (
	ErrBadColor   = errors.New("color must be auto, always or never")
	ErrBadFormat  = errors.New("format must be text or table")
	ErrBadMode    = errors.New("mode must be 16, 32 or 64")
	ErrBadWorkers = errors.New("workers must be positive")
)

// Config is the complete command configuration.
type Config struct {
	Comments     bool   `yaml:"comments"`
	SectionNames bool   `yaml:"sections"`
	Addresses    bool   `yaml:"addresses"`
	RawBytes     bool   `yaml:"bytes"`
	MaxDataSize  int    `yaml:"max_data_size"`
	Fuse         bool   `yaml:"fuse"`
	AutoLabels   bool   `yaml:"auto_labels"`
	Workers      int    `yaml:"workers"`
	Mode         int    `yaml:"mode"`
	Color        string `yaml:"color"`
	Format       string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Comments:    true,
		Addresses:   true,
		MaxDataSize: 30,
		Fuse:        true,
		AutoLabels:  true,
		Workers:     1,
		Mode:        64,
		Color:       ColorAuto,
		Format:      FormatText,
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes a YAML configuration on top of Default.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return c, c.Validate()
}

// ApplyEnv returns c with the PSEUDOC_* environment variables applied.
// The environment is read afresh on every call. Malformed numbers keep
// the value already in c.
func (c Config) ApplyEnv() Config {
	env.Load()

	if env.Has(EnvComments) {
		c.Comments = env.Bool(EnvComments)
	}
	if env.Has(EnvSections) {
		c.SectionNames = env.Bool(EnvSections)
	}
	if env.Has(EnvFuse) {
		c.Fuse = env.Bool(EnvFuse)
	}
	c.Workers = env.Int(EnvWorkers, c.Workers)
	c.MaxDataSize = env.Int(EnvMaxData, c.MaxDataSize)
	c.Color = env.Str(EnvColor, c.Color)

	return c
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%q: %w", c.Color, ErrBadColor)
	}

	switch c.Format {
	case FormatText, FormatTable:
	default:
		return fmt.Errorf("%q: %w", c.Format, ErrBadFormat)
	}

	switch c.Mode {
	case 16, 32, 64:
	default:
		return fmt.Errorf("%d: %w", c.Mode, ErrBadMode)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%d: %w", c.Workers, ErrBadWorkers)
	}

	if c.MaxDataSize < 0 {
		return fmt.Errorf("max data size %d must not be negative", c.MaxDataSize)
	}

	return nil
}

// TranslatorBuilder returns a translator builder configured from c.
// Table output has its own address column, so addresses are turned off
// for it.
func (c Config) TranslatorBuilder() core.Builder {
	return core.NewBuilder().
		WithComments(c.Comments).
		WithSectionNames(c.SectionNames).
		WithAddresses(c.Addresses && c.Format != FormatTable).
		WithRawBytes(c.RawBytes && c.Format != FormatTable).
		WithMaxDataSize(c.MaxDataSize)
}
