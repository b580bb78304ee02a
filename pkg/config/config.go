// Package config loads settings for the assembler and emulator commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fourbit/pkg/utils"
)

// Config is the on-disk configuration. Zero values are replaced by defaults.
type Config struct {
	OutputExtension string `yaml:"output_extension"`
	LogLevel        string `yaml:"log_level"`
	MaxSteps        int    `yaml:"max_steps"`
	Listing         bool   `yaml:"listing"`
	Trace           bool   `yaml:"trace"`
}

func Default() Config {
	return Config{
		OutputExtension: ".hex",
		LogLevel:        "info",
		MaxSteps:        256,
	}
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.OutputExtension == "" {
		return errors.New("output_extension must not be empty")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if _, err := utils.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
