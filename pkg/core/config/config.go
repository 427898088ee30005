// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
//
// Package:     config
// Description: TOML configuration loading with defaults
// Author:      Mike Stoffels with Claude
// Created:     2026-08-25
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Store   StoreConfig   `toml:"store"`
	Engine  EngineConfig  `toml:"engine"`
	Output  OutputConfig  `toml:"output"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// StoreConfig holds voice catalog settings
type StoreConfig struct {
	Path string `toml:"path"`
}

// EngineConfig holds synthesis engine settings
type EngineConfig struct {
	BaseURL         string   `toml:"base_url"`
	Timeout         Duration `toml:"timeout"`
	DefaultSpeed    float32  `toml:"default_speed"`
	DefaultLanguage string   `toml:"default_language"`
}

// OutputConfig holds audio and export output settings
type OutputConfig struct {
	Dir        string `toml:"dir"`
	ExportDir  string `toml:"export_dir"`
	SampleRate int    `toml:"sample_rate"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the MSW_CONFIG environment variable,
// falling back to the default locations. When no config file exists at all,
// the built-in defaults are returned so the tool works out of the box.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MSW_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/meinstimmwerk/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		cfg := &Config{}
		cfg.applyDefaults()
		cfg.expandEnvVars()
		return cfg, nil
	}

	return Load(path)
}

// Default returns the built-in default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinSTIMMWERK"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.General.DataDir, "voices.db")
	}

	// Engine
	if c.Engine.BaseURL == "" {
		c.Engine.BaseURL = "http://localhost:8880"
	}
	if c.Engine.Timeout.Duration == 0 {
		c.Engine.Timeout.Duration = 120 * time.Second
	}
	if c.Engine.DefaultSpeed == 0 {
		c.Engine.DefaultSpeed = 1.0
	}
	if c.Engine.DefaultLanguage == "" {
		c.Engine.DefaultLanguage = "en-us"
	}

	// Output
	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
	if c.Output.ExportDir == "" {
		c.Output.ExportDir = "./exported_voices"
	}
	if c.Output.SampleRate == 0 {
		c.Output.SampleRate = 24000
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.Output.Dir = os.ExpandEnv(c.Output.Dir)
	c.Output.ExportDir = os.ExpandEnv(c.Output.ExportDir)
	c.Engine.BaseURL = os.ExpandEnv(c.Engine.BaseURL)
}
