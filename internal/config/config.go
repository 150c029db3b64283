// Package config loads ideaforge configuration from a YAML file with
// sensible defaults and environment overrides. A missing API key never
// fails loading; it surfaces as a call-time transport failure instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ideaforge settings.
type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	Debug   bool          `yaml:"debug"`
}

// GeminiConfig configures the model transport.
type GeminiConfig struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	IdeaModel       string `yaml:"idea_model"`
	PlanModel       string `yaml:"plan_model"`
	Timeout         string `yaml:"timeout"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
	ThinkingBudget  int    `yaml:"thinking_budget"`
}

// StorageConfig holds local persistence paths.
type StorageConfig struct {
	FavoritesPath string `yaml:"favorites_path"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	OutputDir   string `yaml:"output_dir"`
	RenderWidth int    `yaml:"render_width"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".ideaforge")
	return &Config{
		Gemini: GeminiConfig{
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			IdeaModel:       "gemini-2.5-pro",
			PlanModel:       "gemini-2.5-flash",
			Timeout:         "5m",
			MaxOutputTokens: 65536,
			ThinkingBudget:  32768,
		},
		Storage: StorageConfig{
			FavoritesPath: filepath.Join(dataDir, "favorites.db"),
		},
		Export: ExportConfig{
			OutputDir:   ".",
			RenderWidth: 1240,
		},
	}
}

// Load reads the config at path, layering file values over defaults and
// environment overrides over both. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// applyEnv layers environment variables over the file values.
// GEMINI_API_KEY wins over API_KEY when both are set.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
}

// fillDefaults restores any field a partial file left empty.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = def.Gemini.BaseURL
	}
	if c.Gemini.IdeaModel == "" {
		c.Gemini.IdeaModel = def.Gemini.IdeaModel
	}
	if c.Gemini.PlanModel == "" {
		c.Gemini.PlanModel = def.Gemini.PlanModel
	}
	if c.Gemini.Timeout == "" {
		c.Gemini.Timeout = def.Gemini.Timeout
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = def.Gemini.MaxOutputTokens
	}
	if c.Storage.FavoritesPath == "" {
		c.Storage.FavoritesPath = def.Storage.FavoritesPath
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = def.Export.OutputDir
	}
	if c.Export.RenderWidth <= 0 {
		c.Export.RenderWidth = def.Export.RenderWidth
	}
}

// GeminiTimeout parses the configured timeout, falling back to 5 minutes.
func (c *Config) GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
