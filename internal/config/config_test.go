package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.IdeaModel != "gemini-2.5-pro" {
		t.Errorf("idea model = %q", cfg.Gemini.IdeaModel)
	}
	if cfg.Gemini.PlanModel != "gemini-2.5-flash" {
		t.Errorf("plan model = %q", cfg.Gemini.PlanModel)
	}
	if cfg.Export.RenderWidth != 1240 {
		t.Errorf("render width = %d", cfg.Export.RenderWidth)
	}
	if cfg.Storage.FavoritesPath == "" {
		t.Error("favorites path empty")
	}
}

func TestLoadPartialFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "gemini:\n  idea_model: custom-model\nexport:\n  output_dir: /tmp/out\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.IdeaModel != "custom-model" {
		t.Errorf("idea model = %q, want file value", cfg.Gemini.IdeaModel)
	}
	if cfg.Gemini.PlanModel != "gemini-2.5-flash" {
		t.Errorf("plan model = %q, want default", cfg.Gemini.PlanModel)
	}
	if cfg.Export.OutputDir != "/tmp/out" {
		t.Errorf("output dir = %q", cfg.Export.OutputDir)
	}
	if cfg.Export.RenderWidth != 1240 {
		t.Errorf("render width = %d, want default", cfg.Export.RenderWidth)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gemini: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "fallback-key")
	t.Setenv("GEMINI_API_KEY", "primary-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "primary-key" {
		t.Errorf("api key = %q, GEMINI_API_KEY must win", cfg.Gemini.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "")
	cfg, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "fallback-key" {
		t.Errorf("api key = %q, want API_KEY fallback", cfg.Gemini.APIKey)
	}
}

func TestGeminiTimeout(t *testing.T) {
	cfg := Default()
	if got := cfg.GeminiTimeout(); got != 5*time.Minute {
		t.Errorf("default timeout = %v", got)
	}

	cfg.Gemini.Timeout = "90s"
	if got := cfg.GeminiTimeout(); got != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", got)
	}

	cfg.Gemini.Timeout = "bogus"
	if got := cfg.GeminiTimeout(); got != 5*time.Minute {
		t.Errorf("bogus timeout = %v, want fallback", got)
	}
}
