package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "meinSTIMMWERK" {
		t.Errorf("Name = %v, want meinSTIMMWERK", cfg.General.Name)
	}
	if cfg.Store.Path != filepath.Join("./data", "voices.db") {
		t.Errorf("Store.Path = %v, want data/voices.db", cfg.Store.Path)
	}
	if cfg.Engine.DefaultSpeed != 1.0 {
		t.Errorf("DefaultSpeed = %v, want 1.0", cfg.Engine.DefaultSpeed)
	}
	if cfg.Engine.DefaultLanguage != "en-us" {
		t.Errorf("DefaultLanguage = %v, want en-us", cfg.Engine.DefaultLanguage)
	}
	if cfg.Engine.Timeout.Duration != 120*time.Second {
		t.Errorf("Timeout = %v, want 2m", cfg.Engine.Timeout.Duration)
	}
	if cfg.Output.SampleRate != 24000 {
		t.Errorf("SampleRate = %v, want 24000", cfg.Output.SampleRate)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	content := `
[general]
data_dir = "/tmp/msw"
log_level = "debug"

[store]
path = "/tmp/msw/stimmen.db"

[engine]
base_url = "http://localhost:9999"
timeout = "30s"
default_speed = 1.2
default_language = "de"

[output]
dir = "/tmp/msw/out"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Store.Path != "/tmp/msw/stimmen.db" {
		t.Errorf("Store.Path = %v, want /tmp/msw/stimmen.db", cfg.Store.Path)
	}
	if cfg.Engine.Timeout.Duration != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Engine.Timeout.Duration)
	}
	if cfg.Engine.DefaultSpeed != 1.2 {
		t.Errorf("DefaultSpeed = %v, want 1.2", cfg.Engine.DefaultSpeed)
	}

	// Missing values must be filled with defaults
	if cfg.Output.ExportDir != "./exported_voices" {
		t.Errorf("ExportDir = %v, want ./exported_voices", cfg.Output.ExportDir)
	}
	if cfg.Output.SampleRate != 24000 {
		t.Errorf("SampleRate = %v, want 24000", cfg.Output.SampleRate)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() should return error for missing file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	os.WriteFile(path, []byte("not [valid toml"), 0644)

	_, err := Load(path)
	if err == nil {
		t.Error("Load() should return error for invalid TOML")
	}
}

func TestLoad_ExpandEnvVars(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	os.Setenv("MSW_TEST_DIR", "/tmp/expanded")
	defer os.Unsetenv("MSW_TEST_DIR")

	content := `
[store]
path = "$MSW_TEST_DIR/voices.db"
`
	os.WriteFile(path, []byte(content), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Path != "/tmp/expanded/voices.db" {
		t.Errorf("Store.Path = %v, want /tmp/expanded/voices.db", cfg.Store.Path)
	}
}

func TestLoadFromEnv_NoConfig(t *testing.T) {
	os.Unsetenv("MSW_CONFIG")
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "meinSTIMMWERK" {
		t.Errorf("Name = %v, want defaults", cfg.General.Name)
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{90 * time.Second}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %v, want 1m30s", string(text))
	}
}
