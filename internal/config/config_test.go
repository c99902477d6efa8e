package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %s", cfg.Port)
	}
	if cfg.AbstractionLevels != 3 {
		t.Errorf("expected default abstraction levels 3, got %d", cfg.AbstractionLevels)
	}
	if cfg.GroupSize != 5 {
		t.Errorf("expected default group size 5, got %d", cfg.GroupSize)
	}
	if cfg.MaxConcurrent != 10 {
		t.Errorf("expected default max concurrent 10, got %d", cfg.MaxConcurrent)
	}
	if cfg.CacheDir != ".summary_cache" {
		t.Errorf("expected default cache dir, got %s", cfg.CacheDir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("SUMTREE_MODEL", "some/other-model")
	t.Setenv("ABSTRACTION_LEVELS", "5")
	t.Setenv("GROUP_SIZE", "4")
	t.Setenv("GROUP_ON_HEADINGS", "true")

	cfg := Load()

	if cfg.APIKey != "sk-test" {
		t.Errorf("expected api key from env, got %q", cfg.APIKey)
	}
	if cfg.Model != "some/other-model" {
		t.Errorf("expected model from env, got %q", cfg.Model)
	}
	if cfg.AbstractionLevels != 5 {
		t.Errorf("expected 5 levels, got %d", cfg.AbstractionLevels)
	}
	if cfg.GroupSize != 4 {
		t.Errorf("expected group size 4, got %d", cfg.GroupSize)
	}
	if !cfg.GroupOnHeadings {
		t.Error("expected heading grouping enabled")
	}
}

func TestLoad_InvalidEnvIntIgnored(t *testing.T) {
	t.Setenv("GROUP_SIZE", "not-a-number")
	if cfg := Load(); cfg.GroupSize != 5 {
		t.Errorf("expected default group size on bad env value, got %d", cfg.GroupSize)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `openrouter_api_key: sk-from-file
model: anthropic/claude-sonnet
abstraction_levels: 2
group_size: 3
cache_dir: /tmp/sumcache
group_on_headings: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "sk-from-file" {
		t.Errorf("expected api key from file, got %q", cfg.APIKey)
	}
	if cfg.Model != "anthropic/claude-sonnet" {
		t.Errorf("expected model from file, got %q", cfg.Model)
	}
	if cfg.AbstractionLevels != 2 || cfg.GroupSize != 3 {
		t.Errorf("expected levels=2 group=3, got %d/%d", cfg.AbstractionLevels, cfg.GroupSize)
	}
	if cfg.CacheDir != "/tmp/sumcache" {
		t.Errorf("expected cache dir from file, got %q", cfg.CacheDir)
	}
	// Unset fields keep their defaults.
	if cfg.Port != "8091" {
		t.Errorf("expected default port to survive, got %s", cfg.Port)
	}
}

func TestLoadFile_EnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("model: file-model\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SUMTREE_MODEL", "env-model")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Errorf("expected env to override file, got %q", cfg.Model)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := defaults()
	valid.APIKey = "sk-test"

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing api key", func(c *Config) { c.APIKey = "" }, "OPENROUTER_API_KEY"},
		{"missing model", func(c *Config) { c.Model = "" }, "model"},
		{"levels too low", func(c *Config) { c.AbstractionLevels = 0 }, "abstraction_levels"},
		{"group size too low", func(c *Config) { c.GroupSize = 1 }, "group_size"},
		{"concurrency too low", func(c *Config) { c.MaxConcurrent = 0 }, "max_concurrent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("expected error mentioning %q, got %q", tt.wantSub, err.Error())
			}
		})
	}
}
