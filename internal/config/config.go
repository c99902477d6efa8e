package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the service consumes. Values come from an
// optional YAML file overridden by environment variables.
type Config struct {
	Port string `yaml:"port"`

	// Summarization service
	APIKey  string `yaml:"openrouter_api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`

	// HTTP API auth. Empty disables auth (local use).
	ServerAPIKey string `yaml:"server_api_key"`

	// Tree building
	AbstractionLevels int  `yaml:"abstraction_levels"`
	GroupSize         int  `yaml:"group_size"`
	MaxConcurrent     int  `yaml:"max_concurrent"`
	GroupOnHeadings   bool `yaml:"group_on_headings"`

	// Chunking
	MaxChunkChars int `yaml:"max_chunk_chars"`
	MaxParagraphs int `yaml:"max_paragraphs"`

	// Cache
	CacheDir string `yaml:"cache_dir"`
}

func defaults() Config {
	return Config{
		Port:              "8091",
		Model:             "google/gemini-2.0-flash-exp:free",
		AbstractionLevels: 3,
		GroupSize:         5,
		MaxConcurrent:     10,
		MaxChunkChars:     1500,
		MaxParagraphs:     5,
		CacheDir:          ".summary_cache",
	}
}

// Load builds the configuration from environment variables alone.
func Load() Config {
	return loadEnv(defaults())
}

// LoadFile reads a YAML config file, then applies environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return loadEnv(cfg), nil
}

func loadEnv(cfg Config) Config {
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("OPENROUTER_API_KEY", cfg.APIKey)
	cfg.Model = envOr("SUMTREE_MODEL", cfg.Model)
	cfg.BaseURL = envOr("OPENROUTER_BASE_URL", cfg.BaseURL)
	cfg.ServerAPIKey = envOr("SUMTREE_API_KEY", cfg.ServerAPIKey)
	cfg.AbstractionLevels = envInt("ABSTRACTION_LEVELS", cfg.AbstractionLevels)
	cfg.GroupSize = envInt("GROUP_SIZE", cfg.GroupSize)
	cfg.MaxConcurrent = envInt("MAX_CONCURRENT_SUMMARIZE", cfg.MaxConcurrent)
	cfg.GroupOnHeadings = envBool("GROUP_ON_HEADINGS", cfg.GroupOnHeadings)
	cfg.MaxChunkChars = envInt("MAX_CHUNK_CHARS", cfg.MaxChunkChars)
	cfg.MaxParagraphs = envInt("MAX_PARAGRAPHS", cfg.MaxParagraphs)
	cfg.CacheDir = envOr("CACHE_DIR", cfg.CacheDir)
	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required (set it in the config file or environment)")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.AbstractionLevels < 1 {
		return fmt.Errorf("abstraction_levels must be >= 1, got %d", c.AbstractionLevels)
	}
	if c.GroupSize < 2 {
		return fmt.Errorf("group_size must be >= 2, got %d", c.GroupSize)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be >= 1, got %d", c.MaxConcurrent)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
