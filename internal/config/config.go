package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port      string `yaml:"port"`
	PublicDir string `yaml:"public_dir"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
	// Strict fails startup on a corrupt store file instead of degrading to
	// an empty document.
	Strict bool `yaml:"strict"`
}

type AIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	AI     AIConfig     `yaml:"ai"`
}

// Load reads config.yaml if present, fills in defaults and applies env-var
// overrides. A missing file is fine; env vars alone are enough to run.
func Load(path string) *Config {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults + env only
	case err != nil:
		log.Fatalf("failed to open %s: %v", path, err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("failed to decode %s: %v", path, err)
		}
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	if cfg.Server.PublicDir == "" {
		cfg.Server.PublicDir = "public"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "db.json"
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 30
	}
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("PUBLIC_DIR"); v != "" {
		cfg.Server.PublicDir = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	// DATA_DIR points at a writable data directory (e.g. a mounted volume);
	// the store file keeps its default name inside it.
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Store.Path = filepath.Join(v, "db.json")
	}
	if v := os.Getenv("STORE_STRICT"); v == "true" || v == "1" {
		cfg.Store.Strict = true
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
}
