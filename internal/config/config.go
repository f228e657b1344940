package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the behavior half of the client's configuration. Secrets (the
// PriceLabs API key) live in the secure store, never here.
type Config struct {
	BackendURLs       []string `json:"backend_urls,omitempty"`
	RequestTimeoutSec int      `json:"request_timeout_seconds,omitempty"`
	ProbeTimeoutSec   int      `json:"probe_timeout_seconds,omitempty"`
	ChunkDelayMS      int      `json:"chunk_delay_ms,omitempty"`
	Model             string   `json:"model,omitempty"`
	PMS               string   `json:"pms,omitempty"`
	AutoSelectListing *bool    `json:"auto_select_listing,omitempty"`
}

func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "nightrate"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nightrate"), nil
}

func StateDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("NIGHTRATE_STATE_DIR"); env != "" {
		return env, nil
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "nightrate"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "nightrate"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load layers configuration: defaults, then a .env file if one sits in the
// working directory, then the config file, then NIGHTRATE_* env overrides.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		RequestTimeoutSec: 20,
		ProbeTimeoutSec:   5,
		ChunkDelayMS:      1000,
		Model:             "gpt-4",
		PMS:               "airbnb",
	}
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	if cfg.RequestTimeoutSec <= 0 {
		cfg.RequestTimeoutSec = 20
	}
	if cfg.ProbeTimeoutSec <= 0 {
		cfg.ProbeTimeoutSec = 5
	}
	if cfg.ChunkDelayMS <= 0 {
		cfg.ChunkDelayMS = 1000
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if cfg.PMS == "" {
		cfg.PMS = "airbnb"
	}
	return cfg, nil
}

func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, "config.json")
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o600)
}

// AutoSelect reports whether the first listing should be picked automatically
// when nothing is selected yet. Defaults to true, matching the original
// behavior; set auto_select_listing=false to opt out.
func (c Config) AutoSelect() bool {
	if c.AutoSelectListing == nil {
		return true
	}
	return *c.AutoSelectListing
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NIGHTRATE_BACKEND_URLS"); v != "" {
		urls := []string{}
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			cfg.BackendURLs = urls
		}
	}
	if v := os.Getenv("NIGHTRATE_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSec = n
		}
	}
	if v := os.Getenv("NIGHTRATE_PROBE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProbeTimeoutSec = n
		}
	}
	if v := os.Getenv("NIGHTRATE_CHUNK_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChunkDelayMS = n
		}
	}
	if v := os.Getenv("NIGHTRATE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NIGHTRATE_PMS"); v != "" {
		cfg.PMS = v
	}
	if v := os.Getenv("NIGHTRATE_AUTO_SELECT_LISTING"); v != "" {
		b := v == "1" || strings.EqualFold(v, "true")
		cfg.AutoSelectListing = &b
	}
}
