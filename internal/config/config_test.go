package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("NIGHTRATE_BACKEND_URLS", "")
	t.Setenv("NIGHTRATE_REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("NIGHTRATE_PROBE_TIMEOUT_SECONDS", "")
	t.Setenv("NIGHTRATE_CHUNK_DELAY_MS", "")
	t.Setenv("NIGHTRATE_MODEL", "")
	t.Setenv("NIGHTRATE_PMS", "")
	t.Setenv("NIGHTRATE_AUTO_SELECT_LISTING", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RequestTimeoutSec != 20 || cfg.ProbeTimeoutSec != 5 || cfg.ChunkDelayMS != 1000 {
		t.Fatalf("unexpected timing defaults: %+v", cfg)
	}
	if cfg.Model != "gpt-4" || cfg.PMS != "airbnb" {
		t.Fatalf("unexpected model/pms defaults: %+v", cfg)
	}
	if !cfg.AutoSelect() {
		t.Fatalf("auto select should default on")
	}
	if len(cfg.BackendURLs) != 0 {
		t.Fatalf("no backend urls expected by default, got %v", cfg.BackendURLs)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	isolate(t)

	off := false
	want := Config{
		BackendURLs:       []string{"http://127.0.0.1:9999"},
		RequestTimeoutSec: 7,
		ProbeTimeoutSec:   2,
		ChunkDelayMS:      50,
		Model:             "gpt-4o",
		PMS:               "vrbo",
		AutoSelectListing: &off,
	}
	if err := Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.BackendURLs) != 1 || got.BackendURLs[0] != "http://127.0.0.1:9999" {
		t.Fatalf("backend urls = %v", got.BackendURLs)
	}
	if got.RequestTimeoutSec != 7 || got.ProbeTimeoutSec != 2 || got.ChunkDelayMS != 50 {
		t.Fatalf("timings not persisted: %+v", got)
	}
	if got.Model != "gpt-4o" || got.PMS != "vrbo" {
		t.Fatalf("model/pms not persisted: %+v", got)
	}
	if got.AutoSelect() {
		t.Fatalf("auto select should be off after save")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	if err := Save(Config{Model: "gpt-4", ChunkDelayMS: 1000}); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Setenv("NIGHTRATE_MODEL", "gpt-4o-mini")
	t.Setenv("NIGHTRATE_CHUNK_DELAY_MS", "25")
	t.Setenv("NIGHTRATE_BACKEND_URLS", "http://a.example:8000, http://b.example:8000")
	t.Setenv("NIGHTRATE_AUTO_SELECT_LISTING", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" || cfg.ChunkDelayMS != 25 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if len(cfg.BackendURLs) != 2 || cfg.BackendURLs[1] != "http://b.example:8000" {
		t.Fatalf("url list not split and trimmed: %v", cfg.BackendURLs)
	}
	if cfg.AutoSelect() {
		t.Fatalf("auto select env override not applied")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolate(t)

	cfgDir := filepath.Join(dir, "nightrate")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStateDirPrecedence(t *testing.T) {
	isolate(t)

	if dir, err := StateDir("/explicit"); err != nil || dir != "/explicit" {
		t.Fatalf("override should win: %q %v", dir, err)
	}
	t.Setenv("NIGHTRATE_STATE_DIR", "/from-env")
	if dir, err := StateDir(""); err != nil || dir != "/from-env" {
		t.Fatalf("env should win over XDG: %q %v", dir, err)
	}
}
