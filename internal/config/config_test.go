package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"arenaboard/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.StorageKey != "bourgo_arena_planning" {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
	if cfg.Autosave.Std() != 30*time.Second {
		t.Errorf("Autosave = %v", cfg.Autosave.Std())
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q", cfg.Env)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if cfg.DBPath != "arenaboard.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "addr: \":9090\"\nstorage_key: other_slot\nautosave_interval: 2m\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.StorageKey != "other_slot" {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
	if cfg.Autosave.Std() != 2*time.Minute {
		t.Errorf("Autosave = %v", cfg.Autosave.Std())
	}
	// Unset fields keep their defaults.
	if cfg.DBPath != "arenaboard.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [:::"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("autosave_interval: soon\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected duration error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ARENA_ADDR", ":7070")
	t.Setenv("ARENA_ENV", "production")
	t.Setenv("ARENA_AUTOSAVE_INTERVAL", "45s")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.Autosave.Std() != 45*time.Second {
		t.Errorf("Autosave = %v", cfg.Autosave.Std())
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ARENA_ADDR", ":6060")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":6060" {
		t.Errorf("Addr = %q, want env override to win", cfg.Addr)
	}
}

func TestLoad_InvalidEnvDuration(t *testing.T) {
	t.Setenv("ARENA_AUTOSAVE_INTERVAL", "whenever")
	if _, err := config.Load(""); err == nil {
		t.Fatal("expected duration error")
	}
}
