package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.DBPath != "duet.db" {
		t.Errorf("Server.DBPath = %q, want %q", cfg.Server.DBPath, "duet.db")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[server]
port = "9000"
db_path = "/var/lib/duet/duet.db"

[log]
level = "debug"
format = "json"

[auth]
invite_secret = "file-secret"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9000")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Auth.InviteSecret != "file-secret" {
		t.Errorf("Auth.InviteSecret = %q, want %q", cfg.Auth.InviteSecret, "file-secret")
	}
	// Untouched values keep their defaults
	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("Server.BaseURL = %q, want default", cfg.Server.BaseURL)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want default", cfg.Server.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = \"9000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DUET_PORT", "7777")
	t.Setenv("DUET_INVITE_SECRET", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "7777" {
		t.Errorf("Server.Port = %q, want env override %q", cfg.Server.Port, "7777")
	}
	if cfg.Auth.InviteSecret != "env-secret" {
		t.Errorf("Auth.InviteSecret = %q, want %q", cfg.Auth.InviteSecret, "env-secret")
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}
