package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if !cfg.Channels.Console.Enabled {
		t.Error("console channel should be enabled by default")
	}
	if cfg.Channels.Telegram.Enabled {
		t.Error("telegram should be disabled by default")
	}
	if cfg.Digest.Schedule != "" {
		t.Errorf("digest schedule = %q, want disabled by default", cfg.Digest.Schedule)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("host = %q, want %q", cfg.Serve.Host, DefaultHost)
	}
	if cfg.Serve.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASKVIEW_CONFIG", "")
	t.Setenv("TASKVIEW_TELEGRAM_TOKEN", "")
	t.Setenv("TASKVIEW_DIGEST_SCHEDULE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if !cfg.Channels.Console.Enabled {
		t.Error("expected default config when no file exists")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("TASKVIEW_CONFIG", "")
	t.Setenv("TASKVIEW_TELEGRAM_TOKEN", "")
	t.Setenv("TASKVIEW_DIGEST_SCHEDULE", "")

	cfgDir := filepath.Join(tmpDir, ".taskview")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	fileCfg := map[string]any{
		"channels": map[string]any{
			"telegram": map[string]any{"enabled": true, "token": "abc", "chatId": 42},
		},
		"digest": map[string]any{"schedule": "0 0 * * * *"},
	}
	data, _ := json.Marshal(fileCfg)
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if !cfg.Channels.Telegram.Enabled || cfg.Channels.Telegram.Token != "abc" {
		t.Errorf("telegram config = %+v", cfg.Channels.Telegram)
	}
	if cfg.Channels.Telegram.ChatID != 42 {
		t.Errorf("chatID = %d, want 42", cfg.Channels.Telegram.ChatID)
	}
	if cfg.Digest.Schedule != "0 0 * * * *" {
		t.Errorf("digest schedule = %q", cfg.Digest.Schedule)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASKVIEW_CONFIG", "")
	t.Setenv("TASKVIEW_TELEGRAM_TOKEN", "env-token")
	t.Setenv("TASKVIEW_DIGEST_SCHEDULE", "@hourly")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Channels.Telegram.Token != "env-token" {
		t.Errorf("token = %q, want env override", cfg.Channels.Telegram.Token)
	}
	if cfg.Digest.Schedule != "@hourly" {
		t.Errorf("schedule = %q, want env override", cfg.Digest.Schedule)
	}
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("TASKVIEW_CONFIG", "/tmp/custom-taskview.json")
	if got := ConfigPath(); got != "/tmp/custom-taskview.json" {
		t.Errorf("ConfigPath = %q, want the override", got)
	}
}

func TestLoadConfig_BadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("TASKVIEW_CONFIG", "")

	cfgDir := filepath.Join(tmpDir, ".taskview")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for malformed config file")
	}
}
