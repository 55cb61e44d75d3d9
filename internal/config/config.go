package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 18791
	DefaultDigestSchedule = "" // empty disables the digest
)

type Config struct {
	Channels ChannelsConfig `json:"channels"`
	Digest   DigestConfig   `json:"digest"`
	Serve    ServeConfig    `json:"serve"`
}

type ChannelsConfig struct {
	Console  ConsoleConfig  `json:"console"`
	Telegram TelegramConfig `json:"telegram"`
	WebUI    WebUIConfig    `json:"webui"`
}

type ConsoleConfig struct {
	Enabled bool `json:"enabled"`
}

type TelegramConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  int64  `json:"chatId"`
	Proxy   string `json:"proxy,omitempty"`
}

type WebUIConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port,omitempty"`
}

type DigestConfig struct {
	// Schedule is a cron expression (with seconds field); empty disables
	// the activity digest.
	Schedule string `json:"schedule,omitempty"`
}

type ServeConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func DefaultConfig() *Config {
	return &Config{
		Channels: ChannelsConfig{
			Console: ConsoleConfig{Enabled: true},
		},
		Digest: DigestConfig{Schedule: DefaultDigestSchedule},
		Serve: ServeConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

func ConfigDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".taskview")
}

func ConfigPath() string {
	if path := os.Getenv("TASKVIEW_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), "config.json")
}

func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if token := os.Getenv("TASKVIEW_TELEGRAM_TOKEN"); token != "" {
		cfg.Channels.Telegram.Token = token
	}
	if schedule := os.Getenv("TASKVIEW_DIGEST_SCHEDULE"); schedule != "" {
		cfg.Digest.Schedule = schedule
	}

	return cfg, nil
}
