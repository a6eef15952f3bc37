package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime configuration. Values come from an optional TOML
// file, with DUET_* environment variables taking precedence.
type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Auth   AuthConfig   `toml:"auth"`
	Push   PushConfig   `toml:"push"`
	Email  EmailConfig  `toml:"email"`
}

type ServerConfig struct {
	Port    string `toml:"port"`
	DBPath  string `toml:"db_path"`
	BaseURL string `toml:"base_url"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type AuthConfig struct {
	InviteSecret string `toml:"invite_secret"`
}

type PushConfig struct {
	VAPIDPublicKey  string `toml:"vapid_public_key"`
	VAPIDPrivateKey string `toml:"vapid_private_key"`
}

type EmailConfig struct {
	PostmarkToken string `toml:"postmark_token"`
	FromAddress   string `toml:"from_address"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:    "8080",
			DBPath:  "duet.db",
			BaseURL: "http://localhost:8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the given TOML file (if path is non-empty
// and the file exists) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfEnv(&c.Server.Port, "DUET_PORT")
	setIfEnv(&c.Server.DBPath, "DUET_DB_PATH")
	setIfEnv(&c.Server.BaseURL, "DUET_BASE_URL")
	setIfEnv(&c.Log.Level, "DUET_LOG_LEVEL")
	setIfEnv(&c.Log.Format, "DUET_LOG_FORMAT")
	setIfEnv(&c.Auth.InviteSecret, "DUET_INVITE_SECRET")
	setIfEnv(&c.Push.VAPIDPublicKey, "DUET_VAPID_PUBLIC_KEY")
	setIfEnv(&c.Push.VAPIDPrivateKey, "DUET_VAPID_PRIVATE_KEY")
	setIfEnv(&c.Email.PostmarkToken, "DUET_POSTMARK_TOKEN")
	setIfEnv(&c.Email.FromAddress, "DUET_EMAIL_FROM")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
