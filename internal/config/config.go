// Package config loads the loadout configuration from YAML and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all loadout configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Session SessionConfig `yaml:"session"`
	Promo   PromoConfig   `yaml:"promo"`
	Footer  FooterConfig  `yaml:"footer"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	StaticDir      string   `yaml:"static_dir"` // Served under /assets
	AllowedOrigins []string `yaml:"allowed_origins"`
	ReadTimeout    Duration `yaml:"read_timeout"`
	WriteTimeout   Duration `yaml:"write_timeout"`
	IdleTimeout    Duration `yaml:"idle_timeout"`
	ShutdownGrace  Duration `yaml:"shutdown_grace"`
}

// CatalogConfig selects where the weapon records come from. DBPath wins over
// DataPath; with neither set the bundled catalog is used.
type CatalogConfig struct {
	DataPath string `yaml:"data_path"`
	DBPath   string `yaml:"db_path"`
}

// SessionConfig configures per-browser UI state.
type SessionConfig struct {
	CookieName string   `yaml:"cookie_name"`
	TTL        Duration `yaml:"ttl"`
	SweepEvery Duration `yaml:"sweep_every"`
}

// PromoConfig is the dismissible affiliate panel.
type PromoConfig struct {
	ImageURL string `yaml:"image_url"`
	LinkURL  string `yaml:"link_url"`
	Alt      string `yaml:"alt"`
}

// FooterConfig is the author credit in the page footer.
type FooterConfig struct {
	Author  string `yaml:"author"`
	LinkURL string `yaml:"link_url"`
	IconURL string `yaml:"icon_url"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Duration is a time.Duration written as "30s", "5m" in YAML
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			StaticDir:      "./public",
			AllowedOrigins: []string{"http://localhost:*"},
			ReadTimeout:    Duration(10 * time.Second),
			WriteTimeout:   Duration(10 * time.Second),
			IdleTimeout:    Duration(60 * time.Second),
			ShutdownGrace:  Duration(10 * time.Second),
		},
		Session: SessionConfig{
			CookieName: "loadout_session",
			TTL:        Duration(30 * time.Minute),
			SweepEvery: Duration(time.Minute),
		},
		Promo: PromoConfig{
			ImageURL: "https://affiliate.example.com/banners/loadout-728x90.png",
			LinkURL:  "https://affiliate.example.com/?ref=loadout",
			Alt:      "Sponsored",
		},
		Footer: FooterConfig{
			Author:  "Jaren Burks",
			LinkURL: "https://www.linkedin.com/in/jaren-burks-7b961323b/",
			IconURL: "/assets/LinkedIn.png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	// LOADOUT_ADDR beats PORT
	if v := os.Getenv("LOADOUT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOADOUT_STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("LOADOUT_DATA"); v != "" {
		c.Catalog.DataPath = v
	}
	if v := os.Getenv("LOADOUT_DB_PATH"); v != "" {
		c.Catalog.DBPath = v
	}
	if v := os.Getenv("LOADOUT_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name must not be empty")
	}
	for name, d := range map[string]Duration{
		"server.read_timeout":   c.Server.ReadTimeout,
		"server.write_timeout":  c.Server.WriteTimeout,
		"server.idle_timeout":   c.Server.IdleTimeout,
		"server.shutdown_grace": c.Server.ShutdownGrace,
		"session.ttl":           c.Session.TTL,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Session.SweepEvery < 0 {
		return fmt.Errorf("session.sweep_every must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
