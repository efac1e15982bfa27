// Package config loads runtime settings from an optional TOML file
// and BURROW_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/glabrego/burrow/internal/gopher"
)

const defaultStartURL = "gopher://" + gopher.InternalHost + "/1/home"

// Config holds runtime settings for the client.
type Config struct {
	StartURL    string `koanf:"start_url"`
	TLS         bool   `koanf:"tls"`
	Tor         bool   `koanf:"tor"`
	ProxyAddr   string `koanf:"proxy_addr"`
	Wide        bool   `koanf:"wide"`
	Emoji       bool   `koanf:"emoji"`
	DownloadDir string `koanf:"download_dir"`
	DBPath      string `koanf:"db_path"`
	NoDB        bool   `koanf:"no_db"`
}

// Load reads config files in priority order (last wins), then applies
// environment overrides and defaults.
func Load() (Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configPaths() []string {
	paths := []string{}
	if p, err := xdg.ConfigFile(filepath.Join("burrow", "config.toml")); err == nil {
		paths = append(paths, p)
	}
	paths = append(paths, "burrow.toml")
	return paths
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BURROW_START_URL"); v != "" {
		cfg.StartURL = v
	}
	if v := os.Getenv("BURROW_PROXY"); v != "" {
		cfg.ProxyAddr = v
	}
	if v := os.Getenv("BURROW_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("BURROW_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BURROW_TLS"); v != "" {
		cfg.TLS = isTruthy(v)
	}
	if v := os.Getenv("BURROW_TOR"); v != "" {
		cfg.Tor = isTruthy(v)
	}
	if v := os.Getenv("BURROW_WIDE"); v != "" {
		cfg.Wide = isTruthy(v)
	}
	if v := os.Getenv("BURROW_EMOJI"); v != "" {
		cfg.Emoji = isTruthy(v)
	}
	if v := os.Getenv("BURROW_NO_DB"); v != "" {
		cfg.NoDB = isTruthy(v)
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.StartURL == "" {
		cfg.StartURL = defaultStartURL
	}
	if cfg.ProxyAddr == "" {
		cfg.ProxyAddr = "127.0.0.1:9050"
	}
	if cfg.DownloadDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DownloadDir = filepath.Join(home, "Downloads")
		} else {
			cfg.DownloadDir = "."
		}
	}
	if cfg.DBPath == "" && !cfg.NoDB {
		if p, err := xdg.DataFile(filepath.Join("burrow", "burrow.db")); err == nil {
			cfg.DBPath = p
		} else {
			cfg.DBPath = "burrow.db"
		}
	}
}

func (c Config) Validate() error {
	if c.TLS && c.Tor {
		return fmt.Errorf("tls and tor are mutually exclusive")
	}
	if c.StartURL == "" {
		return fmt.Errorf("start_url is required")
	}
	if c.ProxyAddr != "" && !strings.Contains(c.ProxyAddr, ":") {
		return fmt.Errorf("proxy_addr must be host:port: %s", c.ProxyAddr)
	}
	if c.DBPath == "" && !c.NoDB {
		return fmt.Errorf("db_path is required unless no_db is set")
	}
	return nil
}
