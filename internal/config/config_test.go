package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// isolate points every config source at a temp dir so host files and
// BURROW_* variables can't leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("HOME", tmp)
	for _, name := range []string{
		"BURROW_START_URL", "BURROW_PROXY", "BURROW_DOWNLOAD_DIR",
		"BURROW_DB_PATH", "BURROW_TLS", "BURROW_TOR", "BURROW_WIDE",
		"BURROW_EMOJI", "BURROW_NO_DB",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return tmp
}

func TestLoad_Defaults(t *testing.T) {
	tmp := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StartURL != defaultStartURL {
		t.Fatalf("unexpected start URL: %s", cfg.StartURL)
	}
	if cfg.ProxyAddr != "127.0.0.1:9050" {
		t.Fatalf("unexpected proxy address: %s", cfg.ProxyAddr)
	}
	if cfg.DownloadDir != filepath.Join(tmp, "Downloads") {
		t.Fatalf("unexpected download dir: %s", cfg.DownloadDir)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected a default db path")
	}
	if cfg.TLS || cfg.Tor || cfg.Wide {
		t.Fatalf("unexpected flags set: %+v", cfg)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)

	path, err := xdg.ConfigFile(filepath.Join("burrow", "config.toml"))
	if err != nil {
		t.Fatalf("resolve config path: %v", err)
	}
	content := "start_url = \"gopher://sdf.org/1/\"\ntor = true\nwide = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StartURL != "gopher://sdf.org/1/" {
		t.Fatalf("unexpected start URL: %s", cfg.StartURL)
	}
	if !cfg.Tor || !cfg.Wide {
		t.Fatalf("file settings not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path, err := xdg.ConfigFile(filepath.Join("burrow", "config.toml"))
	if err != nil {
		t.Fatalf("resolve config path: %v", err)
	}
	if err := os.WriteFile(path, []byte("start_url = \"gopher://sdf.org/1/\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BURROW_START_URL", "gopher://bitreich.org/1/lawn")
	t.Setenv("BURROW_TLS", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.StartURL != "gopher://bitreich.org/1/lawn" {
		t.Fatalf("env override lost: %s", cfg.StartURL)
	}
	if !cfg.TLS {
		t.Fatal("BURROW_TLS=yes should enable TLS")
	}
}

func TestLoad_TLSAndTorExclusive(t *testing.T) {
	isolate(t)
	t.Setenv("BURROW_TLS", "1")
	t.Setenv("BURROW_TOR", "1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for tls+tor")
	}
}

func TestValidate_ProxyAddr(t *testing.T) {
	cfg := Config{
		StartURL:  "gopher://example.com/1/",
		ProxyAddr: "not-a-hostport",
		NoDB:      true,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for proxy address")
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		if !isTruthy(v) {
			t.Fatalf("%q should be truthy", v)
		}
	}
	for _, v := range []string{"0", "false", "no", "off", ""} {
		if isTruthy(v) {
			t.Fatalf("%q should be falsy", v)
		}
	}
}
