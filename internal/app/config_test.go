package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvHome, EnvInterval, EnvTimeout, EnvPassphrase, EnvMetricsAddr, EnvVerbose} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Interval != 30*time.Second || cfg.Timeout != 15*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	body := strings.Join([]string{
		"SANTAOS_API_URL=http://file.example:9000",
		"SANTAOS_INTERVAL=45s",
		"SANTAOS_VERBOSE=true",
		"SANTAOS_PASSPHRASE=from-file",
	}, "\n")
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIURL, "http://env.example:7000")
	t.Setenv(EnvTimeout, "2s")

	cfg, err := LoadConfig(envFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "http://env.example:7000" {
		t.Fatalf("APIURL = %q, environment should win", cfg.APIURL)
	}
	if cfg.Interval != 45*time.Second || cfg.Timeout != 2*time.Second || !cfg.Verbose || cfg.Passphrase != "from-file" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfig_BadValues(t *testing.T) {
	for key, val := range map[string]string{EnvInterval: "soon", EnvTimeout: "-", EnvVerbose: "maybe"} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			if _, err := LoadConfig(""); err == nil || !strings.Contains(err.Error(), key) {
				t.Fatalf("want error naming %s, got %v", key, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	ok := DefaultConfig()
	cases := map[string]func(*Config){
		"empty url":     func(c *Config) { c.APIURL = "" },
		"relative url":  func(c *Config) { c.APIURL = "localhost" },
		"empty home":    func(c *Config) { c.Home = "" },
		"zero interval": func(c *Config) { c.Interval = 0 },
		"neg timeout":   func(c *Config) { c.Timeout = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := ok
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
