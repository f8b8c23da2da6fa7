package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	"santaos/internal/api"
	"santaos/internal/observability"
	"santaos/internal/syncstore"
)

// Environment variables read by LoadConfig.
const (
	EnvAPIURL      = "SANTAOS_API_URL"
	EnvHome        = "SANTAOS_HOME"
	EnvInterval    = "SANTAOS_INTERVAL"
	EnvTimeout     = "SANTAOS_TIMEOUT"
	EnvPassphrase  = "SANTAOS_PASSPHRASE"
	EnvMetricsAddr = "SANTAOS_METRICS_ADDR"
	EnvVerbose     = "SANTAOS_VERBOSE"
)

// DefaultAPIURL points at a local northpole dev server.
const DefaultAPIURL = "http://127.0.0.1:8080"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string        // config directory, e.g. $HOME/.santaos
	APIURL      string        // REST base URL
	Interval    time.Duration // poll period shared by every view
	Timeout     time.Duration // per-request bound
	Passphrase  string        // unlocks the stored session
	MetricsAddr string        // optional listen address for /metrics
	Verbose     bool

	HTTP    *http.Client // optional; defaults to http.DefaultClient
	Clock   clockwork.Clock
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home := ".santaos"
	if h, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(h, ".santaos")
	}
	return Config{
		Home:     home,
		APIURL:   DefaultAPIURL,
		Interval: syncstore.DefaultInterval,
		Timeout:  api.DefaultTimeout,
	}
}

// LoadConfig layers envFile (when it exists) and the process environment
// over the defaults. Process variables win over the file.
func LoadConfig(envFile string) (Config, error) {
	file := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	return fromEnv(DefaultConfig(), func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	})
}

func fromEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := lookup(EnvHome); ok && v != "" {
		cfg.Home = v
	}
	if v, ok := lookup(EnvPassphrase); ok {
		cfg.Passphrase = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	for key, dst := range map[string]*time.Duration{EnvInterval: &cfg.Interval, EnvTimeout: &cfg.Timeout} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url %q is not absolute", c.APIURL)
	}
	if c.Home == "" {
		return errors.New("home directory is required")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Interval)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
