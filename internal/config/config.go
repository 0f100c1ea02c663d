package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 8000
	DefaultFallback = "index.html"
)

type Config struct {
	ConfigFile       string     `env:"SPA_CONFIG_FILE" toml:"-"`
	DocumentRoot     string     `env:"SPA_ROOT" toml:"document_root"`
	BindHost         string     `env:"SPA_HOST" toml:"bind_host"`
	BindPort         int        `env:"SPA_PORT" toml:"bind_port"`
	FallbackDocument string     `env:"SPA_FALLBACK" toml:"fallback_document"`
	HealthPath       string     `env:"SPA_HEALTH_PATH" toml:"health_path"`
	LogLevel         slog.Level `env:"LOG_LEVEL" toml:"log_level"`
}

// Load builds the configuration from defaults, an optional TOML file named
// by SPA_CONFIG_FILE, and the environment, in that order of precedence.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	cfg := Config{
		DocumentRoot:     wd,
		BindHost:         DefaultHost,
		BindPort:         DefaultPort,
		FallbackDocument: DefaultFallback,
		LogLevel:         slog.LevelInfo,
	}

	if file := getenv("SPA_CONFIG_FILE"); file != "" {
		if _, err := toml.DecodeFile(file, &cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", file, err)
		}
		cfg.ConfigFile = file
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: environ(getenv),
	}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if !filepath.IsAbs(cfg.DocumentRoot) {
		cfg.DocumentRoot = filepath.Join(wd, cfg.DocumentRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// environ snapshots the variables Config reads so tests can inject them.
func environ(getenv func(string) string) map[string]string {
	keys := []string{
		"SPA_CONFIG_FILE", "SPA_ROOT", "SPA_HOST", "SPA_PORT",
		"SPA_FALLBACK", "SPA_HEALTH_PATH", "LOG_LEVEL",
	}
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		if v := getenv(k); v != "" {
			m[k] = v
		}
	}
	return m
}

func (c *Config) Validate() error {
	var errs []error
	if c.BindPort < 1 || c.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("bind port %d out of range", c.BindPort))
	}
	if c.BindHost == "" {
		errs = append(errs, errors.New("bind host is empty"))
	}
	if c.FallbackDocument == "" {
		errs = append(errs, errors.New("fallback document is empty"))
	} else if strings.HasPrefix(c.FallbackDocument, "/") || hasDotDot(c.FallbackDocument) {
		errs = append(errs, fmt.Errorf("fallback document %q must be relative to the document root", c.FallbackDocument))
	}
	if info, err := os.Stat(c.DocumentRoot); err != nil {
		errs = append(errs, fmt.Errorf("document root: %w", err))
	} else if !info.IsDir() {
		errs = append(errs, fmt.Errorf("document root %s is not a directory", c.DocumentRoot))
	}
	if c.HealthPath != "" && !strings.HasPrefix(c.HealthPath, "/") {
		errs = append(errs, fmt.Errorf("health path %q must start with /", c.HealthPath))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindHost, strconv.Itoa(c.BindPort))
}

func hasDotDot(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
