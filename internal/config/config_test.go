package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func getenvFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func mustLoad(t *testing.T, env map[string]string) *Config {
	t.Helper()
	cfg, err := load(getenvFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	cfg := mustLoad(t, nil)

	if cfg.DocumentRoot != wd {
		t.Errorf("DocumentRoot = %q, want %q", cfg.DocumentRoot, wd)
	}
	if cfg.BindHost != "127.0.0.1" {
		t.Errorf("BindHost = %q, want 127.0.0.1", cfg.BindHost)
	}
	if cfg.BindPort != 8000 {
		t.Errorf("BindPort = %d, want 8000", cfg.BindPort)
	}
	if cfg.FallbackDocument != "index.html" {
		t.Errorf("FallbackDocument = %q, want index.html", cfg.FallbackDocument)
	}
	if cfg.HealthPath != "" {
		t.Errorf("HealthPath = %q, want empty", cfg.HealthPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if got := cfg.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8000", got)
	}
}

func TestLoadEnvironment(t *testing.T) {
	// os.Chdir + Cleanup stands in for t.Chdir (Go 1.24+) on older toolchains.
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prevWD) })
	if err := os.Mkdir("dist", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	cfg := mustLoad(t, map[string]string{
		"SPA_ROOT":        "dist",
		"SPA_HOST":        "0.0.0.0",
		"SPA_PORT":        "9090",
		"SPA_FALLBACK":    "app/shell.html",
		"SPA_HEALTH_PATH": "/healthz",
		"LOG_LEVEL":       "DEBUG",
	})

	if want := filepath.Join(wd, "dist"); cfg.DocumentRoot != want {
		t.Errorf("DocumentRoot = %q, want %q", cfg.DocumentRoot, want)
	}
	if got := cfg.Addr(); got != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want 0.0.0.0:9090", got)
	}
	if cfg.FallbackDocument != "app/shell.html" {
		t.Errorf("FallbackDocument = %q, want app/shell.html", cfg.FallbackDocument)
	}
	if cfg.HealthPath != "/healthz" {
		t.Errorf("HealthPath = %q, want /healthz", cfg.HealthPath)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(t.TempDir(), "spaserve.toml")
	body := `
document_root = "` + filepath.ToSlash(root) + `"
bind_port = 8123
fallback_document = "app.html"
log_level = "WARN"
`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Run("file values", func(t *testing.T) {
		cfg := mustLoad(t, map[string]string{"SPA_CONFIG_FILE": file})

		if cfg.ConfigFile != file {
			t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, file)
		}
		if filepath.Clean(cfg.DocumentRoot) != filepath.Clean(root) {
			t.Errorf("DocumentRoot = %q, want %q", cfg.DocumentRoot, root)
		}
		if cfg.BindHost != "127.0.0.1" {
			t.Errorf("BindHost = %q, want default 127.0.0.1", cfg.BindHost)
		}
		if cfg.BindPort != 8123 {
			t.Errorf("BindPort = %d, want 8123", cfg.BindPort)
		}
		if cfg.FallbackDocument != "app.html" {
			t.Errorf("FallbackDocument = %q, want app.html", cfg.FallbackDocument)
		}
		if cfg.LogLevel != slog.LevelWarn {
			t.Errorf("LogLevel = %v, want WARN", cfg.LogLevel)
		}
	})

	t.Run("environment wins", func(t *testing.T) {
		cfg := mustLoad(t, map[string]string{
			"SPA_CONFIG_FILE": file,
			"SPA_PORT":        "8200",
		})

		if cfg.BindPort != 8200 {
			t.Errorf("BindPort = %d, want 8200", cfg.BindPort)
		}
		if cfg.FallbackDocument != "app.html" {
			t.Errorf("FallbackDocument = %q, want app.html", cfg.FallbackDocument)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := load(getenvFrom(map[string]string{
			"SPA_CONFIG_FILE": filepath.Join(root, "nope.toml"),
		})); err == nil {
			t.Error("load succeeded with a missing config file")
		}
	})
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("<h1>home</h1>"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not a number", map[string]string{"SPA_PORT": "http"}},
		{"port too large", map[string]string{"SPA_PORT": "70000"}},
		{"port zero", map[string]string{"SPA_PORT": "0"}},
		{"absolute fallback", map[string]string{"SPA_FALLBACK": "/index.html"}},
		{"escaping fallback", map[string]string{"SPA_FALLBACK": "../index.html"}},
		{"relative health path", map[string]string{"SPA_HEALTH_PATH": "healthz"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "LOUD"}},
		{"missing document root", map[string]string{"SPA_ROOT": filepath.Join(dir, "nope")}},
		{"document root is a file", map[string]string{"SPA_ROOT": file}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(getenvFrom(tt.env)); err == nil {
				t.Errorf("load(%v) succeeded, want error", tt.env)
			}
		})
	}
}
