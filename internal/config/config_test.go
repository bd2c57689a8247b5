package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/chat-tui/internal/transport"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat-tui.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ServerAddr != "localhost:8080" {
		t.Fatalf("expected default address, got %q", cfg.App.ServerAddr)
	}
	if cfg.App.TickInterval != time.Second {
		t.Fatalf("expected 1s tick, got %s", cfg.App.TickInterval)
	}
	if cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("expected footer and trace disabled by default")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := writeConfigFile(t, "server: file.example:1\ntick: 250ms\nwidth: 100\nfooter: true\nlog_file: /tmp/file.log\n")

	cfg, err := LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ServerAddr != "file.example:1" || cfg.App.TickInterval != 250*time.Millisecond {
		t.Fatalf("expected file values, got %#v", cfg.App)
	}
	if cfg.App.Width != 100 || !cfg.App.ShowFooter || cfg.Logging.FilePath != "/tmp/file.log" {
		t.Fatalf("expected file values, got %#v %#v", cfg.App, cfg.Logging)
	}

	env := []string{"CHAT_TUI_ADDR=env.example:2", "CHAT_TUI_WIDTH=90", "CHAT_TUI_CONFIG=" + path}
	cfg, err = LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ServerAddr != "env.example:2" || cfg.App.Width != 90 {
		t.Fatalf("expected env to override file, got %#v", cfg.App)
	}
	if cfg.App.TickInterval != 250*time.Millisecond {
		t.Fatalf("expected file tick to survive, got %s", cfg.App.TickInterval)
	}

	cfg, err = LoadArgs([]string{"-server", "flag.example:3", "-width=80"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ServerAddr != "flag.example:3" || cfg.App.Width != 80 {
		t.Fatalf("expected flags to override env, got %#v", cfg.App)
	}
	if cfg.Flags["config"] != path {
		t.Fatalf("expected config path recorded, got %q", cfg.Flags["config"])
	}
}

func TestLoadArgsPositionalAddress(t *testing.T) {
	cfg, err := LoadArgs([]string{"-footer", "ws://chat.example/ws"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ServerAddr != "ws://chat.example/ws" {
		t.Fatalf("expected positional address, got %q", cfg.App.ServerAddr)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer flag parsed")
	}
	if _, err := LoadArgs([]string{"a:1", "b:2"}, nil); err == nil {
		t.Fatalf("expected error for two addresses")
	}
}

func TestLoadArgsIgnoresMalformedEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"CHAT_TUI_TICK=soon", "CHAT_TUI_HEIGHT=tall", "CHAT_TUI_TRACE=maybe", "garbage"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.TickInterval != time.Second || cfg.App.Height != 0 || cfg.Logging.Trace {
		t.Fatalf("expected defaults for malformed env, got %#v", cfg)
	}
}

func TestLoadArgsRejectsBadFile(t *testing.T) {
	if _, err := LoadArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := writeConfigFile(t, "tick: [1\n")
	if _, err := LoadArgs([]string{"-config=" + path}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
	path = writeConfigFile(t, "tick: eventually\n")
	_, err := LoadArgs([]string{"-config", path}, nil)
	if err == nil || !strings.Contains(err.Error(), "tick") {
		t.Fatalf("expected tick error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick", func(c *Config) { c.App.TickInterval = 0 }},
		{"negative width", func(c *Config) { c.App.Width = -1 }},
		{"negative height", func(c *Config) { c.App.Height = -1 }},
		{"empty address", func(c *Config) { c.App.ServerAddr = "" }},
		{"bad scheme", func(c *Config) { c.App.ServerAddr = "udp://x:1" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
	cfg := base
	cfg.App.ServerAddr = "gopher://x"
	if err := Validate(cfg); !errors.Is(err, transport.ErrUnsupportedScheme) {
		t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
	}
}
