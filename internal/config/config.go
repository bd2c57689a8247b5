package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/chat-tui/internal/app"
	"github.com/atomicstack/chat-tui/internal/transport"
	"github.com/atomicstack/chat-tui/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envServerAddr   = "CHAT_TUI_ADDR"
	envTick         = "CHAT_TUI_TICK"
	envDialTimeout  = "CHAT_TUI_DIAL_TIMEOUT"
	envWidth        = "CHAT_TUI_WIDTH"
	envHeight       = "CHAT_TUI_HEIGHT"
	envShowFooter   = "CHAT_TUI_FOOTER"
	envVerbose      = "CHAT_TUI_VERBOSE"
	envTrace        = "CHAT_TUI_TRACE"
	envLogFile      = "CHAT_TUI_LOG_FILE"
	envConfigFile   = "CHAT_TUI_CONFIG"
	defaultTick     = time.Second
	defaultDialWait = 10 * time.Second
	dialInterval    = 500 * time.Millisecond
)

// fileConfig is the optional YAML file. Every field is optional; absent
// fields fall through to built-in defaults.
type fileConfig struct {
	Server      string `yaml:"server"`
	Tick        string `yaml:"tick"`
	DialTimeout string `yaml:"dial_timeout"`
	Width       *int   `yaml:"width"`
	Height      *int   `yaml:"height"`
	Footer      *bool  `yaml:"footer"`
	Verbose     *bool  `yaml:"verbose"`
	Trace       *bool  `yaml:"trace"`
	LogFile     string `yaml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// as flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := configPath(args, env)
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	defaults, err := file.defaults()
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	fs := flag.NewFlagSet("chat-tui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	_ = fs.String("config", path, "path to a YAML config file")
	server := fs.String("server", envOrDefault(env, envServerAddr, defaults.server), "chat server address (host:port, tcp://, ws:// or wss://)")
	tick := fs.Duration("tick", envOrDuration(env, envTick, defaults.tick), "clock tick period")
	dialTimeout := fs.Duration("dial-timeout", envOrDuration(env, envDialTimeout, defaults.dialTimeout), "time allowed for each connection attempt")
	width := fs.Int("width", envOrInt(env, envWidth, defaults.width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, defaults.height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, defaults.footer), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, defaults.trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, defaults.verbose), "show informational status messages")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, defaults.logFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		*server = fs.Arg(0)
	default:
		return Config{}, fmt.Errorf("expected at most one server address, got %d arguments", fs.NArg())
	}

	cfg := Config{
		App: app.Config{
			ServerAddr:   strings.TrimSpace(*server),
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			TickInterval: *tick,
			DialTimeout:  *dialTimeout,
			DialInterval: dialInterval,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		File: path,
		Flags: map[string]string{
			"server":      *server,
			"tick":        tick.String(),
			"dialTimeout": dialTimeout.String(),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"config":      path,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath finds the config file before flags are parsed, since the file
// supplies the flag defaults.
func configPath(args []string, env map[string]string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return envOrDefault(env, envConfigFile, "")
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

type resolvedDefaults struct {
	server      string
	tick        time.Duration
	dialTimeout time.Duration
	width       int
	height      int
	footer      bool
	verbose     bool
	trace       bool
	logFile     string
}

func (fc fileConfig) defaults() (resolvedDefaults, error) {
	d := resolvedDefaults{
		server:      ui.DefaultServerAddr,
		tick:        defaultTick,
		dialTimeout: defaultDialWait,
		logFile:     fc.LogFile,
	}
	if fc.Server != "" {
		d.server = fc.Server
	}
	if fc.Tick != "" {
		v, err := time.ParseDuration(fc.Tick)
		if err != nil {
			return d, fmt.Errorf("tick: %w", err)
		}
		d.tick = v
	}
	if fc.DialTimeout != "" {
		v, err := time.ParseDuration(fc.DialTimeout)
		if err != nil {
			return d, fmt.Errorf("dial_timeout: %w", err)
		}
		d.dialTimeout = v
	}
	if fc.Width != nil {
		d.width = *fc.Width
	}
	if fc.Height != nil {
		d.height = *fc.Height
	}
	if fc.Footer != nil {
		d.footer = *fc.Footer
	}
	if fc.Verbose != nil {
		d.verbose = *fc.Verbose
	}
	if fc.Trace != nil {
		d.trace = *fc.Trace
	}
	return d, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.TickInterval <= 0 {
		return fmt.Errorf("tick must be > 0 (got %s)", cfg.App.TickInterval)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.DialTimeout < 0 {
		return fmt.Errorf("dial timeout must be >= 0 (got %s)", cfg.App.DialTimeout)
	}
	if _, _, err := transport.ParseAddress(cfg.App.ServerAddr); err != nil {
		return fmt.Errorf("server address: %w", err)
	}
	return nil
}
