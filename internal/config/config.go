// Package config loads runtime settings: an optional TOML file first, then
// PORTFOLIO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultHost               = "0.0.0.0"
	defaultPort               = 2222
	defaultHostKeyPath        = ".data/host_ed25519"
	defaultIdleTimeout        = 120 * time.Second
	defaultMaxSessions        = 32
	defaultRateLimitPerMinute = 30
	defaultRateLimitBurst     = 10
	defaultLogLevel           = "info"
	defaultLogFormat          = "logfmt"
	maximumConfiguredSessions = 1024
)

// PathEnv names the config file when no --config flag is given.
const PathEnv = "PORTFOLIO_CONFIG"

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Config captures startup settings for both entrypoints.
type Config struct {
	SSH     SSHConfig     `toml:"ssh"`
	Prefs   PrefsConfig   `toml:"prefs"`
	Content ContentConfig `toml:"content"`
	Log     LogConfig     `toml:"log"`
}

type SSHConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	HostKeyPath        string   `toml:"host_key_path"`
	IdleTimeout        Duration `toml:"idle_timeout"`
	MaxTimeout         Duration `toml:"max_timeout"` // 0 disables
	MaxSessions        int      `toml:"max_sessions"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute"`
	RateLimitBurst     int      `toml:"rate_limit_burst"`
}

// PrefsConfig selects the preference backend. An empty Backend lets the
// entrypoint pick: file locally, sqlite on the server.
type PrefsConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// ContentConfig points at an external content file; empty uses the
// embedded copy.
type ContentConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Address is host:port for the SSH listener.
func (c SSHConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SSH: SSHConfig{
			Host:               defaultHost,
			Port:               defaultPort,
			HostKeyPath:        defaultHostKeyPath,
			IdleTimeout:        Duration(defaultIdleTimeout),
			MaxSessions:        defaultMaxSessions,
			RateLimitPerMinute: defaultRateLimitPerMinute,
			RateLimitBurst:     defaultRateLimitBurst,
		},
		Log: LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

// DefaultPath is config.toml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "portfolio-terminal", "config.toml")
}

// LoadFromEnv loads defaults plus environment overrides, without a file.
func LoadFromEnv() (Config, error) {
	return apply(Default())
}

// Load reads path (or PORTFOLIO_CONFIG, or DefaultPath) and then applies
// environment overrides. A missing file is an error only when the path was
// named explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env, ok := os.LookupEnv(PathEnv); ok && strings.TrimSpace(env) != "" {
			path, explicit = strings.TrimSpace(env), true
		} else {
			path = DefaultPath()
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return apply(cfg)
}

// apply layers PORTFOLIO_* variables over cfg and validates the result.
func apply(cfg Config) (Config, error) {
	var err error
	s := &cfg.SSH

	if s.Host, err = readRequiredOrDefault("PORTFOLIO_SSH_HOST", s.Host); err != nil {
		return Config{}, err
	}
	if s.Port, err = readInt("PORTFOLIO_SSH_PORT", s.Port, 1, 65535); err != nil {
		return Config{}, err
	}
	if s.HostKeyPath, err = readRequiredOrDefault("PORTFOLIO_SSH_HOST_KEY_PATH", s.HostKeyPath); err != nil {
		return Config{}, err
	}
	if s.IdleTimeout, err = readDuration("PORTFOLIO_SSH_IDLE_TIMEOUT", s.IdleTimeout, false); err != nil {
		return Config{}, err
	}
	if s.MaxTimeout, err = readDuration("PORTFOLIO_SSH_MAX_TIMEOUT", s.MaxTimeout, true); err != nil {
		return Config{}, err
	}
	if s.MaxSessions, err = readInt("PORTFOLIO_SSH_MAX_SESSIONS", s.MaxSessions, 1, maximumConfiguredSessions); err != nil {
		return Config{}, err
	}
	if s.RateLimitPerMinute, err = readInt("PORTFOLIO_SSH_RATE_LIMIT_PER_MINUTE", s.RateLimitPerMinute, 1, 10000); err != nil {
		return Config{}, err
	}
	if s.RateLimitBurst, err = readInt("PORTFOLIO_SSH_RATE_LIMIT_BURST", s.RateLimitBurst, 1, 1000); err != nil {
		return Config{}, err
	}

	if cfg.Prefs.Backend, err = readEnum("PORTFOLIO_PREFS_BACKEND", cfg.Prefs.Backend, "", "memory", "file", "sqlite"); err != nil {
		return Config{}, err
	}
	cfg.Prefs.Path = readOptional("PORTFOLIO_PREFS_PATH", cfg.Prefs.Path)

	cfg.Content.Path = readOptional("PORTFOLIO_CONTENT_PATH", cfg.Content.Path)
	if cfg.Content.Watch, err = readBool("PORTFOLIO_CONTENT_WATCH", cfg.Content.Watch); err != nil {
		return Config{}, err
	}

	if cfg.Log.Level, err = readEnum("PORTFOLIO_LOG_LEVEL", cfg.Log.Level, "debug", "info", "warn", "error"); err != nil {
		return Config{}, err
	}
	if cfg.Log.Format, err = readEnum("PORTFOLIO_LOG_FORMAT", cfg.Log.Format, "text", "logfmt", "json"); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks values that may have come from the file.
func (c *Config) validate() error {
	s := &c.SSH
	s.Host = strings.TrimSpace(s.Host)
	if s.Host == "" {
		return fmt.Errorf("ssh.host must not be empty")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("ssh.port must be between 1 and 65535")
	}
	clean := filepath.Clean(strings.TrimSpace(s.HostKeyPath))
	if clean == "." {
		return fmt.Errorf("ssh.host_key_path must not resolve to current directory")
	}
	s.HostKeyPath = clean
	if s.IdleTimeout <= 0 {
		return fmt.Errorf("ssh.idle_timeout must be greater than 0")
	}
	if s.MaxTimeout < 0 {
		return fmt.Errorf("ssh.max_timeout must not be negative")
	}
	if s.MaxSessions < 1 || s.MaxSessions > maximumConfiguredSessions {
		return fmt.Errorf("ssh.max_sessions must be between 1 and %d", maximumConfiguredSessions)
	}
	if s.RateLimitPerMinute < 1 || s.RateLimitBurst < 1 {
		return fmt.Errorf("ssh.rate_limit_per_minute and ssh.rate_limit_burst must be positive")
	}
	switch c.Prefs.Backend {
	case "", "memory", "file", "sqlite":
	default:
		return fmt.Errorf("prefs.backend must be one of memory, file, sqlite")
	}
	switch c.Log.Format {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("log.format must be one of text, logfmt, json")
	}
	return nil
}

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return raw, nil
}

func readOptional(key, fallback string) string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(raw)
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback Duration, allowZero bool) (Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed < 0 || (parsed == 0 && !allowZero) {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return Duration(parsed), nil
}

func readBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

func readEnum(key, fallback string, allowed ...string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if raw == a {
			return raw, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s", key, strings.Join(nonEmpty(allowed), ", "))
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
