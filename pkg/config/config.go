// Package config loads cliquer settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/cliquer/config.toml (or
// ~/.config/cliquer/config.toml). A missing default file means defaults;
// command-line flags override whatever the file sets.
//
//	[log]
//	level = "debug"
//	file = "/var/log/cliquer.log"
//	max_size_mb = 50
//
//	[engine]
//	backend = "bitset"
//	timeout = "5m"
//
//	[cache]
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/lumberjack"
)

// AppName names the config and cache directories.
const AppName = "cliquer"

// Config is the full set of file settings.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Engine EngineConfig `toml:"engine"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is where the config was read from, or empty for defaults.
	Path string `toml:"-"`
}

// LogConfig controls logging. When File is set, logs go to a rotating file
// in addition to stderr.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxAgeDays int    `toml:"max_age_days"`
	MaxBackups int    `toml:"max_backups"`
}

// EngineConfig holds the search defaults.
type EngineConfig struct {
	Backend string   `toml:"backend"`
	Pivot   string   `toml:"pivot"`
	Seeding string   `toml:"seeding"`
	Method  string   `toml:"method"`
	Timeout Duration `toml:"timeout"`

	// MaxVertices caps the vertex count of loaded graphs. Zero keeps the
	// built-in limit.
	MaxVertices int `toml:"max_vertices"`
}

// CacheConfig selects the result cache. RedisAddr takes precedence over Dir.
type CacheConfig struct {
	Enabled       bool     `toml:"enabled"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	Namespace     string   `toml:"namespace"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// ServerConfig configures `cliquer serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxAgeDays: 28,
			MaxBackups: 3,
		},
		Cache: CacheConfig{Enabled: true},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			MaxBodyBytes: 64 << 20,
		},
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the XDG cache directory (~/.cache/cliquer/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads path over the defaults. An empty path means DefaultPath, which
// may be absent; an explicit path must exist. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not decode TOML config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return cfg, nil
}

// LogWriter returns a rotating writer for Log.File, or nil when no file is
// configured.
func (c *LogConfig) LogWriter() io.WriteCloser {
	if c.File == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxAge:     c.MaxAgeDays,
		MaxBackups: c.MaxBackups,
	}
}
