package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Log      LogConfig      `yaml:"log"`
	Resolver ResolverConfig `yaml:"resolver"`
	Cull     CullConfig     `yaml:"cull"`
	Server   ServerConfig   `yaml:"server"`
}

type StorageConfig struct {
	Backend    string      `yaml:"backend" validate:"oneof=file sqlite redis memory"`
	Dir        string      `yaml:"dir" validate:"required_if=Backend file"`
	SQLitePath string      `yaml:"sqlite_path" validate:"required_if=Backend sqlite"`
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr           string        `yaml:"addr" validate:"omitempty,hostname_port"` // ex: "localhost:6379"
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db" validate:"gte=0"`
	Prefix         string        `yaml:"prefix"`
	DialTimeout    time.Duration `yaml:"dial_timeout" validate:"min=100ms"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" validate:"min=100ms"` // total time to retry connecting
	RetryInterval  time.Duration `yaml:"retry_interval" validate:"min=10ms"`   // grows exponentially
}

type AutosaveConfig struct {
	Interval time.Duration `yaml:"interval" validate:"min=1s"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `yaml:"pretty"` // true => zap dev (console), false => zap prod (JSON)
	File   string `yaml:"file"`   // used by the TUI so logs don't corrupt the screen
}

type ResolverConfig struct {
	FetchTitles bool          `yaml:"fetch_titles"` // look up <title> for blank names
	Timeout     time.Duration `yaml:"timeout" validate:"min=100ms"`
}

type CullConfig struct {
	Concurrency    int           `yaml:"concurrency" validate:"min=1,max=64"`
	Timeout        time.Duration `yaml:"timeout" validate:"min=1s"`
	ExcludeDomains []string      `yaml:"exclude_domains" validate:"dive,required"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// baseDir returns ~/.config/shelf, or a relative fallback when the home
// directory is unknown.
func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shelf"
	}
	return filepath.Join(home, ".config", "shelf")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	dir := baseDir()
	return Config{
		Storage: StorageConfig{
			Backend:    "file",
			Dir:        filepath.Join(dir, "data"),
			SQLitePath: filepath.Join(dir, "shelf.db"),
			Redis: RedisConfig{
				Addr:           "localhost:6379",
				Prefix:         "shelf:",
				DialTimeout:    5 * time.Second,
				ConnectTimeout: 10 * time.Second,
				RetryInterval:  500 * time.Millisecond,
			},
		},
		Autosave: AutosaveConfig{Interval: 30 * time.Second},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "shelf.log"),
		},
		Resolver: ResolverConfig{
			FetchTitles: false,
			Timeout:     5 * time.Second,
		},
		Cull: CullConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
		Server: ServerConfig{Addr: "127.0.0.1:8787"},
	}
}

// DefaultPath returns the default config path: ~/.config/shelf/config.yaml
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// Load reads config from the YAML file, applies SHELF_* environment
// overrides and validates the result.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: keep defaults even if the file can't be written
		_ = Save(path, &cfg)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		// Unmarshal over the defaults so missing keys keep their default values
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Storage.SQLitePath = expandHome(cfg.Storage.SQLitePath)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Backend == "redis" && c.Storage.Redis.Addr == "" {
		return errors.New("invalid config: storage.redis.addr is required for the redis backend")
	}
	return nil
}

// applyEnv overrides config values from SHELF_* environment variables.
func applyEnv(cfg *Config) error {
	cfg.Storage.Backend = getenv("SHELF_STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Dir = getenv("SHELF_DATA_DIR", cfg.Storage.Dir)
	cfg.Storage.SQLitePath = getenv("SHELF_SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.Redis.Addr = getenv("SHELF_REDIS_ADDR", cfg.Storage.Redis.Addr)
	cfg.Storage.Redis.Password = getenv("SHELF_REDIS_PASSWORD", cfg.Storage.Redis.Password)
	cfg.Log.Level = getenv("SHELF_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getenv("SHELF_LOG_FILE", cfg.Log.File)
	cfg.Server.Addr = getenv("SHELF_SERVER_ADDR", cfg.Server.Addr)

	var err error
	if cfg.Storage.Redis.DB, err = getenvInt("SHELF_REDIS_DB", cfg.Storage.Redis.DB); err != nil {
		return err
	}
	if cfg.Autosave.Interval, err = getenvDuration("SHELF_AUTOSAVE_INTERVAL", cfg.Autosave.Interval); err != nil {
		return err
	}
	if cfg.Log.Pretty, err = getenvBool("SHELF_PRETTY_LOG", cfg.Log.Pretty); err != nil {
		return err
	}
	if cfg.Resolver.FetchTitles, err = getenvBool("SHELF_FETCH_TITLES", cfg.Resolver.FetchTitles); err != nil {
		return err
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, v)
	}
	return i, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value for %s: %s", key, v)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, v)
	}
	return b, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
