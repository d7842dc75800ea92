// Package config loads the foundry CLI settings. Precedence is command
// flags, then environment variables, then the YAML file, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "foundry.yaml"

// Backend names a store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

// Config is the resolved CLI configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	User  string      `yaml:"user"`
}

// StoreConfig selects and configures persistence.
type StoreConfig struct {
	Backend Backend     `yaml:"backend"`
	DataDir string      `yaml:"data_dir"`
	Redis   RedisConfig `yaml:"redis"`
	Metrics bool        `yaml:"metrics"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			DataDir: ".foundry/data",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "foundry:kv:",
			},
		},
		Log:  LogConfig{Level: "info", Format: "text"},
		User: "Admin",
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("FOUNDRY_STORE"); ok && v != "" {
		cfg.Store.Backend = Backend(strings.ToLower(v))
	}
	if v, ok := lookup("FOUNDRY_DATA_DIR"); ok && v != "" {
		cfg.Store.DataDir = v
	}
	if v, ok := lookup("FOUNDRY_REDIS_ADDR"); ok && v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v, ok := lookup("FOUNDRY_REDIS_PASSWORD"); ok {
		cfg.Store.Redis.Password = v
	}
	if v, ok := lookup("FOUNDRY_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: FOUNDRY_REDIS_DB: %w", err)
		}
		cfg.Store.Redis.DB = db
	}
	if v, ok := lookup("FOUNDRY_USER"); ok && v != "" {
		cfg.User = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.Store.DataDir) == "" {
			return errors.New("config: store.data_dir is required for the file backend")
		}
	case BackendRedis:
		if strings.TrimSpace(c.Store.Redis.Addr) == "" {
			return errors.New("config: store.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	return nil
}
