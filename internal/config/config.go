package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/neospend-dev/neospend/internal/categories"
	"github.com/neospend-dev/neospend/internal/kv"
	"github.com/neospend-dev/neospend/internal/logging"
	"github.com/neospend-dev/neospend/internal/storage"
)

// FileName is the project config file created by init.
const FileName = "neospend.yaml"

// Environment variables that override the file.
const (
	EnvStorageBackend = "NEOSPEND_STORAGE_BACKEND"
	EnvStoragePath    = "NEOSPEND_STORAGE_PATH"
	EnvStorageKey     = "NEOSPEND_STORAGE_KEY"
	EnvLogLevel       = "NEOSPEND_LOG_LEVEL"
	EnvLogFormat      = "NEOSPEND_LOG_FORMAT"
)

// Config represents the top-level neospend.yaml configuration.
type Config struct {
	Storage    StorageConfig `yaml:"storage"`
	Categories []string      `yaml:"categories"`
	Log        LogConfig     `yaml:"log"`
	Git        GitConfig     `yaml:"git"`
}

// StorageConfig selects the key-value backend holding the transaction list.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // relative paths resolve against the project directory
	Key     string `yaml:"key"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a neospend.yaml file from disk. Missing fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: string(kv.BackendFile),
			Path:    "data",
			Key:     storage.DefaultKey,
		},
		Categories: categories.Defaults(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "neospend",
			AuthorEmail: "neospend@localhost",
		},
	}
}

// Validate checks the values Load cannot check on its own.
func (c *Config) Validate() error {
	var errs []error
	if !kv.Backend(c.Storage.Backend).IsValid() {
		errs = append(errs, fmt.Errorf("storage.backend: unsupported backend %q", c.Storage.Backend))
	}
	if kv.Backend(c.Storage.Backend) != kv.BackendMemory && strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path: required"))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage.key: required"))
	}
	if len(categories.NewSet(c.Categories).All()) == 0 {
		errs = append(errs, errors.New("categories: at least one category is required"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Storage.Backend, EnvStorageBackend)
	set(&c.Storage.Path, EnvStoragePath)
	set(&c.Storage.Key, EnvStorageKey)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Log.Format, EnvLogFormat)
}

// LoadEnvFile loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// StoragePath resolves Storage.Path against the project directory.
func (c *Config) StoragePath(projectDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(projectDir, c.Storage.Path)
}

// LoggerConfig converts the log section into a logging.Config.
func (c *Config) LoggerConfig() (logging.Config, error) {
	lc := logging.DefaultConfig()
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return lc, err
	}
	lc.Level = level
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	return lc, nil
}
