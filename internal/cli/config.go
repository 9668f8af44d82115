package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

const defaultListen = "127.0.0.1:8080"

// Config is the contents of config.toml. Command-line flags override it.
type Config struct {
	Orientation string   `toml:"orientation"`
	Formats     []string `toml:"formats"`
	Scale       float64  `toml:"scale"`
	Strict      bool     `toml:"strict"`

	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`

	Store    string `toml:"store"`
	MongoURI string `toml:"mongo_uri"`

	Listen string `toml:"listen"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Orientation: pipeline.DefaultOrientation,
		Formats:     []string{pipeline.FormatSVG},
		Scale:       pipeline.DefaultScale,
		Cache:       CacheFile,
		RedisAddr:   "localhost:6379",
		Store:       StoreFile,
		MongoURI:    "mongodb://localhost:27017",
		Listen:      defaultListen,
	}
}

// configPath returns path, or the default config file when path is empty.
func configPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file at path (or the default location).
// A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	path, err := configPath(path)
	if err != nil {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), arborerrors.Wrap(arborerrors.ErrCodeInvalidInput, err, "parse config.toml")
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	c.Orientation = strings.ToLower(strings.TrimSpace(c.Orientation))
	opts := pipeline.Options{Orientation: c.Orientation, Formats: c.Formats, Scale: c.Scale}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Cache {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "config: unknown cache backend %q", c.Cache)
	}
	switch c.Store {
	case StoreFile, StoreMongo, StoreMemory:
	default:
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "config: unknown store backend %q", c.Store)
	}
	return nil
}

// pipelineOptions returns the pipeline options implied by the config.
func (c Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Strict:      c.Strict,
		Orientation: c.Orientation,
		Formats:     append([]string(nil), c.Formats...),
		Scale:       c.Scale,
	}
}
