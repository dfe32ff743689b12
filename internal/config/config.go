// Package config loads the composer's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/composer"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/operations"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

const (
	EnvCatalog     = "NOUNS_CATALOG"
	EnvMaxAttempts = "NOUNS_MAX_ATTEMPTS"
)

// CatalogSource describes one trait catalog (a brand skin).
type CatalogSource struct {
	Path     string
	Checksum string
	Variant  seed.Variant
	// Compression pins the source encoding; empty means detect it.
	Compression string
}

// Config is the resolved configuration.
type Config struct {
	LogLevel       string
	MaxAttempts    int
	DefaultCatalog string
	Catalogs       map[string]CatalogSource
}

type fileConfig struct {
	LogLevel       string                       `toml:"log_level"`
	MaxAttempts    int                          `toml:"max_attempts"`
	DefaultCatalog string                       `toml:"default_catalog"`
	Catalogs       map[string]fileCatalogSource `toml:"catalogs"`
}

type fileCatalogSource struct {
	Path        string `toml:"path"`
	Checksum    string `toml:"checksum"`
	Variant     string `toml:"variant"`
	Compression string `toml:"compression"`
}

// Default returns the built-in configuration: the nouns skin on the basic
// variant and the mfers skin on the extended one.
func Default() Config {
	dir := Dir()
	return Config{
		LogLevel:       "",
		MaxAttempts:    composer.DefaultMaxAttempts,
		DefaultCatalog: "nouns",
		Catalogs: map[string]CatalogSource{
			"nouns": {
				Path:    filepath.Join(dir, "traits", "mfbldr-traits-layers_v1.json"),
				Variant: seed.Basic,
			},
			"mfers": {
				Path:    filepath.Join(dir, "traits", "mfer-traits-layers_v1.json"),
				Variant: seed.Extended,
			},
		},
	}
}

// Load reads path over Default and applies environment overrides. An empty
// path means DefaultPath, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	} else if err := decodeFile(path, &cfg); err != nil {
		return Config{}, err
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown keys %v", undecoded)
	}

	base := filepath.Dir(path)

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("max_attempts") {
		if raw.MaxAttempts < 1 {
			return fmt.Errorf("parse max_attempts: must be positive, got %d", raw.MaxAttempts)
		}
		cfg.MaxAttempts = raw.MaxAttempts
	}

	if meta.IsDefined("default_catalog") {
		cfg.DefaultCatalog = strings.TrimSpace(raw.DefaultCatalog)
	}

	for name, src := range raw.Catalogs {
		entry := cfg.Catalogs[name]
		if meta.IsDefined("catalogs", name, "path") {
			entry.Path = resolvePath(base, strings.TrimSpace(src.Path))
		}
		if meta.IsDefined("catalogs", name, "checksum") {
			entry.Checksum = strings.TrimSpace(src.Checksum)
		}
		if meta.IsDefined("catalogs", name, "variant") {
			v, err := seed.ParseVariant(src.Variant)
			if err != nil {
				return fmt.Errorf("parse catalogs.%s.variant: %w", name, err)
			}
			entry.Variant = v
		}
		if meta.IsDefined("catalogs", name, "compression") {
			c := strings.ToLower(strings.TrimSpace(src.Compression))
			if c != "auto" {
				if _, err := operations.ByName(c); err != nil {
					return fmt.Errorf("parse catalogs.%s.compression: %w", name, err)
				}
			}
			entry.Compression = c
		}
		if entry.Path == "" {
			return fmt.Errorf("catalogs.%s: path is required", name)
		}
		cfg.Catalogs[name] = entry
	}

	if _, ok := cfg.Catalogs[cfg.DefaultCatalog]; !ok {
		return fmt.Errorf("default_catalog %q is not configured (have %s)",
			cfg.DefaultCatalog, strings.Join(cfg.CatalogNames(), ", "))
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if name := strings.TrimSpace(os.Getenv(EnvCatalog)); name != "" {
		if _, ok := cfg.Catalogs[name]; !ok {
			return fmt.Errorf("%s=%q is not a configured catalog", EnvCatalog, name)
		}
		cfg.DefaultCatalog = name
	}
	if raw := strings.TrimSpace(os.Getenv(EnvMaxAttempts)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("%s=%q must be a positive integer", EnvMaxAttempts, raw)
		}
		cfg.MaxAttempts = n
	}
	return nil
}

// CatalogNames lists configured catalogs, sorted.
func (c Config) CatalogNames() []string {
	names := make([]string, 0, len(c.Catalogs))
	for name := range c.Catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the named source, or the default when name is empty.
func (c Config) Catalog(name string) (string, CatalogSource, error) {
	if name == "" {
		name = c.DefaultCatalog
	}
	src, ok := c.Catalogs[name]
	if !ok {
		return "", CatalogSource{}, fmt.Errorf("unknown catalog %q (have %s)", name, strings.Join(c.CatalogNames(), ", "))
	}
	return name, src, nil
}
