package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/logging"
)

// Config is read from ~/.tada/config.yaml, then overridden by the
// environment and finally by command-line flags.
type Config struct {
	Store StoreConfig    `yaml:"store"`
	Theme string         `yaml:"theme"`
	Log   logging.Config `yaml:"log"`

	// set when Store.Path was filled in by resolve rather than by the user
	defaultedPath bool
}

type StoreConfig struct {
	Kind string `yaml:"kind"` // memory | json | sqlite
	Path string `yaml:"path"` // directory for json, file for sqlite
}

const (
	dirName        = ".tada"
	configFileName = "config.yaml"
	dbFileName     = "tada.db"
)

// Dir is the per-user data directory, ~/.tada.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath is the config file consulted when --config is not given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func Default() Config {
	return Config{
		Store: StoreConfig{Kind: "json"},
		Theme: "classic",
		Log:   logging.NewConfigFromEnv(),
	}
}

// Load reads path (DefaultPath when empty) over the defaults and applies
// TADA_STORE, TADA_PATH and TADA_THEME. A missing file is not an error
// unless path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, cfg.resolve()
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("TADA_STORE")); v != "" {
		c.Store.Kind = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_PATH")); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_THEME")); v != "" {
		c.Theme = v
	}
}

// Override applies non-empty command-line values and re-resolves. A new
// store kind without a path gets that kind's default location.
func (c *Config) Override(kind, path, theme, logLevel string) error {
	if kind != "" {
		c.Store.Kind = kind
	}
	if path != "" {
		c.Store.Path = path
		c.defaultedPath = false
	}
	if theme != "" {
		c.Theme = theme
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	return c.resolve()
}

// resolve fills the store path for the chosen kind and expands "~".
func (c *Config) resolve() error {
	c.Store.Kind = strings.ToLower(strings.TrimSpace(c.Store.Kind))
	if c.Store.Kind == "" {
		c.Store.Kind = "json"
	}
	if c.defaultedPath {
		c.Store.Path = ""
		c.defaultedPath = false
	}

	p, err := expandHome(c.Store.Path)
	if err != nil {
		return err
	}
	if p == "" && c.Store.Kind != "memory" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		p = dir
		if c.Store.Kind == "sqlite" {
			p = filepath.Join(dir, dbFileName)
		}
		c.defaultedPath = true
	}
	c.Store.Path = p

	if strings.HasPrefix(c.Log.Output, "file:~") {
		lp, err := expandHome(strings.TrimPrefix(c.Log.Output, "file:"))
		if err != nil {
			return err
		}
		c.Log.Output = "file:" + lp
	}
	return nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
