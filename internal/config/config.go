package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Delicious struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type Cache struct {
	Posts string `koanf:"posts" validate:"required"`
	Tags  string `koanf:"tags" validate:"required"`
}

type Throttle struct {
	// Interval is the minimum gap between requests, as a Go duration
	// string. The service etiquette is one second.
	Interval string `koanf:"interval" validate:"required"`
}

type Config struct {
	Delicious Delicious `koanf:"delicious"`
	Cache     Cache     `koanf:"cache"`
	Throttle  Throttle  `koanf:"throttle"`
	LogLevel  string    `koanf:"log_level" validate:"oneof=error warn info debug"`
}

func (c *Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fmt.Errorf("configuration validation failed: %v", validationErrors)
	}

	return err
}

// DefaultPath is the config location when none is given: ./.dlcs.yaml if
// present, else the user config dir.
func DefaultPath() string {
	if _, err := os.Stat(".dlcs.yaml"); err == nil {
		return ".dlcs.yaml"
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".dlcs.yaml"
	}
	return filepath.Join(configDir, "dlcs", "config.yaml")
}

// Load reads the config file over the built-in defaults. A missing file
// is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	parser := yaml.Parser()

	if err := setDefaultValues(k); err != nil {
		return nil, err
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaultValues(k *koanf.Koanf) error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return k.Load(confmap.Provider(map[string]any{
		"cache.posts":       filepath.Join(home, ".dlcs-posts.xml"),
		"cache.tags":        filepath.Join(home, ".dlcs-tags.xml"),
		"throttle.interval": "1s",
		"log_level":         "info",
	}, "."), nil)
}
