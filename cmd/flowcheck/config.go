package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds CLI configuration, loaded from an optional YAML file with
// FLOWCHECK_* environment overrides on top.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	CacheSize int    `koanf:"cache_size"`
	Format    string `koanf:"format"` // text or json
}

func defaultConfig() Config {
	return Config{LogLevel: "info", CacheSize: 256, Format: "text"}
}

// loadConfig layers file and environment over the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider("FLOWCHECK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FLOWCHECK_"))
	}), nil)
	if err != nil {
		return cfg, fmt.Errorf("loading environment config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
