// Package config loads schedkit configuration from YAML or JSON files with
// optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level configuration for the CLI and HTTP server.
type Config struct {
	Run   RunConfig   `json:"run"`
	Serve ServeConfig `json:"serve"`
}

// Default returns a configuration with every section at its defaults.
func Default() *Config {
	var cfg Config
	cfg.Run.SetDefaults()
	cfg.Serve.SetDefaults()
	return &cfg
}

// Load reads the configuration file at path. An empty path yields the
// defaults. Environment variables prefixed with SK_ override file values,
// with "__" separating nested keys (e.g. SK_RUN__TIMESTEP).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider("SK_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sk_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Run.SetDefaults()
	cfg.Serve.SetDefaults()
	if err := cfg.Run.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Serve.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
