package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "DOCSEARCH_"
	// Delimiter is the key delimiter for nested config.
	Delimiter = "."
)

// Loader handles configuration loading from various sources.
type Loader struct {
	k *koanf.Koanf
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		k: koanf.New(Delimiter),
	}
}

// Load loads configuration with the following priority:
// 1. Explicit overrides (highest)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func (l *Loader) Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := l.loadFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		l.loadDefaultFiles()
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := l.k.Load(confmap.Provider(overrides, Delimiter), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "mapstructure",
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateWithDetails(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDefaults loads the default configuration. Defaults are provided as
// flat leaf keys so that values from files and the environment merge
// per-field instead of replacing whole sections.
func (l *Loader) loadDefaults() error {
	defaults := DefaultConfig()
	return l.k.Load(confmap.Provider(map[string]interface{}{
		"engine.stop_words":   defaults.Engine.StopWords,
		"engine.shard_count":  defaults.Engine.ShardCount,
		"engine.worker_count": defaults.Engine.WorkerCount,
		"corpus.path":         defaults.Corpus.Path,
		"log.level":           defaults.Log.Level,
		"log.format":          defaults.Log.Format,
		"log.output":          defaults.Log.Output,
		"metrics.enabled":     defaults.Metrics.Enabled,
		"metrics.port":        defaults.Metrics.Port,
		"metrics.path":        defaults.Metrics.Path,
		"display.page_size":   defaults.Display.PageSize,
	}, Delimiter), nil)
}

// loadFile loads configuration from a file, picking the parser by extension.
func (l *Loader) loadFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser

	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", path)
	}

	return l.k.Load(file.Provider(path), parser)
}

// loadDefaultFiles tries standard config locations, first hit wins.
func (l *Loader) loadDefaultFiles() {
	candidates := []string{
		"docsearch.yaml",
		"docsearch.yml",
		"docsearch.json",
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			if err := l.loadFile(candidate); err == nil {
				return
			}
		}
	}
}

// loadEnv maps DOCSEARCH_ENGINE_SHARD_COUNT style variables onto
// engine.shard_count style keys.
func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(EnvPrefix, Delimiter, func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		// Only the first underscore separates the section from the field;
		// the rest belong to snake_case field names.
		return strings.Replace(key, "_", Delimiter, 1)
	}), nil)
}
