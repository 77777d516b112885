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

	"github.com/aherrada/gridclean/core/clean"
	"github.com/aherrada/gridclean/core/metrics"
)

type Config struct {
	Input     string          `json:"input"`
	OutputDir string          `json:"output_dir"`
	Cleaning  clean.Config    `json:"cleaning"`
	Decompose DecomposeConfig `json:"decompose"`
	Metrics   metrics.Config  `json:"metrics"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
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
	// Optional environment overrides
	if err := k.Load(env.Provider("GC_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gc_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Cleaning.SetDefaults()
	cfg.Decompose.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Cleaning.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Decompose.Validate(); err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &cfg, nil
}
