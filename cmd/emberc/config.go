package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration: where to find the standard
// library and any extra module search paths, plus the source file
// extension the resolver should append to dotted import names.
type Config struct {
	StdlibPath  string   `yaml:"stdlib_path"`
	SearchPaths []string `yaml:"search_paths"`
	Extension   string   `yaml:"extension"`
}

func defaultConfig() Config {
	return Config{Extension: ".ember"}
}

// loadConfig reads path if it exists, falling back to defaults
// otherwise; a missing config file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Extension == "" {
		cfg.Extension = ".ember"
	}
	return cfg, nil
}
