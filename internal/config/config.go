package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	HistorySize int    `yaml:"history_size"`
	Color       bool   `yaml:"color"`
	HomeDir     string `yaml:"home_dir"`
}

// Load reads the config file at path. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{Color: true}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.HomeDir == "" {
		cfg.HomeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}

	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, ".gosh_history")
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 1000
	}

	return cfg, nil
}
