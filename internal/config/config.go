package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for stkeys. Nil fields
// fall through to the next source.
type FileConfig struct {
	StartYear *int    `yaml:"start_year,omitempty"`
	EndYear   *int    `yaml:"end_year,omitempty"`
	Threads   *int    `yaml:"threads,omitempty"`
	KeySize   *int    `yaml:"key_size,omitempty"`
	Format    *string `yaml:"format,omitempty"`
	NoColor   *bool   `yaml:"no_color,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in dir.
// It supports .stkeys.yml/.yaml and stkeys.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".stkeys.yml", ".stkeys.yaml", "stkeys.yml", "stkeys.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// Dir returns the per-user stkeys config directory, or "" if none can be
// determined.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "stkeys")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	dir := Dir()
	if dir == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
