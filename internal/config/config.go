package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "DFABENCH_"

// FileConfig is the on-disk YAML configuration shape for dfabench. Every
// field is optional; nil means "not set at this layer".
type FileConfig struct {
	Language     *string `yaml:"language,omitempty" env:"LANGUAGE"`
	Definition   *string `yaml:"definition,omitempty" env:"DEFINITION"`
	Loops        *int    `yaml:"loops,omitempty" env:"LOOPS"`
	Threads      *int    `yaml:"threads,omitempty" env:"THREADS"`
	Matchers     *string `yaml:"matchers,omitempty" env:"MATCHERS"`
	RegexTimeout *string `yaml:"regex_timeout,omitempty" env:"REGEX_TIMEOUT"`
	NoColor      *bool   `yaml:"no_color,omitempty" env:"NO_COLOR"`
	LogLevel     *string `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	LogFormat    *string `yaml:"log_format,omitempty" env:"LOG_FORMAT"`

	// History toggles the JSONL run log written by bench.
	History *bool `yaml:"history,omitempty" env:"HISTORY"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LocalNames lists the repo-local file names in search order.
var LocalNames = []string{".dfabench.yml", ".dfabench.yaml", "dfabench.yml", "dfabench.yaml"}

// LoadLocal searches for a local config file in dir.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// GlobalPath returns where the global config lives, or "" when neither
// XDG_CONFIG_HOME nor a home directory is available.
func GlobalPath() string {
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
	return filepath.Join(base, "dfabench", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// LoadEnv reads DFABENCH_* variables. Unset variables leave fields nil.
func LoadEnv() (FileConfig, error) {
	var cfg FileConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// Merge overlays layers from lowest to highest precedence: a field set in a
// later layer wins.
func Merge(layers ...FileConfig) FileConfig {
	var out FileConfig
	for _, l := range layers {
		if l.Language != nil {
			out.Language = l.Language
		}
		if l.Definition != nil {
			out.Definition = l.Definition
		}
		if l.Loops != nil {
			out.Loops = l.Loops
		}
		if l.Threads != nil {
			out.Threads = l.Threads
		}
		if l.Matchers != nil {
			out.Matchers = l.Matchers
		}
		if l.RegexTimeout != nil {
			out.RegexTimeout = l.RegexTimeout
		}
		if l.NoColor != nil {
			out.NoColor = l.NoColor
		}
		if l.LogLevel != nil {
			out.LogLevel = l.LogLevel
		}
		if l.LogFormat != nil {
			out.LogFormat = l.LogFormat
		}
		if l.History != nil {
			out.History = l.History
		}
	}
	return out
}

// Resolve loads global, local (from dir) and environment layers and merges
// them. Missing files are not errors; malformed ones are.
func Resolve(dir string) (FileConfig, error) {
	var layers []FileConfig
	if p := GlobalPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			g, err := LoadFile(p)
			if err != nil {
				return FileConfig{}, err
			}
			layers = append(layers, g)
		}
	}
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			l, err := LoadFile(p)
			if err != nil {
				return FileConfig{}, err
			}
			layers = append(layers, l)
			break
		}
	}
	e, err := LoadEnv()
	if err != nil {
		return FileConfig{}, err
	}
	layers = append(layers, e)
	return Merge(layers...), nil
}
