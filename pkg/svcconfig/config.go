// Package svcconfig loads the optional YAML configuration of the agent process.
package svcconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides DefaultPath when set.
const EnvPath = "MAA_GO_SERVICE_CONFIG"

// DefaultPath is relative to the working directory the host starts us in.
const DefaultPath = "config/go-service.yaml"

type LogConfig struct {
	Level        string `yaml:"level"`
	ConsoleLevel string `yaml:"console_level"`
	Dir          string `yaml:"dir"`
	MaxSizeMB    int    `yaml:"max_size_mb"`
	MaxBackups   int    `yaml:"max_backups"`
}

type MaaFWConfig struct {
	LibDir string `yaml:"lib_dir"`
}

type Config struct {
	Log   LogConfig   `yaml:"log"`
	MaaFW MaaFWConfig `yaml:"maafw"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:        "debug",
			ConsoleLevel: "info",
			Dir:          "debug",
			MaxSizeMB:    10,
			MaxBackups:   3,
		},
	}
}

// Path resolves the config location from the environment.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = def.Log.Level
	}
	if strings.TrimSpace(c.Log.ConsoleLevel) == "" {
		c.Log.ConsoleLevel = def.Log.ConsoleLevel
	}
	if strings.TrimSpace(c.Log.Dir) == "" {
		c.Log.Dir = def.Log.Dir
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = def.Log.MaxBackups
	}
}
