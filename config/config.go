// Package config loads the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the root of config.yaml.
type Config struct {
	Http struct {
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	Artifacts struct {
		ModelPath      string `yaml:"model_path"`
		ClassNamesPath string `yaml:"class_names_path"`
	} `yaml:"artifacts"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Console    bool   `yaml:"console"`
	} `yaml:"log"`
	UI struct {
		Locale string `yaml:"locale"`
	} `yaml:"ui"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.Http.Port = 8501
	c.Http.Timeout = 30 * time.Second
	c.Artifacts.ModelPath = "models/iris_model.json"
	c.Artifacts.ClassNamesPath = "models/iris_classes.json"
	c.Log.Level = "info"
	c.Log.File = "logs/irispredict.log"
	c.Log.MaxSizeMB = 10
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28
	c.Log.Console = true
	c.UI.Locale = "en"
	return &c
}

// Load decodes path over the defaults, so keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Resolve looks for name in the working directory, then in its parent (so the
// binary also runs from cmd-style subdirectories). Relative paths in a config
// found in the parent are rebased onto it. When neither exists, the defaults
// are returned with an empty path.
func Resolve(name string) (*Config, string, error) {
	candidates := []string{name, filepath.Join("..", name)}
	for _, path := range candidates {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		config, err := Load(path)
		if err != nil {
			return nil, path, err
		}
		config.rebase(filepath.Dir(path))
		return config, path, nil
	}
	return Default(), "", nil
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.Artifacts.ModelPath == "" || c.Artifacts.ClassNamesPath == "" {
		return fmt.Errorf("artifact paths are required")
	}
	return nil
}

func (c *Config) rebase(dir string) {
	if dir == "." {
		return
	}
	for _, p := range []*string{&c.Artifacts.ModelPath, &c.Artifacts.ClassNamesPath, &c.Log.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
