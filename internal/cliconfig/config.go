// Package cliconfig stores named CLI contexts (API endpoints per
// environment) in ~/.t4g/config.yaml.
package cliconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Context is one named endpoint set.
type Context struct {
	Name        string `yaml:"name"`
	APIURL      string `yaml:"api_url"`
	AppURL      string `yaml:"app_url"`
	Environment string `yaml:"environment"`
	CacheDir    string `yaml:"cache_dir,omitempty"`
}

// Config is the persisted context file.
type Config struct {
	Current  string             `yaml:"current"`
	Contexts map[string]Context `yaml:"contexts"`
}

func defaultContext() Context {
	return Context{
		Name:        "local",
		APIURL:      "http://localhost:3000",
		AppURL:      "http://localhost:3001",
		Environment: "development",
	}
}

func defaultConfig() Config {
	ctx := defaultContext()
	return Config{
		Current:  ctx.Name,
		Contexts: map[string]Context{ctx.Name: ctx},
	}
}

// ConfigPath returns ~/.t4g/config.yaml, creating the directory.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".t4g")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the context file, synthesizing defaults when it is missing
// or incomplete.
func Load() (Config, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, "", err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), path, nil
	}
	if err != nil {
		return Config{}, path, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, path, err
	}
	if cfg.Contexts == nil {
		cfg.Contexts = defaultConfig().Contexts
	}
	if cfg.Current == "" {
		cfg.Current = defaultConfig().Current
	}
	return cfg, path, nil
}

// Save writes the context file.
func Save(cfg Config, path string) error {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Get returns the named context, or the current one for an empty name.
func Get(cfg Config, name string) (Context, error) {
	if name == "" {
		name = cfg.Current
	}
	if c, ok := cfg.Contexts[name]; ok {
		return c, nil
	}
	if name == defaultContext().Name {
		return defaultContext(), nil
	}
	return Context{}, fmt.Errorf("unknown context %q", name)
}
