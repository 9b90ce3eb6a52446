package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	DataDir         string  `yaml:"data_dir"`
	Backend         string  `yaml:"backend"`
	Analyzer        string  `yaml:"analyzer"`
	ExportDir       string  `yaml:"export_dir"`
	DefaultTemplate string  `yaml:"default_template"`
	ExportScale     float64 `yaml:"export_scale"`
}

// Backend and analyzer values accepted in the config file.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	AnalyzerHeuristic = "heuristic"
	AnalyzerAnthropic = "anthropic"
)

// Default returns the baseline configuration.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataDir:         filepath.Join(home, ".config", "textcard"),
		Backend:         BackendJSON,
		Analyzer:        AnalyzerHeuristic,
		ExportDir:       filepath.Join(home, "Downloads"),
		DefaultTemplate: "default",
		ExportScale:     2,
	}, nil
}

// Load reads the config file, applying defaults for anything unset.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if file.DataDir != "" {
		cfg.DataDir = expandPath(file.DataDir)
	}
	if file.Backend != "" {
		cfg.Backend = file.Backend
	}
	if file.Analyzer != "" {
		cfg.Analyzer = file.Analyzer
	}
	if file.ExportDir != "" {
		cfg.ExportDir = expandPath(file.ExportDir)
	}
	if file.DefaultTemplate != "" {
		cfg.DefaultTemplate = file.DefaultTemplate
	}
	if file.ExportScale != 0 {
		cfg.ExportScale = file.ExportScale
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Analyzer {
	case AnalyzerHeuristic, AnalyzerAnthropic:
	default:
		return fmt.Errorf("unknown analyzer %q", c.Analyzer)
	}
	return nil
}

// EnsureConfigFile writes the default config file if none exists.
func EnsureConfigFile() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	cfg, err := Default()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textcard", "config.yaml"), nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
