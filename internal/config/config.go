package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of nbfix.yaml.
type ProjectConfig struct {
	Notebooks     []string `yaml:"notebooks"`
	BackupSuffix  string   `yaml:"backup_suffix,omitempty"`
	AllowFailures bool     `yaml:"allow_failures,omitempty"`
}

// Load reads nbfix.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, nbfix.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", configPath, err, nbfix.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

// Validate checks values that are set. Empty fields fall back to defaults.
func (c *ProjectConfig) Validate() error {
	var errs []error
	for i, nb := range c.Notebooks {
		if nb == "" {
			errs = append(errs, fmt.Errorf("notebooks[%d] is empty: %w", i, nbfix.ErrInvalidConfig))
		}
	}
	if c.BackupSuffix != "" {
		if err := nbfix.ValidateBackupSuffix(c.BackupSuffix); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Save writes cfg to dir as nbfix.yaml.
func Save(dir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, nbfix.ConfigFileName), data, 0644)
}
