// Package config loads run configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the run defaults. Command-line flags override any value set
// here; zero values fall back to Default().
type Config struct {
	// BankID names the institution, embedded in every artifact filename.
	BankID string `yaml:"bank_id"`
	// OutputDir is the root of the currency/account artifact tree.
	OutputDir string `yaml:"output_dir"`
	// RegistryPath locates the persisted ingestion registry.
	RegistryPath string `yaml:"registry_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BankID:       "mcb",
		OutputDir:    "csv",
		RegistryPath: "csv/registry.json",
	}
}

// Load reads a YAML config file and fills unset fields from Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	def := Default()
	if cfg.BankID == "" {
		cfg.BankID = def.BankID
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = def.RegistryPath
	}
	return cfg, nil
}
