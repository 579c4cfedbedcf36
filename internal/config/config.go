// Package config loads the optional plugforge.yaml project file and
// resolves it against CLI flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file looked up at the
// workspace root.
const ConfigFileName = "plugforge.yaml"

// Config represents the plugforge.yaml configuration file.
type Config struct {
	// Project configuration
	Project ProjectConfig `yaml:"project"`

	// Build configuration
	Build BuildConfig `yaml:"build"`

	// Bundle configuration
	Bundle BundleConfig `yaml:"bundle"`

	// Install configuration
	Install InstallConfig `yaml:"install,omitempty"`
}

// ProjectConfig holds project-level settings.
type ProjectConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// BuildConfig holds toolchain settings.
type BuildConfig struct {
	Toolchain     string `yaml:"toolchain,omitempty"`
	ToolchainPath string `yaml:"toolchain_path,omitempty"`
	Profile       string `yaml:"profile,omitempty"`
	Target        string `yaml:"target,omitempty"`
}

// BundleConfig holds bundle layout settings.
type BundleConfig struct {
	ProductName string `yaml:"product_name,omitempty"`
	Identifier  string `yaml:"identifier,omitempty"`
	OutputDir   string `yaml:"output_dir,omitempty"`
}

// InstallConfig holds install destination settings.
type InstallConfig struct {
	Root string `yaml:"root,omitempty"`
}

// Load reads and parses a plugforge.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	config.applyDefaults()

	// Validate
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Save writes the config to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Project.Name == "" {
		return fmt.Errorf("project.name is required")
	}

	if c.Build.Toolchain == "" {
		return fmt.Errorf("build.toolchain is required")
	}

	return nil
}

// applyDefaults sets default values for missing fields.
func (c *Config) applyDefaults() {
	if c.Build.Toolchain == "" {
		c.Build.Toolchain = "cargo"
	}
	if c.Build.Profile == "" {
		c.Build.Profile = "release"
	}
	if c.Bundle.OutputDir == "" {
		c.Bundle.OutputDir = "target/bundle"
	}
	if c.Project.Version == "" {
		c.Project.Version = "1.0.0"
	}
}

// Default returns the configuration used when no plugforge.yaml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}
