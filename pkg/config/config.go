// Package config provides configuration loading and management for landmetrics.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Metrics parameters
	Metrics struct {
		// NoDataValue is the category code treated as "no observation":
		// background during patch labeling, excluded as a neighbor in
		// edge counting
		NoDataValue int `yaml:"noDataValue"`

		// WindowSize is the physical side length of each aggregation
		// window, in the same unit as PixelSize (e.g. meters)
		WindowSize float64 `yaml:"windowSize"`

		// PixelSize is the physical side length of one raster cell,
		// used to convert cell counts to physical areas and lengths
		PixelSize float64 `yaml:"pixelSize"`
	} `yaml:"metrics"`

	// Processing parameters
	Processing struct {
		// NumWorkers specifies how many windows are evaluated
		// concurrently during a tiling pass
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Dir is the directory where metric rasters are written; empty
		// means alongside each input file
		Dir string `yaml:"dir"`

		// LogLevel controls logging verbosity (debug, info, warn, error)
		LogLevel string `yaml:"logLevel"`

		// LogFile is an optional rotating log file path
		LogFile string `yaml:"logFile"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default metrics parameters
	cfg.Metrics.NoDataValue = 15
	cfg.Metrics.WindowSize = 1000.0
	cfg.Metrics.PixelSize = 30.0

	// Set default processing parameters
	cfg.Processing.NumWorkers = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.Dir = ""
	cfg.Output.LogLevel = "info"
	cfg.Output.LogFile = ""

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the metrics core cannot work with.
func (cfg *Config) Validate() error {
	if cfg.Metrics.PixelSize <= 0 {
		return fmt.Errorf("pixelSize must be positive, got %v", cfg.Metrics.PixelSize)
	}
	if cfg.Metrics.WindowSize < cfg.Metrics.PixelSize {
		return fmt.Errorf("windowSize %v is smaller than one %v-unit pixel",
			cfg.Metrics.WindowSize, cfg.Metrics.PixelSize)
	}
	return nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
