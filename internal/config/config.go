// Package config provides unified configuration loading for braintwin.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nvandessel/braintwin/internal/logging"
	"github.com/nvandessel/braintwin/internal/simulation"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user configuration directory under $HOME.
const DirName = ".braintwin"

// TwinConfig contains all braintwin configuration settings.
type TwinConfig struct {
	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Server configures the local web UI.
	Server ServerConfig `json:"server" yaml:"server"`

	// Simulation holds slider defaults and noise settings.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
}

// LoggingConfig configures braintwin's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" additionally dumps every simulated sample.
	Level string `json:"level" yaml:"level"`
}

// ServerConfig configures the web UI server.
type ServerConfig struct {
	// Addr is the listen address. Port 0 lets the OS pick a free port.
	Addr string `json:"addr" yaml:"addr"`

	// OpenBrowser opens the UI in the default browser after start.
	OpenBrowser bool `json:"open_browser" yaml:"open_browser"`

	// RatePerSecond is the sustained number of runs allowed per client.
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`

	// Burst is the number of runs a client may make back to back.
	Burst int `json:"burst" yaml:"burst"`
}

// SimulationConfig holds the initial slider positions and noise settings.
type SimulationConfig struct {
	Stress        int `json:"stress" yaml:"stress"`
	SleepQuality  int `json:"sleep_quality" yaml:"sleep_quality"`
	ActivityLevel int `json:"activity_level" yaml:"activity_level"`

	// NoiseScale multiplies each standard normal draw. 0 disables noise.
	NoiseScale float64 `json:"noise_scale" yaml:"noise_scale"`

	// Seed fixes the noise stream when non-zero.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// Input returns the configured slider defaults.
func (c SimulationConfig) Input() simulation.Input {
	return simulation.Input{
		Stress:        c.Stress,
		SleepQuality:  c.SleepQuality,
		ActivityLevel: c.ActivityLevel,
	}
}

// EngineOptions translates the noise settings into engine options.
func (c SimulationConfig) EngineOptions() []simulation.Option {
	opts := []simulation.Option{simulation.WithNoiseScale(c.NoiseScale)}
	if c.Seed != 0 {
		opts = append(opts, simulation.WithSeed(c.Seed))
	}
	return opts
}

// Default returns a TwinConfig with sensible defaults.
func Default() *TwinConfig {
	in := simulation.DefaultInput()
	return &TwinConfig{
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:          "localhost:0",
			OpenBrowser:   true,
			RatePerSecond: 5,
			Burst:         10,
		},
		Simulation: SimulationConfig{
			Stress:        in.Stress,
			SleepQuality:  in.SleepQuality,
			ActivityLevel: in.ActivityLevel,
			NoiseScale:    simulation.DefaultNoiseScale,
		},
	}
}

// Path returns the default config file location, ~/.braintwin/config.yaml.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, DirName, "config.yaml"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.braintwin/config.yaml -> environment variables
func Load() (*TwinConfig, error) {
	config := Default()

	// Try to load from default config file
	if configPath, err := Path(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*TwinConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *TwinConfig) Validate() error {
	if err := c.Simulation.Input().Validate(); err != nil {
		return fmt.Errorf("simulation defaults: %w", err)
	}

	if c.Simulation.NoiseScale < 0 {
		return fmt.Errorf("noise_scale must be non-negative, got %f", c.Simulation.NoiseScale)
	}

	if c.Server.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second must be positive, got %f", c.Server.RatePerSecond)
	}

	if c.Server.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Server.Burst)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *TwinConfig) {
	if v := os.Getenv("BRAINTWIN_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("BRAINTWIN_ADDR"); v != "" {
		config.Server.Addr = v
	}

	if v := os.Getenv("BRAINTWIN_OPEN_BROWSER"); v != "" {
		config.Server.OpenBrowser = v == "true" || v == "1"
	}

	if v := os.Getenv("BRAINTWIN_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}

	if v := os.Getenv("BRAINTWIN_NOISE_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.NoiseScale = f
		}
	}
}
