package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/braintwin/internal/simulation"
)

func TestDefault(t *testing.T) {
	config := Default()

	// Slider defaults
	if config.Simulation.Stress != 50 {
		t.Errorf("expected Stress 50, got %d", config.Simulation.Stress)
	}
	if config.Simulation.SleepQuality != 7 {
		t.Errorf("expected SleepQuality 7, got %d", config.Simulation.SleepQuality)
	}
	if config.Simulation.ActivityLevel != 5 {
		t.Errorf("expected ActivityLevel 5, got %d", config.Simulation.ActivityLevel)
	}
	if config.Simulation.NoiseScale != 0.02 {
		t.Errorf("expected NoiseScale 0.02, got %f", config.Simulation.NoiseScale)
	}
	if config.Simulation.Seed != 0 {
		t.Errorf("expected unseeded default, got %d", config.Simulation.Seed)
	}

	// Server defaults
	if config.Server.Addr != "localhost:0" {
		t.Errorf("expected Addr 'localhost:0', got '%s'", config.Server.Addr)
	}
	if !config.Server.OpenBrowser {
		t.Error("expected OpenBrowser to be true by default")
	}

	// Logging defaults
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: debug

server:
  addr: 127.0.0.1:8080
  open_browser: false

simulation:
  stress: 80
  sleep_quality: 3
  noise_scale: 0
  seed: 1234
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("expected Level 'debug', got '%s'", config.Logging.Level)
	}
	if config.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected Addr '127.0.0.1:8080', got '%s'", config.Server.Addr)
	}
	if config.Server.OpenBrowser {
		t.Error("expected OpenBrowser to be false")
	}
	// Unset fields keep their defaults.
	if config.Server.Burst != 10 {
		t.Errorf("expected Burst default 10, got %d", config.Server.Burst)
	}
	want := simulation.Input{Stress: 80, SleepQuality: 3, ActivityLevel: 5}
	if got := config.Simulation.Input(); got != want {
		t.Errorf("Input() = %+v, want %+v", got, want)
	}
	if config.Simulation.NoiseScale != 0 {
		t.Errorf("expected NoiseScale 0, got %f", config.Simulation.NoiseScale)
	}
	if config.Simulation.Seed != 1234 {
		t.Errorf("expected Seed 1234, got %d", config.Simulation.Seed)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default().Simulation
	cfg.NoiseScale = 0
	cfg.Seed = 7

	engine := simulation.NewEngine(cfg.EngineOptions()...)
	if engine.NoiseScale() != 0 {
		t.Errorf("NoiseScale = %f, want 0", engine.NoiseScale())
	}

	res, err := engine.Simulate(simulation.Input{})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if res.Series.Serotonin[0] != 0.5 {
		t.Errorf("serotonin = %f, want 0.5 without noise", res.Series.Serotonin[0])
	}
}

func TestEngineOptions_SeededRunsMatch(t *testing.T) {
	cfg := Default().Simulation
	cfg.Seed = 99

	a, _ := simulation.NewEngine(cfg.EngineOptions()...).Simulate(cfg.Input())
	b, _ := simulation.NewEngine(cfg.EngineOptions()...).Simulate(cfg.Input())
	for i := range a.Series.Cortisol {
		if a.Series.Cortisol[i] != b.Series.Cortisol[i] {
			t.Fatalf("cortisol[%d] differs between seeded runs", i)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BRAINTWIN_LOG_LEVEL", "trace")
	t.Setenv("BRAINTWIN_ADDR", "localhost:9999")
	t.Setenv("BRAINTWIN_OPEN_BROWSER", "false")
	t.Setenv("BRAINTWIN_SEED", "77")
	t.Setenv("BRAINTWIN_NOISE_SCALE", "0.05")

	config := Default()
	applyEnvOverrides(config)

	if config.Logging.Level != "trace" {
		t.Errorf("expected Level 'trace', got '%s'", config.Logging.Level)
	}
	if config.Server.Addr != "localhost:9999" {
		t.Errorf("expected Addr 'localhost:9999', got '%s'", config.Server.Addr)
	}
	if config.Server.OpenBrowser {
		t.Error("expected OpenBrowser false from env")
	}
	if config.Simulation.Seed != 77 {
		t.Errorf("expected Seed 77, got %d", config.Simulation.Seed)
	}
	if config.Simulation.NoiseScale != 0.05 {
		t.Errorf("expected NoiseScale 0.05, got %f", config.Simulation.NoiseScale)
	}
}

func TestEnvOverrides_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("BRAINTWIN_SEED", "not-a-number")
	t.Setenv("BRAINTWIN_NOISE_SCALE", "lots")

	config := Default()
	applyEnvOverrides(config)

	if config.Simulation.Seed != 0 {
		t.Errorf("expected Seed unchanged, got %d", config.Simulation.Seed)
	}
	if config.Simulation.NoiseScale != 0.02 {
		t.Errorf("expected NoiseScale unchanged, got %f", config.Simulation.NoiseScale)
	}
}

func TestLoad_ReadsHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BRAINTWIN_LOG_LEVEL", "")

	dir := filepath.Join(home, DirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("simulation:\n  activity_level: 9\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Simulation.ActivityLevel != 9 {
		t.Errorf("expected ActivityLevel 9 from home config, got %d", config.Simulation.ActivityLevel)
	}
}

func TestLoad_NoHomeConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Simulation.Stress != 50 {
		t.Errorf("expected default Stress, got %d", config.Simulation.Stress)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *TwinConfig)
		wantErr string
	}{
		{"stress out of range", func(c *TwinConfig) { c.Simulation.Stress = 150 }, "stress"},
		{"sleep negative", func(c *TwinConfig) { c.Simulation.SleepQuality = -1 }, "sleep_quality"},
		{"negative noise", func(c *TwinConfig) { c.Simulation.NoiseScale = -0.1 }, "noise_scale"},
		{"zero rate", func(c *TwinConfig) { c.Server.RatePerSecond = 0 }, "rate_per_second"},
		{"zero burst", func(c *TwinConfig) { c.Server.Burst = 0 }, "burst"},
		{"bad log level", func(c *TwinConfig) { c.Logging.Level = "verbose" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_InputErrorWrapped(t *testing.T) {
	config := Default()
	config.Simulation.ActivityLevel = 11
	if err := config.Validate(); !errors.Is(err, simulation.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"", "info", "debug", "trace"} {
		config := Default()
		config.Logging.Level = level
		if err := config.Validate(); err != nil {
			t.Errorf("level %q should be valid: %v", level, err)
		}
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("simulation: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
