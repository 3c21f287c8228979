package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 768 {
		t.Errorf("expected height 768, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Viewer.FOVDegrees != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Viewer.FOVDegrees)
	}
	if cfg.Viewer.Model != "" {
		t.Errorf("expected empty model, got %s", cfg.Viewer.Model)
	}

	if cfg.Camera.MinDistance >= cfg.Camera.MaxDistance {
		t.Errorf("expected min_distance < max_distance, got %f >= %f",
			cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}
	if cfg.Camera.ZoomInStep >= 1 {
		t.Errorf("expected zoom_in_step < 1, got %f", cfg.Camera.ZoomInStep)
	}
	if cfg.Camera.ZoomOutStep <= 1 {
		t.Errorf("expected zoom_out_step > 1, got %f", cfg.Camera.ZoomOutStep)
	}

	if cfg.Assets.FetchTimeout != 15*time.Second {
		t.Errorf("expected fetch timeout 15s, got %v", cfg.Assets.FetchTimeout)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

viewer:
  model: "https://assets.example.com/owl/owl.obj"
  fov_degrees: 60

camera:
  min_distance: 1
  max_distance: 50
  framing: 3

assets:
  fetch_timeout: 5s
  cache: false

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Viewer.Model != "https://assets.example.com/owl/owl.obj" {
		t.Errorf("unexpected model: %s", cfg.Viewer.Model)
	}
	if cfg.Viewer.FOVDegrees != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Viewer.FOVDegrees)
	}

	if cfg.Camera.MaxDistance != 50 {
		t.Errorf("expected max_distance 50, got %f", cfg.Camera.MaxDistance)
	}
	if cfg.Camera.Framing != 3 {
		t.Errorf("expected framing 3, got %f", cfg.Camera.Framing)
	}
	// Values absent from the file keep their defaults.
	if cfg.Camera.RotateSpeed != Default().Camera.RotateSpeed {
		t.Errorf("expected default rotate_speed, got %f", cfg.Camera.RotateSpeed)
	}

	if cfg.Assets.FetchTimeout != 5*time.Second {
		t.Errorf("expected fetch timeout 5s, got %v", cfg.Assets.FetchTimeout)
	}
	if cfg.Assets.Cache {
		t.Error("expected cache to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "model flag",
			setup: func() {
				*flagModel = "https://example.com/a.obj"
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Model != "https://example.com/a.obj" {
					t.Errorf("unexpected model: %s", cfg.Viewer.Model)
				}
			},
			teardown: func() {
				*flagModel = ""
			},
		},
		{
			name: "material flag",
			setup: func() {
				*flagMaterial = "custom.mtl"
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Material != "custom.mtl" {
					t.Errorf("unexpected material: %s", cfg.Viewer.Material)
				}
			},
			teardown: func() {
				*flagMaterial = ""
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.Model = "https://assets.example.com/owl/owl.obj"
	cfg.Graphics.Width = 1600

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}

	if loaded.Viewer.Model != cfg.Viewer.Model {
		t.Errorf("model did not survive round trip: %s", loaded.Viewer.Model)
	}
	if loaded.Graphics.Width != 1600 {
		t.Errorf("expected width 1600, got %d", loaded.Graphics.Width)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}
