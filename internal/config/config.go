// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds model and shading settings.
type ViewerConfig struct {
	// Model is a URL or local path to the mesh document. Required.
	Model string `yaml:"model"`
	// Material optionally overrides the mesh's mtllib reference.
	Material string `yaml:"material"`
	// FOVDegrees is the vertical field of view.
	FOVDegrees float32 `yaml:"fov_degrees"`
	// Background is the clear color as RGB in [0,1].
	Background [3]float32 `yaml:"background"`
}

// CameraConfig holds orbit camera tuning.
type CameraConfig struct {
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	PanSpeed    float32 `yaml:"pan_speed"`
	ZoomInStep  float32 `yaml:"zoom_in_step"`
	ZoomOutStep float32 `yaml:"zoom_out_step"`
	// Framing scales the model radius into the initial camera distance.
	Framing float32 `yaml:"framing"`
}

// AssetsConfig holds asset fetching settings.
type AssetsConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	Cache        bool          `yaml:"cache"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			FOVDegrees: 45,
			Background: [3]float32{0.10, 0.11, 0.13},
		},
		Camera: CameraConfig{
			MinDistance: 0.5,
			MaxDistance: 100,
			RotateSpeed: 0.01,
			PanSpeed:    0.002,
			ZoomInStep:  0.9,
			ZoomOutStep: 1.1,
			Framing:     2.5,
		},
		Assets: AssetsConfig{
			FetchTimeout: 15 * time.Second,
			Cache:        true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
