// Package config handles configuration loading and management for the
// spot light tools.
package config

import (
	"time"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Config holds all settings.
type Config struct {
	Light   LightConfig   `yaml:"light"`
	Camera  CameraConfig  `yaml:"camera"`
	Preview PreviewConfig `yaml:"preview"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// LightConfig describes the spot light. Angles are in degrees.
type LightConfig struct {
	Name             string    `yaml:"name"`
	Position         math.Vec3 `yaml:"position"`
	Direction        math.Vec3 `yaml:"direction"`
	ConeAngleDeg     float32   `yaml:"cone_angle_deg"`
	Exponent         float32   `yaml:"exponent"`
	TextureNear      float32   `yaml:"texture_near"`
	TextureFar       float32   `yaml:"texture_far"`
	ShadowAngleScale float32   `yaml:"shadow_angle_scale"`
	Diffuse          math.Vec3 `yaml:"diffuse"`
	Specular         math.Vec3 `yaml:"specular"`
	ProjectedTexture string    `yaml:"projected_texture"` // Optional cookie image path
}

// CameraConfig holds the viewing camera, which also bounds the shadow depth range.
type CameraConfig struct {
	MinZ     float32 `yaml:"min_z"`
	MaxZ     float32 `yaml:"max_z"`
	FOVDeg   float32 `yaml:"fov_deg"`
	Distance float32 `yaml:"distance"`
}

// PreviewConfig holds settings for the CPU footprint preview.
type PreviewConfig struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Extent      float32       `yaml:"extent"`      // Half-size of the ground square in world units
	Supersample int           `yaml:"supersample"` // Render scale before downsampling
	Output      string        `yaml:"output"`      // .png or .webp
	Frames      int           `yaml:"frames"`
	SweepDeg    float32       `yaml:"sweep_deg"` // Yaw swept across all frames
	Duration    time.Duration `yaml:"duration"`
	Workers     int           `yaml:"workers"`
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Light: LightConfig{
			Name:         "spot0",
			Position:     math.Vec3{X: 0, Y: 10, Z: 0},
			Direction:    math.Vec3{X: 0, Y: -1, Z: 0.25},
			ConeAngleDeg: 60,
			Exponent:     2,
			TextureNear:  1e-7,
			TextureFar:   1000,
			Diffuse:      math.Vec3{X: 1, Y: 1, Z: 1},
			Specular:     math.Vec3{X: 1, Y: 1, Z: 1},
		},
		Camera: CameraConfig{
			MinZ:     1,
			MaxZ:     10000,
			FOVDeg:   45,
			Distance: 40,
		},
		Preview: PreviewConfig{
			Width:       512,
			Height:      512,
			Extent:      20,
			Supersample: 2,
			Output:      "footprint.png",
			Frames:      1,
			SweepDeg:    90,
			Duration:    2 * time.Second,
			Workers:     4,
		},
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
