// Package config holds the robot demo's settings: a YAML file layered over built-in defaults, with a few
// STAGE3D_* environment variables on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Vec3 is an X, Y, Z triple, written as a three element YAML sequence.
type Vec3 [3]float64

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Controls  ControlsConfig  `yaml:"controls"`
	Character CharacterConfig `yaml:"character"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Lights    LightsConfig    `yaml:"lights"`
	Ground    GroundConfig    `yaml:"ground"`
	Box       BoxConfig       `yaml:"box"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width" env:"STAGE3D_WINDOW_WIDTH"`
	Height int    `yaml:"height" env:"STAGE3D_WINDOW_HEIGHT"`
	// UseWallClock advances animation by measured frame time instead of a fixed 1/TPS step.
	UseWallClock bool `yaml:"use_wall_clock" env:"STAGE3D_WALL_CLOCK"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Position    Vec3    `yaml:"position"`
	Target      Vec3    `yaml:"target"`
}

type ControlsConfig struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	PanSpeed      float64 `yaml:"pan_speed"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
	// MaxPolarAngle limits how far below straight overhead the camera may go, in degrees.
	MaxPolarAngle float64 `yaml:"max_polar_angle"`
}

type CharacterConfig struct {
	ModelPath    string   `yaml:"model" env:"STAGE3D_MODEL"`
	Position     Vec3     `yaml:"position"`
	Scale        float64  `yaml:"scale"`
	States       []string `yaml:"states"`
	Emotes       []string `yaml:"emotes"`
	DefaultState string   `yaml:"default_state" env:"STAGE3D_DEFAULT_STATE"`
	StateFade    float64  `yaml:"state_fade"`
	EmoteFade    float64  `yaml:"emote_fade"`
	Shadows      bool     `yaml:"shadows"`
}

type OrbitConfig struct {
	StartAngle    float64 `yaml:"start_angle"`
	Speed         float64 `yaml:"speed" env:"STAGE3D_ORBIT_SPEED"`
	TimeScaled    bool    `yaml:"time_scaled" env:"STAGE3D_ORBIT_TIME_SCALED"`
	SemiMajorAxis float64 `yaml:"semi_major_axis"`
	SemiMinorAxis float64 `yaml:"semi_minor_axis"`
	YawFactor     float64 `yaml:"yaw_factor"`
	EarthSpin     float64 `yaml:"earth_spin"` // Yaw factor of the earth inside the orbiting group; 0 disables it.
	Height        float64 `yaml:"height"`
	EarthRadius   float64 `yaml:"earth_radius"`
	MoonRadius    float64 `yaml:"moon_radius"`
	MoonOffset    Vec3    `yaml:"moon_offset"`
}

type LightsConfig struct {
	AmbientColor     uint32  `yaml:"ambient_color"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`
	PointColor       uint32  `yaml:"point_color"`
	PointIntensity   float32 `yaml:"point_intensity"`
	PointRange       float64 `yaml:"point_range"`
	PointPosition    Vec3    `yaml:"point_position"`
	ShadowMapSize    int     `yaml:"shadow_map_size"`
}

type GroundConfig struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Color  uint32  `yaml:"color"`
	Shadow bool    `yaml:"receive_shadows"`
}

type BoxConfig struct {
	Size     float64 `yaml:"size"`
	Position Vec3    `yaml:"position"`
	Texture  string  `yaml:"texture"`
}

// Default returns the demo's built-in settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "stage3d - robot",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			FieldOfView: 45,
			Near:        0.1,
			Far:         1000,
			Position:    Vec3{10, 10, 10},
		},
		Controls: ControlsConfig{
			EnableDamping: true,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			PanSpeed:      1,
			MaxDistance:   500,
			MaxPolarAngle: 180,
		},
		Character: CharacterConfig{
			ModelPath:    "assets/RobotExpressive.glb",
			Position:     Vec3{4, 0, 0},
			Scale:        1,
			States:       []string{"Idle", "Walking", "Running", "Dance", "Death", "Sitting", "Standing"},
			Emotes:       []string{"Jump", "Yes", "No", "Wave", "Punch", "ThumbsUp"},
			DefaultState: "Walking",
			StateFade:    0.5,
			EmoteFade:    0.2,
			Shadows:      true,
		},
		Orbit: OrbitConfig{
			StartAngle:    0.01,
			Speed:         0.005,
			SemiMajorAxis: 20,
			SemiMinorAxis: 10,
			YawFactor:     1.2,
			Height:        10,
			EarthRadius:   2,
			MoonRadius:    0.5,
			MoonOffset:    Vec3{0, 0, 6},
		},
		Lights: LightsConfig{
			AmbientColor:     0xFFFFFF,
			AmbientIntensity: 0.2,
			PointColor:       0xFFFFFF,
			PointIntensity:   1,
			PointRange:       50,
			PointPosition:    Vec3{0, 10, 0},
			ShadowMapSize:    2048,
		},
		Ground: GroundConfig{
			Width:  100,
			Depth:  50,
			Color:  0xEFEFEF,
			Shadow: true,
		},
		Box: BoxConfig{
			Size:     4,
			Position: Vec3{0, 2, 9},
			Texture:  "assets/xyd_logo_vertical.png",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment overrides and validates the result.
// An empty path skips the file.
func Load(path string) (*Config, error) {

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil

}

// Parse decodes YAML into cfg. Keys missing from data leave cfg's values as they were; unknown keys are an error.
func Parse(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg with any STAGE3D_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate reports the first problem found with cfg.
func (cfg *Config) Validate() error {

	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: %w: "+format, append([]any{ErrInvalid}, args...)...)
	}

	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}

	if cfg.Camera.FieldOfView <= 0 || cfg.Camera.FieldOfView >= 180 {
		return invalid("camera fov must be between 0 and 180 degrees, got %g", cfg.Camera.FieldOfView)
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return invalid("camera clipping planes must satisfy 0 < near < far, got %g and %g", cfg.Camera.Near, cfg.Camera.Far)
	}

	if cfg.Controls.DampingFactor <= 0 || cfg.Controls.DampingFactor > 1 {
		return invalid("controls damping factor must be in (0, 1], got %g", cfg.Controls.DampingFactor)
	}
	if cfg.Controls.MinDistance < 0 || cfg.Controls.MaxDistance < cfg.Controls.MinDistance {
		return invalid("controls distance limits must satisfy 0 <= min <= max, got %g and %g", cfg.Controls.MinDistance, cfg.Controls.MaxDistance)
	}
	if cfg.Controls.MaxPolarAngle <= 0 || cfg.Controls.MaxPolarAngle > 180 {
		return invalid("controls max polar angle must be in (0, 180], got %g", cfg.Controls.MaxPolarAngle)
	}

	char := cfg.Character
	if char.ModelPath == "" {
		return invalid("character model path is empty")
	}
	if char.Scale <= 0 {
		return invalid("character scale must be positive, got %g", char.Scale)
	}
	if char.StateFade < 0 || char.EmoteFade < 0 {
		return invalid("fade durations must not be negative, got %g and %g", char.StateFade, char.EmoteFade)
	}
	if len(char.States) == 0 {
		return invalid("character has no states")
	}
	if !slices.Contains(char.States, char.DefaultState) {
		return invalid("default state %q is not one of the states", char.DefaultState)
	}
	for _, emote := range char.Emotes {
		if slices.Contains(char.States, emote) {
			return invalid("%q is listed as both a state and an emote", emote)
		}
	}

	if cfg.Orbit.SemiMajorAxis <= 0 || cfg.Orbit.SemiMinorAxis <= 0 {
		return invalid("orbit semi-axes must be positive, got %g and %g", cfg.Orbit.SemiMajorAxis, cfg.Orbit.SemiMinorAxis)
	}
	if cfg.Orbit.EarthRadius <= 0 || cfg.Orbit.MoonRadius <= 0 {
		return invalid("earth and moon radii must be positive")
	}

	if cfg.Lights.ShadowMapSize <= 0 {
		return invalid("shadow map size must be positive, got %d", cfg.Lights.ShadowMapSize)
	}
	if cfg.Lights.PointRange < 0 {
		return invalid("point light range must not be negative, got %g", cfg.Lights.PointRange)
	}

	if cfg.Ground.Width <= 0 || cfg.Ground.Depth <= 0 {
		return invalid("ground size must be positive, got %gx%g", cfg.Ground.Width, cfg.Ground.Depth)
	}
	if cfg.Box.Size <= 0 {
		return invalid("box size must be positive, got %g", cfg.Box.Size)
	}

	return nil

}
