package camera

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/unixpickle/model3d/model3d"
	"gopkg.in/yaml.v3"
)

// MinTargetHeight is the default lowest world Y the orbit target may reach,
// keeping the focus point above the ground plane.
const MinTargetHeight = 0.1

// MouseButtons maps each mouse button to the action it starts.
type MouseButtons struct {
	Left   MouseAction `yaml:"left"`
	Middle MouseAction `yaml:"middle"`
	Right  MouseAction `yaml:"right"`
}

// Touches maps the number of active touch contacts to the action they start.
type Touches struct {
	One TouchAction `yaml:"one"`
	Two TouchAction `yaml:"two"`
}

// Config holds every tunable of a CameraController. Angles are in radians.
// Values are not range-checked; inverted bounds behave as the clamp arithmetic dictates.
type Config struct {
	Enabled bool `yaml:"enabled"`

	// Cursor is the reference point for the target radius clamp.
	Cursor model3d.Coord3D `yaml:"cursor"`

	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`

	MinTargetRadius float64 `yaml:"min_target_radius"`
	MaxTargetRadius float64 `yaml:"max_target_radius"`
	MinTargetHeight float64 `yaml:"min_target_height"`

	MinPolarAngle float64 `yaml:"min_polar_angle"`
	MaxPolarAngle float64 `yaml:"max_polar_angle"`

	// Azimuth bounds must both be finite to take effect.
	MinAzimuthAngle float64 `yaml:"min_azimuth_angle"`
	MaxAzimuthAngle float64 `yaml:"max_azimuth_angle"`

	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`

	EnableZoom   bool    `yaml:"enable_zoom"`
	ZoomSpeed    float64 `yaml:"zoom_speed"`
	ZoomToCursor bool    `yaml:"zoom_to_cursor"`

	EnableRotate bool    `yaml:"enable_rotate"`
	RotateSpeed  float64 `yaml:"rotate_speed"`

	EnablePan          bool    `yaml:"enable_pan"`
	PanSpeed           float64 `yaml:"pan_speed"`
	ScreenSpacePanning bool    `yaml:"screen_space_panning"`
	KeyPanSpeed        float64 `yaml:"key_pan_speed"`

	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"`

	MouseButtons MouseButtons `yaml:"mouse_buttons"`
	Touches      Touches      `yaml:"touches"`
}

// DefaultConfig returns the controller defaults: unbounded distance and azimuth, full
// polar range, unit speeds and 7px key pans.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		Enabled: true,

		MinDistance: 0,
		MaxDistance: math.Inf(1),

		MinTargetRadius: 0,
		MaxTargetRadius: math.Inf(1),
		MinTargetHeight: MinTargetHeight,

		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,

		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),

		EnableDamping: false,
		DampingFactor: 0.05,

		EnableZoom: true,
		ZoomSpeed:  1.0,

		EnableRotate: true,
		RotateSpeed:  1.0,

		EnablePan:          true,
		PanSpeed:           1.0,
		ScreenSpacePanning: true,
		KeyPanSpeed:        7.0,

		AutoRotate:      false,
		AutoRotateSpeed: 2.0, // 30 seconds per orbit at 60fps

		MouseButtons: MouseButtons{
			Left:   MouseActionRotate,
			Middle: MouseActionDolly,
			Right:  MouseActionPan,
		},
		Touches: Touches{
			One: TouchActionRotate,
			Two: TouchActionDollyPan,
		},
	}
}

// LoadConfig reads a YAML controller configuration on top of DefaultConfig.
// A missing file yields the defaults.
//
// Parameters:
//   - path: YAML file path
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read or parsed
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read controller config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse controller config %s: %w", path, err)
	}
	return cfg, nil
}
