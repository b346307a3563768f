package snapshot

import (
	"github.com/unixpickle/model3d/render3d"
	"go.uber.org/zap"
)

// TurntableOption is a functional option for configuring a Turntable export.
type TurntableOption func(*turntable)

// WithFrames sets how many evenly spaced azimuth steps make up one orbit.
//
// Parameters:
//   - frames: number of images to write
//
// Returns:
//   - TurntableOption: functional option to set the frame count
func WithFrames(frames int) TurntableOption {
	return func(t *turntable) {
		t.frames = frames
	}
}

// WithSize sets the side length of each image.
//
// Parameters:
//   - size: image width and height in pixels
//
// Returns:
//   - TurntableOption: functional option to set the image size
func WithSize(size int) TurntableOption {
	return func(t *turntable) {
		t.size = size
	}
}

// WithWorkers sets the maximum number of frames rendered concurrently.
//
// Parameters:
//   - workers: worker pool size
//
// Returns:
//   - TurntableOption: functional option to set the pool size
func WithWorkers(workers int) TurntableOption {
	return func(t *turntable) {
		t.workers = workers
	}
}

// WithLights sets fixed scene lights. Without them every frame gets a head light.
//
// Parameters:
//   - lights: point lights in world space
//
// Returns:
//   - TurntableOption: functional option to set the lights
func WithLights(lights ...*render3d.PointLight) TurntableOption {
	return func(t *turntable) {
		t.lights = lights
	}
}

// WithLogger sets the logger used for progress messages.
//
// Parameters:
//   - logger: a zap logger; nil keeps the no-op logger
//
// Returns:
//   - TurntableOption: functional option to set the logger
func WithLogger(logger *zap.Logger) TurntableOption {
	return func(t *turntable) {
		if logger != nil {
			t.logger = logger
		}
	}
}
