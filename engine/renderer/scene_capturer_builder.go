package renderer

import "github.com/Carmen-Shannon/oxy-portal/common"

// SceneCapturerOption is a functional option for configuring a SceneCapturer.
type SceneCapturerOption func(*sceneCapturer)

// WithWorkers sets the number of worker goroutines rendering faces in parallel.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneCapturerOption: functional option to set the worker count
func WithWorkers(n int) SceneCapturerOption {
	return func(c *sceneCapturer) {
		c.workers = max(n, 1)
	}
}

// WithClipRange sets the near and far distances of the face cameras.
//
// Parameters:
//   - near: the nearest visible distance
//   - far: the farthest visible distance
//
// Returns:
//   - SceneCapturerOption: functional option to set the clip range
func WithClipRange(near, far float32) SceneCapturerOption {
	return func(c *sceneCapturer) {
		c.near = near
		c.far = far
	}
}

// WithSky sets the colors used for rays that hit nothing, blended by elevation.
//
// Parameters:
//   - top: the color straight up
//   - bottom: the color straight down
//
// Returns:
//   - SceneCapturerOption: functional option to set the sky gradient
func WithSky(top, bottom common.Color) SceneCapturerOption {
	return func(c *sceneCapturer) {
		c.skyTop = top
		c.skyBottom = bottom
	}
}

// WithLightDirection sets the direction toward the key light used to shade captured objects.
//
// Parameters:
//   - dir: the light direction, normalized on use
//
// Returns:
//   - SceneCapturerOption: functional option to set the light direction
func WithLightDirection(dir common.Vec3) SceneCapturerOption {
	return func(c *sceneCapturer) {
		c.light = dir.Normalize()
	}
}
