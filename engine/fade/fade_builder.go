package fade

import "time"

// FaderOption is a functional option for configuring a Fader.
type FaderOption func(*timedFader)

// WithDuration sets how long a full fade takes. Zero makes fades instant.
//
// Parameters:
//   - d: the full fade duration
//
// Returns:
//   - FaderOption: functional option to set the duration
func WithDuration(d time.Duration) FaderOption {
	return func(f *timedFader) {
		f.duration = d
	}
}

// WithStep sets the interval between opacity updates.
//
// Parameters:
//   - d: the update interval
//
// Returns:
//   - FaderOption: functional option to set the step
func WithStep(d time.Duration) FaderOption {
	return func(f *timedFader) {
		f.step = d
	}
}

// WithObserver registers a callback receiving every opacity change, e.g. to tint an overlay.
//
// Parameters:
//   - fn: the observer
//
// Returns:
//   - FaderOption: functional option to set the observer
func WithObserver(fn func(opacity float32)) FaderOption {
	return func(f *timedFader) {
		f.observer = fn
	}
}
