package fade

import (
	"context"
	"sync"
	"time"

	"github.com/chewxy/math32"
)

// DefaultDuration is how long a full fade from clear to opaque takes.
const DefaultDuration = 250 * time.Millisecond

// Fader darkens and restores the viewer's screen. Each call returns once its fade has finished.
type Fader interface {
	// FadeOut ramps the overlay to fully opaque.
	//
	// Parameters:
	//   - ctx: cancels the fade, leaving the overlay where it stopped
	//
	// Returns:
	//   - error: the context error if cancelled
	FadeOut(ctx context.Context) error

	// FadeIn ramps the overlay back to fully clear.
	//
	// Parameters:
	//   - ctx: cancels the fade, leaving the overlay where it stopped
	//
	// Returns:
	//   - error: the context error if cancelled
	FadeIn(ctx context.Context) error

	// Opacity returns the current overlay opacity in [0, 1].
	//
	// Returns:
	//   - float32: 0 is clear, 1 is opaque
	Opacity() float32
}

type timedFader struct {
	mu *sync.Mutex

	opacity  float32
	duration time.Duration
	step     time.Duration
	observer func(opacity float32)
}

var _ Fader = &timedFader{}

// NewFader creates a Fader that ramps opacity linearly in fixed steps.
//
// Parameters:
//   - options: functional options to configure the fader
//
// Returns:
//   - Fader: the new fader, initially clear
func NewFader(options ...FaderOption) Fader {
	f := &timedFader{
		mu:       &sync.Mutex{},
		duration: DefaultDuration,
		step:     16 * time.Millisecond,
	}
	for _, option := range options {
		option(f)
	}
	if f.step <= 0 {
		f.step = time.Millisecond
	}
	return f
}

func (f *timedFader) FadeOut(ctx context.Context) error {
	return f.ramp(ctx, 1)
}

func (f *timedFader) FadeIn(ctx context.Context) error {
	return f.ramp(ctx, 0)
}

func (f *timedFader) Opacity() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opacity
}

// ramp moves opacity toward target. A partial fade takes proportionally less time.
func (f *timedFader) ramp(ctx context.Context, target float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from := f.Opacity()
	span := time.Duration(float32(f.duration) * math32.Abs(target-from))
	if span <= 0 {
		f.set(target)
		return nil
	}

	begin := time.Now()
	ticker := time.NewTicker(f.step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t := float32(now.Sub(begin)) / float32(span)
			if t >= 1 {
				f.set(target)
				return nil
			}
			f.set(from + (target-from)*t)
		}
	}
}

func (f *timedFader) set(v float32) {
	f.mu.Lock()
	f.opacity = v
	observer := f.observer
	f.mu.Unlock()
	if observer != nil {
		observer(v)
	}
}
