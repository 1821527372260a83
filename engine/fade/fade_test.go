package fade

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeOutAndIn(t *testing.T) {
	var mu sync.Mutex
	var seen []float32
	f := NewFader(
		WithDuration(20*time.Millisecond),
		WithStep(time.Millisecond),
		WithObserver(func(o float32) {
			mu.Lock()
			seen = append(seen, o)
			mu.Unlock()
		}),
	)
	assert.Equal(t, float32(0), f.Opacity())

	require.NoError(t, f.FadeOut(context.Background()))
	assert.Equal(t, float32(1), f.Opacity())

	require.NoError(t, f.FadeIn(context.Background()))
	assert.Equal(t, float32(0), f.Opacity())

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for _, o := range seen {
		assert.GreaterOrEqual(t, o, float32(0))
		assert.LessOrEqual(t, o, float32(1))
	}
}

func TestZeroDurationIsInstant(t *testing.T) {
	f := NewFader(WithDuration(0))

	require.NoError(t, f.FadeOut(context.Background()))
	assert.Equal(t, float32(1), f.Opacity())
	require.NoError(t, f.FadeIn(context.Background()))
	assert.Equal(t, float32(0), f.Opacity())
}

func TestFadeHonorsCancellation(t *testing.T) {
	f := NewFader(WithDuration(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := f.FadeOut(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, f.Opacity(), float32(1))
}

func TestFadeWithCancelledContextDoesNothing(t *testing.T) {
	f := NewFader(WithDuration(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.FadeOut(ctx), context.Canceled)
	assert.Equal(t, float32(0), f.Opacity())
}
