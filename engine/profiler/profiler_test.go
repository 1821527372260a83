package profiler

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickLogsStatsAfterInterval(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p := NewProfiler(WithInterval(time.Millisecond), WithStats(func() string { return "teleports: 3" }))
	time.Sleep(2 * time.Millisecond)

	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), "[Profiler] TPS:")
	assert.Contains(t, buf.String(), "teleports: 3")
}

func TestTickQuietWithinInterval(t *testing.T) {
	p := NewProfiler(WithInterval(time.Hour))
	for range 10 {
		assert.False(t, p.Tick())
	}
}
