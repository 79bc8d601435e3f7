package suite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeLatencyStats_Empty(t *testing.T) {
	stats := ComputeLatencyStats(nil)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
	assert.Zero(t, stats.Mean)
	assert.True(t, stats.IsZero())
}

func TestComputeLatencyStats_SingleValue(t *testing.T) {
	stats := ComputeLatencyStats([]time.Duration{10 * time.Millisecond})

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 10*time.Millisecond, stats.Max)
	assert.Equal(t, 10*time.Millisecond, stats.P50)
	assert.Equal(t, 10*time.Millisecond, stats.P95)
	assert.Equal(t, 1, stats.SampleCount)
	assert.False(t, stats.IsZero())
}

func TestComputeLatencyStats_MultipleValues(t *testing.T) {
	durations := []time.Duration{
		50 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
	}
	stats := ComputeLatencyStats(durations)

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 50*time.Millisecond, stats.Max)
	assert.Equal(t, 30*time.Millisecond, stats.Mean)
	assert.Equal(t, 30*time.Millisecond, stats.P50)
	// rank 3.8 between 40ms and 50ms
	assert.InDelta(t, float64(48*time.Millisecond), float64(stats.P95), float64(time.Microsecond))
	assert.Equal(t, 5, stats.SampleCount)
	// input order is preserved
	assert.Equal(t, 50*time.Millisecond, stats.Raw[0])
}

func TestComputeLatencyStats_EvenCount(t *testing.T) {
	stats := ComputeLatencyStats([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond})
	assert.Equal(t, 15*time.Millisecond, stats.P50)
}

func TestAggregateLatencyStats(t *testing.T) {
	a := ComputeLatencyStats([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond})
	b := ComputeLatencyStats([]time.Duration{30 * time.Millisecond})

	agg := AggregateLatencyStats([]LatencyStats{a, b})
	assert.Equal(t, 3, agg.SampleCount)
	assert.Equal(t, 10*time.Millisecond, agg.Min)
	assert.Equal(t, 30*time.Millisecond, agg.Max)
	assert.Equal(t, 20*time.Millisecond, agg.Mean)

	assert.True(t, AggregateLatencyStats(nil).IsZero())
}
