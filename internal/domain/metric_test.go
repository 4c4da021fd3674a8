package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected Trend
	}{
		{
			name:     "empty",
			values:   nil,
			expected: TrendStable,
		},
		{
			name:     "single sample",
			values:   []float64{42},
			expected: TrendStable,
		},
		{
			name:     "flat series",
			values:   []float64{10, 10, 10, 10, 10, 10, 10, 10},
			expected: TrendStable,
		},
		{
			name:     "recent window doubled",
			values:   []float64{10, 10, 10, 10, 10, 20, 20, 20, 20, 20},
			expected: TrendIncreasing,
		},
		{
			name:     "recent window halved",
			values:   []float64{20, 20, 20, 20, 20, 10, 10, 10, 10, 10},
			expected: TrendDecreasing,
		},
		{
			name:     "five percent drift stays stable",
			values:   []float64{100, 100, 100, 100, 100, 105, 105, 105, 105, 105},
			expected: TrendStable,
		},
		{
			name:     "exactly ten percent stays stable",
			values:   []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110},
			expected: TrendStable,
		},
		{
			name:     "zero baseline with activity",
			values:   []float64{0, 0, 0, 5, 5, 5, 5, 5},
			expected: TrendIncreasing,
		},
		{
			name:     "short series uses what came before",
			values:   []float64{10, 20, 20, 20, 20, 20},
			expected: TrendIncreasing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTrend(tt.values))
		})
	}
}

func TestAggregated(t *testing.T) {
	now := time.Now()
	samples := []Metric{
		{Name: "response_time", Value: 120, Timestamp: now.Add(-3 * time.Minute)},
		{Name: "response_time", Value: 80, Timestamp: now.Add(-2 * time.Minute)},
		{Name: "response_time", Value: 200, Timestamp: now.Add(-time.Minute)},
	}

	agg := Aggregated(samples)
	assert.Equal(t, 3, agg.Count)
	assert.InDelta(t, 133.33, agg.Avg, 0.01)
	assert.Equal(t, 80.0, agg.Min)
	assert.Equal(t, 200.0, agg.Max)
	assert.Equal(t, 200.0, agg.Latest)
}

func TestAggregated_Empty(t *testing.T) {
	agg := Aggregated(nil)
	assert.Equal(t, 0, agg.Count)
	assert.Equal(t, TrendStable, agg.Trend)
}
