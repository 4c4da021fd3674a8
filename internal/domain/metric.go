package domain

import "time"

type Metric struct {
	Name      string            `json:"name"`
	Value     float64           `json:"value"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type Aggregate struct {
	Count  int     `json:"count"`
	Avg    float64 `json:"avg"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Latest float64 `json:"latest"`
	Trend  Trend   `json:"trend"`
}

type Threshold struct {
	Warning  float64 `json:"warning" yaml:"warning"`
	Critical float64 `json:"critical" yaml:"critical"`
}

// ComputeTrend compares the mean of the trailing window (at most the last
// five samples) against the mean of everything before it. A swing of more
// than ten percent in either direction breaks stability.
func ComputeTrend(values []float64) Trend {
	if len(values) < 2 {
		return TrendStable
	}

	recent := 5
	if recent > len(values) {
		recent = len(values)
	}
	earlier := values[:len(values)-recent]
	if len(earlier) == 0 {
		return TrendStable
	}

	recentAvg := mean(values[len(values)-recent:])
	earlierAvg := mean(earlier)

	if earlierAvg == 0 {
		if recentAvg > 0 {
			return TrendIncreasing
		}
		if recentAvg < 0 {
			return TrendDecreasing
		}
		return TrendStable
	}

	change := (recentAvg - earlierAvg) / earlierAvg
	switch {
	case change > 0.10:
		return TrendIncreasing
	case change < -0.10:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func Aggregated(samples []Metric) Aggregate {
	if len(samples) == 0 {
		return Aggregate{Trend: TrendStable}
	}

	values := make([]float64, len(samples))
	agg := Aggregate{
		Count: len(samples),
		Min:   samples[0].Value,
		Max:   samples[0].Value,
	}

	var sum float64
	for i, s := range samples {
		values[i] = s.Value
		sum += s.Value
		if s.Value < agg.Min {
			agg.Min = s.Value
		}
		if s.Value > agg.Max {
			agg.Max = s.Value
		}
	}

	agg.Avg = sum / float64(len(samples))
	agg.Latest = samples[len(samples)-1].Value
	agg.Trend = ComputeTrend(values)
	return agg
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
