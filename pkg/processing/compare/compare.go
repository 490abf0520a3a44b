// Package compare resamples laps onto a common distance grid and derives
// cross-lap differentials, sector breakdowns and textual insights.
package compare

import (
	"math"

	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing/distance"
)

// DefaultGridSize is the number of grid intervals used when the caller does
// not pick one; the grid then has DefaultGridSize+1 points.
const DefaultGridSize = 100

type Engine struct {
	gridSize int
}

type EngineOption func(*Engine)

func WithGridSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.gridSize = n
		}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	ret := &Engine{gridSize: DefaultGridSize}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// NormalizeLap resamples a lap onto numSamples+1 evenly spaced distance
// fractions by linear interpolation between the bracketing raw samples.
// Time is elapsed seconds since the lap's first sample. Laps with fewer
// than 2 samples cannot be interpolated and yield an empty sequence.
func (e *Engine) NormalizeLap(
	samples []model.DistanceSample, numSamples int,
) []model.NormalizedPoint {
	if len(samples) < 2 || numSamples < 1 {
		return []model.NormalizedPoint{}
	}
	total := distance.Total(samples)
	if total == 0 {
		return []model.NormalizedPoint{}
	}
	start := samples[0].Timestamp
	ret := make([]model.NormalizedPoint, 0, numSamples+1)
	j := 0
	for i := 0; i <= numSamples; i++ {
		target := total * float64(i) / float64(numSamples)
		for j < len(samples)-2 && samples[j+1].Distance < target {
			j++
		}
		a, b := &samples[j], &samples[j+1]
		t := 0.0
		if span := b.Distance - a.Distance; span > 0 {
			t = math.Min(math.Max((target-a.Distance)/span, 0), 1)
		}
		ret = append(ret, model.NormalizedPoint{
			DistancePct: float64(i) / float64(numSamples) * 100,
			Time: lerp(a.Timestamp.Sub(start).Seconds(),
				b.Timestamp.Sub(start).Seconds(), t),
			Speed:    lerp(a.Speed, b.Speed, t),
			Throttle: lerp(float64(a.Throttle), float64(b.Throttle), t),
			Brake:    lerp(float64(a.Brake), float64(b.Brake), t),
			Gear:     int(math.Round(lerp(float64(a.Gear), float64(b.Gear), t))),
		})
	}
	return ret
}

// TimeDelta returns, per grid point, the elapsed-time difference between
// lap A and lap B. The first point's delta is 0 and the last equals the
// total lap-time difference.
func (e *Engine) TimeDelta(
	lapA, lapB []model.DistanceSample, numSamples int,
) []model.TimeDelta {
	normA := e.NormalizeLap(lapA, numSamples)
	normB := e.NormalizeLap(lapB, numSamples)
	n := min(len(normA), len(normB))
	ret := make([]model.TimeDelta, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, model.TimeDelta{
			DistancePct: normA[i].DistancePct,
			Delta:       normA[i].Time - normB[i].Time,
			TimeA:       normA[i].Time,
			TimeB:       normB[i].Time,
		})
	}
	return ret
}

// SpeedDifferential overlays N laps on the common grid. Values are keyed by
// lap number and reported in km/h for charting.
func (e *Engine) SpeedDifferential(
	laps [][]model.DistanceSample, numSamples int,
) []model.MetricRow {
	return e.metricRows(laps, numSamples, func(p model.NormalizedPoint) float64 {
		return p.Speed * model.MpsToKph
	})
}

// ThrottleComparison overlays throttle traces, normalized to [0,1].
func (e *Engine) ThrottleComparison(
	laps [][]model.DistanceSample, numSamples int,
) []model.MetricRow {
	return e.metricRows(laps, numSamples, func(p model.NormalizedPoint) float64 {
		return p.Throttle / model.PedalMax
	})
}

// BrakeComparison overlays brake traces, normalized to [0,1].
func (e *Engine) BrakeComparison(
	laps [][]model.DistanceSample, numSamples int,
) []model.MetricRow {
	return e.metricRows(laps, numSamples, func(p model.NormalizedPoint) float64 {
		return p.Brake / model.PedalMax
	})
}

func (e *Engine) metricRows(
	laps [][]model.DistanceSample, numSamples int,
	value func(model.NormalizedPoint) float64,
) []model.MetricRow {
	if len(laps) < 2 {
		return []model.MetricRow{}
	}
	type normalized struct {
		lapNumber int
		points    []model.NormalizedPoint
	}
	normLaps := make([]normalized, 0, len(laps))
	for _, lap := range laps {
		points := e.NormalizeLap(lap, numSamples)
		if len(points) == 0 {
			continue
		}
		normLaps = append(normLaps, normalized{
			lapNumber: lap[0].LapNumber,
			points:    points,
		})
	}
	if len(normLaps) < 2 {
		return []model.MetricRow{}
	}
	ret := make([]model.MetricRow, 0, numSamples+1)
	for i := 0; i <= numSamples; i++ {
		row := model.MetricRow{
			DistancePct: float64(i) / float64(numSamples) * 100,
			Values:      make(map[int]float64, len(normLaps)),
		}
		for _, lap := range normLaps {
			row.Values[lap.lapNumber] = value(lap.points[i])
		}
		ret = append(ret, row)
	}
	return ret
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
