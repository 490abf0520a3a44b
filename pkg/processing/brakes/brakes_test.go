//nolint:funlen // ok for tests
package brakes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing/distance"
)

// lapWithBrakeTrace builds a lap with 1m spacing at 10 Hz and the given
// brake trace.
func lapWithBrakeTrace(brake []int) []model.DistanceSample {
	start := time.Unix(0, 0)
	samples := make([]model.TelemetrySample, len(brake))
	for i := range samples {
		samples[i] = model.TelemetrySample{
			Timestamp: start.Add(time.Duration(i) * 100 * time.Millisecond),
			LapNumber: 1,
			Position:  model.Vec3{X: float64(i)},
			Speed:     40 - float64(i)*0.5,
			Brake:     brake[i],
		}
	}
	return distance.Annotate(samples)
}

func padded(zone []int, before, after int) []int {
	ret := make([]int, 0, before+len(zone)+after)
	ret = append(ret, make([]int, before)...)
	ret = append(ret, zone...)
	return append(ret, make([]int, after)...)
}

func TestDetect_ZoneBoundaries(t *testing.T) {
	lap := lapWithBrakeTrace(padded([]int{100, 200, 150, 80}, 5, 5))
	zones := NewDetector().Detect(lap)
	require.Len(t, zones, 1)

	zone := zones[0]
	assert.InDelta(t, float64(5)/13*100, zone.StartPct, 1e-9)
	assert.InDelta(t, float64(8)/13*100, zone.EndPct, 1e-9)
	assert.InDelta(t, 200.0/255, zone.MaxPressure, 1e-9)
	assert.InDelta(t, 132.5/255, zone.AvgPressure, 1e-9)
	assert.Greater(t, zone.EntrySpeed, zone.ExitSpeed)
}

func TestDetect_NoBraking(t *testing.T) {
	assert.Empty(t, NewDetector().Detect(lapWithBrakeTrace(make([]int, 20))))
	assert.Empty(t, NewDetector().Detect(nil))
}

func TestTrailBraking_GradualReleaseDetected(t *testing.T) {
	// rises to peak at 40% of the zone, then decays below half the peak
	trace := []int{60, 120, 180, 240, 200, 160, 120, 90, 60, 40}
	lap := lapWithBrakeTrace(padded(trace, 3, 3))
	zones := NewDetector().Detect(lap)
	require.Len(t, zones, 1)
	assert.True(t, zones[0].TrailBraking)
	// 30% of the zone's 0.9s elapsed time
	assert.InDelta(t, 270*time.Millisecond, zones[0].TrailDuration, float64(time.Millisecond))
}

func TestTrailBraking_InstantPeakRejected(t *testing.T) {
	// peaks on the first sample and stays flat
	trace := []int{240, 240, 240, 240, 240, 240, 240, 240}
	lap := lapWithBrakeTrace(padded(trace, 3, 3))
	zones := NewDetector().Detect(lap)
	require.Len(t, zones, 1)
	assert.False(t, zones[0].TrailBraking)
	assert.Equal(t, time.Duration(0), zones[0].TrailDuration)
}

func TestTrailBraking_ReleaseNotLowEnough(t *testing.T) {
	// decays, but only to 60% of the peak
	trace := []int{60, 120, 180, 240, 220, 200, 180, 160, 150, 145}
	lap := lapWithBrakeTrace(padded(trace, 3, 3))
	zones := NewDetector().Detect(lap)
	require.Len(t, zones, 1)
	assert.False(t, zones[0].TrailBraking)
}

func TestConsistency_IdenticalLapsScore100(t *testing.T) {
	lap := lapWithBrakeTrace(padded([]int{100, 200, 150}, 10, 10))
	zones := NewDetector().Detect(lap)
	scores := NewDetector().Consistency([][]model.BrakeZone{zones, zones, zones})
	require.Len(t, scores, 1)
	assert.Equal(t, 100.0, scores[0].Score)
	assert.Equal(t, 0.0, scores[0].StdDev)
	assert.Equal(t, 3, scores[0].LapCount)
}

func TestConsistency_SpreadReducesScore(t *testing.T) {
	mkZones := func(startPct float64) []model.BrakeZone {
		return []model.BrakeZone{{StartPct: startPct}}
	}
	scores := NewDetector().Consistency([][]model.BrakeZone{
		mkZones(40), mkZones(44),
	})
	require.Len(t, scores, 1)
	// population stddev of {40,44} is 2 -> 100 - 2*20 = 60
	assert.InDelta(t, 60.0, scores[0].Score, 1e-9)
}

func TestConsistency_NeedsTwoLaps(t *testing.T) {
	assert.Empty(t, NewDetector().Consistency(nil))
	assert.Empty(t, NewDetector().Consistency([][]model.BrakeZone{{{StartPct: 1}}}))
}
