//nolint:funlen // ok for tests
package racingline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing/distance"
)

// straightLap builds a lap driven in a straight line along X with 1m
// spacing, constant speed and the given pedal traces.
func straightLap(n int, speed float64, throttle, brake func(i int) int) []model.DistanceSample {
	start := time.Unix(0, 0)
	samples := make([]model.TelemetrySample, n)
	for i := range samples {
		samples[i] = model.TelemetrySample{
			Timestamp: start.Add(time.Duration(i) * 100 * time.Millisecond),
			LapNumber: 1,
			Position:  model.Vec3{X: float64(i)},
			Speed:     speed,
			Throttle:  throttle(i),
			Brake:     brake(i),
		}
	}
	return distance.Annotate(samples)
}

func constant(v int) func(int) int {
	return func(int) int { return v }
}

func TestPoints(t *testing.T) {
	lap := straightLap(11, 10, constant(255), constant(0))
	points := NewBuilder().Points(lap)
	require.Len(t, points, 11)
	assert.Equal(t, 0.0, points[0].DistancePct)
	assert.Equal(t, 100.0, points[10].DistancePct)
	assert.InDelta(t, 36.0, points[0].Speed, 1e-9) // 10 m/s in km/h
	assert.Equal(t, 1.0, points[0].Throttle)
	assert.Equal(t, 0.0, points[0].Brake)
}

func TestPoints_ZeroDistance(t *testing.T) {
	stationary := distance.Annotate([]model.TelemetrySample{
		{Position: model.Vec3{X: 5}},
		{Position: model.Vec3{X: 5}},
	})
	assert.Empty(t, NewBuilder().Points(stationary))
}

func TestBrakePoints_RisingEdgesOnly(t *testing.T) {
	// two distinct applications: edges at 10 and 40, falling edges ignored
	lap := straightLap(60, 30, constant(0), func(i int) int {
		if (i >= 10 && i < 20) || (i >= 40 && i < 50) {
			return 200
		}
		return 0
	})
	points := NewBuilder().BrakePoints(lap)
	require.Len(t, points, 2)
	assert.InDelta(t, float64(10)/59*100, points[0].DistancePct, 1e-9)
	assert.InDelta(t, float64(40)/59*100, points[1].DistancePct, 1e-9)
	assert.InDelta(t, 108.0, points[0].Speed, 1e-9)
}

func TestThrottleZones(t *testing.T) {
	// full throttle up to 20 (exclusive) and from 35 to the end
	lap := straightLap(50, 30, func(i int) int {
		if i < 20 || i >= 35 {
			return 255
		}
		return 100
	}, constant(0))
	zones := NewBuilder().ThrottleZones(lap)
	require.Len(t, zones, 2)
	assert.Equal(t, 0.0, zones[0].StartPct)
	assert.InDelta(t, float64(19)/49*100, zones[0].EndPct, 1e-9)
	assert.InDelta(t, 1.0, zones[0].AvgThrottle, 1e-9)
	assert.InDelta(t, 100.0, zones[1].EndPct, 1e-9)
}

func TestIdealLine(t *testing.T) {
	slow := straightLap(80, 20, constant(255), constant(0))
	fast := straightLap(80, 40, constant(255), constant(0))
	builder := NewBuilder()

	ideal := builder.IdealLine([][]model.DistanceSample{slow, fast}, []float64{95.0, 88.5})
	require.NotNil(t, ideal)
	assert.Equal(t, 88.5, ideal.LapTime)
	assert.Len(t, ideal.Points, 100)
	for _, p := range ideal.Points {
		assert.True(t, p.IsOptimal)
	}
	assert.InDelta(t, 144.0, ideal.AvgSpeed, 1e-9) // 40 m/s
}

func TestIdealLine_NoLaps(t *testing.T) {
	assert.Nil(t, NewBuilder().IdealLine(nil, nil))
}

func TestCompare_IdenticalLineIsZero(t *testing.T) {
	line := NewBuilder().Points(straightLap(30, 25, constant(255), constant(0)))
	cmp := NewBuilder().Compare(line, line)
	assert.Equal(t, 0.0, cmp.AvgDeviation)
	assert.Equal(t, 0.0, cmp.MaxDeviation)
	assert.Len(t, cmp.Deviations, 30)
}

func TestCompare_KnownDeviation(t *testing.T) {
	lineA := []model.RacingLinePoint{{X: 0, Z: 0}, {X: 1, Z: 0}}
	lineB := []model.RacingLinePoint{{X: 0, Z: 3}, {X: 1, Z: 4}}
	cmp := NewBuilder().Compare(lineA, lineB)
	assert.InDelta(t, 3.5, cmp.AvgDeviation, 1e-9)
	assert.InDelta(t, 4.0, cmp.MaxDeviation, 1e-9)
}

func TestSmooth_TooFewPointsUnchanged(t *testing.T) {
	points := []model.RacingLinePoint{{X: 0}, {X: 1}, {X: 2}}
	assert.Equal(t, points, NewBuilder().Smooth(points, 4))
}

func TestSmooth_Interpolates(t *testing.T) {
	points := []model.RacingLinePoint{
		{X: 0, Z: 0}, {X: 1, Z: 1}, {X: 2, Z: 0}, {X: 3, Z: 1}, {X: 4, Z: 0},
	}
	smoothed := NewBuilder().Smooth(points, 4)
	assert.Greater(t, len(smoothed), len(points))
	// spline passes through the inner control points
	assert.InDelta(t, 2.0, smoothed[4].X, 1e-9)
	assert.InDelta(t, 0.0, smoothed[4].Z, 1e-9)
}

func TestTrackOutline(t *testing.T) {
	line := NewBuilder().Points(straightLap(10, 20, constant(255), constant(0)))
	outline := NewBuilder().TrackOutline(line)
	require.Len(t, outline.Left, 10)
	require.Len(t, outline.Right, 10)
	// straight line along X: edges offset in Z by half the track width
	assert.InDelta(t, 6.0, outline.Left[5].Z, 1e-9)
	assert.InDelta(t, -6.0, outline.Right[5].Z, 1e-9)
	assert.InDelta(t, line[5].X, outline.Left[5].X, 1e-9)
}

func TestTrackOutline_Degenerate(t *testing.T) {
	outline := NewBuilder().TrackOutline([]model.RacingLinePoint{{X: 1}})
	assert.Empty(t, outline.Left)
	assert.Empty(t, outline.Right)
}
