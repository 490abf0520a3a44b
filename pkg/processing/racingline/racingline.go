// Package racingline builds normalized racing lines and line-derived zones
// from distance-annotated telemetry.
package racingline

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/missola/gt7-lap-engine/pkg/config"
	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing/distance"
)

type Builder struct {
	tuning config.Tuning
}

type BuilderOption func(*Builder)

func WithTuning(t config.Tuning) BuilderOption {
	return func(b *Builder) { b.tuning = t }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	ret := &Builder{tuning: config.DefaultTuning()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Points maps each annotated sample onto the 0-100% lap scale with display
// units. A lap with zero total distance (single point, stationary car) has
// no meaningful line and yields an empty slice.
func (b *Builder) Points(samples []model.DistanceSample) []model.RacingLinePoint {
	total := distance.Total(samples)
	if total == 0 {
		return []model.RacingLinePoint{}
	}
	return lo.Map(samples, func(s model.DistanceSample, _ int) model.RacingLinePoint {
		return model.RacingLinePoint{
			DistancePct: s.Distance / total * 100,
			X:           s.Position.X,
			Z:           s.Position.Z,
			Speed:       s.Speed * model.MpsToKph,
			Throttle:    float64(s.Throttle) / model.PedalMax,
			Brake:       float64(s.Brake) / model.PedalMax,
		}
	})
}

// BrakePoints emits one point per rising edge of the brake input above the
// configured threshold. Falling edges are ignored.
func (b *Builder) BrakePoints(samples []model.DistanceSample) []model.BrakePoint {
	total := distance.Total(samples)
	if total == 0 {
		return []model.BrakePoint{}
	}
	ret := make([]model.BrakePoint, 0)
	braking := false
	for i := range samples {
		s := &samples[i]
		if s.Brake > b.tuning.BrakeThreshold {
			if !braking {
				ret = append(ret, model.BrakePoint{
					DistancePct: s.Distance / total * 100,
					X:           s.Position.X,
					Z:           s.Position.Z,
					Speed:       s.Speed * model.MpsToKph,
				})
			}
			braking = true
		} else {
			braking = false
		}
	}
	return ret
}

// ThrottleZones segments contiguous intervals of near-full throttle. A zone
// closes on the first sample at or below the threshold.
func (b *Builder) ThrottleZones(samples []model.DistanceSample) []model.ThrottleZone {
	total := distance.Total(samples)
	if total == 0 {
		return []model.ThrottleZone{}
	}
	ret := make([]model.ThrottleZone, 0)
	start := -1
	for i := range samples {
		if samples[i].Throttle > b.tuning.ThrottleZoneThreshold {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			ret = append(ret, b.buildThrottleZone(samples, start, i-1, total))
			start = -1
		}
	}
	if start != -1 {
		ret = append(ret, b.buildThrottleZone(samples, start, len(samples)-1, total))
	}
	return ret
}

func (b *Builder) buildThrottleZone(
	samples []model.DistanceSample, start, end int, total float64,
) model.ThrottleZone {
	zone := samples[start : end+1]
	avg := lo.SumBy(zone, func(s model.DistanceSample) float64 {
		return float64(s.Throttle)
	}) / float64(len(zone)) / model.PedalMax
	return model.ThrottleZone{
		StartPct:    samples[start].Distance / total * 100,
		EndPct:      samples[end].Distance / total * 100,
		StartX:      samples[start].Position.X,
		StartZ:      samples[start].Position.Z,
		EndX:        samples[end].Position.X,
		EndZ:        samples[end].Position.Z,
		AvgThrottle: avg,
	}
}

// IdealLine picks the fastest of the given laps and resamples it onto
// evenly spaced distance points. lapsData and lapTimes are parallel; the
// shorter of the two bounds the candidate set. Returns nil when no laps are
// supplied.
func (b *Builder) IdealLine(
	lapsData [][]model.DistanceSample, lapTimes []float64,
) *model.IdealLine {
	n := min(len(lapsData), len(lapTimes))
	if n == 0 {
		return nil
	}
	fastest := 0
	for i := 1; i < n; i++ {
		if lapTimes[i] < lapTimes[fastest] {
			fastest = i
		}
	}
	points := b.resample(lapsData[fastest], b.tuning.IdealLinePoints)
	avgSpeed := 0.0
	if len(points) > 0 {
		avgSpeed = stat.Mean(lo.Map(points, func(p model.RacingLinePoint, _ int) float64 {
			return p.Speed
		}), nil)
	}
	return &model.IdealLine{
		Points:   points,
		LapTime:  lapTimes[fastest],
		AvgSpeed: avgSpeed,
	}
}

// resample picks, for each of n evenly spaced target distances, the nearest
// following sample. Points are flagged as belonging to the ideal line.
func (b *Builder) resample(samples []model.DistanceSample, n int) []model.RacingLinePoint {
	total := distance.Total(samples)
	if total == 0 || n <= 0 {
		return []model.RacingLinePoint{}
	}
	ret := make([]model.RacingLinePoint, 0, n)
	j := 0
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n)
		for j < len(samples)-1 && samples[j].Distance < target {
			j++
		}
		s := &samples[j]
		ret = append(ret, model.RacingLinePoint{
			DistancePct: s.Distance / total * 100,
			X:           s.Position.X,
			Z:           s.Position.Z,
			Speed:       s.Speed * model.MpsToKph,
			Throttle:    float64(s.Throttle) / model.PedalMax,
			Brake:       float64(s.Brake) / model.PedalMax,
			IsOptimal:   true,
		})
	}
	return ret
}

// Compare pairs two lines point-by-point up to the shorter length and
// measures the planar deviation per pair.
func (b *Builder) Compare(lineA, lineB []model.RacingLinePoint) model.LineComparison {
	n := min(len(lineA), len(lineB))
	if n == 0 {
		return model.LineComparison{Deviations: []float64{}}
	}
	deviations := make([]float64, n)
	maxDev := 0.0
	for i := 0; i < n; i++ {
		dx := lineA[i].X - lineB[i].X
		dz := lineA[i].Z - lineB[i].Z
		deviations[i] = math.Hypot(dx, dz)
		maxDev = math.Max(maxDev, deviations[i])
	}
	return model.LineComparison{
		Deviations:   deviations,
		AvgDeviation: stat.Mean(deviations, nil),
		MaxDeviation: maxDev,
	}
}

// Smooth interpolates the line with Catmull-Rom splines over consecutive
// 4-point windows, producing segments intermediate points per window.
// Fewer than 4 points are returned unchanged.
func (b *Builder) Smooth(
	points []model.RacingLinePoint, segments int,
) []model.RacingLinePoint {
	if len(points) < 4 || segments < 1 {
		return points
	}
	ret := make([]model.RacingLinePoint, 0, len(points)*segments)
	ret = append(ret, points[1])
	for i := 0; i+3 < len(points); i++ {
		p0, p1, p2, p3 := points[i], points[i+1], points[i+2], points[i+3]
		for s := 1; s <= segments; s++ {
			t := float64(s) / float64(segments)
			pt := model.RacingLinePoint{
				X: catmullRom(p0.X, p1.X, p2.X, p3.X, t),
				Z: catmullRom(p0.Z, p1.Z, p2.Z, p3.Z, t),
				// scalar channels vary slowly enough for linear blending
				DistancePct: lerp(p1.DistancePct, p2.DistancePct, t),
				Speed:       lerp(p1.Speed, p2.Speed, t),
				Throttle:    lerp(p1.Throttle, p2.Throttle, t),
				Brake:       lerp(p1.Brake, p2.Brake, t),
			}
			ret = append(ret, pt)
		}
	}
	return ret
}

// TrackOutline offsets the line perpendicular to the local direction by
// half the configured track width on each side.
func (b *Builder) TrackOutline(points []model.RacingLinePoint) model.TrackOutline {
	if len(points) < 2 {
		return model.TrackOutline{
			Left:  []model.RacingLinePoint{},
			Right: []model.RacingLinePoint{},
		}
	}
	half := b.tuning.TrackWidth / 2
	left := make([]model.RacingLinePoint, len(points))
	right := make([]model.RacingLinePoint, len(points))
	for i := range points {
		prev := max(i-1, 0)
		next := min(i+1, len(points)-1)
		dx := points[next].X - points[prev].X
		dz := points[next].Z - points[prev].Z
		length := math.Hypot(dx, dz)
		if length == 0 {
			left[i], right[i] = points[i], points[i]
			continue
		}
		// unit normal of the local direction
		nx, nz := -dz/length, dx/length
		left[i] = points[i]
		left[i].X += nx * half
		left[i].Z += nz * half
		right[i] = points[i]
		right[i].X -= nx * half
		right[i].Z -= nz * half
	}
	return model.TrackOutline{Left: left, Right: right}
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
