// Package brakes segments braking zones, classifies trail braking and
// measures cross-lap brake-point consistency.
package brakes

import (
	"math"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/missola/gt7-lap-engine/pkg/config"
	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing/distance"
)

type Detector struct {
	tuning config.Tuning
}

type DetectorOption func(*Detector)

func WithTuning(t config.Tuning) DetectorOption {
	return func(d *Detector) { d.tuning = t }
}

func NewDetector(opts ...DetectorOption) *Detector {
	ret := &Detector{tuning: config.DefaultTuning()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Detect segments the lap into braking zones: a zone opens on the first
// sample above the brake threshold and closes on the first sample at or
// below it.
func (d *Detector) Detect(samples []model.DistanceSample) []model.BrakeZone {
	total := distance.Total(samples)
	if total == 0 {
		return []model.BrakeZone{}
	}
	ret := make([]model.BrakeZone, 0)
	start := -1
	for i := range samples {
		if samples[i].Brake > d.tuning.BrakeThreshold {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			ret = append(ret, d.buildZone(samples[start:i], samples[start].Distance, total))
			start = -1
		}
	}
	if start != -1 {
		ret = append(ret, d.buildZone(samples[start:], samples[start].Distance, total))
	}
	return ret
}

func (d *Detector) buildZone(
	zone []model.DistanceSample, startDist, total float64,
) model.BrakeZone {
	last := zone[len(zone)-1]
	maxPressure := 0
	sum := 0
	for i := range zone {
		sum += zone[i].Brake
		if zone[i].Brake > maxPressure {
			maxPressure = zone[i].Brake
		}
	}
	trail, trailDuration := d.classifyTrailBraking(zone)
	return model.BrakeZone{
		StartPct:      startDist / total * 100,
		EndPct:        last.Distance / total * 100,
		EntrySpeed:    zone[0].Speed * model.MpsToKph,
		ExitSpeed:     last.Speed * model.MpsToKph,
		MaxPressure:   float64(maxPressure) / model.PedalMax,
		AvgPressure:   float64(sum) / float64(len(zone)) / model.PedalMax,
		TrailBraking:  trail,
		TrailDuration: trailDuration,
	}
}

// classifyTrailBraking checks that pressure peaks after the first 30% of
// the zone, then releases gradually (non-increasing within the configured
// noise factor) down to below half the peak.
func (d *Detector) classifyTrailBraking(
	zone []model.DistanceSample,
) (bool, time.Duration) {
	if len(zone) < 3 {
		return false, 0
	}
	peakIdx := 0
	for i := range zone {
		if zone[i].Brake > zone[peakIdx].Brake {
			peakIdx = i
		}
	}
	// braking that peaks immediately is a stab, not a trail
	if float64(peakIdx) < float64(len(zone))*d.tuning.TrailPeakPosition {
		return false, 0
	}
	for i := peakIdx + 1; i < len(zone); i++ {
		if float64(zone[i].Brake) > float64(zone[i-1].Brake)*d.tuning.TrailNoiseFactor {
			return false, 0
		}
	}
	if float64(zone[len(zone)-1].Brake) >= float64(zone[peakIdx].Brake)/2 {
		return false, 0
	}
	elapsed := zone[len(zone)-1].Timestamp.Sub(zone[0].Timestamp)
	return true, time.Duration(float64(elapsed) * 0.3)
}

// Consistency scores, per zone index common to all laps, how repeatable the
// zone's start distance is. Zero variance scores 100; a standard deviation
// of five percentage points or more scores 0.
func (d *Detector) Consistency(lapZones [][]model.BrakeZone) []model.BrakeConsistency {
	if len(lapZones) < 2 {
		return []model.BrakeConsistency{}
	}
	common := lo.MinBy(lapZones, func(a, b []model.BrakeZone) bool {
		return len(a) < len(b)
	})
	ret := make([]model.BrakeConsistency, 0, len(common))
	for zone := 0; zone < len(common); zone++ {
		starts := lo.Map(lapZones, func(zones []model.BrakeZone, _ int) float64 {
			return zones[zone].StartPct
		})
		// population stddev: the laps at hand are the whole universe
		stdDev := math.Sqrt(stat.PopVariance(starts, nil))
		score := math.Max(0, math.Min(100, 100-stdDev*d.tuning.ConsistencyStdDevScale))
		ret = append(ret, model.BrakeConsistency{
			Zone:     zone + 1,
			StdDev:   stdDev,
			Score:    score,
			LapCount: len(lapZones),
		})
	}
	return ret
}
