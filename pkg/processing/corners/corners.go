// Package corners locates corners in a lap's speed signal and scores how
// they were driven.
package corners

import (
	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"

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

// Detect runs the single-pass corner pipeline over one lap: smooth the
// speed signal, find significant local minima, delimit entry/exit around
// each apex and drop sub-minimum-duration ripples. Each returned corner is
// rated against the synthetic self-reference.
func (d *Detector) Detect(samples []model.DistanceSample) []model.DetectedCorner {
	total := distance.Total(samples)
	if len(samples) < 3 || total == 0 {
		return []model.DetectedCorner{}
	}
	speeds := lo.Map(samples, func(s model.DistanceSample, _ int) float64 {
		return s.Speed
	})
	smoothed := movingAverage(speeds, d.tuning.SmoothingWindow)
	maxBefore := slidingMaxBefore(smoothed, d.tuning.ExtremumWindow)
	maxAfter := slidingMaxAfter(smoothed, d.tuning.ExtremumWindow)

	drop := d.tuning.SpeedDropThreshold
	ret := make([]model.DetectedCorner, 0)
	lastExit := -1
	for i := 1; i < len(smoothed)-1; i++ {
		if i <= lastExit {
			continue
		}
		if smoothed[i] >= smoothed[i-1] || smoothed[i] >= smoothed[i+1] {
			continue
		}
		// significance: both flanks must climb well above the dip
		if maxBefore[i] <= smoothed[i]+drop || maxAfter[i] <= smoothed[i]+drop {
			continue
		}
		entry := d.findEntry(samples, smoothed, i)
		exit := d.findExit(samples, smoothed, i)
		duration := samples[exit].Timestamp.Sub(samples[entry].Timestamp)
		if duration < d.tuning.MinCornerDuration {
			continue
		}
		corner := d.buildCorner(samples, total, entry, i, exit)
		corner.Number = len(ret) + 1
		exec := d.Rate(&corner, nil)
		corner.Rating = exec.Rating
		corner.TimeLoss = exec.TimeLoss
		corner.Suggestions = exec.Suggestions
		ret = append(ret, corner)
		lastExit = exit
	}
	return ret
}

// findEntry walks backward from the apex to the rising edge of the brake
// application. When the speed signal re-exceeds the apex speed plus the
// drop threshold before braking is found, that point delimits the corner
// instead.
func (d *Detector) findEntry(samples []model.DistanceSample, smoothed []float64, apex int) int {
	apexSpeed := smoothed[apex]
	for i := apex - 1; i > 0; i-- {
		if samples[i].Brake > d.tuning.BrakeThreshold {
			// inside the braking phase, keep walking to its rising edge
			if samples[i-1].Brake <= d.tuning.BrakeThreshold {
				return i
			}
			continue
		}
		if smoothed[i] > apexSpeed+d.tuning.SpeedDropThreshold {
			return i
		}
	}
	return 0
}

// findExit walks forward from the apex until the driver is back to
// near-full throttle, with the same speed-based fallback as findEntry.
func (d *Detector) findExit(samples []model.DistanceSample, smoothed []float64, apex int) int {
	apexSpeed := smoothed[apex]
	for i := apex + 1; i < len(samples); i++ {
		if samples[i].Throttle > d.tuning.ThrottleExitInput {
			return i
		}
		if smoothed[i] > apexSpeed+d.tuning.SpeedDropThreshold {
			return i
		}
	}
	return len(samples) - 1
}

func (d *Detector) buildCorner(
	samples []model.DistanceSample, total float64, entry, apex, exit int,
) model.DetectedCorner {
	window := samples[entry : exit+1]
	minSpeed := lo.MinBy(window, func(a, b model.DistanceSample) bool {
		return a.Speed < b.Speed
	}).Speed

	corner := model.DetectedCorner{
		EntryPct:   samples[entry].Distance / total * 100,
		ApexPct:    samples[apex].Distance / total * 100,
		ExitPct:    samples[exit].Distance / total * 100,
		EntrySpeed: samples[entry].Speed * model.MpsToKph,
		ApexSpeed:  samples[apex].Speed * model.MpsToKph,
		ExitSpeed:  samples[exit].Speed * model.MpsToKph,
		MinSpeed:   minSpeed * model.MpsToKph,
		Duration:   samples[exit].Timestamp.Sub(samples[entry].Timestamp),
		Samples:    window,
	}
	for i := entry; i <= apex; i++ {
		if samples[i].Brake > d.tuning.BrakePointInput {
			corner.BrakePointPct = omit.From(samples[i].Distance / total * 100)
			break
		}
	}
	for i := apex; i <= exit; i++ {
		if samples[i].Throttle > d.tuning.ThrottleExitInput {
			corner.ThrottlePointPct = omit.From(samples[i].Distance / total * 100)
			break
		}
	}
	corner.Profile = lo.Map(window, func(s model.DistanceSample, _ int) model.SpeedPoint {
		return model.SpeedPoint{
			DistancePct: s.Distance / total * 100,
			Speed:       s.Speed * model.MpsToKph,
		}
	})
	return corner
}

// movingAverage smooths the signal with a centered window.
func movingAverage(vals []float64, window int) []float64 {
	if window <= 1 || len(vals) == 0 {
		return vals
	}
	half := window / 2
	ret := make([]float64, len(vals))
	for i := range vals {
		from := max(i-half, 0)
		to := min(i+half, len(vals)-1)
		sum := 0.0
		for j := from; j <= to; j++ {
			sum += vals[j]
		}
		ret[i] = sum / float64(to-from+1)
	}
	return ret
}

// slidingMaxBefore[i] is the maximum of vals[i-window .. i-1], computed with
// a monotonic deque so detection stays linear on long laps.
func slidingMaxBefore(vals []float64, window int) []float64 {
	ret := make([]float64, len(vals))
	deque := make([]int, 0, window)
	for i := range vals {
		if len(deque) > 0 {
			ret[i] = vals[deque[0]]
		} else {
			ret[i] = vals[i]
		}
		for len(deque) > 0 && vals[deque[len(deque)-1]] <= vals[i] {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		if deque[0] <= i-window {
			deque = deque[1:]
		}
	}
	return ret
}

func slidingMaxAfter(vals []float64, window int) []float64 {
	ret := make([]float64, len(vals))
	deque := make([]int, 0, window)
	for i := len(vals) - 1; i >= 0; i-- {
		if len(deque) > 0 {
			ret[i] = vals[deque[0]]
		} else {
			ret[i] = vals[i]
		}
		for len(deque) > 0 && vals[deque[len(deque)-1]] <= vals[i] {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		if deque[0] >= i+window {
			deque = deque[1:]
		}
	}
	return ret
}
