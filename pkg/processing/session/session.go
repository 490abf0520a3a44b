// Package session splits recorded sample streams into laps and summarizes
// them. Convenience for callers recording whole sessions; the detectors
// themselves operate on single-lap sequences.
package session

import (
	"github.com/samber/lo"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

// SplitLaps cuts the stream whenever the lap number increases. Samples stay
// in recording order; an empty stream yields no laps.
func SplitLaps(samples []model.TelemetrySample) [][]model.TelemetrySample {
	if len(samples) == 0 {
		return [][]model.TelemetrySample{}
	}
	ret := make([][]model.TelemetrySample, 0)
	start := 0
	last := samples[0].LapNumber
	for i := 1; i < len(samples); i++ {
		if samples[i].LapNumber > last {
			ret = append(ret, samples[start:i])
			start = i
			last = samples[i].LapNumber
		}
	}
	return append(ret, samples[start:])
}

// Summarize computes the per-lap stats: lap time from the sample
// timestamps, speeds in km/h, fuel used and gear-change count.
func Summarize(lap []model.TelemetrySample) model.LapStats {
	if len(lap) == 0 {
		return model.LapStats{}
	}
	first, last := lap[0], lap[len(lap)-1]
	maxSpeed := lo.MaxBy(lap, func(a, b model.TelemetrySample) bool {
		return a.Speed > b.Speed
	}).Speed
	avgSpeed := lo.SumBy(lap, func(s model.TelemetrySample) float64 {
		return s.Speed
	}) / float64(len(lap))
	gearChanges := 0
	for i := 1; i < len(lap); i++ {
		if lap[i].Gear != lap[i-1].Gear {
			gearChanges++
		}
	}
	return model.LapStats{
		LapNumber:   first.LapNumber,
		LapTime:     last.Timestamp.Sub(first.Timestamp).Seconds(),
		AvgSpeed:    avgSpeed * model.MpsToKph,
		MaxSpeed:    maxSpeed * model.MpsToKph,
		FuelUsed:    first.FuelLevel - last.FuelLevel,
		GearChanges: gearChanges,
		SampleCount: len(lap),
	}
}

// Summaries derives the comparison-engine lap records from raw laps. Sector
// split times are left unset; capture sources that report them should fill
// the summaries themselves.
func Summaries(laps [][]model.TelemetrySample) []model.LapSummary {
	return lo.Map(laps, func(lap []model.TelemetrySample, _ int) model.LapSummary {
		stats := Summarize(lap)
		return model.LapSummary{
			LapNumber: stats.LapNumber,
			LapTime:   stats.LapTime,
		}
	})
}
