package compare

import (
	"gonum.org/v1/gonum/stat"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

const sectorCount = 3

// SectorBreakdown splits the two laps into three sectors. When both lap
// summaries carry explicit split times those are used directly; otherwise
// the sectors are estimated from the normalized sequences at the
// third-boundary distances.
func (e *Engine) SectorBreakdown(
	lapA, lapB model.LapSummary,
	samplesA, samplesB []model.DistanceSample,
) []model.SectorBreakdown {
	normA := e.NormalizeLap(samplesA, e.gridSize)
	normB := e.NormalizeLap(samplesB, e.gridSize)

	var timesA, timesB [sectorCount]float64
	splitsA, okA := lapA.SectorTimes()
	splitsB, okB := lapB.SectorTimes()
	if okA && okB {
		timesA, timesB = splitsA, splitsB
	} else {
		timesA = estimateSectorTimes(normA, lapA.LapTime)
		timesB = estimateSectorTimes(normB, lapB.LapTime)
	}

	ret := make([]model.SectorBreakdown, 0, sectorCount)
	for s := 0; s < sectorCount; s++ {
		lowPct := float64(s) * 100 / sectorCount
		highPct := float64(s+1) * 100 / sectorCount
		ret = append(ret, model.SectorBreakdown{
			Sector:    s + 1,
			TimeA:     timesA[s],
			TimeB:     timesB[s],
			Delta:     timesA[s] - timesB[s],
			AvgSpeedA: avgSpeedInRange(normA, lowPct, highPct),
			AvgSpeedB: avgSpeedInRange(normB, lowPct, highPct),
		})
	}
	return ret
}

// estimateSectorTimes derives three splits by reading the interpolated time
// of the first normalized point at or past each third boundary. Empty
// normalized input (degenerate lap) falls back to an even three-way split
// of the lap time.
func estimateSectorTimes(
	norm []model.NormalizedPoint, lapTime float64,
) [sectorCount]float64 {
	var ret [sectorCount]float64
	if len(norm) == 0 {
		for s := range ret {
			ret[s] = lapTime / sectorCount
		}
		return ret
	}
	prev := 0.0
	for s := 0; s < sectorCount; s++ {
		boundary := float64(s+1) * 100 / sectorCount
		at := lapTime
		if s < sectorCount-1 {
			at = timeAtDistance(norm, boundary)
		}
		ret[s] = at - prev
		prev = at
	}
	return ret
}

func timeAtDistance(norm []model.NormalizedPoint, pct float64) float64 {
	for i := range norm {
		if norm[i].DistancePct >= pct {
			return norm[i].Time
		}
	}
	return norm[len(norm)-1].Time
}

// avgSpeedInRange averages (km/h) the normalized points falling in the
// sector's distance range.
func avgSpeedInRange(norm []model.NormalizedPoint, lowPct, highPct float64) float64 {
	speeds := make([]float64, 0, len(norm))
	for i := range norm {
		if norm[i].DistancePct >= lowPct && norm[i].DistancePct < highPct {
			speeds = append(speeds, norm[i].Speed*model.MpsToKph)
		}
	}
	if len(speeds) == 0 {
		return 0
	}
	return stat.Mean(speeds, nil)
}
