package compare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

// insight emission thresholds
const (
	avgSpeedInsightKph  = 2.0
	sectorInsightSec    = 0.1
	peakDeltaInsightKph = 10.0
)

// Insights produces the ordered advisory statements for a two-lap
// comparison: overall margin, average-speed gap, notable sectors, then the
// single point of largest instantaneous speed difference.
func (e *Engine) Insights(
	lapA, lapB model.LapSummary,
	samplesA, samplesB []model.DistanceSample,
	sectors []model.SectorBreakdown,
) []string {
	ret := make([]string, 0)

	margin := lapA.LapTime - lapB.LapTime
	switch {
	case margin > 0:
		ret = append(ret, fmt.Sprintf("Lap %d was faster by %.3fs overall",
			lapB.LapNumber, margin))
	case margin < 0:
		ret = append(ret, fmt.Sprintf("Lap %d was faster by %.3fs overall",
			lapA.LapNumber, -margin))
	default:
		ret = append(ret, fmt.Sprintf("Laps %d and %d were equally fast",
			lapA.LapNumber, lapB.LapNumber))
	}

	normA := e.NormalizeLap(samplesA, e.gridSize)
	normB := e.NormalizeLap(samplesB, e.gridSize)

	if avgDiff := avgSpeedKph(normA) - avgSpeedKph(normB); math.Abs(avgDiff) > avgSpeedInsightKph {
		faster, slower := lapA.LapNumber, lapB.LapNumber
		if avgDiff < 0 {
			faster, slower = lapB.LapNumber, lapA.LapNumber
		}
		ret = append(ret, fmt.Sprintf(
			"Lap %d carried %.1f km/h more average speed than lap %d",
			faster, math.Abs(avgDiff), slower))
	}

	for _, s := range sectors {
		if math.Abs(s.Delta) <= sectorInsightSec {
			continue
		}
		winner := lapB.LapNumber
		if s.Delta < 0 {
			winner = lapA.LapNumber
		}
		ret = append(ret, fmt.Sprintf("Sector %d: lap %d gained %.3fs",
			s.Sector, winner, math.Abs(s.Delta)))
	}

	if pct, diff, ok := peakSpeedDelta(normA, normB); ok && math.Abs(diff) > peakDeltaInsightKph {
		faster := lapA.LapNumber
		if diff < 0 {
			faster = lapB.LapNumber
		}
		ret = append(ret, fmt.Sprintf(
			"Biggest speed gap at %.0f%% distance: lap %d was %.1f km/h quicker there",
			pct, faster, math.Abs(diff)))
	}

	return ret
}

// Compare bundles the full two-lap comparison.
func (e *Engine) Compare(
	lapA, lapB model.LapSummary,
	samplesA, samplesB []model.DistanceSample,
) model.ComparisonResult {
	sectors := e.SectorBreakdown(lapA, lapB, samplesA, samplesB)
	return model.ComparisonResult{
		LapA:       lapA.LapNumber,
		LapB:       lapB.LapNumber,
		TimeDeltas: e.TimeDelta(samplesA, samplesB, e.gridSize),
		Sectors:    sectors,
		Insights:   e.Insights(lapA, lapB, samplesA, samplesB, sectors),
	}
}

func avgSpeedKph(norm []model.NormalizedPoint) float64 {
	if len(norm) == 0 {
		return 0
	}
	speeds := make([]float64, len(norm))
	for i := range norm {
		speeds[i] = norm[i].Speed * model.MpsToKph
	}
	return stat.Mean(speeds, nil)
}

// peakSpeedDelta locates the grid point with the largest instantaneous
// speed difference (km/h, A minus B).
func peakSpeedDelta(normA, normB []model.NormalizedPoint) (pct, diff float64, ok bool) {
	n := min(len(normA), len(normB))
	if n == 0 {
		return 0, 0, false
	}
	for i := 0; i < n; i++ {
		d := (normA[i].Speed - normB[i].Speed) * model.MpsToKph
		if math.Abs(d) > math.Abs(diff) {
			diff = d
			pct = normA[i].DistancePct
		}
	}
	return pct, diff, true
}
