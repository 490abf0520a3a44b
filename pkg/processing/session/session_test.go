package session

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

func sample(lap int, elapsed time.Duration, speed float64, gear int, fuel float64) model.TelemetrySample {
	return model.TelemetrySample{
		Timestamp: time.Unix(0, 0).Add(elapsed),
		LapNumber: lap,
		Speed:     speed,
		Gear:      gear,
		FuelLevel: fuel,
	}
}

func TestSplitLaps(t *testing.T) {
	stream := []model.TelemetrySample{
		sample(1, 0, 10, 3, 50),
		sample(1, 100*time.Millisecond, 12, 3, 49.9),
		sample(1, 200*time.Millisecond, 14, 4, 49.8),
		sample(2, 300*time.Millisecond, 15, 4, 49.7),
		sample(2, 400*time.Millisecond, 16, 4, 49.6),
		sample(3, 500*time.Millisecond, 17, 5, 49.5),
	}
	laps := SplitLaps(stream)
	require.Len(t, laps, 3)
	assert.Len(t, laps[0], 3)
	assert.Len(t, laps[1], 2)
	assert.Len(t, laps[2], 1)
	assert.Equal(t, 1, laps[0][0].LapNumber)
	assert.Equal(t, 2, laps[1][0].LapNumber)
	assert.Equal(t, 3, laps[2][0].LapNumber)
}

func TestSplitLaps_Empty(t *testing.T) {
	assert.Empty(t, SplitLaps(nil))
}

func TestSplitLaps_SingleLap(t *testing.T) {
	stream := []model.TelemetrySample{
		sample(5, 0, 10, 3, 50),
		sample(5, time.Second, 12, 3, 49),
	}
	laps := SplitLaps(stream)
	require.Len(t, laps, 1)
	assert.Len(t, laps[0], 2)
}

func TestSummarize(t *testing.T) {
	lap := []model.TelemetrySample{
		sample(2, 0, 20, 3, 48.0),
		sample(2, 500*time.Millisecond, 30, 4, 47.8),
		sample(2, 1000*time.Millisecond, 40, 5, 47.6),
		sample(2, 1500*time.Millisecond, 30, 5, 47.4),
	}
	want := model.LapStats{
		LapNumber:   2,
		LapTime:     1.5,
		AvgSpeed:    30 * model.MpsToKph,
		MaxSpeed:    40 * model.MpsToKph,
		FuelUsed:    48.0 - 47.4,
		GearChanges: 2,
		SampleCount: 4,
	}
	if diff := cmp.Diff(want, Summarize(lap)); diff != "" {
		t.Errorf("lap stats not correct: %s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, model.LapStats{}, Summarize(nil))
}

func TestSummaries(t *testing.T) {
	laps := [][]model.TelemetrySample{
		{sample(1, 0, 10, 3, 50), sample(1, 2*time.Second, 10, 3, 49)},
		{sample(2, 2*time.Second, 12, 3, 49), sample(2, 5*time.Second, 12, 3, 48)},
	}
	summaries := Summaries(laps)
	require.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[0].LapNumber)
	assert.InDelta(t, 2.0, summaries[0].LapTime, 1e-9)
	assert.Equal(t, 2, summaries[1].LapNumber)
	assert.InDelta(t, 3.0, summaries[1].LapTime, 1e-9)
	assert.False(t, summaries[0].Sector1Time.IsValue())
}
