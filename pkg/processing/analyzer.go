// Package processing wires the single-lap detectors together. Distance
// annotation runs once per lap; the annotated slice is shared read-only by
// the racing line builder, the corner detector and the brake zone detector.
package processing

import (
	"github.com/google/uuid"

	"github.com/missola/gt7-lap-engine/pkg/config"
	"github.com/missola/gt7-lap-engine/pkg/model"
	"github.com/missola/gt7-lap-engine/pkg/processing/brakes"
	"github.com/missola/gt7-lap-engine/pkg/processing/corners"
	"github.com/missola/gt7-lap-engine/pkg/processing/distance"
	"github.com/missola/gt7-lap-engine/pkg/processing/racingline"
	"github.com/missola/gt7-lap-engine/pkg/processing/session"
)

type Analyzer struct {
	tuning      config.Tuning
	lineBuilder *racingline.Builder
	corners     *corners.Detector
	brakes      *brakes.Detector
}

type AnalyzerOption func(*Analyzer)

// WithTuning configures all detectors with the given calibration.
func WithTuning(t config.Tuning) AnalyzerOption {
	return func(a *Analyzer) { a.tuning = t }
}

func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	ret := &Analyzer{tuning: config.DefaultTuning()}
	for _, opt := range opts {
		opt(ret)
	}
	ret.lineBuilder = racingline.NewBuilder(racingline.WithTuning(ret.tuning))
	ret.corners = corners.NewDetector(corners.WithTuning(ret.tuning))
	ret.brakes = brakes.NewDetector(brakes.WithTuning(ret.tuning))
	return ret
}

func (a *Analyzer) RacingLine() *racingline.Builder { return a.lineBuilder }
func (a *Analyzer) Corners() *corners.Detector      { return a.corners }
func (a *Analyzer) Brakes() *brakes.Detector        { return a.brakes }

// AnalyzeLap runs the full single-lap pipeline over one ordered sample
// sequence. Degenerate input yields a result with empty collections.
func (a *Analyzer) AnalyzeLap(samples []model.TelemetrySample) model.LapAnalysis {
	annotated := distance.Annotate(samples)
	ret := model.LapAnalysis{
		ID:            uuid.New(),
		TotalDistance: distance.Total(annotated),
		RacingLine:    a.lineBuilder.Points(annotated),
		BrakePoints:   a.lineBuilder.BrakePoints(annotated),
		ThrottleZones: a.lineBuilder.ThrottleZones(annotated),
		BrakeZones:    a.brakes.Detect(annotated),
		Corners:       a.corners.Detect(annotated),
		Stats:         session.Summarize(samples),
	}
	if len(samples) > 0 {
		ret.LapNumber = samples[0].LapNumber
	}
	return ret
}

// AnnotateLaps prepares several raw laps for the comparison engine by
// running the distance pass once per lap.
func (a *Analyzer) AnnotateLaps(laps [][]model.TelemetrySample) [][]model.DistanceSample {
	ret := make([][]model.DistanceSample, len(laps))
	for i, lap := range laps {
		ret[i] = distance.Annotate(lap)
	}
	return ret
}
