package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/ohler55/ojg/oj"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

// Session is a recorded telemetry file: the raw sample stream plus optional
// per-lap summary records from the capture source.
type Session struct {
	Samples   []model.TelemetrySample
	Summaries []model.LapSummary
}

// wire types kept separate from the model so the file format can stay
// primitive-only
type (
	sessionJSON struct {
		Samples []sampleJSON `json:"samples"`
		Laps    []lapJSON    `json:"laps"`
	}
	vec3JSON struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	}
	tireJSON struct {
		FrontLeft  float64 `json:"frontLeft"`
		FrontRight float64 `json:"frontRight"`
		RearLeft   float64 `json:"rearLeft"`
		RearRight  float64 `json:"rearRight"`
	}
	sampleJSON struct {
		Timestamp float64  `json:"timestamp"` // unix millis
		LapNumber int      `json:"lapNumber"`
		Position  vec3JSON `json:"position"`
		Speed     float64  `json:"speed"` // m/s
		Throttle  int      `json:"throttle"`
		Brake     int      `json:"brake"`
		Gear      int      `json:"gear"`
		RPM       float64  `json:"rpm"`
		FuelLevel float64  `json:"fuelLevel"`

		TireTemps        *tireJSON `json:"tireTemps"`
		SuspensionTravel *tireJSON `json:"suspensionTravel"`
		SteeringAngle    *float64  `json:"steeringAngle"`
		Orientation      *vec3JSON `json:"orientation"`
	}
	lapJSON struct {
		LapNumber   int      `json:"lapNumber"`
		LapTime     float64  `json:"lapTime"`
		Sector1Time *float64 `json:"sector1Time"`
		Sector2Time *float64 `json:"sector2Time"`
		Sector3Time *float64 `json:"sector3Time"`
	}
)

// LoadSession reads a recorded telemetry JSON file.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading telemetry file: %w", err)
	}
	var wire sessionJSON
	if err := oj.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing telemetry file %s: %w", path, err)
	}
	ret := &Session{
		Samples:   make([]model.TelemetrySample, 0, len(wire.Samples)),
		Summaries: make([]model.LapSummary, 0, len(wire.Laps)),
	}
	for i := range wire.Samples {
		ret.Samples = append(ret.Samples, toSample(&wire.Samples[i]))
	}
	for i := range wire.Laps {
		ret.Summaries = append(ret.Summaries, toSummary(&wire.Laps[i]))
	}
	return ret, nil
}

func toSample(w *sampleJSON) model.TelemetrySample {
	ret := model.TelemetrySample{
		Timestamp: time.UnixMilli(int64(w.Timestamp)).UTC(),
		LapNumber: w.LapNumber,
		Position:  model.Vec3{X: w.Position.X, Y: w.Position.Y, Z: w.Position.Z},
		Speed:     w.Speed,
		Throttle:  w.Throttle,
		Brake:     w.Brake,
		Gear:      w.Gear,
		RPM:       w.RPM,
		FuelLevel: w.FuelLevel,
	}
	if w.TireTemps != nil {
		ret.TireTemps = omit.From(model.TireData(*w.TireTemps))
	}
	if w.SuspensionTravel != nil {
		ret.SuspensionTravel = omit.From(model.TireData(*w.SuspensionTravel))
	}
	if w.SteeringAngle != nil {
		ret.SteeringAngle = omit.From(*w.SteeringAngle)
	}
	if w.Orientation != nil {
		ret.Orientation = omit.From(model.Vec3(*w.Orientation))
	}
	return ret
}

func toSummary(w *lapJSON) model.LapSummary {
	ret := model.LapSummary{
		LapNumber: w.LapNumber,
		LapTime:   w.LapTime,
	}
	if w.Sector1Time != nil {
		ret.Sector1Time = omit.From(*w.Sector1Time)
	}
	if w.Sector2Time != nil {
		ret.Sector2Time = omit.From(*w.Sector2Time)
	}
	if w.Sector3Time != nil {
		ret.Sector3Time = omit.From(*w.Sector3Time)
	}
	return ret
}
