package model

import (
	"math"
	"time"

	"github.com/aarondl/opt/omit"
)

// MpsToKph converts the sample's native speed unit (m/s) to the display
// unit used by racing line and corner results.
const MpsToKph = 3.6

// PedalMax is the upper bound of the raw throttle/brake input range.
const PedalMax = 255

// Vec3 is a position in the game's world frame. Y is up; the X/Z plane is
// the track plane used for 2D line rendering.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the 3D Euclidean distance to o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// TireData carries one value per wheel.
type TireData struct {
	FrontLeft  float64 `json:"frontLeft"`
	FrontRight float64 `json:"frontRight"`
	RearLeft   float64 `json:"rearLeft"`
	RearRight  float64 `json:"rearRight"`
}

// TelemetrySample is one instant of vehicle state as recorded by the
// ingestion layer. Samples are immutable and must be ordered by Timestamp
// within a lap; the engine does not correct out-of-order input.
type TelemetrySample struct {
	Timestamp time.Time `json:"timestamp"`
	LapNumber int       `json:"lapNumber"`
	Position  Vec3      `json:"position"`
	Speed     float64   `json:"speed"`    // m/s
	Throttle  int       `json:"throttle"` // 0-255
	Brake     int       `json:"brake"`    // 0-255
	Gear      int       `json:"gear"`
	RPM       float64   `json:"rpm"`
	FuelLevel float64   `json:"fuelLevel"`

	// not every capture source provides these
	TireTemps        omit.Val[TireData] `json:"tireTemps,omitempty"`
	SuspensionTravel omit.Val[TireData] `json:"suspensionTravel,omitempty"`
	SteeringAngle    omit.Val[float64]  `json:"steeringAngle,omitempty"`
	Orientation      omit.Val[Vec3]     `json:"orientation,omitempty"`
}

// DistanceSample is a TelemetrySample annotated with the cumulative 3D path
// length from the first sample of the lap. Distance is 0 at the first sample
// and non-decreasing across the sequence.
type DistanceSample struct {
	TelemetrySample
	Distance float64 `json:"distance"` // meters
}

// LapSummary is the per-lap record supplied by the caller for cross-lap
// comparison. Sector split times are only present when the capture source
// reports them.
type LapSummary struct {
	LapNumber int     `json:"lapNumber"`
	LapTime   float64 `json:"lapTime"` // seconds

	Sector1Time omit.Val[float64] `json:"sector1Time,omitempty"`
	Sector2Time omit.Val[float64] `json:"sector2Time,omitempty"`
	Sector3Time omit.Val[float64] `json:"sector3Time,omitempty"`
}

// SectorTimes returns the three split times if all of them are present.
func (s LapSummary) SectorTimes() ([3]float64, bool) {
	var ret [3]float64
	if !s.Sector1Time.IsValue() || !s.Sector2Time.IsValue() || !s.Sector3Time.IsValue() {
		return ret, false
	}
	ret[0] = s.Sector1Time.GetOrZero()
	ret[1] = s.Sector2Time.GetOrZero()
	ret[2] = s.Sector3Time.GetOrZero()
	return ret, true
}
