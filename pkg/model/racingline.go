package model

// RacingLinePoint is one normalized point of a lap's driven line.
// Speed is in km/h, pedal inputs are normalized to [0,1].
type RacingLinePoint struct {
	DistancePct float64 `json:"distancePct"` // 0-100
	X           float64 `json:"x"`
	Z           float64 `json:"z"`
	Speed       float64 `json:"speed"`
	Throttle    float64 `json:"throttle"`
	Brake       float64 `json:"brake"`
	IsOptimal   bool    `json:"isOptimal"`
}

// BrakePoint marks the rising edge of a braking application.
type BrakePoint struct {
	DistancePct float64 `json:"distancePct"`
	X           float64 `json:"x"`
	Z           float64 `json:"z"`
	Speed       float64 `json:"speed"` // km/h at application
}

// ThrottleZone is a contiguous interval of near-full throttle.
type ThrottleZone struct {
	StartPct    float64 `json:"startPct"`
	EndPct      float64 `json:"endPct"`
	StartX      float64 `json:"startX"`
	StartZ      float64 `json:"startZ"`
	EndX        float64 `json:"endX"`
	EndZ        float64 `json:"endZ"`
	AvgThrottle float64 `json:"avgThrottle"` // 0-1
}

// IdealLine is the normalized line of the fastest lap in a set.
type IdealLine struct {
	Points   []RacingLinePoint `json:"points"`
	LapTime  float64           `json:"lapTime"`  // seconds
	AvgSpeed float64           `json:"avgSpeed"` // km/h
}

// LineComparison quantifies how far one line strays from another.
type LineComparison struct {
	Deviations   []float64 `json:"deviations"` // meters, per point pair
	AvgDeviation float64   `json:"avgDeviation"`
	MaxDeviation float64   `json:"maxDeviation"`
}

// TrackOutline approximates the track edges from a single driven line.
type TrackOutline struct {
	Left  []RacingLinePoint `json:"left"`
	Right []RacingLinePoint `json:"right"`
}
