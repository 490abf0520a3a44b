package model

import "github.com/google/uuid"

// LapStats summarizes one lap. Speeds are km/h.
type LapStats struct {
	LapNumber   int     `json:"lapNumber"`
	LapTime     float64 `json:"lapTime"` // seconds
	AvgSpeed    float64 `json:"avgSpeed"`
	MaxSpeed    float64 `json:"maxSpeed"`
	FuelUsed    float64 `json:"fuelUsed"`
	GearChanges int     `json:"gearChanges"`
	SampleCount int     `json:"sampleCount"`
}

// LapAnalysis is the combined single-lap result: the racing line, the
// detected events and the summary, all derived from one shared
// distance-annotated pass over the samples.
type LapAnalysis struct {
	ID            uuid.UUID         `json:"id"`
	LapNumber     int               `json:"lapNumber"`
	TotalDistance float64           `json:"totalDistance"` // meters
	RacingLine    []RacingLinePoint `json:"racingLine"`
	BrakePoints   []BrakePoint      `json:"brakePoints"`
	ThrottleZones []ThrottleZone    `json:"throttleZones"`
	BrakeZones    []BrakeZone       `json:"brakeZones"`
	Corners       []DetectedCorner  `json:"corners"`
	Stats         LapStats          `json:"stats"`
}
