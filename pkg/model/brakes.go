package model

import "time"

// BrakeZone is a contiguous braking interval of a lap.
// Pressures are normalized to [0,1], speeds are km/h.
type BrakeZone struct {
	StartPct      float64       `json:"startPct"`
	EndPct        float64       `json:"endPct"`
	EntrySpeed    float64       `json:"entrySpeed"`
	ExitSpeed     float64       `json:"exitSpeed"`
	MaxPressure   float64       `json:"maxPressure"`
	AvgPressure   float64       `json:"avgPressure"`
	TrailBraking  bool          `json:"trailBraking"`
	TrailDuration time.Duration `json:"trailDuration"`
}

// BrakeConsistency scores how repeatable the brake points of one zone are
// across laps. 100 means identical start distances on every lap.
type BrakeConsistency struct {
	Zone     int     `json:"zone"`
	StdDev   float64 `json:"stdDev"` // of start percentage across laps
	Score    float64 `json:"score"`  // 0-100
	LapCount int     `json:"lapCount"`
}
