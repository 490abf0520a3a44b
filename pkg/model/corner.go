package model

import (
	"time"

	"github.com/aarondl/opt/omit"
)

// CornerRating is the 5-tier verdict on how a corner was driven.
type CornerRating string

const (
	RatingExcellent CornerRating = "excellent"
	RatingGood      CornerRating = "good"
	RatingAverage   CornerRating = "average"
	RatingPoor      CornerRating = "poor"
	RatingBad       CornerRating = "bad"
)

// SpeedPoint is one point of a corner's speed-vs-distance profile.
type SpeedPoint struct {
	DistancePct float64 `json:"distancePct"`
	Speed       float64 `json:"speed"` // km/h
}

// DetectedCorner is an apex-centered interval of a lap.
// Distances are percentages of the lap, speeds are km/h.
type DetectedCorner struct {
	Number      int     `json:"number"`
	EntryPct    float64 `json:"entryPct"`
	ApexPct     float64 `json:"apexPct"`
	ExitPct     float64 `json:"exitPct"`
	EntrySpeed  float64 `json:"entrySpeed"`
	ApexSpeed   float64 `json:"apexSpeed"`
	ExitSpeed   float64 `json:"exitSpeed"`
	MinSpeed    float64 `json:"minSpeed"`

	Duration time.Duration `json:"duration"` // nanoseconds
	// first heavy brake application between entry and apex, if any
	BrakePointPct omit.Val[float64] `json:"brakePointPct,omitempty"`
	// first return to near-full throttle between apex and exit, if any
	ThrottlePointPct omit.Val[float64] `json:"throttlePointPct,omitempty"`

	Samples []DistanceSample `json:"-"`
	Profile []SpeedPoint     `json:"profile"`

	Rating      CornerRating `json:"rating"`
	TimeLoss    float64      `json:"timeLoss"` // seconds vs reference
	Suggestions []string     `json:"suggestions"`
}

// CornerExecution is the outcome of rating a corner against a reference.
type CornerExecution struct {
	Score       int          `json:"score"` // 0-100
	Rating      CornerRating `json:"rating"`
	TimeLoss    float64      `json:"timeLoss"`
	Suggestions []string     `json:"suggestions"`
}
