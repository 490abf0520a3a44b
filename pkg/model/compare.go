package model

// NormalizedPoint is one grid point of a lap resampled onto evenly spaced
// distance fractions. Metrics stay in their native units (speed m/s, pedals
// 0-255) so detection thresholds keep their meaning.
type NormalizedPoint struct {
	DistancePct float64 `json:"distancePct"` // 0-100
	Time        float64 `json:"time"`        // elapsed seconds at this distance
	Speed       float64 `json:"speed"`       // m/s
	Throttle    float64 `json:"throttle"`    // 0-255, interpolated
	Brake       float64 `json:"brake"`       // 0-255, interpolated
	Gear        int     `json:"gear"`        // rounded
}

// TimeDelta is the time difference between two laps at one distance point.
type TimeDelta struct {
	DistancePct float64 `json:"distancePct"`
	Delta       float64 `json:"delta"` // lap A minus lap B, seconds
	TimeA       float64 `json:"timeA"`
	TimeB       float64 `json:"timeB"`
}

// MetricRow holds one metric at one distance point for several laps,
// keyed by lap number.
type MetricRow struct {
	DistancePct float64         `json:"distancePct"`
	Values      map[int]float64 `json:"values"`
}

// SectorBreakdown compares one sector between two laps.
// Delta is lap A minus lap B; speeds are km/h.
type SectorBreakdown struct {
	Sector    int     `json:"sector"` // 1-based
	TimeA     float64 `json:"timeA"`
	TimeB     float64 `json:"timeB"`
	Delta     float64 `json:"delta"`
	AvgSpeedA float64 `json:"avgSpeedA"`
	AvgSpeedB float64 `json:"avgSpeedB"`
}

// ComparisonResult bundles everything the comparison engine derives from
// two laps.
type ComparisonResult struct {
	LapA       int               `json:"lapA"`
	LapB       int               `json:"lapB"`
	TimeDeltas []TimeDelta       `json:"timeDeltas"`
	Sectors    []SectorBreakdown `json:"sectors"`
	Insights   []string          `json:"insights"`
}
