package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tuning groups the heuristic constants used by the detectors. The defaults
// mirror the values the product shipped with; they are empirical, not
// derived, so they are exposed as configuration rather than literals.
//
// Pedal inputs are raw 0-255 integers, speeds are m/s unless noted.
type Tuning struct {
	// racing line / brake zones
	BrakeThreshold        int     `mapstructure:"brakeThreshold"`        // zone opens above this raw brake value
	ThrottleZoneThreshold int     `mapstructure:"throttleZoneThreshold"` // near-full throttle
	TrackWidth            float64 `mapstructure:"trackWidth"`            // meters, for outline generation
	IdealLinePoints       int     `mapstructure:"idealLinePoints"`

	// corner detection
	SmoothingWindow    int           `mapstructure:"smoothingWindow"`
	ExtremumWindow     int           `mapstructure:"extremumWindow"`
	SpeedDropThreshold float64       `mapstructure:"speedDropThreshold"` // m/s
	MinCornerDuration  time.Duration `mapstructure:"minCornerDuration"`
	BrakePointInput    int           `mapstructure:"brakePointInput"`    // raw brake marking the brake point
	ThrottleExitInput  int           `mapstructure:"throttleExitInput"`  // raw throttle marking corner exit

	// trail braking
	TrailPeakPosition float64 `mapstructure:"trailPeakPosition"` // peak must occur after this fraction of the zone
	TrailNoiseFactor  float64 `mapstructure:"trailNoiseFactor"`  // allowed upward noise while releasing

	// cross-lap consistency
	ConsistencyStdDevScale float64 `mapstructure:"consistencyStdDevScale"`
}

// DefaultTuning returns the shipped detector calibration.
func DefaultTuning() Tuning {
	return Tuning{
		BrakeThreshold:        30,  // ~12% of the 0-255 range
		ThrottleZoneThreshold: 200, // ~78% of the 0-255 range
		TrackWidth:            12,
		IdealLinePoints:       100,

		SmoothingWindow:    5,
		ExtremumWindow:     20,
		SpeedDropThreshold: 15.0 / 3.6, // 15 km/h in m/s
		MinCornerDuration:  500 * time.Millisecond,
		BrakePointInput:    128,
		ThrottleExitInput:  200,

		TrailPeakPosition: 0.3,
		TrailNoiseFactor:  1.10,

		ConsistencyStdDevScale: 20,
	}
}

// TuningFromViper overlays values from the "tuning" config section onto the
// defaults. Absent keys keep their default.
func TuningFromViper(v *viper.Viper) (Tuning, error) {
	ret := DefaultTuning()
	if v == nil {
		v = viper.GetViper()
	}
	if sub := v.Sub("tuning"); sub != nil {
		if err := sub.Unmarshal(&ret); err != nil {
			return ret, err
		}
	}
	return ret, nil
}
