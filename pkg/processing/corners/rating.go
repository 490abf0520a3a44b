package corners

import (
	"math"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

// penalty points per detected fault
const (
	penaltyUnderBraking = 15
	penaltySlowApex     = 10
	penaltyLateThrottle = 10
	penaltyEarlyLift    = 10
	penaltySlowExit     = 10
	penaltySawing       = 15
)

// steering inputs this far apart between consecutive samples count as a
// correction when looking for sawing
const steeringSawThreshold = 0.05

// Rate scores the corner against a reference corner. Without a reference,
// apex/exit speed checks are skipped and the time-loss baseline is a
// synthetic reference at 95% of the corner's own duration. The returned
// execution always carries at least one suggestion.
//
//nolint:gocognit // one block per penalty reads better than a rule table
func (d *Detector) Rate(
	corner *model.DetectedCorner, reference *model.DetectedCorner,
) model.CornerExecution {
	score := 100
	suggestions := make([]string, 0)

	braking := brakingPhase(corner.Samples, d.tuning.BrakeThreshold)
	if len(braking) > 0 {
		sum := 0
		for _, s := range braking {
			sum += s.Brake
		}
		avg := float64(sum) / float64(len(braking))
		if avg < float64(d.tuning.BrakePointInput) {
			score -= penaltyUnderBraking
			suggestions = append(suggestions,
				"Brake harder initially to carry more speed into the corner")
		}
	}

	if reference != nil && corner.ApexSpeed < reference.ApexSpeed*0.95 {
		score -= penaltySlowApex
		suggestions = append(suggestions,
			"Carry more speed through the apex")
	}

	if idx := firstThrottleIndex(corner.Samples, d.tuning.ThrottleExitInput); idx >= 0 &&
		float64(idx) > float64(len(corner.Samples))*0.7 {
		score -= penaltyLateThrottle
		suggestions = append(suggestions,
			"Get back on the throttle earlier on corner exit")
	}

	if hasEarlyLift(corner.Samples, d.tuning.BrakeThreshold) {
		score -= penaltyEarlyLift
		suggestions = append(suggestions,
			"Stay on the throttle until the braking point")
	}

	if reference != nil && corner.ExitSpeed < reference.ExitSpeed*0.95 {
		score -= penaltySlowExit
		suggestions = append(suggestions,
			"Focus on a better exit to maximize straight-line speed")
	}

	if hasSteeringSawing(corner.Samples) {
		score -= penaltySawing
		suggestions = append(suggestions,
			"Smooth out steering inputs; avoid sawing at the wheel")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Well driven, maintain consistency through this corner")
	}

	refDuration := corner.Duration.Seconds() * 0.95
	if reference != nil {
		refDuration = reference.Duration.Seconds()
	}
	return model.CornerExecution{
		Score:       score,
		Rating:      ratingForScore(score),
		TimeLoss:    math.Max(0, corner.Duration.Seconds()-refDuration),
		Suggestions: suggestions,
	}
}

func ratingForScore(score int) model.CornerRating {
	switch {
	case score >= 90:
		return model.RatingExcellent
	case score >= 75:
		return model.RatingGood
	case score >= 60:
		return model.RatingAverage
	case score >= 45:
		return model.RatingPoor
	default:
		return model.RatingBad
	}
}

// brakingPhase returns the leading samples from the first brake application
// until brake input drops back below the threshold.
func brakingPhase(samples []model.DistanceSample, threshold int) []model.DistanceSample {
	start := -1
	for i := range samples {
		if samples[i].Brake > threshold {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}
	end := start
	for end+1 < len(samples) && samples[end+1].Brake > threshold {
		end++
	}
	return samples[start : end+1]
}

func firstThrottleIndex(samples []model.DistanceSample, threshold int) int {
	for i := range samples {
		if samples[i].Throttle > threshold {
			return i
		}
	}
	return -1
}

// hasEarlyLift reports a throttle lift before braking has started: the
// driver coasts instead of staying flat up to the brake point.
func hasEarlyLift(samples []model.DistanceSample, brakeThreshold int) bool {
	wasFlat := false
	for i := range samples {
		if samples[i].Brake > brakeThreshold {
			return false
		}
		if samples[i].Throttle > 230 {
			wasFlat = true
		} else if wasFlat && samples[i].Throttle < 25 {
			return true
		}
	}
	return false
}

// hasSteeringSawing reports when more than half of the consecutive steering
// samples differ by more than the saw threshold. Laps without steering data
// never trigger it.
func hasSteeringSawing(samples []model.DistanceSample) bool {
	pairs := 0
	saws := 0
	for i := 1; i < len(samples); i++ {
		prev, okPrev := samples[i-1].SteeringAngle.Get()
		cur, okCur := samples[i].SteeringAngle.Get()
		if !okPrev || !okCur {
			continue
		}
		pairs++
		if math.Abs(cur-prev) > steeringSawThreshold {
			saws++
		}
	}
	return pairs > 0 && saws*2 > pairs
}
