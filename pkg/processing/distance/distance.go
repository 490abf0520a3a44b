// Package distance turns a raw sample stream into the distance-annotated
// stream every other detector consumes. It must run once per lap; the
// annotated slice is then shared read-only between the consumers.
package distance

import "github.com/missola/gt7-lap-engine/pkg/model"

// Annotate returns the input sequence annotated with cumulative 3D path
// length. The first sample gets distance 0; empty input yields empty output.
func Annotate(samples []model.TelemetrySample) []model.DistanceSample {
	if len(samples) == 0 {
		return []model.DistanceSample{}
	}
	ret := make([]model.DistanceSample, len(samples))
	ret[0] = model.DistanceSample{TelemetrySample: samples[0], Distance: 0}
	for i := 1; i < len(samples); i++ {
		step := samples[i].Position.DistanceTo(samples[i-1].Position)
		ret[i] = model.DistanceSample{
			TelemetrySample: samples[i],
			Distance:        ret[i-1].Distance + step,
		}
	}
	return ret
}

// Total returns the cumulative length of an annotated lap.
func Total(samples []model.DistanceSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return samples[len(samples)-1].Distance
}
