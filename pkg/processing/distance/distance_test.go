package distance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/missola/gt7-lap-engine/pkg/model"
)

func sampleAt(x, y, z float64) model.TelemetrySample {
	return model.TelemetrySample{
		Timestamp: time.Unix(0, 0),
		Position:  model.Vec3{X: x, Y: y, Z: z},
	}
}

func TestAnnotate_Empty(t *testing.T) {
	assert.Empty(t, Annotate(nil))
	assert.Empty(t, Annotate([]model.TelemetrySample{}))
}

func TestAnnotate_CumulativeDistance(t *testing.T) {
	samples := []model.TelemetrySample{
		sampleAt(0, 0, 0),
		sampleAt(3, 4, 0),  // 5m step
		sampleAt(3, 4, 0),  // stationary
		sampleAt(3, 4, 12), // 12m step
	}
	annotated := Annotate(samples)
	assert.Len(t, annotated, 4)
	assert.Equal(t, 0.0, annotated[0].Distance)
	assert.InDelta(t, 5.0, annotated[1].Distance, 1e-9)
	assert.InDelta(t, 5.0, annotated[2].Distance, 1e-9)
	assert.InDelta(t, 17.0, annotated[3].Distance, 1e-9)
	assert.InDelta(t, 17.0, Total(annotated), 1e-9)
}

func TestAnnotate_NonDecreasing(t *testing.T) {
	samples := []model.TelemetrySample{
		sampleAt(0, 0, 0),
		sampleAt(-3, 1, 2),
		sampleAt(5, -2, 0),
		sampleAt(5, -2, 0),
		sampleAt(0, 0, 0),
	}
	annotated := Annotate(samples)
	for i := 1; i < len(annotated); i++ {
		assert.GreaterOrEqual(t, annotated[i].Distance, annotated[i-1].Distance)
	}
}

func TestTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
}
