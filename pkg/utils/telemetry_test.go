package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionFixture = `{
  "samples": [
    {
      "timestamp": 1700000000000,
      "lapNumber": 1,
      "position": {"x": 1.5, "y": 0.2, "z": -3.0},
      "speed": 42.5,
      "throttle": 255,
      "brake": 0,
      "gear": 4,
      "rpm": 6500,
      "fuelLevel": 48.2,
      "tireTemps": {"frontLeft": 80, "frontRight": 82, "rearLeft": 78, "rearRight": 79},
      "steeringAngle": -0.12
    },
    {
      "timestamp": 1700000000100,
      "lapNumber": 1,
      "position": {"x": 5.5, "y": 0.2, "z": -3.0},
      "speed": 41.0,
      "throttle": 200,
      "brake": 30,
      "gear": 4,
      "rpm": 6400,
      "fuelLevel": 48.19
    }
  ],
  "laps": [
    {"lapNumber": 1, "lapTime": 93.421, "sector1Time": 30.1, "sector2Time": 31.2, "sector3Time": 32.121},
    {"lapNumber": 2, "lapTime": 92.8}
  ]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSession(t *testing.T) {
	session, err := LoadSession(writeFixture(t, sessionFixture))
	require.NoError(t, err)
	require.Len(t, session.Samples, 2)
	require.Len(t, session.Summaries, 2)

	first := session.Samples[0]
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), first.Timestamp)
	assert.Equal(t, 1, first.LapNumber)
	assert.InDelta(t, 1.5, first.Position.X, 1e-9)
	assert.InDelta(t, -3.0, first.Position.Z, 1e-9)
	assert.InDelta(t, 42.5, first.Speed, 1e-9)
	assert.Equal(t, 255, first.Throttle)
	assert.Equal(t, 4, first.Gear)

	temps, ok := first.TireTemps.Get()
	require.True(t, ok)
	assert.InDelta(t, 80.0, temps.FrontLeft, 1e-9)
	angle, ok := first.SteeringAngle.Get()
	require.True(t, ok)
	assert.InDelta(t, -0.12, angle, 1e-9)
	assert.False(t, first.Orientation.IsValue())

	second := session.Samples[1]
	assert.False(t, second.TireTemps.IsValue())
	assert.False(t, second.SteeringAngle.IsValue())

	withSectors := session.Summaries[0]
	assert.InDelta(t, 93.421, withSectors.LapTime, 1e-9)
	splits, ok := withSectors.SectorTimes()
	require.True(t, ok)
	assert.InDelta(t, 31.2, splits[1], 1e-9)
	_, ok = session.Summaries[1].SectorTimes()
	assert.False(t, ok)
}

func TestLoadSession_MissingFile(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading telemetry file")
}

func TestLoadSession_Malformed(t *testing.T) {
	_, err := LoadSession(writeFixture(t, "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing telemetry file")
}
