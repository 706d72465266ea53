package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignificantChangeDeltas(t *testing.T) {
	base := SensorSnapshot{
		Temperature:  Value(30),
		Humidity:     Value(50),
		SoilMoisture: Value(40),
		WaterQuality: Value(400),
		GasLevel:     Value(100),
		Light:        Value(500),
	}

	t.Run("small drift is not significant", func(t *testing.T) {
		cur := base
		cur.Temperature = Value(31.9)
		cur.Humidity = Value(54)
		cur.Light = Value(599)
		assert.False(t, SignificantChange(base, cur))
	})

	cases := []struct {
		name   string
		mutate func(*SensorSnapshot)
	}{
		{"temperature", func(s *SensorSnapshot) { s.Temperature = Value(32) }},
		{"humidity", func(s *SensorSnapshot) { s.Humidity = Value(55) }},
		{"soil moisture", func(s *SensorSnapshot) { s.SoilMoisture = Value(50) }},
		{"water quality", func(s *SensorSnapshot) { s.WaterQuality = Value(500) }},
		{"gas level", func(s *SensorSnapshot) { s.GasLevel = Value(150) }},
		{"light", func(s *SensorSnapshot) { s.Light = Value(600) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cur := base
			c.mutate(&cur)
			assert.True(t, SignificantChange(base, cur))
		})
	}
}

func TestBooleanFlipIsSignificant(t *testing.T) {
	prev := SensorSnapshot{MotionDetected: FlagOf(false)}
	cur := SensorSnapshot{MotionDetected: FlagOf(true)}
	assert.True(t, SignificantChange(prev, cur))

	cur = SensorSnapshot{MotionDetected: FlagOf(false)}
	assert.False(t, SignificantChange(prev, cur))

	t.Run("relay flip", func(t *testing.T) {
		prev := SensorSnapshot{MotorOn: FlagOf(false)}
		cur := SensorSnapshot{MotorOn: FlagOf(true)}
		assert.True(t, SignificantChange(prev, cur))
	})
}

func TestMetricAppearingIsSignificant(t *testing.T) {
	prev := SensorSnapshot{}
	cur := SensorSnapshot{Temperature: Value(25)}
	assert.True(t, SignificantChange(prev, cur))

	t.Run("both absent is not a change", func(t *testing.T) {
		assert.False(t, SignificantChange(SensorSnapshot{}, SensorSnapshot{}))
	})
}
