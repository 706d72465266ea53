package telemetry

import "math"

// Per-metric deltas; a move of at least this much between consecutive
// snapshots is significant enough to warrant an out-of-cycle evaluation.
const (
	deltaTemperature  = 2
	deltaHumidity     = 5
	deltaSoilMoisture = 10
	deltaWaterQuality = 100
	deltaGasLevel     = 50
	deltaLight        = 100
)

// SignificantChange reports whether any metric moved past its delta between
// prev and cur, or any boolean field flipped. A metric appearing or
// disappearing also counts as a change.
func SignificantChange(prev, cur SensorSnapshot) bool {
	return readingMoved(prev.Temperature, cur.Temperature, deltaTemperature) ||
		readingMoved(prev.Humidity, cur.Humidity, deltaHumidity) ||
		readingMoved(prev.SoilMoisture, cur.SoilMoisture, deltaSoilMoisture) ||
		readingMoved(prev.WaterQuality, cur.WaterQuality, deltaWaterQuality) ||
		readingMoved(prev.GasLevel, cur.GasLevel, deltaGasLevel) ||
		readingMoved(prev.Light, cur.Light, deltaLight) ||
		flagFlipped(prev.MotionDetected, cur.MotionDetected) ||
		flagFlipped(prev.MotorOn, cur.MotorOn) ||
		flagFlipped(prev.HVOn, cur.HVOn) ||
		flagFlipped(prev.HVAutoOn, cur.HVAutoOn)
}

func readingMoved(prev, cur Reading, delta float64) bool {
	if prev.Valid != cur.Valid {
		return true
	}
	if !prev.Valid {
		return false
	}
	return math.Abs(cur.Value-prev.Value) >= delta
}

func flagFlipped(prev, cur Flag) bool {
	if prev.Valid != cur.Valid {
		return true
	}
	if !prev.Valid {
		return false
	}
	return prev.Value != cur.Value
}
