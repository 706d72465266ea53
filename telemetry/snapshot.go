package telemetry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Severity classifies a condition. The set is closed; presentation
// capabilities hang off the lookup table below instead of switch statements
// scattered through the UI layer.
type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Presentation is the capability row for one severity.
type Presentation struct {
	Icon  string
	Color string
	Tone  string
}

var severityPresentation = map[Severity]Presentation{
	SeverityGood:    {Icon: "check-circle", Color: "#2e7d32", Tone: "calm"},
	SeverityWarning: {Icon: "alert-triangle", Color: "#f9a825", Tone: "caution"},
	SeverityDanger:  {Icon: "alert-octagon", Color: "#c62828", Tone: "urgent"},
}

// PresentationFor returns the capability row for s; unknown severities render
// as warnings rather than panicking mid-cycle.
func PresentationFor(s Severity) Presentation {
	if p, ok := severityPresentation[s]; ok {
		return p
	}
	return severityPresentation[SeverityWarning]
}

// Reading is an optional numeric metric. Absent, empty and sentinel inputs
// normalize to an invalid Reading, never to NaN.
type Reading struct {
	Value float64
	Valid bool
}

func Value(v float64) Reading { return Reading{Value: v, Valid: true} }

func NoData() Reading { return Reading{} }

// String renders the reading for identity keys and display; "--" stands for
// no data.
func (r Reading) String() string {
	if !r.Valid {
		return "--"
	}
	return fmt.Sprintf("%.0f", r.Value)
}

// MarshalJSON renders an invalid Reading as null, never as NaN or a
// sentinel number.
func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Flag is an optional boolean metric.
type Flag struct {
	Value bool
	Valid bool
}

func FlagOf(v bool) Flag { return Flag{Value: v, Valid: true} }

// On reports whether the flag is present and set.
func (f Flag) On() bool { return f.Valid && f.Value }

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// SensorSnapshot is one normalized reading of every field metric. A snapshot
// is wholly replaced by the next poll; the previous one survives only as the
// change-detection baseline.
type SensorSnapshot struct {
	Temperature  Reading `json:"temperature"`
	Humidity     Reading `json:"humidity"`
	SoilMoisture Reading `json:"soil_moisture"`
	WaterQuality Reading `json:"water_quality"`
	GasLevel     Reading `json:"gas_level"`
	CO2Ppm       Reading `json:"co2_ppm"`
	NH3Ppm       Reading `json:"nh3_ppm"`
	BenzenePpm   Reading `json:"benzene_ppm"`
	SmokePpm     Reading `json:"smoke_ppm"`
	Light        Reading `json:"light"`

	RainStatus        string `json:"rain_status,omitempty"`
	AirQualityStatus  string `json:"air_quality_status,omitempty"`
	WaterQualityLabel string `json:"water_quality_label,omitempty"`

	MotionDetected Flag `json:"motion_detected"`
	MotorOn        Flag `json:"motor_on"`
	HVOn           Flag `json:"hv_on"`
	HVAutoOn       Flag `json:"hv_auto_on"`

	Timestamp time.Time `json:"timestamp"`
	DeviceID  string    `json:"device_id,omitempty"`
}

// ConditionAssessment is the classified state of one metric, recomputed every
// evaluation cycle.
type ConditionAssessment struct {
	MetricName        string
	Value             Reading
	Unit              string
	StatusLabel       string
	RecommendedAction string
	Severity          Severity
}

// CompoundCondition is a classified state requiring several metrics to cross
// thresholds in the same snapshot.
type CompoundCondition struct {
	Title             string
	Description       string
	RecommendedAction string
	Severity          Severity
}
