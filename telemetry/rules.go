package telemetry

// Threshold bands per metric. Bands are ordered, inclusive on the lower
// bound, and leave no gaps or overlaps: every real number maps to exactly
// one band via the first Below that exceeds it.

type band struct {
	// Below is the exclusive upper bound of the band; the last band uses
	// +Inf semantics through matchBand.
	Below    float64
	Label    string
	Action   string
	Severity Severity
}

type metricRule struct {
	Metric string
	Unit   string
	// InclusiveUpper selects v <= Below instead of v < Below when matching.
	// Water quality is specified as "<= 10 pure, <= 300 tap-like"; every
	// other metric uses lower-inclusive bands ("15-35 optimal" owns 15).
	InclusiveUpper bool
	Bands          []band
}

var metricRules = []metricRule{
	{
		Metric:         "waterQuality",
		Unit:           "ppm",
		InclusiveUpper: true,
		Bands: []band{
			{Below: 10, Label: "pure water", Action: "safe for all uses", Severity: SeverityGood},
			{Below: 300, Label: "tap-like water", Action: "fine for irrigation", Severity: SeverityGood},
			{Below: 500, Label: "safe water", Action: "keep monitoring", Severity: SeverityGood},
			{Below: 1000, Label: "moderate dissolved solids", Action: "check source, consider mixing", Severity: SeverityWarning},
			{Label: "high, fertilizer-like water", Action: "dilute before use", Severity: SeverityDanger},
		},
	},
	{
		Metric: "temperature",
		Unit:   "°C",
		Bands: []band{
			{Below: 15, Label: "too cold", Action: "protect crops from cold", Severity: SeverityWarning},
			{Below: 35, Label: "optimal temperature", Action: "no action needed", Severity: SeverityGood},
			{Below: 40, Label: "high heat", Action: "increase irrigation, add shade", Severity: SeverityWarning},
			{Label: "extreme heat", Action: "emergency shading and watering", Severity: SeverityDanger},
		},
	},
	{
		Metric: "humidity",
		Unit:   "%",
		Bands: []band{
			{Below: 30, Label: "low humidity", Action: "mist crops, watch for wilting", Severity: SeverityWarning},
			{Below: 70, Label: "optimal humidity", Action: "no action needed", Severity: SeverityGood},
			{Below: 85, Label: "high humidity, fungus risk", Action: "improve ventilation", Severity: SeverityWarning},
			{Label: "very high humidity, disease risk", Action: "apply preventive fungicide", Severity: SeverityDanger},
		},
	},
	{
		Metric: "gasLevel",
		Unit:   "ppm",
		Bands: []band{
			{Below: 200, Label: "good air quality", Action: "no action needed", Severity: SeverityGood},
			{Below: 400, Label: "moderate air quality", Action: "ventilate the area", Severity: SeverityWarning},
			{Below: 700, Label: "poor air quality", Action: "find and remove the source", Severity: SeverityWarning},
			{Label: "dangerous air quality", Action: "evacuate and ventilate now", Severity: SeverityDanger},
		},
	},
	{
		Metric: "soilMoisture",
		Unit:   "%",
		Bands: []band{
			{Below: 20, Label: "too dry", Action: "irrigate immediately", Severity: SeverityDanger},
			{Below: 60, Label: "optimal moisture", Action: "no action needed", Severity: SeverityGood},
			{Below: 80, Label: "too wet", Action: "pause irrigation", Severity: SeverityWarning},
			{Label: "flooding", Action: "drain the field", Severity: SeverityDanger},
		},
	},
	{
		Metric: "light",
		Unit:   "lux",
		Bands: []band{
			{Below: 200, Label: "low light", Action: "check for obstruction", Severity: SeverityWarning},
			{Below: 700, Label: "normal light", Action: "no action needed", Severity: SeverityGood},
			{Below: 900, Label: "high light", Action: "consider partial shade", Severity: SeverityWarning},
			{Label: "very high light", Action: "deploy shade nets", Severity: SeverityWarning},
		},
	},
}

const (
	noDataLabel  = "no data"
	noDataAction = "await reading"
)

// EvaluateAll classifies every metric of the snapshot independently; a
// missing metric yields a warning "no data" assessment instead of aborting
// the cycle.
func EvaluateAll(snap SensorSnapshot) []ConditionAssessment {
	out := make([]ConditionAssessment, 0, len(metricRules)+1)
	for _, rule := range metricRules {
		out = append(out, evaluateMetric(rule, readingFor(snap, rule.Metric)))
	}
	out = append(out, evaluateMotion(snap.MotionDetected))
	return out
}

func readingFor(snap SensorSnapshot, metric string) Reading {
	switch metric {
	case "temperature":
		return snap.Temperature
	case "humidity":
		return snap.Humidity
	case "soilMoisture":
		return snap.SoilMoisture
	case "waterQuality":
		return snap.WaterQuality
	case "gasLevel":
		return snap.GasLevel
	case "light":
		return snap.Light
	}
	return NoData()
}

func evaluateMetric(rule metricRule, value Reading) ConditionAssessment {
	if !value.Valid {
		return ConditionAssessment{
			MetricName:        rule.Metric,
			Value:             value,
			Unit:              rule.Unit,
			StatusLabel:       noDataLabel,
			RecommendedAction: noDataAction,
			Severity:          SeverityWarning,
		}
	}
	b := matchBand(rule.Bands, value.Value, rule.InclusiveUpper)
	return ConditionAssessment{
		MetricName:        rule.Metric,
		Value:             value,
		Unit:              rule.Unit,
		StatusLabel:       b.Label,
		RecommendedAction: b.Action,
		Severity:          b.Severity,
	}
}

func matchBand(bands []band, v float64, inclusiveUpper bool) band {
	for i, b := range bands {
		if i == len(bands)-1 {
			return b
		}
		if v < b.Below || (inclusiveUpper && v == b.Below) {
			return b
		}
	}
	return bands[len(bands)-1]
}

func evaluateMotion(motion Flag) ConditionAssessment {
	if !motion.Valid {
		return ConditionAssessment{
			MetricName:        "motion",
			StatusLabel:       noDataLabel,
			RecommendedAction: noDataAction,
			Severity:          SeverityWarning,
		}
	}
	if motion.Value {
		return ConditionAssessment{
			MetricName:        "motion",
			Value:             Value(1),
			StatusLabel:       "movement detected",
			RecommendedAction: "check the field",
			Severity:          SeverityWarning,
		}
	}
	return ConditionAssessment{
		MetricName:        "motion",
		Value:             Value(0),
		StatusLabel:       "no movement",
		RecommendedAction: "no action needed",
		Severity:          SeverityGood,
	}
}
