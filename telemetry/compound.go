package telemetry

// compoundRule fires only when every predicate holds on the same snapshot.
type compoundRule struct {
	Title     string
	Severity  Severity
	Message   string
	Action    string
	Predicate func(SensorSnapshot) bool
}

func above(r Reading, limit float64) bool { return r.Valid && r.Value > limit }
func below(r Reading, limit float64) bool { return r.Valid && r.Value < limit }

var compoundRules = []compoundRule{
	{
		Title:    "heat + dry soil",
		Severity: SeverityDanger,
		Message:  "plants wilting fast",
		Action:   "irrigate and shade immediately",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.Temperature, 35) && below(s.SoilMoisture, 20)
		},
	},
	{
		Title:    "heat + high humidity",
		Severity: SeverityDanger,
		Message:  "fungal disease risk",
		Action:   "ventilate and apply fungicide",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.Temperature, 35) && above(s.Humidity, 70)
		},
	},
	{
		Title:    "humidity + low light",
		Severity: SeverityWarning,
		Message:  "leaf rot risk",
		Action:   "improve airflow and light",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.Humidity, 70) && below(s.Light, 200)
		},
	},
	{
		Title:    "intense light + dry soil",
		Severity: SeverityDanger,
		Message:  "leaf burn risk",
		Action:   "shade and irrigate",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.Light, 900) && below(s.SoilMoisture, 20)
		},
	},
	{
		Title:    "salty water + heat",
		Severity: SeverityDanger,
		Message:  "salt burn increases",
		Action:   "switch or dilute water source",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.WaterQuality, 900) && above(s.Temperature, 35)
		},
	},
	{
		Title:    "waterlogged + humid",
		Severity: SeverityDanger,
		Message:  "root rot + fungus",
		Action:   "drain field and ventilate",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.SoilMoisture, 80) && above(s.Humidity, 70)
		},
	},
	{
		Title:    "toxic gas + heat",
		Severity: SeverityDanger,
		Message:  "chemical + heat damage",
		Action:   "remove gas source, cool crops",
		Predicate: func(s SensorSnapshot) bool {
			return above(s.GasLevel, 700) && above(s.Temperature, 35)
		},
	},
	{
		Title:    "movement in the dark",
		Severity: SeverityWarning,
		Message:  "possible night intrusion",
		Action:   "inspect the field perimeter",
		Predicate: func(s SensorSnapshot) bool {
			return s.MotionDetected.On() && below(s.Light, 200)
		},
	},
}

// EvaluateCompound reports every compound condition whose predicates all hold
// on snap. Multiple conditions may fire in the same cycle.
func EvaluateCompound(snap SensorSnapshot) []CompoundCondition {
	var out []CompoundCondition
	for _, rule := range compoundRules {
		if rule.Predicate(snap) {
			out = append(out, CompoundCondition{
				Title:             rule.Title,
				Description:       rule.Message,
				RecommendedAction: rule.Action,
				Severity:          rule.Severity,
			})
		}
	}
	return out
}
