package telemetry

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/cloud"
)

// rawFields maps every known field-name synonym onto its own slot. Values
// stay interface{} because firmware versions disagree on number vs string
// encoding; sentinel handling happens in coalesce.
type rawFields struct {
	Temperature interface{} `mapstructure:"temperature"`
	Temp        interface{} `mapstructure:"temp"`

	Humidity interface{} `mapstructure:"humidity"`
	Hum      interface{} `mapstructure:"hum"`

	SoilMoisture  interface{} `mapstructure:"soilMoisture"`
	SoilMoisture2 interface{} `mapstructure:"soil_moisture"`
	Soil          interface{} `mapstructure:"soil"`

	TDS           interface{} `mapstructure:"tds"`
	WaterQuality  interface{} `mapstructure:"waterQuality"`
	WaterQuality2 interface{} `mapstructure:"water_quality"`
	WQ            interface{} `mapstructure:"wq"`

	GasLevel  interface{} `mapstructure:"gasLevel"`
	GasLevel2 interface{} `mapstructure:"gas_level"`
	Gas       interface{} `mapstructure:"gas"`
	MQ135     interface{} `mapstructure:"mq135"`

	CO2Ppm     interface{} `mapstructure:"co2Ppm"`
	CO2        interface{} `mapstructure:"co2"`
	NH3Ppm     interface{} `mapstructure:"nh3Ppm"`
	NH3        interface{} `mapstructure:"nh3"`
	BenzenePpm interface{} `mapstructure:"benzenePpm"`
	Benzene    interface{} `mapstructure:"benzene"`
	SmokePpm   interface{} `mapstructure:"smokePpm"`
	Smoke      interface{} `mapstructure:"smoke"`

	Light      interface{} `mapstructure:"light"`
	LightLevel interface{} `mapstructure:"lightLevel"`
	LDR        interface{} `mapstructure:"ldr"`

	RainStatus        interface{} `mapstructure:"rainStatus"`
	Rain              interface{} `mapstructure:"rain"`
	AirQualityStatus  interface{} `mapstructure:"airQualityStatus"`
	WaterQualityLabel interface{} `mapstructure:"waterQualityLabel"`

	MotionDetected interface{} `mapstructure:"motionDetected"`
	Motion         interface{} `mapstructure:"motion"`
	PIR            interface{} `mapstructure:"pir"`

	MotorOn  interface{} `mapstructure:"motorOn"`
	Motor    interface{} `mapstructure:"motor"`
	HVOn     interface{} `mapstructure:"hvOn"`
	HV       interface{} `mapstructure:"hv"`
	HVAutoOn interface{} `mapstructure:"hvAutoOn"`
	HVAuto   interface{} `mapstructure:"hv_auto"`

	Timestamp interface{} `mapstructure:"timestamp"`
	CreatedAt interface{} `mapstructure:"createdAt"`
	DeviceID  interface{} `mapstructure:"deviceId"`
	Device    interface{} `mapstructure:"device_id"`
}

// Normalize coalesces a raw payload into the canonical snapshot. Coalesce
// order is first-non-null-wins in the argument order below; downstream code
// never sees alias names. Sentinels "", "--", "null" and JSON null all map
// to no-data.
func Normalize(raw cloud.RawSnapshot, now time.Time) SensorSnapshot {
	var f rawFields
	// A decode failure leaves the zero struct, which normalizes to an
	// all-no-data snapshot rather than aborting the cycle.
	_ = mapstructure.Decode(map[string]interface{}(raw), &f)

	snap := SensorSnapshot{
		Temperature:  coalesceNumber(f.Temperature, f.Temp),
		Humidity:     coalesceNumber(f.Humidity, f.Hum),
		SoilMoisture: coalesceNumber(f.SoilMoisture, f.SoilMoisture2, f.Soil),
		WaterQuality: coalesceNumber(f.TDS, f.WaterQuality, f.WaterQuality2, f.WQ),
		GasLevel:     coalesceNumber(f.GasLevel, f.GasLevel2, f.Gas, f.MQ135),
		CO2Ppm:       coalesceNumber(f.CO2Ppm, f.CO2),
		NH3Ppm:       coalesceNumber(f.NH3Ppm, f.NH3),
		BenzenePpm:   coalesceNumber(f.BenzenePpm, f.Benzene),
		SmokePpm:     coalesceNumber(f.SmokePpm, f.Smoke),
		Light:        coalesceNumber(f.Light, f.LightLevel, f.LDR),

		RainStatus:        coalesceString(f.RainStatus, f.Rain),
		AirQualityStatus:  coalesceString(f.AirQualityStatus),
		WaterQualityLabel: coalesceString(f.WaterQualityLabel),

		MotionDetected: coalesceFlag(f.MotionDetected, f.Motion, f.PIR),
		MotorOn:        coalesceFlag(f.MotorOn, f.Motor),
		HVOn:           coalesceFlag(f.HVOn, f.HV),
		HVAutoOn:       coalesceFlag(f.HVAutoOn, f.HVAuto),

		DeviceID:  coalesceString(f.DeviceID, f.Device),
		Timestamp: parseTimestamp(coalesceString(f.Timestamp, f.CreatedAt), now),
	}
	return snap
}

func isSentinel(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "--", "null", "undefined":
		return true
	}
	return false
}

func coalesceNumber(candidates ...interface{}) Reading {
	for _, c := range candidates {
		if r, ok := asNumber(c); ok {
			return r
		}
	}
	return NoData()
}

func asNumber(v interface{}) (Reading, bool) {
	switch t := v.(type) {
	case nil:
		return NoData(), false
	case float64:
		return Value(t), true
	case float32:
		return Value(float64(t)), true
	case int:
		return Value(float64(t)), true
	case int64:
		return Value(float64(t)), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return NoData(), false
		}
		return Value(f), true
	case string:
		if isSentinel(t) {
			return NoData(), false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return NoData(), false
		}
		return Value(f), true
	}
	return NoData(), false
}

func coalesceString(candidates ...interface{}) string {
	for _, c := range candidates {
		s, ok := c.(string)
		if !ok || isSentinel(s) {
			continue
		}
		return strings.TrimSpace(s)
	}
	return ""
}

func coalesceFlag(candidates ...interface{}) Flag {
	for _, c := range candidates {
		switch t := c.(type) {
		case nil:
			continue
		case bool:
			return FlagOf(t)
		case float64:
			return FlagOf(t != 0)
		case int:
			return FlagOf(t != 0)
		case string:
			if isSentinel(t) {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "on", "1", "yes":
				return FlagOf(true)
			case "false", "off", "0", "no":
				return FlagOf(false)
			}
		}
	}
	return Flag{}
}

func parseTimestamp(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
