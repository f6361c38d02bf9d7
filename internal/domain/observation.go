package domain

// Observation holds the current station observation in the SI units
// api.weather.gov reports (degC, m/s, degrees, Pa, mm, percent). Nil values
// mean the station did not report that field.
type Observation struct {
	Timestamp          string
	Temperature        *float64
	Dewpoint           *float64
	WindDirection      *float64
	WindSpeed          *float64
	WindGust           *float64
	BarometricPressure *float64
	RelativeHumidity   *float64
	HeatIndex          *float64
	PrecipLastHour     *float64
}

// ConditionsSummary is the reduced, display-unit observation set written to
// conditions.json for smart-mirror style surfaces. Missing readings stay
// null rather than zero so the front end can render a dash.
type ConditionsSummary struct {
	Timestamp      string   `json:"timestamp"`
	TemperatureF   *float64 `json:"temperature_f"`
	DewpointF      *float64 `json:"dewpoint_f"`
	WindDirDeg     *float64 `json:"wind_direction_deg"`
	WindSpeedMph   *float64 `json:"wind_speed_mph"`
	WindGustMph    *float64 `json:"wind_gust_mph"`
	PressureInHg   *float64 `json:"pressure_inhg"`
	HumidityPct    *float64 `json:"relative_humidity_pct"`
	HeatIndexF     *float64 `json:"heat_index_f"`
	PrecipLastHrIn *float64 `json:"precip_last_hour_in"`
}

// SummarizeConditions converts a raw station observation into consumer-level
// display units: Fahrenheit, mph, inches of mercury, inches of rain.
func SummarizeConditions(obs Observation) ConditionsSummary {
	return ConditionsSummary{
		Timestamp:      obs.Timestamp,
		TemperatureF:   convert(obs.Temperature, CelsiusToFahrenheit),
		DewpointF:      convert(obs.Dewpoint, CelsiusToFahrenheit),
		WindDirDeg:     convert(obs.WindDirection, roundTenth),
		WindSpeedMph:   convert(obs.WindSpeed, MetersPerSecondToMph),
		WindGustMph:    convert(obs.WindGust, MetersPerSecondToMph),
		PressureInHg:   convert(obs.BarometricPressure, PascalsToInHg),
		HumidityPct:    convert(obs.RelativeHumidity, roundTenth),
		HeatIndexF:     convert(obs.HeatIndex, CelsiusToFahrenheit),
		PrecipLastHrIn: convert(obs.PrecipLastHour, MillimetersToInches),
	}
}

// CelsiusToFahrenheit converts a temperature reading, rounded to 0.1 degF.
func CelsiusToFahrenheit(c float64) float64 {
	return roundTenth(c*9/5 + 32)
}

// MetersPerSecondToMph converts a wind reading, rounded to 0.1 mph.
func MetersPerSecondToMph(ms float64) float64 {
	return roundTenth(ms * 2.236936)
}

// PascalsToInHg converts a pressure reading, rounded to 0.01 inHg.
func PascalsToInHg(pa float64) float64 {
	inhg := pa * 0.0002953
	return float64(int(inhg*100+0.5)) / 100
}

// MillimetersToInches converts a precipitation reading, rounded to 0.01 in.
func MillimetersToInches(mm float64) float64 {
	in := mm / 25.4
	return float64(int(in*100+0.5)) / 100
}

func roundTenth(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func convert(v *float64, f func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	out := f(*v)
	return &out
}
