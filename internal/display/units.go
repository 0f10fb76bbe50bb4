// Package display turns aggregated weather data into table, chart and card
// views. Every function here is a pure view over its inputs.
package display

import (
	"fmt"

	"github.com/i474232898/weather-forecast/internal/weather"
)

// Placeholder is rendered in place of an undefined value.
const Placeholder = "N/A"

// ConvertTemperature converts a Celsius value into units.
func ConvertTemperature(c float64, units weather.Units) float64 {
	if units == weather.UnitsImperial {
		return c*9/5 + 32
	}
	return c
}

// ConvertSpeed converts a m/s value into units (mph for imperial).
func ConvertSpeed(ms float64, units weather.Units) float64 {
	if units == weather.UnitsImperial {
		return ms * 2.236936
	}
	return ms
}

// TemperatureUnit is the suffix for temperatures in units.
func TemperatureUnit(units weather.Units) string {
	if units == weather.UnitsImperial {
		return "°F"
	}
	return "°C"
}

// SpeedUnit is the suffix for wind speeds in units.
func SpeedUnit(units weather.Units) string {
	if units == weather.UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// FormatTemperature renders a Celsius value, or Placeholder when c is nil.
func FormatTemperature(c *float64, units weather.Units) string {
	if c == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f%s", ConvertTemperature(*c, units), TemperatureUnit(units))
}
