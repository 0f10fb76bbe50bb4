package display

import (
	"fmt"

	"github.com/i474232898/weather-forecast/internal/weather"
)

// Summary holds the headline day/night statistics in °C.
type Summary struct {
	DayAverage   *float64 `json:"dayAverageC"`
	NightAverage *float64 `json:"nightAverageC"`
	Difference   *float64 `json:"differenceC"`
}

// SummaryView is Summary rendered for display.
type SummaryView struct {
	DayAverage   string `json:"dayAverage"`
	NightAverage string `json:"nightAverage"`
	Difference   string `json:"difference"`
}

// Summarize averages the defined bucket temperatures per period. Difference
// is day minus night and is undefined unless both sides are.
func Summarize(buckets []weather.DayNightBucket) Summary {
	var day, night []float64
	for _, b := range buckets {
		if b.AvgTemperature == nil {
			continue
		}
		if b.IsDay {
			day = append(day, *b.AvgTemperature)
		} else {
			night = append(night, *b.AvgTemperature)
		}
	}

	s := Summary{DayAverage: meanOf(day), NightAverage: meanOf(night)}
	if s.DayAverage != nil && s.NightAverage != nil {
		d := *s.DayAverage - *s.NightAverage
		s.Difference = &d
	}
	return s
}

// View formats the summary in units.
func (s Summary) View(units weather.Units) SummaryView {
	diff := Placeholder
	if s.Difference != nil {
		delta := *s.Difference
		if units == weather.UnitsImperial {
			delta = delta * 9 / 5
		}
		diff = fmt.Sprintf("%.1f%s", delta, TemperatureUnit(units))
	}
	return SummaryView{
		DayAverage:   FormatTemperature(s.DayAverage, units),
		NightAverage: FormatTemperature(s.NightAverage, units),
		Difference:   diff,
	}
}

// Cloud cover levels.
const (
	CloudLevelHigh     = "high"
	CloudLevelModerate = "moderate"
	CloudLevelLow      = "low"
)

// CloudSummary describes the average cloud cover over a forecast.
type CloudSummary struct {
	Average     *float64 `json:"averagePercent"`
	Level       string   `json:"level,omitempty"`
	Description string   `json:"description"`
}

// Clouds averages cloud cover over the samples that report it.
func Clouds(samples []weather.ForecastSample) CloudSummary {
	var values []float64
	for _, s := range samples {
		if s.CloudCover != nil {
			values = append(values, float64(*s.CloudCover))
		}
	}

	avg := meanOf(values)
	if avg == nil {
		return CloudSummary{Description: "No cloud coverage data"}
	}

	a := *avg
	switch {
	case a > 70:
		return CloudSummary{Average: avg, Level: CloudLevelHigh,
			Description: fmt.Sprintf("High cloud coverage (%.0f%%) - Expect overcast conditions", a)}
	case a > 30:
		return CloudSummary{Average: avg, Level: CloudLevelModerate,
			Description: fmt.Sprintf("Moderate cloud coverage (%.0f%%) - Partly cloudy conditions", a)}
	default:
		return CloudSummary{Average: avg, Level: CloudLevelLow,
			Description: fmt.Sprintf("Low cloud coverage (%.0f%%) - Mostly clear skies", a)}
	}
}
