package display

import (
	"github.com/i474232898/weather-forecast/internal/weather"
)

const (
	PeriodDay   = "Day"
	PeriodNight = "Night"

	dateLayout = "2006-01-02"
)

// Row is one line of the day/night analysis table.
type Row struct {
	Date        string `json:"date"`
	Period      string `json:"period"`
	Temperature string `json:"avgTemperature"`
	FeelsLike   string `json:"avgFeelsLike"`
	Samples     int    `json:"sampleCount"`
}

// PeriodLabel names the period of a bucket.
func PeriodLabel(isDay bool) string {
	if isDay {
		return PeriodDay
	}
	return PeriodNight
}

// ToTable renders buckets as rows in the same order.
func ToTable(buckets []weather.DayNightBucket, units weather.Units) []Row {
	rows := make([]Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, Row{
			Date:        b.Date.Format(dateLayout),
			Period:      PeriodLabel(b.IsDay),
			Temperature: FormatTemperature(b.AvgTemperature, units),
			FeelsLike:   FormatTemperature(b.AvgFeelsLike, units),
			Samples:     b.SampleCount,
		})
	}
	return rows
}
