package display

import (
	"github.com/i474232898/weather-forecast/internal/weather"
)

// DailyAverageLabel labels the pivot row holding the per-date mean.
const DailyAverageLabel = "Daily Average"

// PivotTable is the temperature table transposed to periods × dates.
type PivotTable struct {
	Dates []string   `json:"dates"`
	Rows  []PivotRow `json:"rows"`
}

// PivotRow is one period across all dates.
type PivotRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Pivot lays out bucket temperatures with one column per date and rows for
// Day, Night and the daily average. The daily average is the mean of the
// defined period averages of that date.
func Pivot(buckets []weather.DayNightBucket, units weather.Units) PivotTable {
	var dates []string
	index := make(map[string]int)
	day := make(map[string]*float64)
	night := make(map[string]*float64)

	for _, b := range buckets {
		d := b.Date.Format(dateLayout)
		if _, ok := index[d]; !ok {
			index[d] = len(dates)
			dates = append(dates, d)
		}
		if b.IsDay {
			day[d] = b.AvgTemperature
		} else {
			night[d] = b.AvgTemperature
		}
	}

	dayRow := PivotRow{Label: PeriodDay, Values: make([]string, len(dates))}
	nightRow := PivotRow{Label: PeriodNight, Values: make([]string, len(dates))}
	avgRow := PivotRow{Label: DailyAverageLabel, Values: make([]string, len(dates))}

	for i, d := range dates {
		dayRow.Values[i] = FormatTemperature(day[d], units)
		nightRow.Values[i] = FormatTemperature(night[d], units)

		var m []float64
		for _, v := range []*float64{day[d], night[d]} {
			if v != nil {
				m = append(m, *v)
			}
		}
		avgRow.Values[i] = FormatTemperature(meanOf(m), units)
	}

	if dates == nil {
		dates = []string{}
	}
	return PivotTable{
		Dates: dates,
		Rows:  []PivotRow{dayRow, nightRow, avgRow},
	}
}

func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}
