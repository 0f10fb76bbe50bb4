package display

import (
	"sort"
	"time"

	"github.com/i474232898/weather-forecast/internal/weather"
)

// Heatmap is cloud cover laid out as dates (rows) × hours of day (columns).
// A nil cell has no sample.
type Heatmap struct {
	Dates []string     `json:"dates"`
	Hours []int        `json:"hours"`
	Cells [][]*float64 `json:"cells"`
}

// CloudHeatmap builds the date × hour cloud cover matrix in zone. Samples
// sharing a cell are averaged.
func CloudHeatmap(samples []weather.ForecastSample, zone *time.Location) Heatmap {
	if zone == nil {
		zone = time.UTC
	}

	type cell struct {
		date string
		hour int
	}
	values := make(map[cell][]float64)
	dateSet := make(map[string]struct{})
	hourSet := make(map[int]struct{})

	for _, s := range samples {
		if s.CloudCover == nil || s.Timestamp.IsZero() {
			continue
		}
		lt := s.Timestamp.In(zone)
		c := cell{date: lt.Format(dateLayout), hour: lt.Hour()}
		values[c] = append(values[c], float64(*s.CloudCover))
		dateSet[c.date] = struct{}{}
		hourSet[c.hour] = struct{}{}
	}

	hm := Heatmap{
		Dates: make([]string, 0, len(dateSet)),
		Hours: make([]int, 0, len(hourSet)),
	}
	for d := range dateSet {
		hm.Dates = append(hm.Dates, d)
	}
	for h := range hourSet {
		hm.Hours = append(hm.Hours, h)
	}
	sort.Strings(hm.Dates)
	sort.Ints(hm.Hours)

	hm.Cells = make([][]*float64, len(hm.Dates))
	for i, d := range hm.Dates {
		row := make([]*float64, len(hm.Hours))
		for j, h := range hm.Hours {
			row[j] = meanOf(values[cell{date: d, hour: h}])
		}
		hm.Cells[i] = row
	}
	return hm
}
