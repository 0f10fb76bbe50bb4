package display

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/i474232898/weather-forecast/internal/weather"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestToTable(t *testing.T) {
	buckets := []weather.DayNightBucket{
		{Date: day(1), IsDay: true, AvgTemperature: weather.Float(15), AvgFeelsLike: weather.Float(13.96), SampleCount: 4},
		{Date: day(1), IsDay: false, AvgTemperature: nil, AvgFeelsLike: nil, SampleCount: 2},
	}

	got := ToTable(buckets, weather.UnitsMetric)
	want := []Row{
		{Date: "2025-03-01", Period: "Day", Temperature: "15.0°C", FeelsLike: "14.0°C", Samples: 4},
		{Date: "2025-03-01", Period: "Night", Temperature: Placeholder, FeelsLike: Placeholder, Samples: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ToTable() = %+v, want %+v", got, want)
	}
}

func TestToTable_Imperial(t *testing.T) {
	buckets := []weather.DayNightBucket{{Date: day(2), IsDay: true, AvgTemperature: weather.Float(100), SampleCount: 1}}

	got := ToTable(buckets, weather.UnitsImperial)
	if got[0].Temperature != "212.0°F" {
		t.Errorf("Temperature = %q, want 212.0°F", got[0].Temperature)
	}
}

func TestToTable_Empty(t *testing.T) {
	if got := ToTable(nil, weather.UnitsMetric); got == nil || len(got) != 0 {
		t.Fatalf("ToTable(nil) = %#v, want empty slice", got)
	}
}

func TestToSeries(t *testing.T) {
	t0 := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	samples := []weather.ForecastSample{
		{Timestamp: t0.Add(6 * time.Hour), Humidity: weather.Int(80)},
		{Timestamp: t0, Humidity: nil},
		{Timestamp: t0.Add(3 * time.Hour), Humidity: weather.Int(65)},
	}

	got, err := ToSeries(samples, FieldHumidity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Point{
		{Timestamp: t0.Add(6 * time.Hour), Value: 80},
		{Timestamp: t0.Add(3 * time.Hour), Value: 65},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ToSeries() = %+v, want %+v", got, want)
	}
	if samples[1].Humidity != nil {
		t.Fatalf("input was mutated")
	}
}

func TestToSeries_UnknownField(t *testing.T) {
	if _, err := ToSeries(nil, Field("pressure")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := ParseField("pressure"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("ParseField: expected ErrUnknownField, got %v", err)
	}
	if f, err := ParseField("feels_like"); err != nil || f != FieldFeelsLike {
		t.Fatalf("ParseField(feels_like) = %q, %v", f, err)
	}
}

func TestConvertSeries(t *testing.T) {
	points := []Point{{Value: 0}, {Value: 10}}

	got := ConvertSeries(points, FieldTemperature, weather.UnitsImperial)
	if got[0].Value != 32 || got[1].Value != 50 {
		t.Errorf("converted = %+v, want 32 and 50", got)
	}
	if points[0].Value != 0 {
		t.Errorf("input was mutated")
	}

	hum := ConvertSeries(points, FieldHumidity, weather.UnitsImperial)
	if hum[1].Value != 10 {
		t.Errorf("humidity should not be converted, got %v", hum[1].Value)
	}
}

func TestPivot(t *testing.T) {
	buckets := []weather.DayNightBucket{
		{Date: day(1), IsDay: true, AvgTemperature: weather.Float(20)},
		{Date: day(1), IsDay: false, AvgTemperature: weather.Float(10)},
		{Date: day(2), IsDay: false, AvgTemperature: weather.Float(8)},
	}

	got := Pivot(buckets, weather.UnitsMetric)
	want := PivotTable{
		Dates: []string{"2025-03-01", "2025-03-02"},
		Rows: []PivotRow{
			{Label: "Day", Values: []string{"20.0°C", Placeholder}},
			{Label: "Night", Values: []string{"10.0°C", "8.0°C"}},
			{Label: DailyAverageLabel, Values: []string{"15.0°C", "8.0°C"}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Pivot() = %+v, want %+v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		buckets  []weather.DayNightBucket
		wantDiff *float64
		wantView SummaryView
	}{
		{
			name: "day and night",
			buckets: []weather.DayNightBucket{
				{IsDay: true, AvgTemperature: weather.Float(20)},
				{IsDay: true, AvgTemperature: weather.Float(24)},
				{IsDay: false, AvgTemperature: weather.Float(12)},
				{IsDay: false, AvgTemperature: nil},
			},
			wantDiff: weather.Float(10),
			wantView: SummaryView{DayAverage: "22.0°C", NightAverage: "12.0°C", Difference: "10.0°C"},
		},
		{
			name: "no night data",
			buckets: []weather.DayNightBucket{
				{IsDay: true, AvgTemperature: weather.Float(20)},
			},
			wantDiff: nil,
			wantView: SummaryView{DayAverage: "20.0°C", NightAverage: Placeholder, Difference: Placeholder},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.buckets)
			if !reflect.DeepEqual(s.Difference, tt.wantDiff) {
				t.Errorf("Difference = %v, want %v", s.Difference, tt.wantDiff)
			}
			if v := s.View(weather.UnitsMetric); v != tt.wantView {
				t.Errorf("View() = %+v, want %+v", v, tt.wantView)
			}
		})
	}
}

func TestSummary_ImperialDifferenceIsADelta(t *testing.T) {
	s := Summary{DayAverage: weather.Float(20), NightAverage: weather.Float(10), Difference: weather.Float(10)}
	if got := s.View(weather.UnitsImperial).Difference; got != "18.0°F" {
		t.Errorf("Difference = %q, want 18.0°F", got)
	}
}

func TestClouds(t *testing.T) {
	tests := []struct {
		name      string
		covers    []int
		wantLevel string
	}{
		{"overcast", []int{80, 90}, CloudLevelHigh},
		{"boundary 70 is moderate", []int{70}, CloudLevelModerate},
		{"partly", []int{20, 60}, CloudLevelModerate},
		{"clear", []int{0, 10, 30}, CloudLevelLow},
		{"no data", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []weather.ForecastSample
			for _, c := range tt.covers {
				samples = append(samples, weather.ForecastSample{CloudCover: weather.Int(c)})
			}
			samples = append(samples, weather.ForecastSample{})

			got := Clouds(samples)
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q (%s)", got.Level, tt.wantLevel, got.Description)
			}
			if tt.covers == nil && got.Average != nil {
				t.Errorf("Average = %v, want nil", *got.Average)
			}
		})
	}
}

func TestCloudHeatmap(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	samples := []weather.ForecastSample{
		{Timestamp: base.Add(3 * time.Hour), CloudCover: weather.Int(40)},
		{Timestamp: base.Add(3*time.Hour + 30*time.Minute), CloudCover: weather.Int(60)},
		{Timestamp: base.Add(24 * time.Hour), CloudCover: weather.Int(100)},
		{Timestamp: base.Add(27 * time.Hour)},
	}

	hm := CloudHeatmap(samples, time.UTC)

	if !reflect.DeepEqual(hm.Dates, []string{"2025-03-01", "2025-03-02"}) {
		t.Fatalf("Dates = %v", hm.Dates)
	}
	if !reflect.DeepEqual(hm.Hours, []int{0, 3}) {
		t.Fatalf("Hours = %v", hm.Hours)
	}
	if hm.Cells[0][0] != nil {
		t.Errorf("cell (03-01, 0) = %v, want nil", *hm.Cells[0][0])
	}
	if v := hm.Cells[0][1]; v == nil || *v != 50 {
		t.Errorf("cell (03-01, 3) = %v, want 50", v)
	}
	if v := hm.Cells[1][0]; v == nil || *v != 100 {
		t.Errorf("cell (03-02, 0) = %v, want 100", v)
	}
	if hm.Cells[1][1] != nil {
		t.Errorf("cell (03-02, 3) should be empty")
	}
}

func TestCurrent(t *testing.T) {
	place := weather.Place{Name: "Tokyo", Country: "JP", Latitude: 35.68, Longitude: 139.69, UTCOffsetSeconds: 9 * 3600}
	sunrise := time.Date(2025, time.March, 1, 21, 5, 0, 0, time.UTC)
	c := weather.CurrentConditions{
		Provider:     "openweathermap",
		Place:        place,
		TemperatureC: 10,
		FeelsLikeC:   8.25,
		HumidityPct:  55,
		WindSpeedMS:  4,
		WindDeg:      270,
		PressureHpa:  1012,
		Description:  "scattered clouds",
		Sunrise:      sunrise,
	}
	now := time.Date(2025, time.March, 2, 3, 0, 0, 0, time.UTC)

	got := Current(c, weather.UnitsMetric, now)

	if got.Description != "Scattered Clouds" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Temperature != "10.0°C" || got.Humidity != "55%" || got.Wind != "4.0 m/s" {
		t.Errorf("card values = %+v", got)
	}
	if got.Sunrise != "06:05" {
		t.Errorf("Sunrise = %q, want 06:05 local", got.Sunrise)
	}
	if got.Sunset != Placeholder {
		t.Errorf("Sunset = %q, want placeholder", got.Sunset)
	}
	if got.Clock.YourTime != "Sunday, March 02, 2025, 03:00 AM" {
		t.Errorf("YourTime = %q", got.Clock.YourTime)
	}
	if got.Clock.LocationTime != "Sunday, March 02, 2025, 12:00 PM" {
		t.Errorf("LocationTime = %q", got.Clock.LocationTime)
	}
	if got.Map != (MapMarker{Latitude: 35.68, Longitude: 139.69, Label: "Tokyo", Zoom: 10, Tiles: "OpenStreetMap"}) {
		t.Errorf("Map = %+v", got.Map)
	}

	imperial := Current(c, weather.UnitsImperial, now)
	if imperial.Temperature != "50.0°F" || imperial.Wind != "8.9 mph" {
		t.Errorf("imperial card = %s / %s", imperial.Temperature, imperial.Wind)
	}
}
