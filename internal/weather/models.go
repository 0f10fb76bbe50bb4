package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Units is the measurement system used when presenting values.
// Samples themselves are always metric (°C, m/s).
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Valid reports whether u is one of the supported unit systems.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Location is what a user asks for. City must be provided; Country is optional.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Query renders the location the way most providers accept it ("city,country").
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Place is a location as resolved by a provider.
type Place struct {
	Name             string  `json:"name"`
	Country          string  `json:"country,omitempty"`
	Latitude         float64 `json:"lat"`
	Longitude        float64 `json:"lon"`
	UTCOffsetSeconds int     `json:"utcOffsetSeconds"`
	TimezoneName     string  `json:"timezone,omitempty"`
}

// TimeZone returns the place's zone. A named IANA zone wins over the fixed offset.
func (p Place) TimeZone() *time.Location {
	if p.TimezoneName != "" {
		if loc, err := time.LoadLocation(p.TimezoneName); err == nil {
			return loc
		}
	}
	if p.UTCOffsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone("", p.UTCOffsetSeconds)
}

// CurrentConditions is the normalized current weather for a place.
type CurrentConditions struct {
	Provider     string    `json:"provider"`
	Place        Place     `json:"place"`
	ObservedAt   time.Time `json:"observedAt"`
	TemperatureC float64   `json:"temperatureC"`
	FeelsLikeC   float64   `json:"feelsLikeC"`
	HumidityPct  int       `json:"humidityPercent"`
	WindSpeedMS  float64   `json:"windSpeed"`
	WindDeg      int       `json:"windDeg"`
	PressureHpa  float64   `json:"pressureHpa"`
	Description  string    `json:"description"`
	IconURL      string    `json:"iconUrl,omitempty"`
	Condition    Condition `json:"condition"`
	Sunrise      time.Time `json:"sunrise,omitempty"`
	Sunset       time.Time `json:"sunset,omitempty"`
}

// ForecastSample is one timestamped forecast reading. A nil field means the
// provider did not report that value.
type ForecastSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperatureC"`
	FeelsLike   *float64  `json:"feelsLikeC"`
	Humidity    *int      `json:"humidityPercent"`
	CloudCover  *int      `json:"cloudCoverPercent"`
	WindSpeed   *float64  `json:"windSpeed"`
	Condition   string    `json:"condition,omitempty"`
}

// Forecast is the ordered sample set returned by one provider for one place.
type Forecast struct {
	Provider string           `json:"provider"`
	Place    Place            `json:"place"`
	Samples  []ForecastSample `json:"samples"`
}

// DayNightBucket summarizes the samples of one calendar date and period.
// Nil averages mean no sample in the group carried that field.
type DayNightBucket struct {
	Date           time.Time `json:"date"`
	IsDay          bool      `json:"isDay"`
	AvgTemperature *float64  `json:"avgTemperatureC"`
	AvgFeelsLike   *float64  `json:"avgFeelsLikeC"`
	AvgHumidity    *float64  `json:"avgHumidityPercent"`
	SampleCount    int       `json:"sampleCount"`
}

// Float returns a pointer to v; handy for building samples.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
