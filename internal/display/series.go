package display

import (
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/weather-forecast/internal/weather"
)

// ErrUnknownField is returned for a series field that samples do not carry.
var ErrUnknownField = errors.New("unknown series field")

// Field names a numeric ForecastSample field that can be charted.
type Field string

const (
	FieldTemperature Field = "temperature"
	FieldFeelsLike   Field = "feels_like"
	FieldHumidity    Field = "humidity"
	FieldCloudCover  Field = "cloud_cover"
	FieldWindSpeed   Field = "wind_speed"
)

// ChartFields are the series included in a forecast report.
var ChartFields = []Field{FieldTemperature, FieldFeelsLike, FieldHumidity, FieldWindSpeed}

// ParseField maps a query value onto a Field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !knownField(f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

func knownField(f Field) bool {
	switch f {
	case FieldTemperature, FieldFeelsLike, FieldHumidity, FieldCloudCover, FieldWindSpeed:
		return true
	}
	return false
}

// Point is one chart value.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// ToSeries extracts field from samples in input order, skipping samples
// that do not carry it. Values are left in the samples' metric units.
func ToSeries(samples []weather.ForecastSample, field Field) ([]Point, error) {
	if !knownField(field) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		v, ok := extract(s, field)
		if !ok {
			continue
		}
		points = append(points, Point{Timestamp: s.Timestamp, Value: v})
	}
	return points, nil
}

// ConvertSeries returns a copy of points expressed in units.
func ConvertSeries(points []Point, field Field, units weather.Units) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		switch field {
		case FieldTemperature, FieldFeelsLike:
			p.Value = ConvertTemperature(p.Value, units)
		case FieldWindSpeed:
			p.Value = ConvertSpeed(p.Value, units)
		}
		out[i] = p
	}
	return out
}

func extract(s weather.ForecastSample, field Field) (float64, bool) {
	switch field {
	case FieldTemperature:
		return deref(s.Temperature)
	case FieldFeelsLike:
		return deref(s.FeelsLike)
	case FieldWindSpeed:
		return deref(s.WindSpeed)
	case FieldHumidity:
		return derefInt(s.Humidity)
	case FieldCloudCover:
		return derefInt(s.CloudCover)
	}
	return 0, false
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func derefInt(v *int) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}
