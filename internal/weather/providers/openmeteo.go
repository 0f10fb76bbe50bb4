package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-forecast/internal/weather"
)

const openMeteoLocalLayout = "2006-01-02T15:04"

// Open-Meteo serves at most this many forecast days.
const openMeteoMaxDays = 16

var errNoGeocoder = errors.New("openmeteo requires latitude and longitude; geocoder api key is not configured")

// GeocodeFunc resolves a city to coordinates.
type GeocodeFunc func(loc weather.Location) (lat, lon float64, err error)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo is keyless but only accepts coordinates, so cities go through
// Google geocoding first.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	geocode GeocodeFunc
}

// NewOpenMeteoProvider creates the provider. geocoderAPIKey may be empty, in
// which case every call fails until a GeocodeFunc is supplied.
func NewOpenMeteoProvider(client *http.Client, geocoderAPIKey string) *OpenMeteoProvider {
	p := &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Circuit: newCircuit("openmeteo"),
		},
	}
	if geocoderAPIKey != "" {
		geocoder.ApiKey = geocoderAPIKey
		p.geocode = googleGeocode
	}
	return p
}

// WithGeocoder replaces the coordinate lookup.
func (p *OpenMeteoProvider) WithGeocoder(fn GeocodeFunc) *OpenMeteoProvider {
	p.geocode = fn
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func googleGeocode(loc weather.Location) (float64, float64, error) {
	res, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %s: %w", loc.Query(), err)
	}
	return res.Latitude, res.Longitude, nil
}

type openMeteoPayload struct {
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Current          struct {
		Time                string   `json:"time"`
		Temperature2m       *float64 `json:"temperature_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		RelativeHumidity2m  *int     `json:"relative_humidity_2m"`
		WindSpeed10m        *float64 `json:"wind_speed_10m"`
		WindDirection10m    *int     `json:"wind_direction_10m"`
		SurfacePressure     *float64 `json:"surface_pressure"`
		WeatherCode         *int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time                []string   `json:"time"`
		Temperature2m       []*float64 `json:"temperature_2m"`
		ApparentTemperature []*float64 `json:"apparent_temperature"`
		RelativeHumidity2m  []*int     `json:"relative_humidity_2m"`
		CloudCover          []*int     `json:"cloud_cover"`
		WindSpeed10m        []*float64 `json:"wind_speed_10m"`
		WeatherCode         []*int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) fetch(ctx context.Context, loc weather.Location, values url.Values) (openMeteoPayload, weather.Place, error) {
	if p.geocode == nil {
		return openMeteoPayload{}, weather.Place{}, errNoGeocoder
	}

	lat, lon, err := p.geocode(loc)
	if err != nil {
		return openMeteoPayload{}, weather.Place{}, err
	}

	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("timezone", "auto")
	values.Set("wind_speed_unit", "ms")

	var payload openMeteoPayload
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, u, &payload); err != nil {
		return openMeteoPayload{}, weather.Place{}, err
	}

	place := weather.Place{
		Name:             loc.City,
		Country:          loc.Country,
		Latitude:         lat,
		Longitude:        lon,
		UTCOffsetSeconds: payload.UTCOffsetSeconds,
		TimezoneName:     payload.Timezone,
	}
	return payload, place, nil
}

func (p *OpenMeteoProvider) Current(ctx context.Context, loc weather.Location) (weather.CurrentConditions, error) {
	values := url.Values{}
	values.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,wind_direction_10m,surface_pressure,weather_code")
	values.Set("daily", "sunrise,sunset")
	values.Set("forecast_days", "1")

	payload, place, err := p.fetch(ctx, loc, values)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	zone := place.TimeZone()
	cur := payload.Current

	observed, err := time.ParseInLocation(openMeteoLocalLayout, cur.Time, zone)
	if err != nil {
		observed = time.Now()
	}

	cc := weather.CurrentConditions{
		Provider:     p.name,
		Place:        place,
		ObservedAt:   observed.UTC(),
		TemperatureC: valueOr(cur.Temperature2m, 0),
		FeelsLikeC:   valueOr(cur.ApparentTemperature, 0),
		HumidityPct:  valueOr(cur.RelativeHumidity2m, 0),
		WindSpeedMS:  valueOr(cur.WindSpeed10m, 0),
		WindDeg:      valueOr(cur.WindDirection10m, 0),
		PressureHpa:  valueOr(cur.SurfacePressure, 0),
		Condition:    weather.ConditionUnknown,
	}
	if cur.WeatherCode != nil {
		cc.Condition = mapOpenMeteoCondition(*cur.WeatherCode)
		cc.Description = describeOpenMeteoCode(*cur.WeatherCode)
	}
	if len(payload.Daily.Sunrise) > 0 {
		cc.Sunrise = parseLocal(payload.Daily.Sunrise[0], zone)
	}
	if len(payload.Daily.Sunset) > 0 {
		cc.Sunset = parseLocal(payload.Daily.Sunset[0], zone)
	}
	return cc, nil
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if days > openMeteoMaxDays {
		days = openMeteoMaxDays
	}

	values := url.Values{}
	values.Set("hourly", "temperature_2m,apparent_temperature,relative_humidity_2m,cloud_cover,wind_speed_10m,weather_code")
	values.Set("forecast_days", fmt.Sprint(days))

	payload, place, err := p.fetch(ctx, loc, values)
	if err != nil {
		return weather.Forecast{}, err
	}
	zone := place.TimeZone()
	h := payload.Hourly

	samples := make([]weather.ForecastSample, 0, len(h.Time))
	for i, raw := range h.Time {
		// Open-Meteo local times carry no offset; they are in the place's zone.
		ts, err := time.ParseInLocation(openMeteoLocalLayout, raw, zone)
		if err != nil {
			continue
		}
		s := weather.ForecastSample{
			Timestamp:   ts,
			Temperature: at(h.Temperature2m, i),
			FeelsLike:   at(h.ApparentTemperature, i),
			Humidity:    at(h.RelativeHumidity2m, i),
			CloudCover:  at(h.CloudCover, i),
			WindSpeed:   at(h.WindSpeed10m, i),
		}
		if code := at(h.WeatherCode, i); code != nil {
			s.Condition = string(mapOpenMeteoCondition(*code))
		}
		samples = append(samples, s)
	}

	return weather.Forecast{Provider: p.name, Place: place, Samples: samples}, nil
}

// at returns the i-th value of a nullable column, tolerating short columns.
func at[T any](column []*T, i int) *T {
	if i >= len(column) {
		return nil
	}
	return column[i]
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func parseLocal(s string, zone *time.Location) time.Time {
	t, err := time.ParseInLocation(openMeteoLocalLayout, s, zone)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// Mapping based on WMO weather codes (simplified).
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}

func describeOpenMeteoCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code == 1:
		return "mainly clear"
	case code == 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return ""
	}
}
