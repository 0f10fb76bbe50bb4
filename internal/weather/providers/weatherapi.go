package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/weather-forecast/internal/common"
	"github.com/i474232898/weather-forecast/internal/weather"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Circuit: newCircuit("weatherapi"),
		},
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPICondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type weatherAPIPayload struct {
	Location struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		TzID    string  `json:"tz_id"`
	} `json:"location"`
	Current struct {
		LastUpdatedEpoch int64               `json:"last_updated_epoch"`
		TempC            float64             `json:"temp_c"`
		FeelslikeC       float64             `json:"feelslike_c"`
		Humidity         int                 `json:"humidity"`
		WindKph          float64             `json:"wind_kph"`
		WindDegree       int                 `json:"wind_degree"`
		PressureMb       float64             `json:"pressure_mb"`
		Condition        weatherAPICondition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date  string `json:"date"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				TimeEpoch  int64               `json:"time_epoch"`
				TempC      *float64            `json:"temp_c"`
				FeelslikeC *float64            `json:"feelslike_c"`
				Humidity   *int                `json:"humidity"`
				Cloud      *int                `json:"cloud"`
				WindKph    *float64            `json:"wind_kph"`
				Condition  weatherAPICondition `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) fetch(ctx context.Context, loc weather.Location, days int) (weatherAPIPayload, error) {
	if p.apiKey == "" {
		return weatherAPIPayload{}, fmt.Errorf("weatherapi: %w", errNoAPIKey)
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "city,country" or "lat,lon".
	values.Set("q", loc.Query())
	values.Set("days", fmt.Sprint(days))

	var payload weatherAPIPayload
	u := fmt.Sprintf("%s/forecast.json?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, u, &payload); err != nil {
		return weatherAPIPayload{}, err
	}
	return payload, nil
}

func (payload weatherAPIPayload) place() weather.Place {
	pl := weather.Place{
		Name:         payload.Location.Name,
		Country:      payload.Location.Country,
		Latitude:     payload.Location.Lat,
		Longitude:    payload.Location.Lon,
		TimezoneName: payload.Location.TzID,
	}
	if zone, err := time.LoadLocation(pl.TimezoneName); err == nil {
		_, pl.UTCOffsetSeconds = time.Now().In(zone).Zone()
	}
	return pl
}

func (p *WeatherAPIProvider) Current(ctx context.Context, loc weather.Location) (weather.CurrentConditions, error) {
	payload, err := p.fetch(ctx, loc, 1)
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	place := payload.place()
	cur := payload.Current

	cc := weather.CurrentConditions{
		Provider:     p.name,
		Place:        place,
		ObservedAt:   unixOrNow(cur.LastUpdatedEpoch),
		TemperatureC: cur.TempC,
		FeelsLikeC:   cur.FeelslikeC,
		HumidityPct:  cur.Humidity,
		// Convert wind from kph to m/s.
		WindSpeedMS: cur.WindKph / 3.6,
		WindDeg:     cur.WindDegree,
		PressureHpa: cur.PressureMb,
		Description: cur.Condition.Text,
		Condition:   mapWeatherAPICondition(cur.Condition.Text),
	}
	if icon := cur.Condition.Icon; icon != "" {
		if strings.HasPrefix(icon, "//") {
			icon = "https:" + icon
		}
		cc.IconURL = icon
	}
	if days := payload.Forecast.Forecastday; len(days) > 0 {
		zone := place.TimeZone()
		cc.Sunrise = parseAstro(days[0].Date, days[0].Astro.Sunrise, zone)
		cc.Sunset = parseAstro(days[0].Date, days[0].Astro.Sunset, zone)
	}
	return cc, nil
}

func (p *WeatherAPIProvider) Forecast(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	payload, err := p.fetch(ctx, loc, days)
	if err != nil {
		return weather.Forecast{}, err
	}

	var samples []weather.ForecastSample
	for _, fd := range payload.Forecast.Forecastday {
		for _, h := range fd.Hour {
			if h.TimeEpoch == 0 {
				continue
			}
			s := weather.ForecastSample{
				Timestamp:   time.Unix(h.TimeEpoch, 0).UTC(),
				Temperature: h.TempC,
				FeelsLike:   h.FeelslikeC,
				Humidity:    h.Humidity,
				CloudCover:  h.Cloud,
				Condition:   string(mapWeatherAPICondition(h.Condition.Text)),
			}
			if h.WindKph != nil {
				ms := *h.WindKph / 3.6
				s.WindSpeed = &ms
			}
			samples = append(samples, s)
		}
	}
	if samples == nil {
		samples = []weather.ForecastSample{}
	}

	return weather.Forecast{Provider: p.name, Place: payload.place(), Samples: samples}, nil
}

// parseAstro combines a "2006-01-02" date with a "06:12 AM" clock in zone.
func parseAstro(date, clock string, zone *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02 03:04 PM", date+" "+clock, zone)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func mapWeatherAPICondition(text string) weather.Condition {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return weather.ConditionUnknown
	case common.HasAny(t, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAny(t, "snow", "sleet", "blizzard", "ice pellets"):
		return weather.ConditionSnow
	case common.HasAny(t, "rain", "shower", "drizzle"):
		return weather.ConditionRain
	case common.HasAny(t, "mist", "fog"):
		return weather.ConditionMist
	case common.HasAny(t, "cloud", "overcast"):
		return weather.ConditionCloudy
	case common.HasAny(t, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}
