package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-forecast/internal/common"
	"github.com/i474232898/weather-forecast/internal/weather"
)

// samples per day in the 3-hourly forecast feed
const openWeatherSlotsPerDay = 8

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Circuit: newCircuit("openweather"),
		},
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmCoord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p *OpenWeatherProvider) endpoint(path string, loc weather.Location, extra url.Values) string {
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("q", loc.Query())
	for k, v := range extra {
		values[k] = v
	}
	return fmt.Sprintf("%s/%s?%s", p.baseURL, path, values.Encode())
}

func (p *OpenWeatherProvider) Current(ctx context.Context, loc weather.Location) (weather.CurrentConditions, error) {
	if p.apiKey == "" {
		return weather.CurrentConditions{}, fmt.Errorf("openweather: %w", errNoAPIKey)
	}

	var payload struct {
		Name     string   `json:"name"`
		Dt       int64    `json:"dt"`
		Timezone int      `json:"timezone"`
		Coord    owmCoord `json:"coord"`
		Sys      struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Weather []owmCondition `json:"weather"`
	}

	if err := getJSON(ctx, p.httpCfg, p.endpoint("weather", loc, nil), &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	ts := unixOrNow(payload.Dt)

	cc := weather.CurrentConditions{
		Provider: p.name,
		Place: weather.Place{
			Name:             payload.Name,
			Country:          payload.Sys.Country,
			Latitude:         payload.Coord.Lat,
			Longitude:        payload.Coord.Lon,
			UTCOffsetSeconds: payload.Timezone,
		},
		ObservedAt:   ts,
		TemperatureC: payload.Main.Temp,
		FeelsLikeC:   payload.Main.FeelsLike,
		HumidityPct:  payload.Main.Humidity,
		WindSpeedMS:  payload.Wind.Speed,
		WindDeg:      payload.Wind.Deg,
		PressureHpa:  payload.Main.Pressure,
		Condition:    mapOpenWeatherCondition(payload.Weather),
	}
	if len(payload.Weather) > 0 {
		cc.Description = payload.Weather[0].Description
		if icon := payload.Weather[0].Icon; icon != "" {
			cc.IconURL = fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
		}
	}
	if payload.Sys.Sunrise > 0 {
		cc.Sunrise = time.Unix(payload.Sys.Sunrise, 0).UTC()
	}
	if payload.Sys.Sunset > 0 {
		cc.Sunset = time.Unix(payload.Sys.Sunset, 0).UTC()
	}
	return cc, nil
}

func (p *OpenWeatherProvider) Forecast(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("openweather: %w", errNoAPIKey)
	}

	// The free feed stops at 5 days / 40 slots.
	cnt := days * openWeatherSlotsPerDay
	if cnt > 40 {
		cnt = 40
	}

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      *float64 `json:"temp"`
				FeelsLike *float64 `json:"feels_like"`
				Humidity  *int     `json:"humidity"`
			} `json:"main"`
			Clouds struct {
				All *int `json:"all"`
			} `json:"clouds"`
			Wind struct {
				Speed *float64 `json:"speed"`
			} `json:"wind"`
			Weather []owmCondition `json:"weather"`
		} `json:"list"`
		City struct {
			Name     string   `json:"name"`
			Country  string   `json:"country"`
			Coord    owmCoord `json:"coord"`
			Timezone int      `json:"timezone"`
		} `json:"city"`
	}

	extra := url.Values{"cnt": []string{fmt.Sprint(cnt)}}
	if err := getJSON(ctx, p.httpCfg, p.endpoint("forecast", loc, extra), &payload); err != nil {
		return weather.Forecast{}, err
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		if item.Dt == 0 {
			continue
		}
		samples = append(samples, weather.ForecastSample{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Humidity:    item.Main.Humidity,
			CloudCover:  item.Clouds.All,
			WindSpeed:   item.Wind.Speed,
			Condition:   string(mapOpenWeatherCondition(item.Weather)),
		})
	}

	return weather.Forecast{
		Provider: p.name,
		Place: weather.Place{
			Name:             payload.City.Name,
			Country:          payload.City.Country,
			Latitude:         payload.City.Coord.Lat,
			Longitude:        payload.City.Coord.Lon,
			UTCOffsetSeconds: payload.City.Timezone,
		},
		Samples: samples,
	}, nil
}

func mapOpenWeatherCondition(items []owmCondition) weather.Condition {
	if len(items) == 0 {
		return weather.ConditionUnknown
	}
	switch main := items[0].Main; {
	case main == "Clear":
		return weather.ConditionClear
	case main == "Clouds":
		return weather.ConditionCloudy
	case main == "Rain" || main == "Drizzle":
		return weather.ConditionRain
	case main == "Snow":
		return weather.ConditionSnow
	case main == "Thunderstorm":
		return weather.ConditionStorm
	case common.HasAny(main, "Mist", "Fog", "Haze", "Smoke", "Dust"):
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}

func unixOrNow(sec int64) time.Time {
	if sec <= 0 {
		return time.Now().UTC()
	}
	return time.Unix(sec, 0).UTC()
}
