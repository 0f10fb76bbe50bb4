package weather

import (
	"context"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Current(ctx context.Context, loc Location) (CurrentConditions, error)
	// Forecast returns samples ordered by timestamp covering at most days days.
	Forecast(ctx context.Context, loc Location, days int) (Forecast, error)
}
