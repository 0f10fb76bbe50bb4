package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weather-forecast/internal/api/http"
	"github.com/i474232898/weather-forecast/internal/config"
	"github.com/i474232898/weather-forecast/internal/settings"
	"github.com/i474232898/weather-forecast/internal/weather"
	"github.com/i474232898/weather-forecast/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The settings file is the only durable state; its directory must be usable.
	if err := settings.EnsureDir(cfg.SettingsPath); err != nil {
		log.Fatalf("failed to prepare settings: %v", err)
	}
	store := settings.NewFileStore(cfg.SettingsPath)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers in configured priority order.
	var provs []weather.Provider
	for _, name := range cfg.Providers {
		switch name {
		case "openweather":
			provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
		case "openmeteo":
			// Open-Meteo does not require an API key, but geocoding requires a Google API key.
			provs = append(provs, providers.NewOpenMeteoProvider(httpClient, cfg.GeocoderAPIKey))
		case "weatherapi":
			provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
		}
	}

	service := weather.NewService(provs)
	log.Printf("INFO: providers: %v; settings: %s", service.Providers(), store.Path())

	app := httpapi.NewApp()
	httpapi.RegisterRoutes(app, service, store, httpapi.Options{
		Split: weather.DaySplit{
			StartHour: cfg.DayStartHour,
			EndHour:   cfg.DayEndHour,
		},
		LocalTime:      cfg.TimeBasis == config.TimeBasisLocation,
		Window:         cfg.ForecastWindow,
		RequestTimeout: 2 * cfg.HTTPTimeout,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
