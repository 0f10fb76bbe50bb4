package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Day/night classification clocks.
const (
	TimeBasisLocation = "location"
	TimeBasisUTC      = "utc"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	// Providers in priority order.
	Providers []string `validate:"min=1,dive,oneof=openweather openmeteo weatherapi"`

	HTTPTimeout time.Duration `validate:"gt=0"`
	Port        string        `validate:"required,numeric"`

	SettingsPath string `validate:"required"`

	// Day/night split.
	DayStartHour int    `validate:"gte=0,lte=23"`
	DayEndHour   int    `validate:"lte=24,gtfield=DayStartHour"`
	TimeBasis    string `validate:"oneof=location utc"`

	// ForecastWindow bounds the charted forecast from now.
	ForecastWindow time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.Providers = splitList(getenvDefault("WEATHER_PROVIDERS", "openweather"))

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.SettingsPath = getenvDefault("SETTINGS_PATH", "settings.json")

	cfg.DayStartHour = getenvInt("DAY_START_HOUR", 6)
	cfg.DayEndHour = getenvInt("DAY_END_HOUR", 18)
	cfg.TimeBasis = strings.ToLower(getenvDefault("DAY_NIGHT_TIME_BASIS", TimeBasisLocation))

	window, err := time.ParseDuration(getenvDefault("FORECAST_WINDOW", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_WINDOW: %w", err)
	}
	cfg.ForecastWindow = window

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("WARN: invalid %s=%q; using %d", key, v, def)
	}
	return def
}
