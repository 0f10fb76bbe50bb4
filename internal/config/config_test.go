package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"WEATHER_PROVIDERS", "HTTP_TIMEOUT", "PORT", "SETTINGS_PATH",
		"DAY_START_HOUR", "DAY_END_HOUR", "DAY_NIGHT_TIME_BASIS", "FORECAST_WINDOW",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Providers, []string{"openweather"}) {
		t.Errorf("Providers = %v", cfg.Providers)
	}
	if cfg.DayStartHour != 6 || cfg.DayEndHour != 18 {
		t.Errorf("day split = %d-%d, want 6-18", cfg.DayStartHour, cfg.DayEndHour)
	}
	if cfg.TimeBasis != TimeBasisLocation {
		t.Errorf("TimeBasis = %q", cfg.TimeBasis)
	}
	if cfg.ForecastWindow != 7*24*time.Hour || cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("durations = %v / %v", cfg.ForecastWindow, cfg.HTTPTimeout)
	}
	if cfg.SettingsPath != "settings.json" || cfg.Port != "8080" {
		t.Errorf("SettingsPath/Port = %q / %q", cfg.SettingsPath, cfg.Port)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WEATHER_PROVIDERS", " OpenMeteo, weatherapi ,")
	t.Setenv("DAY_START_HOUR", "7")
	t.Setenv("DAY_END_HOUR", "20")
	t.Setenv("DAY_NIGHT_TIME_BASIS", "UTC")
	t.Setenv("SETTINGS_PATH", "/tmp/wf/settings.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Providers, []string{"openmeteo", "weatherapi"}) {
		t.Errorf("Providers = %v", cfg.Providers)
	}
	if cfg.DayStartHour != 7 || cfg.DayEndHour != 20 || cfg.TimeBasis != TimeBasisUTC {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"inverted day split", map[string]string{"DAY_START_HOUR": "20", "DAY_END_HOUR": "6"}},
		{"unknown provider", map[string]string{"WEATHER_PROVIDERS": "darksky"}},
		{"unknown time basis", map[string]string{"DAY_NIGHT_TIME_BASIS": "solar"}},
		{"bad timeout", map[string]string{"HTTP_TIMEOUT": "soon"}},
		{"bad port", map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", tt.env)
			}
		})
	}
}
