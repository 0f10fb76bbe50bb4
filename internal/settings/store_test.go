package settings

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/i474232898/weather-forecast/internal/weather"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	got := store.Load()
	if got.DefaultCity != nil {
		t.Errorf("DefaultCity = %q, want nil", *got.DefaultCity)
	}
	if got.Favorites == nil || len(got.Favorites) != 0 {
		t.Errorf("Favorites = %#v, want empty slice", got.Favorites)
	}
	if got.UnitPreference != weather.UnitsMetric {
		t.Errorf("UnitPreference = %q, want metric", got.UnitPreference)
	}
}

func TestLoad_MalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"favorites": [`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got := NewFileStore(path).Load()
	if !reflect.DeepEqual(got, Defaults()) {
		t.Fatalf("Load() = %+v, want defaults", got)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	want := Defaults().
		WithDefaultCity("London").
		WithFavorite("Paris").
		WithFavorite("Tokyo").
		WithUnits(weather.UnitsImperial)

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got := store.Load()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}

	// Saving the loaded value again must not change it.
	if err := store.Save(got); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if again := store.Load(); !reflect.DeepEqual(again, want) {
		t.Fatalf("second round trip mismatch: %+v", again)
	}
}

func TestSave_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "settings.json")

	err := NewFileStore(path).Save(Defaults())
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("expected *SaveError, got %v", err)
	}
	if saveErr.Path != path {
		t.Errorf("SaveError.Path = %q, want %q", saveErr.Path, path)
	}
}

func TestSave_RejectsUnknownUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewFileStore(path)

	err := store.Save(Defaults().WithUnits("kelvin"))
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("expected *SaveError, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("settings file should not exist after a rejected save")
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "settings.json"))

	if err := store.Save(Defaults().WithFavorite("Lima")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "settings.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory contents = %v, want only settings.json", names)
	}
}

func TestLoad_FileContents(t *testing.T) {
	tests := []struct {
		name string
		json string
		want UserSettings
	}{
		{
			name: "missing keys keep defaults",
			json: `{"favorites": ["Berlin"]}`,
			want: UserSettings{Favorites: []string{"Berlin"}, UnitPreference: weather.UnitsMetric},
		},
		{
			name: "null default city",
			json: `{"default_city": null, "favorites": [], "unit_preference": "imperial"}`,
			want: UserSettings{Favorites: []string{}, UnitPreference: weather.UnitsImperial},
		},
		{
			name: "unknown unit falls back to metric",
			json: `{"default_city": "Oslo", "unit_preference": "kelvin"}`,
			want: Defaults().WithDefaultCity("Oslo"),
		},
		{
			name: "legacy keys are migrated",
			json: `{"default_location": "Madrid", "favorites": ["Rome"], "temp_unit": "fahrenheit"}`,
			want: UserSettings{
				DefaultCity:    strPtr("Madrid"),
				Favorites:      []string{"Rome"},
				UnitPreference: weather.UnitsImperial,
			},
		},
		{
			name: "legacy empty location means none",
			json: `{"default_location": "", "favorites": [], "temp_unit": "celsius"}`,
			want: Defaults(),
		},
		{
			name: "duplicate and blank favorites dropped",
			json: `{"favorites": ["Paris", "", "paris", "Nice"]}`,
			want: UserSettings{Favorites: []string{"Paris", "Nice"}, UnitPreference: weather.UnitsMetric},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(tt.json), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			got := NewFileStore(path).Load()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "conf", "settings.json")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := NewFileStore(path).Save(Defaults()); err != nil {
		t.Fatalf("Save() after EnsureDir error = %v", err)
	}
}

func strPtr(s string) *string { return &s }
