// Package settings persists the user's preferences as a single JSON file.
package settings

import (
	"strings"

	"github.com/i474232898/weather-forecast/internal/weather"
)

// UserSettings is the only durable state of the app. It is always replaced
// wholesale on save.
type UserSettings struct {
	DefaultCity    *string       `json:"default_city"`
	Favorites      []string      `json:"favorites"`
	UnitPreference weather.Units `json:"unit_preference" validate:"oneof=metric imperial"`
}

// Defaults returns the settings used on first run.
func Defaults() UserSettings {
	return UserSettings{
		Favorites:      []string{},
		UnitPreference: weather.UnitsMetric,
	}
}

// City returns the default city, or "" when none is set.
func (s UserSettings) City() string {
	if s.DefaultCity == nil {
		return ""
	}
	return *s.DefaultCity
}

// WithDefaultCity sets the default city. A blank name clears it.
func (s UserSettings) WithDefaultCity(city string) UserSettings {
	city = strings.TrimSpace(city)
	if city == "" {
		s.DefaultCity = nil
		return s
	}
	s.DefaultCity = &city
	return s
}

// WithUnits sets the unit preference.
func (s UserSettings) WithUnits(u weather.Units) UserSettings {
	s.UnitPreference = u
	return s
}

// HasFavorite reports whether city is already a favorite, ignoring case.
func (s UserSettings) HasFavorite(city string) bool {
	return indexFold(s.Favorites, strings.TrimSpace(city)) >= 0
}

// WithFavorite adds city to the favorites unless it is blank or already there.
func (s UserSettings) WithFavorite(city string) UserSettings {
	city = strings.TrimSpace(city)
	if city == "" || s.HasFavorite(city) {
		s.Favorites = clone(s.Favorites)
		return s
	}
	s.Favorites = append(clone(s.Favorites), city)
	return s
}

// WithoutFavorite removes city from the favorites.
func (s UserSettings) WithoutFavorite(city string) UserSettings {
	city = strings.TrimSpace(city)
	out := make([]string, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		if strings.EqualFold(f, city) {
			continue
		}
		out = append(out, f)
	}
	s.Favorites = out
	return s
}

// Normalize drops blank and duplicate favorites, trims the default city and
// fills an empty unit preference.
func (s UserSettings) Normalize() UserSettings {
	favs := make([]string, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		f = strings.TrimSpace(f)
		if f == "" || indexFold(favs, f) >= 0 {
			continue
		}
		favs = append(favs, f)
	}
	s.Favorites = favs

	if s.DefaultCity != nil {
		s = s.WithDefaultCity(*s.DefaultCity)
	}
	if s.UnitPreference == "" {
		s.UnitPreference = weather.UnitsMetric
	}
	return s
}

func indexFold(list []string, v string) int {
	for i, item := range list {
		if strings.EqualFold(item, v) {
			return i
		}
	}
	return -1
}

func clone(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
