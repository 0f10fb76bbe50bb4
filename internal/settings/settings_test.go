package settings

import (
	"reflect"
	"testing"
)

func TestWithFavorite(t *testing.T) {
	base := Defaults().WithFavorite("Paris")

	tests := []struct {
		name string
		city string
		want []string
	}{
		{"new city", "Tokyo", []string{"Paris", "Tokyo"}},
		{"duplicate", "Paris", []string{"Paris"}},
		{"duplicate other case", "PARIS", []string{"Paris"}},
		{"blank", "   ", []string{"Paris"}},
		{"trimmed", "  Lima ", []string{"Paris", "Lima"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.WithFavorite(tt.city)
			if !reflect.DeepEqual(got.Favorites, tt.want) {
				t.Errorf("Favorites = %v, want %v", got.Favorites, tt.want)
			}
		})
	}
}

func TestWithFavorite_DoesNotAliasInput(t *testing.T) {
	favs := make([]string, 1, 4)
	favs[0] = "Paris"
	base := UserSettings{Favorites: favs}

	a := base.WithFavorite("Rome")
	b := base.WithFavorite("Oslo")

	if a.Favorites[1] != "Rome" || b.Favorites[1] != "Oslo" {
		t.Fatalf("mutations share backing array: a=%v b=%v", a.Favorites, b.Favorites)
	}
	if len(base.Favorites) != 1 {
		t.Fatalf("input mutated: %v", base.Favorites)
	}
}

func TestWithoutFavorite(t *testing.T) {
	s := Defaults().WithFavorite("Paris").WithFavorite("Tokyo")

	got := s.WithoutFavorite("paris")
	if !reflect.DeepEqual(got.Favorites, []string{"Tokyo"}) {
		t.Errorf("Favorites = %v, want [Tokyo]", got.Favorites)
	}
	if len(s.Favorites) != 2 {
		t.Errorf("input mutated: %v", s.Favorites)
	}
}

func TestWithDefaultCity(t *testing.T) {
	s := Defaults().WithDefaultCity("  Berlin ")
	if s.City() != "Berlin" {
		t.Fatalf("City() = %q, want Berlin", s.City())
	}
	if cleared := s.WithDefaultCity(""); cleared.DefaultCity != nil {
		t.Fatalf("blank city should clear the default")
	}
}
