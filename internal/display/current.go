package display

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-forecast/internal/weather"
)

// ClockLayout is how wall-clock times are shown to the user.
const ClockLayout = "Monday, January 02, 2006, 03:04 PM"

// MapMarker places a single labelled pin on a map.
type MapMarker struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Label     string  `json:"label"`
	Zoom      int     `json:"zoom"`
	Tiles     string  `json:"tiles"`
}

// Marker returns the map pin for place.
func Marker(place weather.Place) MapMarker {
	return MapMarker{
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Label:     place.Name,
		Zoom:      10,
		Tiles:     "OpenStreetMap",
	}
}

// Clocks is the user's wall clock next to the city's.
type Clocks struct {
	YourTime     string `json:"yourTime"`
	LocationTime string `json:"locationTime"`
}

// Clock formats now both in its own zone and in place's zone.
func Clock(now time.Time, place weather.Place) Clocks {
	return Clocks{
		YourTime:     now.Format(ClockLayout),
		LocationTime: now.In(place.TimeZone()).Format(ClockLayout),
	}
}

// CurrentView is the current-weather card.
type CurrentView struct {
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Provider      string    `json:"provider"`
	Temperature   string    `json:"temperature"`
	FeelsLike     string    `json:"feelsLike"`
	Humidity      string    `json:"humidity"`
	Wind          string    `json:"wind"`
	WindDirection string    `json:"windDirection"`
	Pressure      string    `json:"pressure"`
	Description   string    `json:"description"`
	Condition     string    `json:"condition"`
	IconURL       string    `json:"iconUrl,omitempty"`
	Sunrise       string    `json:"sunrise"`
	Sunset        string    `json:"sunset"`
	Clock         Clocks    `json:"clock"`
	Map           MapMarker `json:"map"`
}

// Current renders conditions as a card in units. now is the user's clock.
func Current(c weather.CurrentConditions, units weather.Units, now time.Time) CurrentView {
	zone := c.Place.TimeZone()

	return CurrentView{
		City:          c.Place.Name,
		Country:       c.Place.Country,
		Provider:      c.Provider,
		Temperature:   FormatTemperature(&c.TemperatureC, units),
		FeelsLike:     FormatTemperature(&c.FeelsLikeC, units),
		Humidity:      fmt.Sprintf("%d%%", c.HumidityPct),
		Wind:          fmt.Sprintf("%.1f %s", ConvertSpeed(c.WindSpeedMS, units), SpeedUnit(units)),
		WindDirection: fmt.Sprintf("%d°", c.WindDeg),
		Pressure:      fmt.Sprintf("%.0f hPa", c.PressureHpa),
		Description:   cases.Title(language.English).String(c.Description),
		Condition:     string(c.Condition),
		IconURL:       c.IconURL,
		Sunrise:       clockTime(c.Sunrise, zone),
		Sunset:        clockTime(c.Sunset, zone),
		Clock:         Clock(now, c.Place),
		Map:           Marker(c.Place),
	}
}

func clockTime(t time.Time, zone *time.Location) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.In(zone).Format("15:04")
}
