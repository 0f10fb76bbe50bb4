package httpapi

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast/internal/display"
	"github.com/i474232898/weather-forecast/internal/settings"
	"github.com/i474232898/weather-forecast/internal/weather"
	"github.com/i474232898/weather-forecast/internal/weather/providers"
)

var validate = validator.New()

const (
	defaultForecastDays = 7
	maxForecastDays     = 7
)

// SettingsStore is what the routes need from the settings persistence.
type SettingsStore interface {
	Load() settings.UserSettings
	Save(settings.UserSettings) error
}

// Options tunes the weather routes.
type Options struct {
	Split weather.DaySplit
	// LocalTime classifies day/night on the city's clock instead of UTC.
	LocalTime bool
	// Window bounds the charted series from now.
	Window time.Duration
	// RequestTimeout bounds outbound provider calls per request.
	RequestTimeout time.Duration
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

type handlers struct {
	service *weather.Service
	store   SettingsStore
	opts    Options
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, store SettingsStore, opts Options) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Window <= 0 {
		opts.Window = maxForecastDays * 24 * time.Hour
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	h := &handlers{service: service, store: store, opts: opts}

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", h.current)
	v1.Get("/weather/forecast", h.forecast)
	v1.Get("/weather/series", h.series)

	v1.Get("/settings", h.getSettings)
	v1.Put("/settings", h.putSettings)
	v1.Post("/settings/favorites", h.addFavorite)
	v1.Delete("/settings/favorites/:city", h.removeFavorite)
}

func (h *handlers) current(c *fiber.Ctx) error {
	prefs := h.store.Load()

	var q weatherQuery
	if err := q.bind(c, prefs, false); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.opts.RequestTimeout)
	defer cancel()

	cc, err := h.service.Current(ctx, q.Location.toLocation())
	if err != nil {
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{
		"location":   q.Location.toLocation(),
		"units":      q.Units,
		"current":    display.Current(cc, q.Units, h.opts.Now()),
		"conditions": cc,
		"favorite":   prefs.HasFavorite(cc.Place.Name),
	})
}

func (h *handlers) forecast(c *fiber.Ctx) error {
	prefs := h.store.Load()

	var q weatherQuery
	if err := q.bind(c, prefs, true); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fc, split, buckets, err := h.fetchForecast(c, q)
	if err != nil {
		return err
	}

	samples := h.window(fc.Samples)
	series := make(map[display.Field][]display.Point, len(display.ChartFields))
	for _, f := range display.ChartFields {
		points, err := display.ToSeries(samples, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		series[f] = display.ConvertSeries(points, f, q.Units)
	}

	return c.JSON(fiber.Map{
		"location": q.Location.toLocation(),
		"place":    fc.Place,
		"provider": fc.Provider,
		"units":    q.Units,
		"daySplit": fiber.Map{
			"startHour": split.StartHour,
			"endHour":   split.EndHour,
			"timezone":  split.Location.String(),
		},
		"buckets":  buckets,
		"table":    display.ToTable(buckets, q.Units),
		"pivot":    display.Pivot(buckets, q.Units),
		"summary":  display.Summarize(buckets).View(q.Units),
		"clouds":   display.Clouds(fc.Samples),
		"heatmap":  display.CloudHeatmap(fc.Samples, split.Location),
		"series":   series,
		"map":      display.Marker(fc.Place),
		"favorite": prefs.HasFavorite(fc.Place.Name),
	})
}

func (h *handlers) series(c *fiber.Ctx) error {
	prefs := h.store.Load()

	var q weatherQuery
	if err := q.bind(c, prefs, true); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	field, err := display.ParseField(c.Query("field", string(display.FieldTemperature)))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.opts.RequestTimeout)
	defer cancel()

	fc, err := h.service.Forecast(ctx, q.Location.toLocation(), q.Days)
	if err != nil {
		return upstreamError(err)
	}

	points, err := display.ToSeries(h.window(fc.Samples), field)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"place":  fc.Place,
		"field":  field,
		"units":  q.Units,
		"points": display.ConvertSeries(points, field, q.Units),
	})
}

func (h *handlers) fetchForecast(c *fiber.Ctx, q weatherQuery) (weather.Forecast, weather.DaySplit, []weather.DayNightBucket, error) {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.opts.RequestTimeout)
	defer cancel()

	fc, err := h.service.Forecast(ctx, q.Location.toLocation(), q.Days)
	if err != nil {
		return weather.Forecast{}, weather.DaySplit{}, nil, upstreamError(err)
	}

	zone := time.UTC
	if h.opts.LocalTime {
		zone = fc.Place.TimeZone()
	}
	split := h.opts.Split.In(zone)

	buckets, err := weather.Aggregate(fc.Samples, split)
	if err != nil {
		log.Printf("ERROR: aggregating forecast for %s from %s: %v", q.Location.City, fc.Provider, err)
		return weather.Forecast{}, weather.DaySplit{}, nil, fiber.NewError(fiber.StatusBadGateway, "invalid forecast data")
	}
	return fc, split, buckets, nil
}

func (h *handlers) window(samples []weather.ForecastSample) []weather.ForecastSample {
	now := h.opts.Now()
	return weather.Within(samples, now, now.Add(h.opts.Window))
}

func (h *handlers) getSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"settings": h.store.Load()})
}

func (h *handlers) putSettings(c *fiber.Ctx) error {
	var s settings.UserSettings
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid settings body")
	}
	s = s.Normalize()
	if err := validate.Struct(s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return h.save(c, s)
}

type favoriteRequest struct {
	City string `json:"city" validate:"required"`
}

func (h *handlers) addFavorite(c *fiber.Ctx) error {
	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid favorite body")
	}
	req.City = strings.TrimSpace(req.City)
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return h.save(c, h.store.Load().WithFavorite(req.City))
}

func (h *handlers) removeFavorite(c *fiber.Ctx) error {
	city, err := url.PathUnescape(c.Params("city"))
	if err != nil || strings.TrimSpace(city) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid city")
	}
	return h.save(c, h.store.Load().WithoutFavorite(city))
}

// save persists s. A failed write is reported as a warning next to the
// settings; the request itself still succeeds.
func (h *handlers) save(c *fiber.Ctx, s settings.UserSettings) error {
	resp := fiber.Map{"settings": s}
	if err := h.store.Save(s); err != nil {
		log.Printf("WARN: %v", err)
		resp["warning"] = "settings could not be saved: " + err.Error()
	}
	return c.JSON(resp)
}

// upstreamError maps provider failures onto HTTP errors.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, providers.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "city not found")
	case errors.Is(err, weather.ErrNoProviders):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "weather provider timed out")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	}
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

// weatherQuery holds the query parameters shared by the weather endpoints.
type weatherQuery struct {
	Location locationQuery
	Units    weather.Units `validate:"oneof=metric imperial"`
	Days     int           `validate:"min=1,max=7"`
}

// bind fills the query from the request, falling back to the saved default
// city and unit preference.
func (q *weatherQuery) bind(c *fiber.Ctx, prefs settings.UserSettings, withDays bool) error {
	q.Location.City = strings.TrimSpace(c.Query("city"))
	q.Location.Country = strings.TrimSpace(c.Query("country"))
	if q.Location.City == "" {
		q.Location.City = prefs.City()
	}
	if q.Location.City == "" {
		return errors.New("please enter a city name")
	}

	q.Units = weather.Units(c.Query("units", string(prefs.UnitPreference)))

	q.Days = defaultForecastDays
	if withDays {
		if s := c.Query("days"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.New("days must be an integer")
			}
			q.Days = n
		}
	}

	return validate.Struct(q)
}
