package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Service asks the configured providers, in priority order, for weather data.
// The first provider that answers wins; the rest are not called.
type Service struct {
	providers []Provider
}

// NewService creates a new Service.
func NewService(providers []Provider) *Service {
	return &Service{
		providers: providers,
	}
}

// Providers returns the names of the configured providers in priority order.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Current returns current conditions for loc from the first provider that succeeds.
func (s *Service) Current(ctx context.Context, loc Location) (CurrentConditions, error) {
	log.Printf("DEBUG: Current called for %s with %d providers", loc.Key(), len(s.providers))

	return firstSuccess(ctx, s.providers, loc, func(p Provider) (CurrentConditions, error) {
		return p.Current(ctx, loc)
	})
}

// Forecast returns forecast samples for loc covering at most days days.
func (s *Service) Forecast(ctx context.Context, loc Location, days int) (Forecast, error) {
	if days <= 0 {
		return Forecast{}, ErrInvalidDays
	}

	log.Printf("DEBUG: Forecast called for %s for %d days", loc.Key(), days)

	return firstSuccess(ctx, s.providers, loc, func(p Provider) (Forecast, error) {
		return p.Forecast(ctx, loc, days)
	})
}

func firstSuccess[T any](ctx context.Context, providers []Provider, loc Location, call func(Provider) (T, error)) (T, error) {
	var zero T
	if len(providers) == 0 {
		log.Printf("ERROR: No providers available to fetch weather data for %s", loc.Key())
		return zero, ErrNoProviders
	}

	var errs []error
	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := call(p)
		if err != nil {
			log.Printf("WARN: provider %s failed for %s: %v", p.Name(), loc.Key(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return v, nil
	}

	return zero, errors.Join(errs...)
}
