package weather

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"stargazer-api/internal/models"
	"stargazer-api/internal/repositories"
	"stargazer-api/internal/store"
	"stargazer-api/pkg/logger"
)

// Service implements the cache-aside protocol for daily weather: check the
// store, else fetch from the upstream provider and persist the whole batch.
// All days of a batch share one queried date, so a coordinate costs at most
// one upstream call per calendar day.
type Service struct {
	store    store.ForecastStore
	provider repositories.WeatherProvider
	l        *logger.Logger
}

func NewWeatherService(forecastStore store.ForecastStore, provider repositories.WeatherProvider, l *logger.Logger) *Service {
	return &Service{
		store:    forecastStore,
		provider: provider,
		l:        l,
	}
}

// GetWeatherForecast returns the multi-day forecast for a coordinate as of
// the given UTC date. Store failures are fatal; the store is authoritative
// for the one-fetch-per-day guarantee, so there is no upstream-only fallback.
func (s *Service) GetWeatherForecast(ctx context.Context, lat, lon float64, asOf models.Date) (*models.WeatherForecast, error) {
	key := models.NewForecastKey(lat, lon, asOf)

	days, err := s.store.LookupWeather(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "weather cache lookup failed")
	}

	if len(days) > 0 {
		s.l.Info("weather cache hit", map[string]any{"key": key.String(), "days": len(days)})
		return serialize(lat, lon, asOf, days), nil
	}

	s.l.Info("weather cache miss, fetching upstream", map[string]any{
		"key":      key.String(),
		"provider": s.provider.Name(),
	})

	days, err = s.provider.FetchForecast(ctx, lat, lon, asOf)
	if err != nil {
		return nil, errors.Wrapf(err, "upstream fetch failed for %s", key)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: upstream batch contained no usable days", repositories.ErrUpstreamUnavailable)
	}

	if err := s.store.PersistWeather(ctx, key, days); err != nil {
		return nil, errors.Wrap(err, "weather cache persist failed")
	}

	s.l.Info("persisted fresh weather forecast", map[string]any{
		"key":  key.String(),
		"days": len(days),
	})

	return serialize(lat, lon, asOf, days), nil
}

// serialize builds the API view of a weather batch. The caller's exact
// coordinates are echoed back even though cache rows hold rounded ones.
func serialize(lat, lon float64, asOf models.Date, days []models.DailyWeather) *models.WeatherForecast {
	return &models.WeatherForecast{
		Latitude:       lat,
		Longitude:      lon,
		QueriedDateUTC: asOf,
		DailyForecast:  days,
	}
}
