package store

import (
	"context"
	"errors"

	"stargazer-api/internal/models"
)

// ErrUnavailable marks any persistence failure. The store is authoritative
// for the one-fetch-per-day guarantee, so this is fatal to the request; there
// is no fallback to upstream-only mode.
var ErrUnavailable = errors.New("forecast store unavailable")

// ForecastStore persists raw daily weather records and derived star
// visibility records, both keyed by (latitude, longitude, queried_date_utc,
// weather_date_utc). Lookups take the key prefix (no weather date) and return
// every row sharing it, ordered by weather date ascending. Persist calls are
// idempotent upserts: the last write for a key replaces the row, never
// duplicates it.
type ForecastStore interface {
	LookupWeather(ctx context.Context, key models.ForecastKey) ([]models.DailyWeather, error)
	PersistWeather(ctx context.Context, key models.ForecastKey, days []models.DailyWeather) error

	LookupStars(ctx context.Context, key models.ForecastKey) ([]models.StarVisibility, error)
	PersistStars(ctx context.Context, predictions []models.StarVisibility) error
}
