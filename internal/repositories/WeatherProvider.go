package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"stargazer-api/internal/models"
)

var (
	// ErrUpstreamUnavailable marks network failures, timeouts and 5xx answers
	// from the weather provider. Never retried locally.
	ErrUpstreamUnavailable = errors.New("upstream weather provider unavailable")

	// ErrUpstreamRateLimited marks quota exhaustion at the weather provider.
	ErrUpstreamRateLimited = errors.New("upstream weather provider rate limited")
)

// NormalizationError reports that a single day in an upstream batch could not
// be normalized into a canonical record. The rest of the batch stays usable.
type NormalizationError struct {
	DayIndex int
	Reason   string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize forecast day %d: %s", e.DayIndex, e.Reason)
}

// HTTPClient lets tests swap the outbound HTTP transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherProvider fetches a multi-day daily forecast for a coordinate and
// normalizes it into canonical per-day records, ordered by date ascending
// starting at asOf.
type WeatherProvider interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64, asOf models.Date) ([]models.DailyWeather, error)
}
