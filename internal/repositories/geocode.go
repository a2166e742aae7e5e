package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"

	"stargazer-api/pkg/logger"
)

// ErrGeocodeUnavailable marks a failed place lookup. Callers degrade to null
// place fields instead of failing the request.
var ErrGeocodeUnavailable = errors.New("geocoding service unavailable")

// Place is the human-readable location resolved from a coordinate.
type Place struct {
	City  string
	State string
}

// Geocoder resolves between coordinates and place names. Both directions are
// best-effort metadata lookups, not forecast data.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (Place, error)
	Forward(ctx context.Context, address string) (lat, lon float64, err error)
}

// GoogleGeocoder backs the Geocoder contract with the Google Geocoding API.
type GoogleGeocoder struct {
	l *logger.Logger
}

func NewGoogleGeocoder(apiKey string, l *logger.Logger) *GoogleGeocoder {
	geocoder.ApiKey = apiKey

	return &GoogleGeocoder{l: l}
}

func (g *GoogleGeocoder) Reverse(_ context.Context, lat, lon float64) (Place, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return Place{}, fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}
	if len(addresses) == 0 {
		return Place{}, fmt.Errorf("%w: no address for (%f, %f)", ErrGeocodeUnavailable, lat, lon)
	}

	address := addresses[0]

	g.l.Debug("resolved place for coordinate", map[string]any{
		"lat":   lat,
		"lon":   lon,
		"city":  address.City,
		"state": address.State,
	})

	return Place{
		City:  address.City,
		State: address.State,
	}, nil
}

func (g *GoogleGeocoder) Forward(_ context.Context, address string) (float64, float64, error) {
	location, err := geocoder.Geocoding(geocoder.Address{Street: address})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}

	return location.Latitude, location.Longitude, nil
}
