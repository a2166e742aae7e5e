package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stargazer-api/internal/models"
	"stargazer-api/internal/repositories"
	"stargazer-api/internal/services/stars"
	"stargazer-api/internal/services/weather"
	"stargazer-api/internal/store"
	"stargazer-api/pkg/httpserver"
	"stargazer-api/pkg/logger"
)

func f(v float64) *float64 { return &v }

type mockProvider struct {
	batch []models.DailyWeather
	err   error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchForecast(_ context.Context, _, _ float64, asOf models.Date) ([]models.DailyWeather, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.batch != nil {
		return m.batch, nil
	}
	return []models.DailyWeather{
		{
			WeatherDateUTC:    asOf,
			CloudCoverPct:     f(0.93),
			MoonPhasePct:      f(0.46),
			PrecipProbability: f(0.34),
		},
		{
			WeatherDateUTC: asOf.AddDays(1),
			CloudCoverPct:  f(0.1),
			MoonPhasePct:   f(0.5),
		},
	}, nil
}

type mockGeocoder struct {
	place      repositories.Place
	forwardLat float64
	forwardLon float64
	err        error
}

func (m *mockGeocoder) Reverse(_ context.Context, _, _ float64) (repositories.Place, error) {
	if m.err != nil {
		return repositories.Place{}, m.err
	}
	return m.place, nil
}

func (m *mockGeocoder) Forward(_ context.Context, _ string) (float64, float64, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.forwardLat, m.forwardLon, nil
}

func newTestApp(provider *mockProvider, geocoder *mockGeocoder) *fiber.App {
	l := logger.NewZapLogger("test-app", "test")
	memStore := store.NewMemoryStore()
	weatherService := weather.NewWeatherService(memStore, provider, l)
	starService := stars.NewStarService(memStore, weatherService, geocoder, l)

	app := httpserver.InitFiberServer("test-app")
	NewRouter(app, weatherService, starService, geocoder, 5*time.Second, l)

	return app
}

func decodeBody[T any](t *testing.T, resp io.Reader) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp).Decode(&out))
	return out
}

func TestHandleWeatherForecast_Success(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{})

	req := httptest.NewRequest("GET", "/api/v1/weather?lat=47.6062&lon=-122.3321", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	forecast := decodeBody[models.WeatherForecast](t, resp.Body)
	assert.Equal(t, 47.6062, forecast.Latitude)
	assert.Equal(t, -122.3321, forecast.Longitude)
	assert.Len(t, forecast.DailyForecast, 2)
}

func TestHandleWeatherForecast_MissingParams(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{})

	for _, target := range []string{
		"/api/v1/weather",
		"/api/v1/weather?lat=47.6",
		"/api/v1/weather?lon=-122.3",
	} {
		req := httptest.NewRequest("GET", target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, target)
	}
}

func TestHandleWeatherForecast_InvalidCoordinates(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{})

	for _, target := range []string{
		"/api/v1/weather?lat=abc&lon=-122.3",
		"/api/v1/weather?lat=47.6&lon=xyz",
		"/api/v1/weather?lat=91&lon=-122.3",
		"/api/v1/weather?lat=47.6&lon=-181",
	} {
		req := httptest.NewRequest("GET", target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, target)
	}
}

func TestHandleWeatherForecast_UpstreamFailure(t *testing.T) {
	app := newTestApp(&mockProvider{err: repositories.ErrUpstreamUnavailable}, &mockGeocoder{})

	req := httptest.NewRequest("GET", "/api/v1/weather?lat=47.6&lon=-122.3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	body := decodeBody[ErrorResponse](t, resp.Body)
	assert.Equal(t, "Weather provider unavailable", body.Error)
}

func TestHandleWeatherForecast_RateLimited(t *testing.T) {
	app := newTestApp(&mockProvider{err: repositories.ErrUpstreamRateLimited}, &mockGeocoder{})

	req := httptest.NewRequest("GET", "/api/v1/weather?lat=47.6&lon=-122.3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	body := decodeBody[ErrorResponse](t, resp.Body)
	assert.Equal(t, "Weather provider rate limited", body.Error)
}

func TestHandleStarForecast_Success(t *testing.T) {
	geocoder := &mockGeocoder{place: repositories.Place{City: "Seattle", State: "Washington"}}
	app := newTestApp(&mockProvider{}, geocoder)

	req := httptest.NewRequest("GET", "/api/v1/stars?lat=47.6062&lon=-122.3321", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	forecast := decodeBody[models.StarForecast](t, resp.Body)
	require.NotNil(t, forecast.City)
	assert.Equal(t, "Seattle", *forecast.City)
	require.Len(t, forecast.DailyForecast, 2)
	assert.InDelta(t, 0.07, forecast.DailyForecast[0].StarVisibility, 0.01)
}

func TestHandleStarForecast_GeocodeFailureStillSucceeds(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{err: repositories.ErrGeocodeUnavailable})

	req := httptest.NewRequest("GET", "/api/v1/stars?lat=47.6&lon=-122.3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	forecast := decodeBody[models.StarForecast](t, resp.Body)
	assert.Nil(t, forecast.City)
	assert.Nil(t, forecast.State)
}

func TestHandleCoordinates_LatLonPair(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{})

	req := httptest.NewRequest("GET", "/api/v1/coordinates?address=47.6062%2C-122.3321", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody[CoordinatesResponse](t, resp.Body)
	assert.Equal(t, 47.6062, body.Latitude)
	assert.Equal(t, -122.3321, body.Longitude)
}

func TestHandleCoordinates_ForwardGeocode(t *testing.T) {
	geocoder := &mockGeocoder{forwardLat: 47.6062, forwardLon: -122.3321}
	app := newTestApp(&mockProvider{}, geocoder)

	req := httptest.NewRequest("GET", "/api/v1/coordinates?address=Seattle%2C+WA", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody[CoordinatesResponse](t, resp.Body)
	assert.Equal(t, 47.6062, body.Latitude)
	assert.Equal(t, -122.3321, body.Longitude)
}

func TestHandleCoordinates_MissingAddress(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{})

	for _, target := range []string{
		"/api/v1/coordinates",
		"/api/v1/coordinates?address=",
		"/api/v1/coordinates?address=null",
	} {
		req := httptest.NewRequest("GET", target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, target)
	}
}

func TestHandleCoordinates_GeocodeFailure(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{err: repositories.ErrGeocodeUnavailable})

	req := httptest.NewRequest("GET", "/api/v1/coordinates?address=Seattle", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(&mockProvider{}, &mockGeocoder{})

	for _, target := range []string{"/manage/health", "/manage/ready"} {
		req := httptest.NewRequest("GET", target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, target)
	}
}
