package http

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stargazer-api/internal/models"
	"stargazer-api/internal/repositories"
	"stargazer-api/internal/store"
)

var validate = validator.New()

// coordinateQuery holds the parsed lat/lon query parameters.
type coordinateQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat"`
}

// CoordinatesResponse represents resolved coordinates for an address
type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude" example:"47.6062"`
	Longitude float64 `json:"longitude" example:"-122.3321"`
}

func parseCoordinateQuery(c *fiber.Ctx) (coordinateQuery, error) {
	var q coordinateQuery

	lat := c.Query("lat")
	lon := c.Query("lon")

	if lat == "" {
		return q, errors.New("Missing required parameter: lat")
	}
	if lon == "" {
		return q, errors.New("Missing required parameter: lon")
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return q, errors.New("Invalid latitude format")
	}
	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return q, errors.New("Invalid longitude format")
	}

	q.Lat = latFloat
	q.Lon = lonFloat

	if err := validate.Struct(q); err != nil {
		return q, errors.New("Coordinates out of range")
	}

	return q, nil
}

// GetWeatherForecast godoc
// @Summary Get daily weather forecast
// @Description Returns the cached or freshly fetched multi-day weather forecast for a coordinate
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" example(47.6062)
// @Param lon query number true "Longitude coordinate (-180 to 180)" example(-122.3321)
// @Success 200 {object} models.WeatherForecast "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 502 {object} ErrorResponse "Upstream weather provider failure"
// @Failure 503 {object} ErrorResponse "Forecast store unavailable"
// @Router /api/v1/weather [get]
func (r *routes) handleWeatherForecast(c *fiber.Ctx) error {
	q, err := parseCoordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), r.timeout)
	defer cancel()

	forecast, err := r.weather.GetWeatherForecast(ctx, q.Lat, q.Lon, models.Today())
	if err != nil {
		return r.renderError(c, err, q.Lat, q.Lon)
	}

	r.l.Debug("serving weather forecast", map[string]any{"params": forecast.RequestParams()})

	return c.JSON(forecast)
}

// GetStarForecast godoc
// @Summary Get star visibility forecast
// @Description Returns per-day star visibility scores alongside the weather they were derived from
// @Tags Stars
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" example(47.6062)
// @Param lon query number true "Longitude coordinate (-180 to 180)" example(-122.3321)
// @Success 200 {object} models.StarForecast "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 502 {object} ErrorResponse "Upstream weather provider failure"
// @Failure 503 {object} ErrorResponse "Forecast store unavailable"
// @Router /api/v1/stars [get]
func (r *routes) handleStarForecast(c *fiber.Ctx) error {
	q, err := parseCoordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), r.timeout)
	defer cancel()

	forecast, err := r.stars.GetStarForecast(ctx, q.Lat, q.Lon, models.Today())
	if err != nil {
		return r.renderError(c, err, q.Lat, q.Lon)
	}

	return c.JSON(forecast)
}

// GetCoordinates godoc
// @Summary Resolve an address to coordinates
// @Description Parses a "lat,lon" pair or forward-geocodes a free-text address
// @Tags Coordinates
// @Produce json
// @Param address query string true "Address or lat,lon pair" example(Seattle, WA)
// @Success 200 {object} CoordinatesResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - missing or unparseable address"
// @Failure 502 {object} ErrorResponse "Geocoding service failure"
// @Router /api/v1/coordinates [get]
func (r *routes) handleCoordinates(c *fiber.Ctx) error {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" || address == "null" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: address",
		})
	}

	if lat, lon, ok := splitLatLon(address); ok {
		return c.JSON(CoordinatesResponse{Latitude: lat, Longitude: lon})
	}

	ctx, cancel := context.WithTimeout(c.Context(), r.timeout)
	defer cancel()

	lat, lon, err := r.geocoder.Forward(ctx, address)
	if err != nil {
		r.l.Error(err, map[string]any{"address": address})
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Failed to resolve address",
		})
	}

	return c.JSON(CoordinatesResponse{Latitude: lat, Longitude: lon})
}

// splitLatLon accepts an address already given as a "lat,lon" pair.
func splitLatLon(address string) (float64, float64, bool) {
	parts := strings.Split(address, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lon, true
}

// renderError maps the error taxonomy onto HTTP statuses, keeping the kinds
// distinguishable for clients.
func (r *routes) renderError(c *fiber.Ctx, err error, lat, lon float64) error {
	r.l.Error(err, map[string]any{"lat": lat, "lon": lon})

	switch {
	case errors.Is(err, store.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "Forecast store unavailable",
		})
	case errors.Is(err, repositories.ErrUpstreamRateLimited):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Weather provider rate limited",
		})
	case errors.Is(err, repositories.ErrUpstreamUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Weather provider unavailable",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to build forecast",
		})
	}
}
