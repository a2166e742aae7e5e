package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stargazer-api/internal/models"
	"stargazer-api/pkg/logger"
)

const (
	DarkSkyBaseURL = "https://api.darksky.net/forecast"

	// Payload sections we never use; excluded at request time.
	darkSkyExclude = "minutely,hourly,alerts,flags"
)

// DarkSkyRepository fetches daily forecasts from a DarkSky-compatible API.
type DarkSkyRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewDarkSkyRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) (*DarkSkyRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = DarkSkyBaseURL
	}

	return &DarkSkyRepository{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (d *DarkSkyRepository) Name() string {
	return "darksky"
}

// darkSkyDay mirrors one entry of the provider's daily.data array. Every field
// is optional; times are unix seconds.
type darkSkyDay struct {
	Time               *int64   `json:"time"`
	SunriseTime        *int64   `json:"sunriseTime"`
	SunsetTime         *int64   `json:"sunsetTime"`
	MoonPhase          *float64 `json:"moonPhase"`
	PrecipIntensity    *float64 `json:"precipIntensity"`
	PrecipIntensityMax *float64 `json:"precipIntensityMax"`
	PrecipProbability  *float64 `json:"precipProbability"`
	PrecipType         *string  `json:"precipType"`
	DewPoint           *float64 `json:"dewPoint"`
	Humidity           *float64 `json:"humidity"`
	Pressure           *float64 `json:"pressure"`
	WindSpeed          *float64 `json:"windSpeed"`
	WindGust           *float64 `json:"windGust"`
	CloudCover         *float64 `json:"cloudCover"`
	UVIndex            *float64 `json:"uvIndex"`
	Visibility         *float64 `json:"visibility"`
	Ozone              *float64 `json:"ozone"`
	TemperatureMin     *float64 `json:"temperatureMin"`
	TemperatureMinTime *int64   `json:"temperatureMinTime"`
	TemperatureMax     *float64 `json:"temperatureMax"`
	TemperatureMaxTime *int64   `json:"temperatureMaxTime"`
	Icon               *string  `json:"icon"`
	Summary            *string  `json:"summary"`
}

type darkSkyResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     struct {
		Data []json.RawMessage `json:"data"`
	} `json:"daily"`
}

// FetchForecast performs one upstream call and normalizes the returned batch.
// A day that fails normalization is dropped with a warning; the rest of the
// batch is returned.
func (d *DarkSkyRepository) FetchForecast(
	ctx context.Context,
	lat float64,
	lon float64,
	asOf models.Date,
) ([]models.DailyWeather, error) {
	requestURL := fmt.Sprintf("%s/%s/%f,%f?exclude=%s&units=us", d.BaseURL, d.APIKey, lat, lon, darkSkyExclude)

	d.l.Info("making darksky API request", map[string]any{
		"lat":     lat,
		"lon":     lon,
		"queried": asOf.String(),
	})

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		// The request URL embeds the API key; unwrap url.Error so the key
		// never surfaces in error messages or logs.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	d.l.Info("received darksky API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w (status %d)", ErrUpstreamRateLimited, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w (status %d)", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var response darkSkyResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrUpstreamUnavailable, err)
	}

	d.l.Info("parsed darksky API response", map[string]any{
		"days": len(response.Daily.Data),
	})

	if len(response.Daily.Data) == 0 {
		return nil, fmt.Errorf("%w: no forecast data available", ErrUpstreamUnavailable)
	}

	var days []models.DailyWeather
	for i, raw := range response.Daily.Data {
		day, err := normalizeDay(raw, i)
		if err != nil {
			d.l.Warning("dropping unusable forecast day", map[string]any{
				"day": i,
				"err": err.Error(),
			})
			continue
		}
		days = append(days, day)
	}

	return days, nil
}

// normalizeDay maps one raw provider day-object into the canonical record:
// unix timestamps become UTC instants, the day's time becomes a civil date,
// fractional values stay as-is, temperatures stay Fahrenheit.
func normalizeDay(raw json.RawMessage, index int) (models.DailyWeather, error) {
	var day darkSkyDay
	if err := json.Unmarshal(raw, &day); err != nil {
		return models.DailyWeather{}, &NormalizationError{DayIndex: index, Reason: err.Error()}
	}

	if day.Time == nil {
		return models.DailyWeather{}, &NormalizationError{DayIndex: index, Reason: "missing time field"}
	}

	return models.DailyWeather{
		WeatherDateUTC:         models.DateOf(time.Unix(*day.Time, 0)),
		SunriseTimeUTC:         unixToUTC(day.SunriseTime),
		SunsetTimeUTC:          unixToUTC(day.SunsetTime),
		MoonPhasePct:           day.MoonPhase,
		PrecipIntensityAvgInHr: day.PrecipIntensity,
		PrecipIntensityMaxInHr: day.PrecipIntensityMax,
		PrecipProbability:      day.PrecipProbability,
		PrecipType:             day.PrecipType,
		DewPointF:              day.DewPoint,
		HumidityPct:            day.Humidity,
		Pressure:               day.Pressure,
		WindSpeedMph:           day.WindSpeed,
		WindGustMph:            day.WindGust,
		CloudCoverPct:          day.CloudCover,
		UVIndex:                day.UVIndex,
		VisibilityMi:           day.Visibility,
		Ozone:                  day.Ozone,
		TemperatureMinF:        day.TemperatureMin,
		TemperatureMinTimeUTC:  unixToUTC(day.TemperatureMinTime),
		TemperatureMaxF:        day.TemperatureMax,
		TemperatureMaxTimeUTC:  unixToUTC(day.TemperatureMaxTime),
		Icon:                   day.Icon,
		Summary:                day.Summary,
	}, nil
}

func unixToUTC(unix *int64) *time.Time {
	if unix == nil {
		return nil
	}
	t := time.Unix(*unix, 0).UTC()
	return &t
}
