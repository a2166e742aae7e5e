package stars

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"stargazer-api/internal/models"
	"stargazer-api/internal/repositories"
	"stargazer-api/internal/services/weather"
	"stargazer-api/internal/store"
	"stargazer-api/pkg/logger"
)

// Service implements the cache-aside protocol for star visibility. On a star
// cache hit it pairs the predictions with weather rows read straight from the
// store; only on a miss does it involve the weather orchestrator and run the
// predictor over the fresh batch.
type Service struct {
	store    store.ForecastStore
	weather  *weather.Service
	geocoder repositories.Geocoder
	l        *logger.Logger
}

func NewStarService(
	forecastStore store.ForecastStore,
	weatherService *weather.Service,
	geocoder repositories.Geocoder,
	l *logger.Logger,
) *Service {
	return &Service{
		store:    forecastStore,
		weather:  weatherService,
		geocoder: geocoder,
		l:        l,
	}
}

// GetStarForecast returns one scored day per forecast day at the coordinate,
// plus the resolved place name. Geocoding failures degrade to null place
// fields; a day the predictor cannot score is dropped with the rest of the
// batch intact.
func (s *Service) GetStarForecast(ctx context.Context, lat, lon float64, asOf models.Date) (*models.StarForecast, error) {
	key := models.NewForecastKey(lat, lon, asOf)

	predictions, err := s.store.LookupStars(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "star cache lookup failed")
	}

	var days []models.DailyWeather

	if len(predictions) > 0 {
		s.l.Info("star cache hit", map[string]any{"key": key.String(), "days": len(predictions)})

		// The weather batch was persisted before these predictions were, so
		// it is read back directly without consulting the weather service.
		days, err = s.store.LookupWeather(ctx, key)
		if err != nil {
			return nil, errors.Wrap(err, "weather cache lookup failed")
		}
	} else {
		s.l.Info("star cache miss", map[string]any{"key": key.String()})

		forecast, err := s.weather.GetWeatherForecast(ctx, lat, lon, asOf)
		if err != nil {
			return nil, err
		}
		days = forecast.DailyForecast

		predictions = make([]models.StarVisibility, 0, len(days))
		for _, day := range days {
			prediction, err := Predict(day)
			if err != nil {
				s.l.Warning("dropping unscorable forecast day", map[string]any{
					"key":  key.String(),
					"date": day.WeatherDateUTC.String(),
					"err":  err.Error(),
				})
				continue
			}
			predictions = append(predictions, models.StarVisibility{
				Key:            key,
				WeatherDateUTC: day.WeatherDateUTC,
				Prediction:     prediction,
			})
		}

		if len(predictions) == 0 {
			return nil, fmt.Errorf("%w: no scorable days in forecast for %s", ErrInsufficientData, key)
		}

		if err := s.store.PersistStars(ctx, predictions); err != nil {
			return nil, errors.Wrap(err, "star cache persist failed")
		}

		s.l.Info("persisted fresh star forecast", map[string]any{
			"key":  key.String(),
			"days": len(predictions),
		})
	}

	result := &models.StarForecast{
		Latitude:       lat,
		Longitude:      lon,
		QueriedDateUTC: asOf,
		DailyForecast:  pairByDate(days, predictions),
	}

	s.resolvePlace(ctx, lat, lon, result)

	return result, nil
}

// pairByDate joins weather days with their predictions on weather date. Days
// without a prediction (dropped by the predictor) are omitted, as is a
// prediction whose weather row is missing from the batch. The moon's disc
// illumination is derived from the day's phase during the join.
func pairByDate(days []models.DailyWeather, predictions []models.StarVisibility) []models.StarDayForecast {
	byDate := make(map[string]models.DailyWeather, len(days))
	for _, day := range days {
		byDate[day.WeatherDateUTC.String()] = day
	}

	paired := make([]models.StarDayForecast, 0, len(predictions))
	for _, p := range predictions {
		day, ok := byDate[p.WeatherDateUTC.String()]
		if !ok {
			continue
		}

		var illumination *float64
		if day.MoonPhasePct != nil {
			v := MoonIllumination(*day.MoonPhasePct)
			illumination = &v
		}

		paired = append(paired, models.StarDayForecast{
			DailyWeather:     day,
			MoonIllumination: illumination,
			StarVisibility:   p.Prediction,
		})
	}

	return paired
}

// resolvePlace fills city and state when the geocoder answers. Place names
// are metadata, not forecast data, so a failure only logs a warning.
func (s *Service) resolvePlace(ctx context.Context, lat, lon float64, forecast *models.StarForecast) {
	place, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		s.l.Warning("reverse geocoding failed, returning null place", map[string]any{
			"lat": lat,
			"lon": lon,
			"err": err.Error(),
		})
		return
	}

	if place.City != "" {
		forecast.City = &place.City
	}
	if place.State != "" {
		forecast.State = &place.State
	}
}
