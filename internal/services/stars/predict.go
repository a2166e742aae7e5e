package stars

import (
	"errors"

	"stargazer-api/internal/models"
)

// ErrInsufficientData is returned when a weather record is missing a
// mandatory predictor input (cloud cover or moon phase).
var ErrInsufficientData = errors.New("insufficient weather data to score star visibility")

// Penalty weights for the secondary signals. Cloud cover is the dominant
// signal; precipitation chance and moon illumination each shave off at most
// 10% of the remaining score.
const (
	precipWeight = 0.10
	moonWeight   = 0.10
)

// Predict maps one day's weather to a star visibility score in [0,1], where
// 1 is a perfect night and 0 is no visibility at all. The score starts from
// inverse cloud cover and is reduced multiplicatively by precipitation
// probability and moon illumination. Deterministic and side-effect free,
// which is what makes predictions cacheable without expiry.
//
// Cloud cover and moon phase are mandatory; a missing precipitation
// probability simply skips its penalty.
func Predict(day models.DailyWeather) (float64, error) {
	if day.CloudCoverPct == nil || day.MoonPhasePct == nil {
		return 0, ErrInsufficientData
	}

	score := 1 - *day.CloudCoverPct

	if day.PrecipProbability != nil {
		score *= 1 - precipWeight**day.PrecipProbability
	}
	score *= 1 - moonWeight**day.MoonPhasePct

	return clamp(score), nil
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
