package stars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stargazer-api/internal/models"
)

func f(v float64) *float64 { return &v }

func scorableDay(cloud, precip, moon float64) models.DailyWeather {
	return models.DailyWeather{
		WeatherDateUTC:    models.Today(),
		CloudCoverPct:     f(cloud),
		PrecipProbability: f(precip),
		MoonPhasePct:      f(moon),
	}
}

func TestPredict_CloudyRainyNight(t *testing.T) {
	// Overcast, rain likely, near half moon: a poor stargazing night.
	score, err := Predict(scorableDay(0.93, 0.34, 0.46))
	require.NoError(t, err)
	assert.InDelta(t, 0.07, score, 0.01)
}

func TestPredict_PerfectNight(t *testing.T) {
	score, err := Predict(scorableDay(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestPredict_FullOvercast(t *testing.T) {
	score, err := Predict(scorableDay(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestPredict_ScoreStaysInUnitInterval(t *testing.T) {
	for _, cloud := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, precip := range []float64{0, 0.5, 1} {
			for _, moon := range []float64{0, 0.5, 1} {
				score, err := Predict(scorableDay(cloud, precip, moon))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		}
	}
}

func TestPredict_MonotoneInEachInput(t *testing.T) {
	base, err := Predict(scorableDay(0.5, 0.5, 0.5))
	require.NoError(t, err)

	cloudier, err := Predict(scorableDay(0.8, 0.5, 0.5))
	require.NoError(t, err)
	assert.Less(t, cloudier, base)

	rainier, err := Predict(scorableDay(0.5, 0.9, 0.5))
	require.NoError(t, err)
	assert.Less(t, rainier, base)

	brighterMoon, err := Predict(scorableDay(0.5, 0.5, 0.9))
	require.NoError(t, err)
	assert.Less(t, brighterMoon, base)
}

func TestPredict_MissingPrecipSkipsPenalty(t *testing.T) {
	day := scorableDay(0.5, 0, 0.5)
	day.PrecipProbability = nil

	withoutPrecip, err := Predict(day)
	require.NoError(t, err)

	zeroPrecip, err := Predict(scorableDay(0.5, 0, 0.5))
	require.NoError(t, err)

	assert.Equal(t, zeroPrecip, withoutPrecip)
}

func TestPredict_MissingMandatoryInputs(t *testing.T) {
	noCloud := scorableDay(0, 0, 0)
	noCloud.CloudCoverPct = nil
	_, err := Predict(noCloud)
	assert.ErrorIs(t, err, ErrInsufficientData)

	noMoon := scorableDay(0, 0, 0)
	noMoon.MoonPhasePct = nil
	_, err = Predict(noMoon)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredict_Deterministic(t *testing.T) {
	day := scorableDay(0.33, 0.21, 0.87)
	first, err := Predict(day)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Predict(day)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
