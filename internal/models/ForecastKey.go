package models

import (
	"fmt"
	"math"
)

// CoordinatePrecision is the number of decimal places coordinates are rounded
// to before they enter a ForecastKey. One decimal place (~11 km) means nearby
// requests share cache rows, and equality checks never depend on float drift.
const CoordinatePrecision = 1

// RoundCoordinate normalizes a latitude or longitude to the fixed key precision.
func RoundCoordinate(v float64) float64 {
	scale := math.Pow(10, CoordinatePrecision)
	return math.Round(v*scale) / scale
}

// ForecastKey identifies one cached batch: the rounded coordinate plus the UTC
// date the upstream query was (or would be) performed. Together with a
// per-day WeatherDateUTC it uniquely identifies a stored row.
type ForecastKey struct {
	Latitude       float64
	Longitude      float64
	QueriedDateUTC Date
}

func NewForecastKey(latitude, longitude float64, queriedDate Date) ForecastKey {
	return ForecastKey{
		Latitude:       RoundCoordinate(latitude),
		Longitude:      RoundCoordinate(longitude),
		QueriedDateUTC: queriedDate,
	}
}

func (k ForecastKey) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %s)", k.Latitude, k.Longitude, k.QueriedDateUTC)
}
