package models

import "fmt"

// WeatherForecast is the serialized result of a weather forecast request:
// the caller's coordinates, the cache partition date, and one canonical record
// per forecast day ordered by weather date ascending.
type WeatherForecast struct {
	Latitude       float64        `json:"latitude" example:"47.6062"`
	Longitude      float64        `json:"longitude" example:"-122.3321"`
	QueriedDateUTC Date           `json:"queried_date_utc" example:"2026-08-31"`
	DailyForecast  []DailyWeather `json:"daily_forecast"`
}

func (f *WeatherForecast) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f queried: %s", f.Latitude, f.Longitude, f.QueriedDateUTC)
}

// StarDayForecast is one day of the star forecast: the weather record with its
// derived visibility score and the illuminated fraction of the moon's disc
// (null when the moon phase is unknown).
type StarDayForecast struct {
	DailyWeather
	MoonIllumination *float64 `json:"moon_illumination" example:"0.92"`
	StarVisibility   float64  `json:"star_visibility" example:"0.7"`
}

// StarForecast is the serialized result of a star forecast request. City and
// State are best-effort metadata; they are null when reverse geocoding fails.
type StarForecast struct {
	Latitude       float64           `json:"latitude" example:"47.6062"`
	Longitude      float64           `json:"longitude" example:"-122.3321"`
	QueriedDateUTC Date              `json:"queried_date_utc" example:"2026-08-31"`
	City           *string           `json:"city" example:"Seattle"`
	State          *string           `json:"state" example:"Washington"`
	DailyForecast  []StarDayForecast `json:"daily_forecast"`
}
