package models

import "time"

// DailyWeather is the canonical forecast record for one calendar day at a
// coordinate. Percentage fields are fractions in [0,1], temperatures are
// Fahrenheit, and every timestamp is UTC. Fields the upstream provider may
// omit are pointers so absence survives the round trip through storage.
type DailyWeather struct {
	WeatherDateUTC         Date       `json:"weather_date_utc"`
	SunriseTimeUTC         *time.Time `json:"sunrise_time_utc"`
	SunsetTimeUTC          *time.Time `json:"sunset_time_utc"`
	MoonPhasePct           *float64   `json:"moon_phase_pct"`
	PrecipIntensityAvgInHr *float64   `json:"precip_intensity_avg_in_hr"`
	PrecipIntensityMaxInHr *float64   `json:"precip_intensity_max_in_hr"`
	PrecipProbability      *float64   `json:"precip_probability"`
	PrecipType             *string    `json:"precip_type"`
	DewPointF              *float64   `json:"dew_point_f"`
	HumidityPct            *float64   `json:"humidity_pct"`
	Pressure               *float64   `json:"pressure"`
	WindSpeedMph           *float64   `json:"wind_speed_mph"`
	WindGustMph            *float64   `json:"wind_gust_mph"`
	CloudCoverPct          *float64   `json:"cloud_cover_pct"`
	UVIndex                *float64   `json:"uv_index"`
	VisibilityMi           *float64   `json:"visibility_mi"`
	Ozone                  *float64   `json:"ozone"`
	TemperatureMinF        *float64   `json:"temperature_min_f"`
	TemperatureMinTimeUTC  *time.Time `json:"temperature_min_time_utc"`
	TemperatureMaxF        *float64   `json:"temperature_max_f"`
	TemperatureMaxTimeUTC  *time.Time `json:"temperature_max_time_utc"`
	Icon                   *string    `json:"icon"`
	Summary                *string    `json:"summary"`
}
