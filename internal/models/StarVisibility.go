package models

// StarVisibility is one day's star visibility prediction, always derived from
// the DailyWeather record sharing its key. Prediction is in [0,1]; higher
// means better conditions for observing stars.
type StarVisibility struct {
	Key            ForecastKey `json:"-"`
	WeatherDateUTC Date        `json:"weather_date_utc"`
	Prediction     float64     `json:"prediction"`
}
