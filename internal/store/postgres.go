package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"stargazer-api/internal/models"
	"stargazer-api/pkg/logger"
)

// DailyWeatherRow is one forecast day in the daily_weather_forecast table.
// The canonical record rides along as a jsonb document so new weather fields
// never need a schema migration.
type DailyWeatherRow struct {
	Latitude       float64   `gorm:"column:latitude;type:decimal(8,4);primaryKey"`
	Longitude      float64   `gorm:"column:longitude;type:decimal(9,4);primaryKey"`
	QueriedDateUTC time.Time `gorm:"column:queried_date_utc;type:date;primaryKey"`
	WeatherDateUTC time.Time `gorm:"column:weather_date_utc;type:date;primaryKey"`
	WeatherJSON    string    `gorm:"column:weather_json;type:jsonb;not null"`
}

func (DailyWeatherRow) TableName() string {
	return "daily_weather_forecast"
}

// StarVisibilityRow is one prediction in the daily_star_visibility_forecast
// table, sharing its key with the weather row it was derived from.
type StarVisibilityRow struct {
	Latitude       float64   `gorm:"column:latitude;type:decimal(8,4);primaryKey"`
	Longitude      float64   `gorm:"column:longitude;type:decimal(9,4);primaryKey"`
	QueriedDateUTC time.Time `gorm:"column:queried_date_utc;type:date;primaryKey"`
	WeatherDateUTC time.Time `gorm:"column:weather_date_utc;type:date;primaryKey"`
	Prediction     float64   `gorm:"column:prediction;type:decimal(5,4);not null"`
}

func (StarVisibilityRow) TableName() string {
	return "daily_star_visibility_forecast"
}

// upsertOnForecastKey makes a batch insert idempotent: a second write for the
// same (latitude, longitude, queried_date_utc, weather_date_utc) replaces the
// named payload column instead of conflicting.
func upsertOnForecastKey(payloadColumn string) clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{
			{Name: "latitude"},
			{Name: "longitude"},
			{Name: "queried_date_utc"},
			{Name: "weather_date_utc"},
		},
		DoUpdates: clause.AssignmentColumns([]string{payloadColumn}),
	}
}

// PostgresStore implements ForecastStore on PostgreSQL via GORM.
type PostgresStore struct {
	db *gorm.DB
	l  *logger.Logger
}

func NewPostgresStore(databaseURL string, l *logger.Logger) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db, l: l}, nil
}

// NewPostgresStoreWithDB wraps an existing GORM handle; used by tests.
func NewPostgresStoreWithDB(db *gorm.DB, l *logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, l: l}
}

// Migrate creates the two forecast tables if they do not exist.
func (s *PostgresStore) Migrate() error {
	if err := s.db.AutoMigrate(&DailyWeatherRow{}, &StarVisibilityRow{}); err != nil {
		return fmt.Errorf("failed to migrate forecast tables: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) LookupWeather(ctx context.Context, key models.ForecastKey) ([]models.DailyWeather, error) {
	var rows []DailyWeatherRow

	err := s.db.WithContext(ctx).
		Where("latitude = ? AND longitude = ? AND queried_date_utc = ?",
			key.Latitude, key.Longitude, key.QueriedDateUTC.Time()).
		Order("weather_date_utc asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: weather lookup for %s: %v", ErrUnavailable, key, err)
	}

	days := make([]models.DailyWeather, 0, len(rows))
	for _, row := range rows {
		var day models.DailyWeather
		if err := json.Unmarshal([]byte(row.WeatherJSON), &day); err != nil {
			return nil, fmt.Errorf("%w: corrupt weather_json for %s/%s: %v",
				ErrUnavailable, key, row.WeatherDateUTC.Format(models.DateFormat), err)
		}
		days = append(days, day)
	}

	return days, nil
}

func (s *PostgresStore) PersistWeather(ctx context.Context, key models.ForecastKey, days []models.DailyWeather) error {
	if len(days) == 0 {
		return nil
	}

	rows := make([]DailyWeatherRow, 0, len(days))
	for _, day := range days {
		weatherJSON, err := json.Marshal(day)
		if err != nil {
			return fmt.Errorf("failed to serialize weather record: %w", err)
		}
		rows = append(rows, DailyWeatherRow{
			Latitude:       key.Latitude,
			Longitude:      key.Longitude,
			QueriedDateUTC: key.QueriedDateUTC.Time(),
			WeatherDateUTC: day.WeatherDateUTC.Time(),
			WeatherJSON:    string(weatherJSON),
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(upsertOnForecastKey("weather_json")).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("%w: weather persist for %s: %v", ErrUnavailable, key, err)
	}

	s.l.Debug("persisted weather batch", map[string]any{"key": key.String(), "days": len(rows)})

	return nil
}

func (s *PostgresStore) LookupStars(ctx context.Context, key models.ForecastKey) ([]models.StarVisibility, error) {
	var rows []StarVisibilityRow

	err := s.db.WithContext(ctx).
		Where("latitude = ? AND longitude = ? AND queried_date_utc = ?",
			key.Latitude, key.Longitude, key.QueriedDateUTC.Time()).
		Order("weather_date_utc asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: star lookup for %s: %v", ErrUnavailable, key, err)
	}

	predictions := make([]models.StarVisibility, 0, len(rows))
	for _, row := range rows {
		predictions = append(predictions, models.StarVisibility{
			Key:            models.NewForecastKey(row.Latitude, row.Longitude, models.DateOf(row.QueriedDateUTC)),
			WeatherDateUTC: models.DateOf(row.WeatherDateUTC),
			Prediction:     row.Prediction,
		})
	}

	return predictions, nil
}

func (s *PostgresStore) PersistStars(ctx context.Context, predictions []models.StarVisibility) error {
	if len(predictions) == 0 {
		return nil
	}

	rows := make([]StarVisibilityRow, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, StarVisibilityRow{
			Latitude:       p.Key.Latitude,
			Longitude:      p.Key.Longitude,
			QueriedDateUTC: p.Key.QueriedDateUTC.Time(),
			WeatherDateUTC: p.WeatherDateUTC.Time(),
			Prediction:     p.Prediction,
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(upsertOnForecastKey("prediction")).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("%w: star persist for %s: %v", ErrUnavailable, predictions[0].Key, err)
	}

	s.l.Debug("persisted star batch", map[string]any{
		"key":  predictions[0].Key.String(),
		"days": len(rows),
	})

	return nil
}
