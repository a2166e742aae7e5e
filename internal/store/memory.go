package store

import (
	"context"
	"sort"
	"sync"

	"stargazer-api/internal/models"
)

// MemoryStore is a concurrency-safe in-memory ForecastStore. It honors the
// same contract as the PostgreSQL store (key-prefix lookups, idempotent
// upserts) and backs unit tests and local development without a database.
type MemoryStore struct {
	mu sync.RWMutex

	// prefix key -> weather date -> record
	weather map[string]map[string]models.DailyWeather
	stars   map[string]map[string]models.StarVisibility
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		weather: make(map[string]map[string]models.DailyWeather),
		stars:   make(map[string]map[string]models.StarVisibility),
	}
}

func (s *MemoryStore) LookupWeather(_ context.Context, key models.ForecastKey) ([]models.DailyWeather, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate, ok := s.weather[key.String()]
	if !ok {
		return nil, nil
	}

	days := make([]models.DailyWeather, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].WeatherDateUTC.Before(days[j].WeatherDateUTC)
	})

	return days, nil
}

func (s *MemoryStore) PersistWeather(_ context.Context, key models.ForecastKey, days []models.DailyWeather) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.weather[key.String()]
	if !ok {
		byDate = make(map[string]models.DailyWeather)
		s.weather[key.String()] = byDate
	}
	for _, day := range days {
		byDate[day.WeatherDateUTC.String()] = day
	}

	return nil
}

func (s *MemoryStore) LookupStars(_ context.Context, key models.ForecastKey) ([]models.StarVisibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate, ok := s.stars[key.String()]
	if !ok {
		return nil, nil
	}

	predictions := make([]models.StarVisibility, 0, len(byDate))
	for _, p := range byDate {
		predictions = append(predictions, p)
	}
	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].WeatherDateUTC.Before(predictions[j].WeatherDateUTC)
	})

	return predictions, nil
}

func (s *MemoryStore) PersistStars(_ context.Context, predictions []models.StarVisibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range predictions {
		byDate, ok := s.stars[p.Key.String()]
		if !ok {
			byDate = make(map[string]models.StarVisibility)
			s.stars[p.Key.String()] = byDate
		}
		byDate[p.WeatherDateUTC.String()] = p
	}

	return nil
}
