package memory

import (
	"context"
	"sync"

	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// Store implements domain.MeasurementRepository in memory.
// This is perfect for development and tests - no database file needed.
type Store struct {
	mu      sync.RWMutex
	records []domain.Record
	nextID  int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

// Insert appends a record, honoring the same empty-timestamp rule as the
// SQLite store.
func (s *Store) Insert(ctx context.Context, reading domain.Reading) (int64, error) {
	if reading.Timestamp == "" {
		return 0, domain.ErrNoTimestamp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	brightness := reading.Brightness
	record := domain.Record{
		ID:          s.nextID,
		Timestamp:   reading.Timestamp,
		Temperature: reading.Temperature,
		Humidity:    reading.Humidity,
		Brightness:  &brightness,
	}
	s.nextID++
	s.records = append(s.records, record)
	return record.ID, nil
}

// ReadAll returns every record in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
