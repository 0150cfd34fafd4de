package domain

import "context"

// MeasurementRepository defines operations for persisting readings.
// This is a PORT - adapters (SQLite, Memory) will implement it.
// The repository is accessed only from the single acquisition loop; no
// concurrent writers are supported by design.
type MeasurementRepository interface {
	// EnsureSchema creates the measurements table if absent and applies
	// additive migrations to an existing one. Idempotent.
	EnsureSchema(ctx context.Context) error

	// Insert persists a reading and returns its row id. A reading with an
	// empty timestamp is rejected with ErrNoTimestamp before anything is
	// written. No partial row survives an error.
	Insert(ctx context.Context, reading Reading) (int64, error)

	// ReadAll returns every record ordered by id ascending (insertion
	// order). Diagnostic use, not on the hot path.
	ReadAll(ctx context.Context) ([]Record, error)

	// Close releases the underlying handle.
	Close() error
}
