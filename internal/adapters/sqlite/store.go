package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/quentinrf/greenhouse-monitor/internal/domain"
)

// Store implements domain.MeasurementRepository with SQLite.
type Store struct {
	db *sql.DB
}

// Open creates a SQLite-backed store. The schema is not touched here;
// callers run EnsureSchema before the first insert.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// EnsureSchema creates the measurements table if absent. If the table
// predates the brightness column it is migrated in place; the migration is
// additive only, never destructive, and running it twice is harmless.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS measurements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		temperature REAL NOT NULL,
		humidity REAL NOT NULL,
		brightness INTEGER
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	hasBrightness, err := s.hasColumn(ctx, "measurements", "brightness")
	if err != nil {
		return err
	}
	if !hasBrightness {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE measurements ADD COLUMN brightness INTEGER`); err != nil {
			return fmt.Errorf("failed to add brightness column: %w", err)
		}
	}

	return nil
}

// hasColumn inspects the table's columns via PRAGMA table_info.
func (s *Store) hasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Insert stores a reading inside a transaction. On any storage error the
// transaction is rolled back and no partial row persists.
func (s *Store) Insert(ctx context.Context, reading domain.Reading) (int64, error) {
	if reading.Timestamp == "" {
		return 0, domain.ErrNoTimestamp
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO measurements (timestamp, temperature, humidity, brightness) VALUES (?, ?, ?, ?)`,
		reading.Timestamp, reading.Temperature, reading.Humidity, reading.Brightness,
	)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return 0, fmt.Errorf("failed to insert measurement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit measurement: %w", err)
	}

	return id, nil
}

// ReadAll returns every record ordered by id ascending.
func (s *Store) ReadAll(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, temperature, humidity, brightness FROM measurements ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			record     domain.Record
			brightness sql.NullInt64
		)
		if err := rows.Scan(&record.ID, &record.Timestamp, &record.Temperature, &record.Humidity, &brightness); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		if brightness.Valid {
			b := int(brightness.Int64)
			record.Brightness = &b
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
