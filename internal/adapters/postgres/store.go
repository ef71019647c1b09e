package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"time"
)

// Postgres-backed implementation of ports.Store.
type Store struct{ DB *sql.DB }

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) check() error {
	if s.DB == nil {
		return errors.New("postgres store: DB is nil")
	}
	return nil
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
}

// getErr maps sql.ErrNoRows to domain.ErrNotFound.
func getErr(op, kind string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(kind, id)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func coordArgs(c *domain.Coordinates) (lat, lon any) {
	if c == nil {
		return nil, nil
	}
	return c.Lat, c.Lon
}

func coordsFrom(lat, lon sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func timeFrom(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func floatArg(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func floatFrom(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
