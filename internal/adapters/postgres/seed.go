package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type DonorSeed struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	BusinessType string   `json:"business_type"`
}

type RecipientSeed struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Address            string   `json:"address"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	OrganizationType   string   `json:"organization_type"`
	CategoriesNeeded   []string `json:"categories_needed"`
	StorageCapacityLbs *float64 `json:"storage_capacity_lbs"`
}

type DriverSeed struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	CurrentLocation string   `json:"current_location"`
	Lat             *float64 `json:"lat"`
	Lon             *float64 `json:"lon"`
	DriverType      string   `json:"driver_type"`
	CompletionRate  *float64 `json:"completion_rate"`
	VolunteerPoints int      `json:"volunteer_points"`
}

// readSeed parses one seed file. A missing file yields no rows.
func readSeed[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var rows []T
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return rows, nil
}

func requireFields(kind string, i int, fields map[string]string) error {
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("seed %s: item %d: %s cannot be empty", kind, i+1, name)
		}
	}
	return nil
}

// SeedFromJSON populates donors, recipients and drivers from
// donors.json, recipients.json and drivers.json under dir.
// Rows whose email already exists are skipped.
func SeedFromJSON(ctx context.Context, db *sql.DB, dir string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	donors, err := readSeed[DonorSeed](dir, "donors.json")
	if err != nil {
		return fmt.Errorf("seed donors: %w", err)
	}
	recipients, err := readSeed[RecipientSeed](dir, "recipients.json")
	if err != nil {
		return fmt.Errorf("seed recipients: %w", err)
	}
	drivers, err := readSeed[DriverSeed](dir, "drivers.json")
	if err != nil {
		return fmt.Errorf("seed drivers: %w", err)
	}

	for i, d := range donors {
		if err := requireFields("donors", i, map[string]string{"name": d.Name, "email": d.Email, "address": d.Address}); err != nil {
			return err
		}
	}
	for i, r := range recipients {
		if err := requireFields("recipients", i, map[string]string{"name": r.Name, "email": r.Email, "address": r.Address}); err != nil {
			return err
		}
	}
	for i, d := range drivers {
		if err := requireFields("drivers", i, map[string]string{"name": d.Name, "email": d.Email}); err != nil {
			return err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range donors {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO donors (name, email, phone, address, lat, lon, business_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING;
		`, d.Name, d.Email, d.Phone, d.Address, floatArg(d.Lat), floatArg(d.Lon), d.BusinessType)
		if err != nil {
			return fmt.Errorf("seed donors: insert %q: %w", d.Email, err)
		}
	}

	for _, r := range recipients {
		categories := r.CategoriesNeeded
		if categories == nil {
			categories = []string{}
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO recipients (
			name, email, phone, address, lat, lon,
			organization_type, categories_needed, storage_capacity_lbs
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO NOTHING;
		`, r.Name, r.Email, r.Phone, r.Address, floatArg(r.Lat), floatArg(r.Lon),
			r.OrganizationType, categories, floatArg(r.StorageCapacityLbs))
		if err != nil {
			return fmt.Errorf("seed recipients: insert %q: %w", r.Email, err)
		}
	}

	for _, d := range drivers {
		driverType := d.DriverType
		if driverType == "" {
			driverType = "volunteer"
		}
		rate := 1.0
		if d.CompletionRate != nil {
			rate = *d.CompletionRate
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO drivers (
			name, email, phone, current_location, lat, lon,
			driver_type, completion_rate, volunteer_points
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO NOTHING;
		`, d.Name, d.Email, d.Phone, d.CurrentLocation, floatArg(d.Lat), floatArg(d.Lon),
			driverType, rate, d.VolunteerPoints)
		if err != nil {
			return fmt.Errorf("seed drivers: insert %q: %w", d.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}
	return nil
}
