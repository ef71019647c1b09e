package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"food-rescue-service/internal/domain"
	"time"
)

func (s *Store) CreateDonation(ctx context.Context, d *domain.Donation) error {
	if err := s.check(); err != nil {
		return err
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM donors WHERE id = $1);`, d.DonorID).Scan(&exists); err != nil {
		return fmt.Errorf("create donation: check donor: %w", err)
	}
	if !exists {
		return notFound("donor", d.DonorID)
	}

	lat, lon := coordArgs(d.Coords)
	query := `
	INSERT INTO donations (
		donor_id, food_type, food_category, quantity_lbs, pickup_start, pickup_end,
		address, lat, lon, storage_requirement, perishability_score, status,
		posted_at, completed_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id;
	`
	err := s.DB.QueryRowContext(ctx, query,
		d.DonorID, d.FoodType, string(d.Category), d.QuantityLbs, d.PickupStart, d.PickupEnd,
		d.Address, lat, lon, string(d.Storage), d.PerishabilityScore, string(d.Status),
		d.PostedAt, timeArg(d.CompletedAt),
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create donation: insert: %w", err)
	}
	return nil
}

const donationColumns = `
	id, donor_id, food_type, food_category, quantity_lbs, pickup_start, pickup_end,
	address, lat, lon, storage_requirement, perishability_score, status,
	posted_at, completed_at`

func scanDonation(row scanner) (*domain.Donation, error) {
	var (
		d                         domain.Donation
		lat, lon                  sql.NullFloat64
		category, storage, status string
		completedAt               sql.NullTime
	)
	err := row.Scan(
		&d.ID, &d.DonorID, &d.FoodType, &category, &d.QuantityLbs, &d.PickupStart, &d.PickupEnd,
		&d.Address, &lat, &lon, &storage, &d.PerishabilityScore, &status,
		&d.PostedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Category = domain.FoodCategory(category)
	d.Storage = domain.StorageRequirement(storage)
	d.Status = domain.DonationStatus(status)
	d.Coords = coordsFrom(lat, lon)
	d.CompletedAt = timeFrom(completedAt)
	return &d, nil
}

func (s *Store) GetDonation(ctx context.Context, id int64) (*domain.Donation, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `SELECT` + donationColumns + ` FROM donations WHERE id = $1;`
	d, err := scanDonation(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, getErr("get donation", "donation", id, err)
	}
	return d, nil
}

func (s *Store) ListDonations(ctx context.Context, status *domain.DonationStatus) ([]*domain.Donation, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	var filter any
	if status != nil {
		filter = string(*status)
	}
	query := `SELECT` + donationColumns + ` FROM donations WHERE ($1::text IS NULL OR status = $1) ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("list donations: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Donation, 0, 32)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("list donations: scan row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: row iteration: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateDonationStatus(ctx context.Context, id int64, status domain.DonationStatus, completedAt *time.Time) error {
	if err := s.check(); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE donations SET status = $2, completed_at = $3 WHERE id = $1;`,
		id, string(status), timeArg(completedAt),
	)
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	return requireRow(res, "donation", id)
}

// lockDonation loads a donation row for update inside tx.
func lockDonation(ctx context.Context, tx *sql.Tx, id int64) (*domain.Donation, error) {
	query := `SELECT` + donationColumns + ` FROM donations WHERE id = $1 FOR UPDATE;`
	d, err := scanDonation(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, getErr("lock donation", "donation", id, err)
	}
	return d, nil
}

func saveDonationStatus(ctx context.Context, tx *sql.Tx, d *domain.Donation) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE donations SET status = $2, completed_at = $3 WHERE id = $1;`,
		d.ID, string(d.Status), timeArg(d.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("save donation status: %w", err)
	}
	return nil
}
