package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"food-rescue-service/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) CreateDonor(ctx context.Context, d *domain.Donor) error {
	if err := s.check(); err != nil {
		return err
	}

	lat, lon := coordArgs(d.Coords)
	query := `
	INSERT INTO donors (name, email, phone, address, lat, lon, business_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at;
	`
	err := s.DB.QueryRowContext(ctx, query,
		d.Name, d.Email, d.Phone, d.Address, lat, lon, d.BusinessType,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create donor: insert: %w", err)
	}
	return nil
}

func (s *Store) GetDonor(ctx context.Context, id int64) (*domain.Donor, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `
	SELECT id, name, email, phone, address, lat, lon, business_type, created_at
	FROM donors
	WHERE id = $1;
	`
	var (
		d        domain.Donor
		lat, lon sql.NullFloat64
	)
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.Address, &lat, &lon, &d.BusinessType, &d.CreatedAt,
	)
	if err != nil {
		return nil, getErr("get donor", "donor", id, err)
	}
	d.Coords = coordsFrom(lat, lon)
	return &d, nil
}

func (s *Store) CreateRecipient(ctx context.Context, r *domain.Recipient) error {
	if err := s.check(); err != nil {
		return err
	}

	categories := r.CategoriesNeeded
	if categories == nil {
		categories = []string{}
	}
	lat, lon := coordArgs(r.Coords)
	query := `
	INSERT INTO recipients (
		name, email, phone, address, lat, lon,
		organization_type, categories_needed, storage_capacity_lbs
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at;
	`
	err := s.DB.QueryRowContext(ctx, query,
		r.Name, r.Email, r.Phone, r.Address, lat, lon,
		r.OrganizationType, categories, floatArg(r.StorageCapacityLbs),
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create recipient: insert: %w", err)
	}
	return nil
}

const recipientColumns = `
	id, name, email, phone, address, lat, lon,
	organization_type, categories_needed, storage_capacity_lbs, created_at`

func scanRecipient(row scanner, types *pgtype.Map) (*domain.Recipient, error) {
	var (
		r                  domain.Recipient
		lat, lon, capacity sql.NullFloat64
		categories         []string
	)
	err := row.Scan(
		&r.ID, &r.Name, &r.Email, &r.Phone, &r.Address, &lat, &lon,
		&r.OrganizationType, types.SQLScanner(&categories), &capacity, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Coords = coordsFrom(lat, lon)
	r.CategoriesNeeded = categories
	r.StorageCapacityLbs = floatFrom(capacity)
	return &r, nil
}

func (s *Store) GetRecipient(ctx context.Context, id int64) (*domain.Recipient, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `SELECT` + recipientColumns + ` FROM recipients WHERE id = $1;`
	r, err := scanRecipient(s.DB.QueryRowContext(ctx, query, id), pgtype.NewMap())
	if err != nil {
		return nil, getErr("get recipient", "recipient", id, err)
	}
	return r, nil
}

func (s *Store) ListRecipients(ctx context.Context) ([]*domain.Recipient, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `SELECT` + recipientColumns + ` FROM recipients ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipients: query: %w", err)
	}
	defer rows.Close()

	types := pgtype.NewMap()
	out := make([]*domain.Recipient, 0, 16)
	for rows.Next() {
		r, err := scanRecipient(rows, types)
		if err != nil {
			return nil, fmt.Errorf("list recipients: scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipients: row iteration: %w", err)
	}
	return out, nil
}

func (s *Store) CreateDriver(ctx context.Context, d *domain.Driver) error {
	if err := s.check(); err != nil {
		return err
	}

	lat, lon := coordArgs(d.Coords)
	query := `
	INSERT INTO drivers (
		name, email, phone, current_location, lat, lon,
		driver_type, available, completion_rate, volunteer_points
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at;
	`
	err := s.DB.QueryRowContext(ctx, query,
		d.Name, d.Email, d.Phone, d.CurrentLocation, lat, lon,
		string(d.Type), d.Available, d.CompletionRate, d.VolunteerPoints,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create driver: insert: %w", err)
	}
	return nil
}

const driverColumns = `
	id, name, email, phone, current_location, lat, lon,
	driver_type, available, completion_rate, volunteer_points, created_at`

func scanDriver(row scanner) (*domain.Driver, error) {
	var (
		d          domain.Driver
		lat, lon   sql.NullFloat64
		driverType string
	)
	err := row.Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.CurrentLocation, &lat, &lon,
		&driverType, &d.Available, &d.CompletionRate, &d.VolunteerPoints, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Coords = coordsFrom(lat, lon)
	d.Type = domain.DriverType(driverType)
	return &d, nil
}

func (s *Store) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `SELECT` + driverColumns + ` FROM drivers WHERE id = $1;`
	d, err := scanDriver(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, getErr("get driver", "driver", id, err)
	}
	return d, nil
}

func (s *Store) ListDrivers(ctx context.Context, availableOnly bool) ([]*domain.Driver, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `SELECT` + driverColumns + ` FROM drivers WHERE ($1 = FALSE OR available) ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Driver, 0, 16)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateDriverLocation(ctx context.Context, id int64, location string, c domain.Coordinates) error {
	if err := s.check(); err != nil {
		return err
	}

	query := `
	UPDATE drivers
	SET current_location = COALESCE(NULLIF($2, ''), current_location),
		lat = $3,
		lon = $4
	WHERE id = $1;
	`
	res, err := s.DB.ExecContext(ctx, query, id, location, c.Lat, c.Lon)
	if err != nil {
		return fmt.Errorf("update driver location: %w", err)
	}
	return requireRow(res, "driver", id)
}

// requireRow reports ErrNotFound when an UPDATE touched nothing.
func requireRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}
