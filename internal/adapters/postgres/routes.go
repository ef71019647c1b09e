package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"food-rescue-service/internal/domain"
	"time"
)

type instructionRow struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

func encodeInstructions(in []domain.Instruction) (string, error) {
	rows := make([]instructionRow, 0, len(in))
	for _, i := range in {
		rows = append(rows, instructionRow{Instruction: i.Text, Distance: i.Distance, Duration: i.Duration})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeInstructions(raw []byte) ([]domain.Instruction, error) {
	var rows []instructionRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.Instruction, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Instruction{Text: r.Instruction, Distance: r.Distance, Duration: r.Duration})
	}
	return out, nil
}

// AssignRoute inserts the route and moves its donation to assigned in one transaction.
func (s *Store) AssignRoute(ctx context.Context, r *domain.Route) error {
	if err := s.check(); err != nil {
		return err
	}

	instructions, err := encodeInstructions(r.Instructions)
	if err != nil {
		return fmt.Errorf("assign route: encode instructions: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("assign route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	d, err := lockDonation(ctx, tx, r.DonationID)
	if err != nil {
		return err
	}
	if err := d.Transition(domain.DonationAssigned, r.CreatedAt); err != nil {
		return err
	}

	query := `
	INSERT INTO routes (
		donation_id, driver_id, recipient_id, status,
		estimated_duration_minutes, estimated_distance_miles, instructions, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)
	RETURNING id;
	`
	err = tx.QueryRowContext(ctx, query,
		r.DonationID, r.DriverID, r.RecipientID, string(r.Status),
		r.EstimatedMinutes, r.EstimatedMiles, instructions, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("assign route: insert: %w", err)
	}

	if err := saveDonationStatus(ctx, tx, d); err != nil {
		return fmt.Errorf("assign route: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("assign route: commit tx: %w", err)
	}
	return nil
}

const routeColumns = `
	id, donation_id, driver_id, recipient_id, status,
	estimated_duration_minutes, estimated_distance_miles, instructions,
	started_at, completed_at, created_at`

func scanRoute(row scanner) (*domain.Route, error) {
	var (
		r                      domain.Route
		status                 string
		instructions           []byte
		startedAt, completedAt sql.NullTime
	)
	err := row.Scan(
		&r.ID, &r.DonationID, &r.DriverID, &r.RecipientID, &status,
		&r.EstimatedMinutes, &r.EstimatedMiles, &instructions,
		&startedAt, &completedAt, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Instructions, err = decodeInstructions(instructions)
	if err != nil {
		return nil, fmt.Errorf("decode instructions: %w", err)
	}
	r.Status = domain.RouteStatus(status)
	r.StartedAt = timeFrom(startedAt)
	r.CompletedAt = timeFrom(completedAt)
	return &r, nil
}

func (s *Store) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	query := `SELECT` + routeColumns + ` FROM routes WHERE id = $1;`
	r, err := scanRoute(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, getErr("get route", "route", id, err)
	}
	return r, nil
}

func (s *Store) ListRoutes(ctx context.Context, status *domain.RouteStatus) ([]*domain.Route, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	var filter any
	if status != nil {
		filter = string(*status)
	}
	query := `SELECT` + routeColumns + ` FROM routes WHERE ($1::text IS NULL OR status = $1) ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("list routes: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Route, 0, 32)
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	return out, nil
}

// SetRouteStatus applies the route transition and the implied donation
// transition in one transaction.
func (s *Store) SetRouteStatus(ctx context.Context, routeID int64, status domain.RouteStatus, at time.Time) error {
	if err := s.check(); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set route status: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	r, err := scanRoute(tx.QueryRowContext(ctx, `SELECT`+routeColumns+` FROM routes WHERE id = $1 FOR UPDATE;`, routeID))
	if err != nil {
		return getErr("set route status", "route", routeID, err)
	}
	if !r.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: route %d %s -> %s", domain.ErrInvalidTransition, routeID, r.Status, status)
	}

	d, err := lockDonation(ctx, tx, r.DonationID)
	if err != nil {
		return err
	}
	if err := d.Transition(status.DonationStatus(), at); err != nil {
		return err
	}

	var startedAt, completedAt any
	switch status {
	case domain.RouteInProgress:
		startedAt = at
	case domain.RouteCompleted:
		completedAt = at
	}
	query := `
	UPDATE routes
	SET status = $2,
		started_at = COALESCE($3, started_at),
		completed_at = COALESCE($4, completed_at)
	WHERE id = $1;
	`
	if _, err := tx.ExecContext(ctx, query, routeID, string(status), startedAt, completedAt); err != nil {
		return fmt.Errorf("set route status: update route: %w", err)
	}

	if err := saveDonationStatus(ctx, tx, d); err != nil {
		return fmt.Errorf("set route status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set route status: commit tx: %w", err)
	}
	return nil
}
