package ports

import (
	"context"
	"food-rescue-service/internal/domain"
	"time"
)

// Port: a boundary for storing donors.
type DonorRepository interface {
	CreateDonor(ctx context.Context, d *domain.Donor) error
	GetDonor(ctx context.Context, id int64) (*domain.Donor, error)
}

// Port: a boundary for storing recipient organizations.
type RecipientRepository interface {
	CreateRecipient(ctx context.Context, r *domain.Recipient) error
	GetRecipient(ctx context.Context, id int64) (*domain.Recipient, error)
	// Return recipients ordered by id.
	ListRecipients(ctx context.Context) ([]*domain.Recipient, error)
}

type DriverRepository interface {
	CreateDriver(ctx context.Context, d *domain.Driver) error
	GetDriver(ctx context.Context, id int64) (*domain.Driver, error)
	ListDrivers(ctx context.Context, availableOnly bool) ([]*domain.Driver, error)
	UpdateDriverLocation(ctx context.Context, id int64, location string, c domain.Coordinates) error
}

// Port: a boundary for donation persistence.
// A nil status filter lists every donation.
type DonationRepository interface {
	CreateDonation(ctx context.Context, d *domain.Donation) error
	GetDonation(ctx context.Context, id int64) (*domain.Donation, error)
	ListDonations(ctx context.Context, status *domain.DonationStatus) ([]*domain.Donation, error)
	UpdateDonationStatus(ctx context.Context, id int64, status domain.DonationStatus, completedAt *time.Time) error
}

// Port: a boundary for route persistence.
// AssignRoute and SetRouteStatus update the route and its donation in one transaction.
type RouteRepository interface {
	AssignRoute(ctx context.Context, r *domain.Route) error
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context, status *domain.RouteStatus) ([]*domain.Route, error)
	SetRouteStatus(ctx context.Context, routeID int64, status domain.RouteStatus, at time.Time) error
}

// Store groups every repository the application service needs.
type Store interface {
	DonorRepository
	RecipientRepository
	DriverRepository
	DonationRepository
	RouteRepository
}
