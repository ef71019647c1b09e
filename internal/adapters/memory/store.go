package memory

import (
	"context"
	"fmt"
	"food-rescue-service/internal/domain"
	"slices"
	"sync"
	"time"
)

// Store is an in-process implementation of ports.Store.
// Entities are copied on the way in and out so callers never share memory
// with the store. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	nextID     int64
	donors     map[int64]domain.Donor
	recipients map[int64]domain.Recipient
	drivers    map[int64]domain.Driver
	donations  map[int64]domain.Donation
	routes     map[int64]domain.Route
}

func NewStore() *Store {
	return &Store{
		donors:     make(map[int64]domain.Donor),
		recipients: make(map[int64]domain.Recipient),
		drivers:    make(map[int64]domain.Driver),
		donations:  make(map[int64]domain.Donation),
		routes:     make(map[int64]domain.Route),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
}

// sortedIDs returns the map keys in ascending order.
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) CreateDonor(_ context.Context, d *domain.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.id()
	s.donors[d.ID] = *d
	return nil
}

func (s *Store) GetDonor(_ context.Context, id int64) (*domain.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donors[id]
	if !ok {
		return nil, notFound("donor", id)
	}
	return &d, nil
}

func (s *Store) CreateRecipient(_ context.Context, r *domain.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	cp := *r
	cp.CategoriesNeeded = slices.Clone(r.CategoriesNeeded)
	s.recipients[r.ID] = cp
	return nil
}

func (s *Store) GetRecipient(_ context.Context, id int64) (*domain.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipients[id]
	if !ok {
		return nil, notFound("recipient", id)
	}
	r.CategoriesNeeded = slices.Clone(r.CategoriesNeeded)
	return &r, nil
}

func (s *Store) ListRecipients(_ context.Context) ([]*domain.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Recipient, 0, len(s.recipients))
	for _, id := range sortedIDs(s.recipients) {
		r := s.recipients[id]
		r.CategoriesNeeded = slices.Clone(r.CategoriesNeeded)
		out = append(out, &r)
	}
	return out, nil
}

func (s *Store) CreateDriver(_ context.Context, d *domain.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.id()
	s.drivers[d.ID] = *d
	return nil
}

func (s *Store) GetDriver(_ context.Context, id int64) (*domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, notFound("driver", id)
	}
	return &d, nil
}

func (s *Store) ListDrivers(_ context.Context, availableOnly bool) ([]*domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Driver, 0, len(s.drivers))
	for _, id := range sortedIDs(s.drivers) {
		d := s.drivers[id]
		if availableOnly && !d.Available {
			continue
		}
		out = append(out, &d)
	}
	return out, nil
}

func (s *Store) UpdateDriverLocation(_ context.Context, id int64, location string, c domain.Coordinates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return notFound("driver", id)
	}
	if location != "" {
		d.CurrentLocation = location
	}
	d.Coords = &c
	s.drivers[id] = d
	return nil
}

func (s *Store) CreateDonation(_ context.Context, d *domain.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donors[d.DonorID]; !ok {
		return notFound("donor", d.DonorID)
	}
	d.ID = s.id()
	s.donations[d.ID] = *d
	return nil
}

func (s *Store) GetDonation(_ context.Context, id int64) (*domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, notFound("donation", id)
	}
	return &d, nil
}

func (s *Store) ListDonations(_ context.Context, status *domain.DonationStatus) ([]*domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Donation, 0, len(s.donations))
	for _, id := range sortedIDs(s.donations) {
		d := s.donations[id]
		if status != nil && d.Status != *status {
			continue
		}
		out = append(out, &d)
	}
	return out, nil
}

func (s *Store) UpdateDonationStatus(_ context.Context, id int64, status domain.DonationStatus, completedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return notFound("donation", id)
	}
	d.Status = status
	d.CompletedAt = completedAt
	s.donations[id] = d
	return nil
}

func (s *Store) AssignRoute(_ context.Context, r *domain.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[r.DonationID]
	if !ok {
		return notFound("donation", r.DonationID)
	}
	if err := d.Transition(domain.DonationAssigned, r.CreatedAt); err != nil {
		return err
	}
	r.ID = s.id()
	cp := *r
	cp.Instructions = slices.Clone(r.Instructions)
	s.routes[r.ID] = cp
	s.donations[d.ID] = d
	return nil
}

func (s *Store) GetRoute(_ context.Context, id int64) (*domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.routes[id]
	if !ok {
		return nil, notFound("route", id)
	}
	r.Instructions = slices.Clone(r.Instructions)
	return &r, nil
}

func (s *Store) ListRoutes(_ context.Context, status *domain.RouteStatus) ([]*domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Route, 0, len(s.routes))
	for _, id := range sortedIDs(s.routes) {
		r := s.routes[id]
		if status != nil && r.Status != *status {
			continue
		}
		r.Instructions = slices.Clone(r.Instructions)
		out = append(out, &r)
	}
	return out, nil
}

// SetRouteStatus applies the route transition and the implied donation
// transition atomically.
func (s *Store) SetRouteStatus(_ context.Context, routeID int64, status domain.RouteStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.routes[routeID]
	if !ok {
		return notFound("route", routeID)
	}
	d, ok := s.donations[r.DonationID]
	if !ok {
		return notFound("donation", r.DonationID)
	}
	if !r.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: route %d %s -> %s", domain.ErrInvalidTransition, routeID, r.Status, status)
	}
	if err := d.Transition(status.DonationStatus(), at); err != nil {
		return err
	}

	r.Status = status
	t := at
	switch status {
	case domain.RouteInProgress:
		r.StartedAt = &t
	case domain.RouteCompleted:
		r.CompletedAt = &t
	}
	s.routes[routeID] = r
	s.donations[d.ID] = d
	return nil
}
