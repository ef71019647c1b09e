package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"log"
	"math"
	"slices"
	"strings"
	"time"
)

// RescueService implements the food-rescue use cases on top of the
// scoring engine and the storage, event and locator ports.
type RescueService struct {
	store      ports.Store
	geo        *GeoResolver
	perish     *PerishabilityEstimator
	ranker     *RecipientRanker
	routes     *RouteEstimator
	impact     ImpactCalculator
	assigner   *DriverAssigner
	events     ports.EventPublisher
	locator    ports.DriverLocator
	matchLimit int
	now        func() time.Time
}

// RescueDeps lists the collaborators of RescueService.
// Events and Locator are optional.
type RescueDeps struct {
	Store      ports.Store
	Geo        *GeoResolver
	Perish     *PerishabilityEstimator
	Ranker     *RecipientRanker
	Routes     *RouteEstimator
	Assigner   *DriverAssigner
	Events     ports.EventPublisher
	Locator    ports.DriverLocator
	MatchLimit int
	Now        func() time.Time
}

func NewRescueService(deps RescueDeps) *RescueService {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	limit := deps.MatchLimit
	if limit < 1 {
		limit = DefaultMatchLimit
	}
	return &RescueService{
		store:      deps.Store,
		geo:        deps.Geo,
		perish:     deps.Perish,
		ranker:     deps.Ranker,
		routes:     deps.Routes,
		assigner:   deps.Assigner,
		events:     deps.Events,
		locator:    deps.Locator,
		matchLimit: limit,
		now:        now,
	}
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}
	return nil
}

func (s *RescueService) CreateDonor(ctx context.Context, d *domain.Donor) error {
	if err := errors.Join(requireText("name", d.Name), requireText("address", d.Address)); err != nil {
		return err
	}
	if d.Coords == nil {
		d.Coords = s.geo.ResolvePtr(ctx, d.Address)
	}
	d.CreatedAt = s.now()
	if err := s.store.CreateDonor(ctx, d); err != nil {
		return fmt.Errorf("create donor: %w", err)
	}
	return nil
}

func (s *RescueService) CreateRecipient(ctx context.Context, r *domain.Recipient) error {
	if err := errors.Join(requireText("name", r.Name), requireText("address", r.Address)); err != nil {
		return err
	}
	if r.StorageCapacityLbs != nil && *r.StorageCapacityLbs < 0 {
		return fmt.Errorf("%w: storage_capacity_lbs must not be negative", domain.ErrInvalidInput)
	}
	if r.Coords == nil {
		r.Coords = s.geo.ResolvePtr(ctx, r.Address)
	}
	r.CreatedAt = s.now()
	if err := s.store.CreateRecipient(ctx, r); err != nil {
		return fmt.Errorf("create recipient: %w", err)
	}
	return nil
}

func (s *RescueService) CreateDriver(ctx context.Context, d *domain.Driver) error {
	if err := errors.Join(requireText("name", d.Name), requireText("phone", d.Phone)); err != nil {
		return err
	}
	if d.Type == "" {
		d.Type = domain.DriverVolunteer
	}
	if d.CompletionRate == 0 {
		d.CompletionRate = 1
	}
	if d.Coords == nil && strings.TrimSpace(d.CurrentLocation) != "" {
		d.Coords = s.geo.ResolvePtr(ctx, d.CurrentLocation)
	}
	d.CreatedAt = s.now()
	if err := s.store.CreateDriver(ctx, d); err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	if d.Coords != nil && d.Available {
		s.indexDriver(ctx, d.ID, *d.Coords)
	}
	return nil
}

// CreateDonationInput is a donation as posted by a donor. An empty Category
// is classified from FoodType.
type CreateDonationInput struct {
	DonorID     int64
	FoodType    string
	Category    string
	QuantityLbs float64
	PickupStart time.Time
	PickupEnd   time.Time
	Address     string
	Storage     string
}

type DonationResult struct {
	Donation      *domain.Donation
	Perishability PerishabilityAssessment
	Matches       []domain.MatchResult
}

// CreateDonation stores a pending donation, scores its perishability and
// ranks recipients for it.
func (s *RescueService) CreateDonation(ctx context.Context, in CreateDonationInput) (*DonationResult, error) {
	if _, err := s.store.GetDonor(ctx, in.DonorID); err != nil {
		return nil, fmt.Errorf("create donation: donor %d: %w", in.DonorID, err)
	}

	d := &domain.Donation{
		DonorID:     in.DonorID,
		FoodType:    strings.TrimSpace(in.FoodType),
		QuantityLbs: in.QuantityLbs,
		PickupStart: in.PickupStart,
		PickupEnd:   in.PickupEnd,
		Address:     strings.TrimSpace(in.Address),
		Status:      domain.DonationPending,
		PostedAt:    s.now(),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Category) != "" {
		c, ok := domain.ParseFoodCategory(in.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown food_category %q", domain.ErrInvalidInput, in.Category)
		}
		d.Category = c
	} else {
		d.Category = s.perish.Classify(ctx, d.FoodType)
	}

	if strings.TrimSpace(in.Storage) != "" {
		st, ok := domain.ParseStorageRequirement(in.Storage)
		if !ok {
			return nil, fmt.Errorf("%w: unknown storage_requirement %q", domain.ErrInvalidInput, in.Storage)
		}
		d.Storage = st
	} else {
		d.Storage = domain.StorageShelfStable
	}

	d.Coords = s.geo.ResolvePtr(ctx, d.Address)
	assessment := s.perish.Assess(ctx, d.FoodType, d.Category, d.PostedAt, s.now())
	d.PerishabilityScore = assessment.Final
	if err := s.store.CreateDonation(ctx, d); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}

	matches, err := s.matches(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	if len(matches) > 0 {
		if err := s.store.UpdateDonationStatus(ctx, d.ID, domain.DonationMatched, nil); err != nil {
			return nil, fmt.Errorf("create donation: mark matched: %w", err)
		}
		d.Status = domain.DonationMatched
	}

	s.publish(ctx, domain.Event{Type: domain.EventDonationCreated, DonationID: d.ID, Status: string(d.Status), At: s.now()})

	return &DonationResult{Donation: d, Perishability: assessment, Matches: matches}, nil
}

// MatchDonation re-ranks recipients for a stored donation.
func (s *RescueService) MatchDonation(ctx context.Context, donationID int64) ([]domain.MatchResult, error) {
	d, err := s.store.GetDonation(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("match donation %d: %w", donationID, err)
	}
	return s.matches(ctx, d)
}

func (s *RescueService) matches(ctx context.Context, d *domain.Donation) ([]domain.MatchResult, error) {
	recipients, err := s.store.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	candidates := make([]domain.Recipient, 0, len(recipients))
	for _, r := range recipients {
		candidates = append(candidates, *r)
	}
	return s.ranker.Matches(ctx, *d, candidates, s.matchLimit), nil
}

type AssignRouteInput struct {
	DonationID  int64
	DriverID    int64
	RecipientID int64
}

type AssignedRoute struct {
	Route    *domain.Route
	Estimate domain.RouteEstimate
}

// AssignRoute creates a route for a donation and moves the donation to assigned.
// Missing entities surface as domain.ErrNotFound.
func (s *RescueService) AssignRoute(ctx context.Context, in AssignRouteInput) (*AssignedRoute, error) {
	donation, err := s.store.GetDonation(ctx, in.DonationID)
	if err != nil {
		return nil, fmt.Errorf("assign route: donation %d: %w", in.DonationID, err)
	}
	driver, err := s.store.GetDriver(ctx, in.DriverID)
	if err != nil {
		return nil, fmt.Errorf("assign route: driver %d: %w", in.DriverID, err)
	}
	recipient, err := s.store.GetRecipient(ctx, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("assign route: recipient %d: %w", in.RecipientID, err)
	}
	if !donation.Status.CanTransitionTo(domain.DonationAssigned) {
		return nil, fmt.Errorf("assign route: %w: donation %d is %s", domain.ErrInvalidTransition, donation.ID, donation.Status)
	}

	est := s.routes.Estimate(ctx, donation.Address, recipient.Address, driver.CurrentLocation)

	route := &domain.Route{
		DonationID:       donation.ID,
		DriverID:         driver.ID,
		RecipientID:      recipient.ID,
		Status:           domain.RouteAssigned,
		EstimatedMinutes: est.DurationMinutes,
		EstimatedMiles:   est.DistanceMiles,
		Instructions:     est.Instructions,
		CreatedAt:        s.now(),
	}
	if err := s.store.AssignRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("assign route: %w", err)
	}

	s.publish(ctx, domain.Event{Type: domain.EventRouteAssigned, DonationID: donation.ID, RouteID: route.ID, Status: string(route.Status), At: route.CreatedAt})

	return &AssignedRoute{Route: route, Estimate: est}, nil
}

// UpdateRouteStatus moves a route and its donation forward together.
func (s *RescueService) UpdateRouteStatus(ctx context.Context, routeID int64, status domain.RouteStatus) (*domain.Route, error) {
	route, err := s.store.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("update route status: route %d: %w", routeID, err)
	}
	if !route.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("update route status: %w: route %d %s -> %s", domain.ErrInvalidTransition, routeID, route.Status, status)
	}
	donation, err := s.store.GetDonation(ctx, route.DonationID)
	if err != nil {
		return nil, fmt.Errorf("update route status: donation %d: %w", route.DonationID, err)
	}
	if next := status.DonationStatus(); !donation.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("update route status: %w: donation %d %s -> %s", domain.ErrInvalidTransition, donation.ID, donation.Status, next)
	}

	at := s.now()
	if err := s.store.SetRouteStatus(ctx, routeID, status, at); err != nil {
		return nil, fmt.Errorf("update route status: %w", err)
	}

	s.publish(ctx, domain.Event{Type: domain.EventRouteStatusChanged, DonationID: donation.ID, RouteID: routeID, Status: string(status), At: at})

	updated, err := s.store.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("update route status: reload route %d: %w", routeID, err)
	}
	return updated, nil
}

// RecommendDriverType decides volunteer or courier dispatch for a donation.
func (s *RescueService) RecommendDriverType(ctx context.Context, donationID int64) (domain.DriverAssignment, error) {
	d, err := s.store.GetDonation(ctx, donationID)
	if err != nil {
		return domain.DriverAssignment{}, fmt.Errorf("recommend driver: donation %d: %w", donationID, err)
	}
	drivers, err := s.store.ListDrivers(ctx, true)
	if err != nil {
		return domain.DriverAssignment{}, fmt.Errorf("recommend driver: list drivers: %w", err)
	}
	volunteerAvailable := slices.ContainsFunc(drivers, func(dr *domain.Driver) bool {
		return dr.Type == domain.DriverVolunteer
	})

	now := s.now()
	perishability := math.Max(d.PerishabilityScore, s.perish.Estimate(d.Category, d.PostedAt, now))
	minutes := int(now.Sub(d.PostedAt).Minutes())

	return s.assigner.Decide(ctx, perishability, volunteerAvailable, minutes), nil
}

type NearbyDriver struct {
	Driver        *domain.Driver
	DistanceMiles float64
}

// NearbyDrivers lists available drivers within radiusMiles of c, nearest first.
func (s *RescueService) NearbyDrivers(ctx context.Context, c domain.Coordinates, radiusMiles float64) ([]NearbyDriver, error) {
	if !c.Valid() || !(radiusMiles > 0) {
		return nil, fmt.Errorf("%w: valid coordinates and a positive radius are required", domain.ErrInvalidInput)
	}

	if s.locator != nil {
		hits, err := s.locator.NearbyDrivers(ctx, c, radiusMiles)
		if err == nil {
			out := make([]NearbyDriver, 0, len(hits))
			for _, h := range hits {
				d, err := s.store.GetDriver(ctx, h.DriverID)
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				if err != nil {
					return nil, fmt.Errorf("nearby drivers: driver %d: %w", h.DriverID, err)
				}
				if !d.Available {
					continue
				}
				out = append(out, NearbyDriver{Driver: d, DistanceMiles: h.DistanceMiles})
			}
			return out, nil
		}
		log.Printf("driver locator unavailable err=%v", err)
	}

	drivers, err := s.store.ListDrivers(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("nearby drivers: list drivers: %w", err)
	}
	out := []NearbyDriver{}
	for _, d := range drivers {
		if d.Coords == nil {
			continue
		}
		if miles := c.MilesTo(*d.Coords); miles <= radiusMiles {
			out = append(out, NearbyDriver{Driver: d, DistanceMiles: miles})
		}
	}
	slices.SortStableFunc(out, func(a, b NearbyDriver) int {
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})
	return out, nil
}

// UpdateDriverLocation stores a driver's position. Without coordinates the
// location text is geocoded.
func (s *RescueService) UpdateDriverLocation(ctx context.Context, driverID int64, location string, coords *domain.Coordinates) (*domain.Driver, error) {
	if coords == nil {
		if strings.TrimSpace(location) == "" {
			return nil, fmt.Errorf("%w: location or coordinates are required", domain.ErrInvalidInput)
		}
		c, ok := s.geo.Resolve(ctx, location)
		if !ok {
			return nil, fmt.Errorf("%w: could not resolve location %q", domain.ErrInvalidInput, location)
		}
		coords = &c
	}
	if !coords.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}

	if err := s.store.UpdateDriverLocation(ctx, driverID, location, *coords); err != nil {
		return nil, fmt.Errorf("update driver location: driver %d: %w", driverID, err)
	}
	d, err := s.store.GetDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("update driver location: reload driver %d: %w", driverID, err)
	}
	if d.Available {
		s.indexDriver(ctx, d.ID, *coords)
	} else {
		s.unindexDriver(ctx, d.ID)
	}
	return d, nil
}

func (s *RescueService) indexDriver(ctx context.Context, id int64, c domain.Coordinates) {
	if s.locator == nil {
		return
	}
	if err := s.locator.UpdateDriverLocation(ctx, id, c); err != nil {
		log.Printf("driver locator update failed driver_id=%d err=%v", id, err)
	}
}

func (s *RescueService) unindexDriver(ctx context.Context, id int64) {
	if s.locator == nil {
		return
	}
	if err := s.locator.RemoveDriver(ctx, id); err != nil {
		log.Printf("driver locator remove failed driver_id=%d err=%v", id, err)
	}
}

// GetImpact aggregates every completed donation.
func (s *RescueService) GetImpact(ctx context.Context) (domain.ImpactMetrics, error) {
	completed := domain.DonationCompleted
	donations, err := s.store.ListDonations(ctx, &completed)
	if err != nil {
		return domain.ImpactMetrics{}, fmt.Errorf("get impact: %w", err)
	}
	return s.impact.Compute(sumPounds(donations))
}

// GetRealtimeImpact reports realized and pending impact with operational counts.
func (s *RescueService) GetRealtimeImpact(ctx context.Context) (domain.RealtimeImpact, error) {
	donations, err := s.store.ListDonations(ctx, nil)
	if err != nil {
		return domain.RealtimeImpact{}, fmt.Errorf("get realtime impact: list donations: %w", err)
	}
	routes, err := s.store.ListRoutes(ctx, nil)
	if err != nil {
		return domain.RealtimeImpact{}, fmt.Errorf("get realtime impact: list routes: %w", err)
	}

	var completed, pending []*domain.Donation
	for _, d := range donations {
		switch d.Status {
		case domain.DonationCompleted:
			completed = append(completed, d)
		case domain.DonationPending:
			pending = append(pending, d)
		}
	}
	active := 0
	for _, r := range routes {
		if r.Status.Active() {
			active++
		}
	}

	completedLbs := sumPounds(completed)
	impact, err := s.impact.Compute(completedLbs)
	if err != nil {
		return domain.RealtimeImpact{}, fmt.Errorf("get realtime impact: %w", err)
	}
	potential, err := s.impact.Compute(sumPounds(pending))
	if err != nil {
		return domain.RealtimeImpact{}, fmt.Errorf("get realtime impact: %w", err)
	}

	insight := s.assigner.Decide(ctx, 7.0, active < 10, 30)

	return domain.RealtimeImpact{
		Impact:              impact,
		Potential:           potential,
		PendingDonations:    len(pending),
		ActiveRoutes:        active,
		TotalDonations:      len(donations),
		Insight:             insight.Reason,
		SustainabilityScore: s.impact.SustainabilityScore(completedLbs),
	}, nil
}

func sumPounds(ds []*domain.Donation) float64 {
	total := 0.0
	for _, d := range ds {
		total += d.QuantityLbs
	}
	return total
}

func (s *RescueService) ListDonations(ctx context.Context, status *domain.DonationStatus) ([]*domain.Donation, error) {
	return s.store.ListDonations(ctx, status)
}

func (s *RescueService) ListRoutes(ctx context.Context, status *domain.RouteStatus) ([]*domain.Route, error) {
	return s.store.ListRoutes(ctx, status)
}

func (s *RescueService) ListRecipients(ctx context.Context) ([]*domain.Recipient, error) {
	return s.store.ListRecipients(ctx)
}

func (s *RescueService) ListDrivers(ctx context.Context, availableOnly bool) ([]*domain.Driver, error) {
	return s.store.ListDrivers(ctx, availableOnly)
}

// RouteMap is the data a client needs to draw a route.
type RouteMap struct {
	Route     *domain.Route
	Donation  *domain.Donation
	Recipient *domain.Recipient
}

func (s *RescueService) RouteMap(ctx context.Context, routeID int64) (*RouteMap, error) {
	route, err := s.store.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("route map: route %d: %w", routeID, err)
	}
	donation, err := s.store.GetDonation(ctx, route.DonationID)
	if err != nil {
		return nil, fmt.Errorf("route map: donation %d: %w", route.DonationID, err)
	}
	recipient, err := s.store.GetRecipient(ctx, route.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("route map: recipient %d: %w", route.RecipientID, err)
	}
	return &RouteMap{Route: route, Donation: donation, Recipient: recipient}, nil
}

func (s *RescueService) EstimateMultiStop(ctx context.Context, start string, stops []string) (domain.RouteEstimate, error) {
	return s.routes.EstimateMultiStop(ctx, start, stops)
}

func (s *RescueService) Geocode(ctx context.Context, address string) (domain.Coordinates, bool) {
	return s.geo.Resolve(ctx, address)
}

// SuggestAddresses proposes completions for a partially typed address.
func (s *RescueService) SuggestAddresses(ctx context.Context, query string, limit int) ([]domain.AddressSuggestion, error) {
	return s.geo.Suggest(ctx, query, limit)
}

func (s *RescueService) publish(ctx context.Context, e domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("publish event failed type=%s donation_id=%d err=%v", e.Type, e.DonationID, err)
	}
}
