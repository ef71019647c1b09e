package services

import (
	"context"
	"food-rescue-service/internal/adapters/memory"
	"food-rescue-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type rescueFixture struct {
	svc    *RescueService
	store  *memory.Store
	events *recordingPublisher
	donor  *domain.Donor
	near   *domain.Recipient
	far    *domain.Recipient
	driver *domain.Driver
}

func newRescueFixture(t *testing.T) *rescueFixture {
	t.Helper()
	ctx := context.Background()

	geo := NewGeoResolver(newFakeGeocoder(map[string]domain.Coordinates{
		"Bakery Row":     midtown,
		"Midtown Fridge": {Lat: 40.7600, Lon: -73.9800},
		"Philly Shelter": philadelphia,
		"Driver Garage":  {Lat: 40.7500, Lon: -73.9900},
	}), time.Second)

	store := memory.NewStore()
	events := &recordingPublisher{}
	svc := NewRescueService(RescueDeps{
		Store:    store,
		Geo:      geo,
		Perish:   NewPerishabilityEstimator(nil, 0.5, time.Second),
		Ranker:   NewRecipientRanker(NewMatchScorer(geo), 4),
		Routes:   NewRouteEstimator(geo, nil, nil, time.Second),
		Assigner: NewDriverAssigner(nil, time.Second),
		Events:   events,
		Now:      func() time.Time { return fixedNow },
	})

	f := &rescueFixture{svc: svc, store: store, events: events}

	f.donor = &domain.Donor{Name: "Corner Bakery", Address: "Bakery Row"}
	require.NoError(t, svc.CreateDonor(ctx, f.donor))
	require.NotNil(t, f.donor.Coords)

	f.near = &domain.Recipient{Name: "Midtown Fridge", Address: "Midtown Fridge", CategoriesNeeded: []string{"produce"}, StorageCapacityLbs: ptr(500.0)}
	require.NoError(t, svc.CreateRecipient(ctx, f.near))
	f.far = &domain.Recipient{Name: "Philly Shelter", Address: "Philly Shelter", CategoriesNeeded: []string{"bakery"}}
	require.NoError(t, svc.CreateRecipient(ctx, f.far))

	f.driver = &domain.Driver{Name: "Sam", Phone: "555-0100", CurrentLocation: "Driver Garage", Available: true}
	require.NoError(t, svc.CreateDriver(ctx, f.driver))

	return f
}

func (f *rescueFixture) donation(t *testing.T) *DonationResult {
	t.Helper()
	res, err := f.svc.CreateDonation(context.Background(), CreateDonationInput{
		DonorID:     f.donor.ID,
		FoodType:    "Fresh apples",
		QuantityLbs: 40,
		PickupStart: fixedNow,
		PickupEnd:   fixedNow.Add(3 * time.Hour),
		Address:     "Bakery Row",
	})
	require.NoError(t, err)
	return res
}

func TestCreateDonationClassifiesScoresAndMatches(t *testing.T) {
	f := newRescueFixture(t)
	res := f.donation(t)

	d := res.Donation
	assert.Equal(t, domain.CategoryProduce, d.Category)
	assert.Equal(t, domain.DonationMatched, d.Status)
	require.NotNil(t, d.Coords)
	assert.InDelta(t, 3.5, d.PerishabilityScore, 1e-9)
	assert.Equal(t, "category", res.Perishability.ExternalSource)

	require.Len(t, res.Matches, 1, "the far bakery-only shelter scores zero")
	assert.Equal(t, f.near.ID, res.Matches[0].RecipientID)
	assert.Equal(t, "Midtown Fridge", res.Matches[0].RecipientName)
	assert.Greater(t, res.Matches[0].Score, 0.9)

	stored, err := f.store.GetDonation(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationMatched, stored.Status)
	assert.InDelta(t, 3.5, stored.PerishabilityScore, 1e-9)

	assert.Equal(t, []string{domain.EventDonationCreated}, f.events.types())
}

func TestCreateDonationValidation(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateDonation(ctx, CreateDonationInput{DonorID: 999, FoodType: "bread", QuantityLbs: 1, PickupStart: fixedNow, PickupEnd: fixedNow.Add(time.Hour), Address: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.CreateDonation(ctx, CreateDonationInput{DonorID: f.donor.ID, FoodType: "bread", QuantityLbs: 0, PickupStart: fixedNow, PickupEnd: fixedNow.Add(time.Hour), Address: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateDonation(ctx, CreateDonationInput{DonorID: f.donor.ID, FoodType: "bread", Category: "candy", QuantityLbs: 2, PickupStart: fixedNow, PickupEnd: fixedNow.Add(time.Hour), Address: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignRouteAndCompleteLifecycle(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()
	d := f.donation(t).Donation

	_, err := f.svc.AssignRoute(ctx, AssignRouteInput{DonationID: d.ID, DriverID: 404, RecipientID: f.near.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assigned, err := f.svc.AssignRoute(ctx, AssignRouteInput{DonationID: d.ID, DriverID: f.driver.ID, RecipientID: f.near.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.RouteAssigned, assigned.Route.Status)
	assert.Equal(t, SourceLocal, assigned.Estimate.Source)
	assert.NotNil(t, assigned.Estimate.Approach)
	assert.NotEmpty(t, assigned.Route.Instructions)

	stored, err := f.store.GetDonation(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationAssigned, stored.Status)

	_, err = f.svc.AssignRoute(ctx, AssignRouteInput{DonationID: d.ID, DriverID: f.driver.ID, RecipientID: f.near.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "an assigned donation cannot be assigned again")

	route, err := f.svc.UpdateRouteStatus(ctx, assigned.Route.ID, domain.RouteInProgress)
	require.NoError(t, err)
	require.NotNil(t, route.StartedAt)

	route, err = f.svc.UpdateRouteStatus(ctx, assigned.Route.ID, domain.RouteCompleted)
	require.NoError(t, err)
	require.NotNil(t, route.CompletedAt)

	stored, err = f.store.GetDonation(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.CompletedAt.Equal(fixedNow))

	_, err = f.svc.UpdateRouteStatus(ctx, assigned.Route.ID, domain.RouteInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	impact, err := f.svc.GetImpact(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, impact.PoundsRescued)
	assert.Equal(t, 33.33, impact.Meals)

	assert.Equal(t, []string{
		domain.EventDonationCreated,
		domain.EventRouteAssigned,
		domain.EventRouteStatusChanged,
		domain.EventRouteStatusChanged,
	}, f.events.types())
}

func TestCancelledRouteReturnsDonationToPending(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()
	d := f.donation(t).Donation

	assigned, err := f.svc.AssignRoute(ctx, AssignRouteInput{DonationID: d.ID, DriverID: f.driver.ID, RecipientID: f.far.ID})
	require.NoError(t, err)

	_, err = f.svc.UpdateRouteStatus(ctx, assigned.Route.ID, domain.RouteCancelled)
	require.NoError(t, err)

	stored, err := f.store.GetDonation(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestRealtimeImpact(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()

	first := f.donation(t).Donation
	f.donation(t)

	_, err := f.svc.AssignRoute(ctx, AssignRouteInput{DonationID: first.ID, DriverID: f.driver.ID, RecipientID: f.near.ID})
	require.NoError(t, err)

	got, err := f.svc.GetRealtimeImpact(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalDonations)
	assert.Equal(t, 1, got.ActiveRoutes)
	assert.Equal(t, 0, got.PendingDonations, "matched donations are not pending")
	assert.Equal(t, 0.0, got.Impact.PoundsRescued)
	assert.Equal(t, 0.0, got.SustainabilityScore)
	assert.Equal(t, "Volunteer assignment appropriate", got.Insight)
}

func TestNearbyDriversScansStoredPositions(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()

	far := &domain.Driver{Name: "Pat", Phone: "555-0101", Available: true, Coords: &philadelphia}
	require.NoError(t, f.svc.CreateDriver(ctx, far))
	off := &domain.Driver{Name: "Lee", Phone: "555-0102", Available: false, Coords: &midtown}
	require.NoError(t, f.svc.CreateDriver(ctx, off))

	got, err := f.svc.NearbyDrivers(ctx, midtown, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.driver.ID, got[0].Driver.ID)

	got, err = f.svc.NearbyDrivers(ctx, midtown, 200)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, far.ID, got[1].Driver.ID)

	_, err = f.svc.NearbyDrivers(ctx, midtown, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecommendDriverType(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()
	d := f.donation(t).Donation

	got, err := f.svc.RecommendDriverType(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DriverVolunteer, got.Type)

	_, err = f.svc.RecommendDriverType(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDriverLocationGeocodesText(t *testing.T) {
	f := newRescueFixture(t)
	ctx := context.Background()

	d, err := f.svc.UpdateDriverLocation(ctx, f.driver.ID, "Philly Shelter", nil)
	require.NoError(t, err)
	assert.Equal(t, "Philly Shelter", d.CurrentLocation)
	assert.Equal(t, philadelphia, *d.Coords)

	_, err = f.svc.UpdateDriverLocation(ctx, f.driver.ID, "Atlantis", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.UpdateDriverLocation(ctx, 999, "", &midtown)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// insertRecordingStore remembers the perishability score each donation is inserted with.
type insertRecordingStore struct {
	*memory.Store
	inserted []float64
}

func (s *insertRecordingStore) CreateDonation(ctx context.Context, d *domain.Donation) error {
	s.inserted = append(s.inserted, d.PerishabilityScore)
	return s.Store.CreateDonation(ctx, d)
}

func TestCreateDonationInsertsBlendedScore(t *testing.T) {
	ctx := context.Background()
	store := &insertRecordingStore{Store: memory.NewStore()}
	geo := NewGeoResolver(nil, time.Second)
	svc := NewRescueService(RescueDeps{
		Store:    store,
		Geo:      geo,
		Perish:   NewPerishabilityEstimator(fakeClassifier{category: "dairy", score: "9"}, 0.5, time.Second),
		Ranker:   NewRecipientRanker(NewMatchScorer(geo), 2),
		Routes:   NewRouteEstimator(geo, nil, nil, time.Second),
		Assigner: NewDriverAssigner(nil, time.Second),
		Now:      func() time.Time { return fixedNow },
	})
	donor := &domain.Donor{Name: "Dairy Depot", Address: "Depot"}
	require.NoError(t, svc.CreateDonor(ctx, donor))

	res, err := svc.CreateDonation(ctx, CreateDonationInput{
		DonorID:     donor.ID,
		FoodType:    "Yogurt cups",
		QuantityLbs: 12,
		PickupStart: fixedNow,
		PickupEnd:   fixedNow.Add(time.Hour),
		Address:     "Depot",
	})
	require.NoError(t, err)

	assert.InDelta(t, 4.5, res.Donation.PerishabilityScore, 1e-9)
	assert.Equal(t, []float64{res.Donation.PerishabilityScore}, store.inserted)

	stored, err := store.GetDonation(ctx, res.Donation.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stored.PerishabilityScore, 1e-9)
}
