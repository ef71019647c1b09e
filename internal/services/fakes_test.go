package services

import (
	"context"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"sync"
	"sync/atomic"
	"time"
)

type fakeGeocoder struct {
	coords map[string]domain.Coordinates
	calls  atomic.Int64
}

func newFakeGeocoder(coords map[string]domain.Coordinates) *fakeGeocoder {
	return &fakeGeocoder{coords: coords}
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.calls.Add(1)
	c, ok := g.coords[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}
	return c, nil
}

// blockingGeocoder waits for the context to end.
type blockingGeocoder struct{}

func (blockingGeocoder) Geocode(ctx context.Context, _ string) (domain.Coordinates, error) {
	<-ctx.Done()
	return domain.Coordinates{}, ctx.Err()
}

type routePair struct {
	From, To string
	Meters   float64
	Seconds  float64
	Steps    []ports.RouteStep
	Segments int
}

// fakeRouteProvider answers routes keyed by origin/destination address.
type fakeRouteProvider struct {
	m     map[string]routePair
	err   error
	calls atomic.Int64
}

func newFakeRouteProvider(pairs []routePair) *fakeRouteProvider {
	m := make(map[string]routePair, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p
	}
	return &fakeRouteProvider{m: m}
}

func (p *fakeRouteProvider) Route(_ context.Context, origin, destination ports.Waypoint) (ports.RouteResult, error) {
	p.calls.Add(1)
	if p.err != nil {
		return ports.RouteResult{}, p.err
	}
	r, ok := p.m[origin.Address+"|"+destination.Address]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing pair %q -> %q", origin.Address, destination.Address)
	}
	return ports.RouteResult{
		DistanceMeters:  r.Meters,
		DurationSeconds: r.Seconds,
		Steps:           r.Steps,
		SegmentCount:    r.Segments,
	}, nil
}

type fakeClassifier struct {
	category string
	score    string
	err      error
}

func (c fakeClassifier) ClassifyFood(context.Context, string) (string, error) {
	return c.category, c.err
}

func (c fakeClassifier) EstimatePerishability(context.Context, string, domain.FoodCategory, time.Time) (string, error) {
	return c.score, c.err
}

type fakeAdvisor struct {
	out string
	err error
}

func (a fakeAdvisor) AdviseDriverType(context.Context, float64, bool, int) (string, error) {
	return a.out, a.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errUnavailable = errors.New("service unavailable")

func ptr[T any](v T) *T { return &v }

// fakeSuggester is a geocoder that also completes partial addresses.
type fakeSuggester struct {
	fakeGeocoder
	suggestions []domain.AddressSuggestion
	err         error
	gotLimit    int
}

func (s *fakeSuggester) Suggest(_ context.Context, _ string, limit int) ([]domain.AddressSuggestion, error) {
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}
