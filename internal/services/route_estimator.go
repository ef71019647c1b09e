package services

import (
	"context"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"food-rescue-service/internal/ports"
	"log"
	"strings"
	"time"
)

const (
	metersPerMile     = 1609.34
	urbanSpeedMPH     = 25.0
	orsMaxSteps       = 10
	defaultRouteMiles = 2.5
	defaultRouteMins  = 10.0

	SourceORS     = "ors"
	SourceGoogle  = "google"
	SourceLocal   = "local"
	SourceDefault = "default"
	SourceChained = "multi_stop"
)

type routeLeg struct {
	start ports.Waypoint
	end   ports.Waypoint
}

// routeStrategy produces an estimate for a leg or reports it is unavailable.
type routeStrategy struct {
	name     string
	estimate func(ctx context.Context, leg routeLeg) (domain.RouteEstimate, bool)
}

// RouteEstimator composes a route estimate from an ordered chain of
// strategies; the first success wins and the last one always succeeds.
type RouteEstimator struct {
	geo     *GeoResolver
	chain   []routeStrategy
	timeout time.Duration
}

// NewRouteEstimator builds the chain open -> commercial -> local -> default.
// A nil provider is treated as unconfigured and left out of the chain.
func NewRouteEstimator(geo *GeoResolver, open, commercial ports.RouteProvider, timeout time.Duration) *RouteEstimator {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	e := &RouteEstimator{geo: geo, timeout: timeout}

	if open != nil {
		e.chain = append(e.chain, e.providerStrategy(SourceORS, open, orsMaxSteps))
	}
	if commercial != nil {
		e.chain = append(e.chain, e.providerStrategy(SourceGoogle, commercial, 0))
	}
	e.chain = append(e.chain,
		routeStrategy{name: SourceLocal, estimate: localEstimate},
		routeStrategy{name: SourceDefault, estimate: func(_ context.Context, leg routeLeg) (domain.RouteEstimate, bool) {
			return DefaultRouteEstimate(leg.start.Address, leg.end.Address), true
		}},
	)
	return e
}

// Estimate returns the delivery leg from start to end. When driverAddress is
// given and differs from start, the driver's approach leg is attached as Approach.
func (e *RouteEstimator) Estimate(ctx context.Context, start, end, driverAddress string) domain.RouteEstimate {
	est := e.EstimateLeg(ctx, start, end)

	driverAddress = strings.TrimSpace(driverAddress)
	if driverAddress != "" && !strings.EqualFold(driverAddress, strings.TrimSpace(start)) {
		approach := e.EstimateLeg(ctx, driverAddress, start)
		est.Approach = &approach
	}
	return est
}

// EstimateLeg runs the strategy chain for a single leg. Both endpoints are
// geocoded once and shared by every strategy.
func (e *RouteEstimator) EstimateLeg(ctx context.Context, start, end string) (est domain.RouteEstimate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("req_id=%s route estimate recovered panic=%v", obs.RequestID(ctx), r)
			est = DefaultRouteEstimate(start, end)
		}
	}()

	leg := routeLeg{
		start: ports.Waypoint{Address: start, Coords: e.geo.ResolvePtr(ctx, start)},
		end:   ports.Waypoint{Address: end, Coords: e.geo.ResolvePtr(ctx, end)},
	}

	for _, s := range e.chain {
		if got, ok := s.estimate(ctx, leg); ok {
			got.Source = s.name
			return got
		}
	}
	return DefaultRouteEstimate(start, end)
}

// EstimateMultiStop chains single-leg estimates in the given order without
// reordering stops, summing totals and concatenating instructions.
func (e *RouteEstimator) EstimateMultiStop(ctx context.Context, start string, stops []string) (domain.RouteEstimate, error) {
	if strings.TrimSpace(start) == "" {
		return domain.RouteEstimate{}, fmt.Errorf("%w: start address is required", domain.ErrInvalidInput)
	}
	if len(stops) == 0 {
		return domain.RouteEstimate{}, fmt.Errorf("%w: at least one stop is required", domain.ErrInvalidInput)
	}

	total := domain.RouteEstimate{Source: SourceChained, Instructions: []domain.Instruction{}}
	current := start
	for i, stop := range stops {
		if strings.TrimSpace(stop) == "" {
			return domain.RouteEstimate{}, fmt.Errorf("%w: stop %d has an empty address", domain.ErrInvalidInput, i+1)
		}
		leg := e.EstimateLeg(ctx, current, stop)
		total.DurationMinutes += leg.DurationMinutes
		total.DistanceMiles += leg.DistanceMiles
		total.Instructions = append(total.Instructions, leg.Instructions...)
		current = stop
	}
	return total, nil
}

// providerStrategy wraps p as a chain step. maxSteps limits the instructions
// kept from the provider's step list; zero keeps every step.
func (e *RouteEstimator) providerStrategy(name string, p ports.RouteProvider, maxSteps int) routeStrategy {
	return routeStrategy{
		name: name,
		estimate: func(ctx context.Context, leg routeLeg) (domain.RouteEstimate, bool) {
			ctx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			res, err := p.Route(ctx, leg.start, leg.end)
			if err != nil {
				log.Printf("req_id=%s provider=%s unavailable err=%v", obs.RequestID(ctx), name, err)
				return domain.RouteEstimate{}, false
			}
			if res.DistanceMeters < 0 || res.DurationSeconds < 0 {
				log.Printf("req_id=%s provider=%s unavailable err=negative route totals distance=%f duration=%f",
					obs.RequestID(ctx), name, res.DistanceMeters, res.DurationSeconds)
				return domain.RouteEstimate{}, false
			}
			return fromRouteResult(res, leg, maxSteps), true
		},
	}
}

func fromRouteResult(res ports.RouteResult, leg routeLeg, maxSteps int) domain.RouteEstimate {
	miles := res.DistanceMeters / metersPerMile
	minutes := res.DurationSeconds / 60

	est := domain.RouteEstimate{DurationMinutes: minutes, DistanceMiles: miles}
	if len(res.Steps) == 0 {
		est.Instructions = []domain.Instruction{
			{Text: "Start at " + leg.start.Address, Distance: milesLabel(miles), Duration: minutesLabel(minutes)},
			{Text: "Arrive at " + leg.end.Address, Distance: "0 mi", Duration: "0 min"},
		}
		return est
	}

	segments := res.SegmentCount
	if segments < 1 {
		segments = len(res.Steps)
	}
	perStep := minutes / float64(segments)

	steps := res.Steps
	if maxSteps > 0 && len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}
	est.Instructions = make([]domain.Instruction, 0, len(steps))
	for _, s := range steps {
		text := strings.TrimSpace(s.Instruction)
		if text == "" {
			text = "Continue on route"
		}
		dist := s.DistanceText
		if dist == "" {
			dist = milesLabel(s.DistanceMeters / metersPerMile)
		}
		dur := s.DurationText
		if dur == "" {
			dur = minutesLabel(perStep)
		}
		est.Instructions = append(est.Instructions, domain.Instruction{Text: text, Distance: dist, Duration: dur})
	}
	return est
}

// localEstimate assumes average urban speed over the great-circle distance.
func localEstimate(_ context.Context, leg routeLeg) (domain.RouteEstimate, bool) {
	if leg.start.Coords == nil || leg.end.Coords == nil {
		return domain.RouteEstimate{}, false
	}
	miles := leg.start.Coords.MilesTo(*leg.end.Coords)
	minutes := miles / urbanSpeedMPH * 60

	return domain.RouteEstimate{
		DurationMinutes: minutes,
		DistanceMiles:   miles,
		Instructions: []domain.Instruction{
			{Text: "Start at " + leg.start.Address, Distance: milesLabel(miles * 0.2), Duration: minutesLabel(minutes * 0.2)},
			{Text: "Continue to " + leg.end.Address, Distance: milesLabel(miles * 0.8), Duration: minutesLabel(minutes * 0.8)},
		},
	}, true
}

// DefaultRouteEstimate is the fixed estimate used when nothing else is available.
func DefaultRouteEstimate(start, end string) domain.RouteEstimate {
	return domain.RouteEstimate{
		DurationMinutes: defaultRouteMins,
		DistanceMiles:   defaultRouteMiles,
		Source:          SourceDefault,
		Instructions: []domain.Instruction{
			{Text: "Start at " + start, Distance: "0.5 mi", Duration: "2 min"},
			{Text: "Continue to " + end, Distance: "2.0 mi", Duration: "8 min"},
		},
	}
}

func milesLabel(mi float64) string { return fmt.Sprintf("%.2f mi", mi) }
func minutesLabel(m float64) string { return fmt.Sprintf("%.1f min", m) }
