package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"food-rescue-service/internal/platform/obs"
	"food-rescue-service/internal/ports"
	"net/http"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Distance    float64 `json:"distance"`
				Duration    float64 `json:"duration"`
				Instruction string  `json:"instruction"`
			} `json:"steps"`
		} `json:"segments"`
	} `json:"routes"`
}

// Route requests a driving route between two geocoded waypoints
// (/v2/directions/{profile}). Each segment contributes its first step.
func (c *Client) Route(ctx context.Context, origin, destination ports.Waypoint) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	if origin.Coords == nil || destination.Coords == nil {
		return ports.RouteResult{}, errors.New("ors directions need coordinates for both waypoints")
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.Coords.CoordsToList(), destination.Coords.CoordsToList()},
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, c.profile)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("post directions request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteResult{}, errors.New("directions returned no routes")
	}

	route := dr.Routes[0]
	out := ports.RouteResult{
		DistanceMeters:  route.Summary.Distance,
		DurationSeconds: route.Summary.Duration,
		SegmentCount:    len(route.Segments),
		Steps:           make([]ports.RouteStep, 0, len(route.Segments)),
	}
	for _, seg := range route.Segments {
		if len(seg.Steps) == 0 {
			out.Steps = append(out.Steps, ports.RouteStep{})
			continue
		}
		first := seg.Steps[0]
		out.Steps = append(out.Steps, ports.RouteStep{
			Instruction:     first.Instruction,
			DistanceMeters:  first.Distance,
			DurationSeconds: first.Duration,
		})
	}
	return out, nil
}
