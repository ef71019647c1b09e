package handlers

import (
	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/services"
	"net/http"
	"strings"
)

type RouteHandler struct {
	Svc *services.RescueService
}

func (h *RouteHandler) Routes(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodGet {
		h.list(w, r)
		return
	}

	var req dto.AssignRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	assigned, err := h.Svc.AssignRoute(r.Context(), services.AssignRouteInput{
		DonationID:  req.DonationID,
		DriverID:    req.DriverID,
		RecipientID: req.RecipientID,
	})
	if err != nil {
		writeServiceError(w, r, "assign route", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AssignRouteResponse{
		Route:    routeResponse(assigned.Route),
		Estimate: estimateResponse(assigned.Estimate),
	})
}

func (h *RouteHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter *domain.RouteStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		st, ok := domain.ParseRouteStatus(raw)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "unknown route status")
			return
		}
		filter = &st
	}

	routes, err := h.Svc.ListRoutes(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "list routes", err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, routeResponse(rt))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPatch) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.RouteStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, ok := domain.ParseRouteStatus(req.Status)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "status must be one of assigned, in_progress, completed, cancelled")
		return
	}

	route, err := h.Svc.UpdateRouteStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, r, "update route status", err)
		return
	}
	writeJSON(w, r, http.StatusOK, routeResponse(route))
}

func (h *RouteHandler) Map(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := h.Svc.RouteMap(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "route map", err)
		return
	}

	startLat, startLon := latLon(m.Donation.Coords)
	endLat, endLon := latLon(m.Recipient.Coords)
	writeJSON(w, r, http.StatusOK, dto.RouteMapResponse{
		RouteID:         m.Route.ID,
		Status:          string(m.Route.Status),
		Start:           dto.MapPoint{Address: m.Donation.Address, Latitude: startLat, Longitude: startLon},
		End:             dto.MapPoint{Address: m.Recipient.Address, Latitude: endLat, Longitude: endLon},
		DistanceMiles:   m.Route.EstimatedMiles,
		DurationMinutes: m.Route.EstimatedMinutes,
		Instructions:    instructionResponses(m.Route.Instructions),
	})
}

func (h *RouteHandler) MultiStop(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.MultiStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	est, err := h.Svc.EstimateMultiStop(r.Context(), req.Start, req.Stops)
	if err != nil {
		writeServiceError(w, r, "multi-stop estimate", err)
		return
	}
	writeJSON(w, r, http.StatusOK, estimateResponse(est))
}
