package handlers

import (
	"errors"
	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"food-rescue-service/internal/services"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// ParticipantHandler serves donors, recipients and drivers.
type ParticipantHandler struct {
	Svc *services.RescueService
}

func (h *ParticipantHandler) CreateDonor(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.DonorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	coords, ok := coordsFromRequest(req.Latitude, req.Longitude)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be given together and be in range")
		return
	}

	d := &domain.Donor{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Coords:       coords,
		BusinessType: req.BusinessType,
	}
	if err := h.Svc.CreateDonor(r.Context(), d); err != nil {
		writeServiceError(w, r, "create donor", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, donorResponse(d))
}

func (h *ParticipantHandler) Recipients(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		recipients, err := h.Svc.ListRecipients(r.Context())
		if err != nil {
			writeServiceError(w, r, "list recipients", err)
			return
		}
		res := dto.ListRecipientsResponse{Recipients: make([]dto.RecipientResponse, 0, len(recipients))}
		for _, rc := range recipients {
			res.Recipients = append(res.Recipients, recipientResponse(rc))
		}
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	var req dto.RecipientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	coords, ok := coordsFromRequest(req.Latitude, req.Longitude)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be given together and be in range")
		return
	}

	rc := &domain.Recipient{
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		Phone:              strings.TrimSpace(req.Phone),
		Address:            strings.TrimSpace(req.Address),
		Coords:             coords,
		OrganizationType:   req.OrganizationType,
		CategoriesNeeded:   req.CategoriesNeeded,
		StorageCapacityLbs: req.StorageCapacityLbs,
	}
	if err := h.Svc.CreateRecipient(r.Context(), rc); err != nil {
		writeServiceError(w, r, "create recipient", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, recipientResponse(rc))
}

func (h *ParticipantHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		availableOnly := r.URL.Query().Get("available") == "true"
		drivers, err := h.Svc.ListDrivers(r.Context(), availableOnly)
		if err != nil {
			writeServiceError(w, r, "list drivers", err)
			return
		}
		res := dto.ListDriversResponse{Drivers: make([]dto.DriverResponse, 0, len(drivers))}
		for _, d := range drivers {
			res.Drivers = append(res.Drivers, driverResponse(d))
		}
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	var req dto.DriverRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	coords, ok := coordsFromRequest(req.Latitude, req.Longitude)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be given together and be in range")
		return
	}

	driverType := domain.DriverVolunteer
	if strings.TrimSpace(req.DriverType) != "" {
		t, ok := domain.ParseDriverType(req.DriverType)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "driver_type must be volunteer or courier")
			return
		}
		driverType = t
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	d := &domain.Driver{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		CurrentLocation: strings.TrimSpace(req.CurrentLocation),
		Coords:          coords,
		Type:            driverType,
		Available:       available,
	}
	if err := h.Svc.CreateDriver(r.Context(), d); err != nil {
		writeServiceError(w, r, "create driver", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, driverResponse(d))
}

func (h *ParticipantHandler) NearbyDrivers(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	lat, okLat := queryFloat(r, "lat")
	lon, okLon := queryFloat(r, "lon")
	if !okLat || !okLon {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	radius := 5.0
	if r.URL.Query().Has("radius_miles") {
		v, ok := queryFloat(r, "radius_miles")
		if !ok {
			writeError(w, r, http.StatusBadRequest, "radius_miles must be a number")
			return
		}
		radius = v
	}

	nearby, err := h.Svc.NearbyDrivers(r.Context(), domain.Coordinates{Lat: lat, Lon: lon}, radius)
	if err != nil {
		writeServiceError(w, r, "nearby drivers", err)
		return
	}

	res := dto.ListNearbyDriversResponse{Drivers: make([]dto.NearbyDriverResponse, 0, len(nearby))}
	for _, n := range nearby {
		res.Drivers = append(res.Drivers, dto.NearbyDriverResponse{
			Driver:        driverResponse(n.Driver),
			DistanceMiles: n.DistanceMiles,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *ParticipantHandler) DriverLocation(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPut) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.DriverLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	coords, ok := coordsFromRequest(req.Latitude, req.Longitude)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be given together and be in range")
		return
	}

	d, err := h.Svc.UpdateDriverLocation(r.Context(), id, strings.TrimSpace(req.CurrentLocation), coords)
	if err != nil {
		writeServiceError(w, r, "update driver location", err)
		return
	}
	writeJSON(w, r, http.StatusOK, driverResponse(d))
}

func (h *ParticipantHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	donationID, err := strconv.ParseInt(r.URL.Query().Get("donation_id"), 10, 64)
	if err != nil || donationID < 1 {
		writeError(w, r, http.StatusBadRequest, "donation_id must be a positive integer")
		return
	}

	a, err := h.Svc.RecommendDriverType(r.Context(), donationID)
	if err != nil {
		writeServiceError(w, r, "recommend driver", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.DriverRecommendationResponse{
		DonationID:     donationID,
		AssignmentType: string(a.Type),
		Reason:         a.Reason,
	})
}

func (h *ParticipantHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	c, ok := h.Svc.Geocode(r.Context(), address)
	if !ok {
		writeError(w, r, http.StatusNotFound, "address could not be resolved")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Address: address, Latitude: c.Lat, Longitude: c.Lon})
}

// Autocomplete answers GET /geocode/autocomplete?q=&limit=. A geocoder that
// cannot suggest yields an empty list with an error message, not a failure.
func (h *ParticipantHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}
	limit := services.DefaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	resp := dto.AutocompleteResponse{Query: q, Suggestions: []dto.AddressSuggestionResponse{}}
	found, err := h.Svc.SuggestAddresses(r.Context(), q, limit)
	switch {
	case errors.Is(err, services.ErrSuggestionsUnavailable):
		log.Printf("req_id=%s autocomplete unavailable err=%v", obs.RequestID(r.Context()), err)
		resp.Error = "address suggestions are unavailable"
	case err != nil:
		writeServiceError(w, r, "autocomplete", err)
		return
	}
	for _, s := range found {
		resp.Suggestions = append(resp.Suggestions, dto.AddressSuggestionResponse{
			DisplayName: s.DisplayName,
			Address:     s.Address,
			Latitude:    s.Coords.Lat,
			Longitude:   s.Coords.Lon,
		})
	}
	resp.Count = len(resp.Suggestions)
	writeJSON(w, r, http.StatusOK, resp)
}
