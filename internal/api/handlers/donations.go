package handlers

import (
	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/services"
	"net/http"
	"strings"
)

type DonationHandler struct {
	Svc *services.RescueService
}

func (h *DonationHandler) Donations(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodGet {
		h.list(w, r)
		return
	}

	var req dto.DonationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.CreateDonation(r.Context(), services.CreateDonationInput{
		DonorID:     req.DonorID,
		FoodType:    req.FoodType,
		Category:    req.FoodCategory,
		QuantityLbs: req.QuantityLbs,
		PickupStart: req.PickupWindowStart,
		PickupEnd:   req.PickupWindowEnd,
		Address:     req.Address,
		Storage:     req.StorageRequirement,
	})
	if err != nil {
		writeServiceError(w, r, "create donation", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateDonationResponse{
		Donation:      donationResponse(res.Donation),
		Perishability: perishabilityResponse(res.Perishability),
		Matches:       matchResponses(res.Matches),
	})
}

func (h *DonationHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter *domain.DonationStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		st, ok := domain.ParseDonationStatus(raw)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "unknown donation status")
			return
		}
		filter = &st
	}

	donations, err := h.Svc.ListDonations(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "list donations", err)
		return
	}

	res := dto.ListDonationsResponse{Donations: make([]dto.DonationResponse, 0, len(donations))}
	for _, d := range donations {
		res.Donations = append(res.Donations, donationResponse(d))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *DonationHandler) Matches(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	matches, err := h.Svc.MatchDonation(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "match donation", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListMatchesResponse{DonationID: id, Matches: matchResponses(matches)})
}
