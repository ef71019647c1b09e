package handlers

import (
	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/services"
	"net/http"
)

// ImpactHandler reports sustainability metrics.
type ImpactHandler struct {
	Svc *services.RescueService
}

func (h *ImpactHandler) Impact(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	m, err := h.Svc.GetImpact(r.Context())
	if err != nil {
		writeServiceError(w, r, "get impact", err)
		return
	}
	writeJSON(w, r, http.StatusOK, impactResponse(m))
}

func (h *ImpactHandler) Realtime(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	rt, err := h.Svc.GetRealtimeImpact(r.Context())
	if err != nil {
		writeServiceError(w, r, "get realtime impact", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RealtimeImpactResponse{
		Impact:              impactResponse(rt.Impact),
		PotentialImpact:     impactResponse(rt.Potential),
		PendingDonations:    rt.PendingDonations,
		ActiveRoutes:        rt.ActiveRoutes,
		TotalDonations:      rt.TotalDonations,
		AIInsight:           rt.Insight,
		SustainabilityScore: rt.SustainabilityScore,
	})
}
