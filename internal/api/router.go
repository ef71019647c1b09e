package api

import (
	"food-rescue-service/internal/api/handlers"
	"food-rescue-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers to the rescue use cases and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(svc *services.RescueService) http.Handler {
	mux := http.NewServeMux()

	participants := &handlers.ParticipantHandler{Svc: svc}
	donations := &handlers.DonationHandler{Svc: svc}
	routes := &handlers.RouteHandler{Svc: svc}
	impact := &handlers.ImpactHandler{Svc: svc}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/donors", participants.CreateDonor)
	mux.HandleFunc("/recipients", participants.Recipients)
	mux.HandleFunc("/drivers", participants.Drivers)
	mux.HandleFunc("/drivers/nearby", participants.NearbyDrivers)
	mux.HandleFunc("/drivers/recommendation", participants.Recommendation)
	mux.HandleFunc("/drivers/{id}/location", participants.DriverLocation)
	mux.HandleFunc("/geocode", participants.Geocode)
	mux.HandleFunc("/geocode/autocomplete", participants.Autocomplete)

	mux.HandleFunc("/donations", donations.Donations)
	mux.HandleFunc("/donations/{id}/matches", donations.Matches)

	mux.HandleFunc("/routes", routes.Routes)
	mux.HandleFunc("/routes/multi-stop", routes.MultiStop)
	mux.HandleFunc("/routes/{id}/map", routes.Map)
	mux.HandleFunc("/routes/{id}/status", routes.Status)

	mux.HandleFunc("/impact", impact.Impact)
	mux.HandleFunc("/impact/realtime", impact.Realtime)

	return requestIDMiddleware(loggingMiddleware(mux))
}
