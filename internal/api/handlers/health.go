package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	res := map[string]string{"status": "ok", "service": "food-rescue"}
	writeJSON(w, r, http.StatusOK, res)
}
