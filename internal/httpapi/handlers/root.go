package handlers

import (
	"net/http"

	"github.com/openclintech/go-triage-server/internal/httpapi/respond"
)

// Root lists the routes. It is mounted at / when no static directory is
// served.
func Root() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			respond.Error(w, http.StatusNotFound, "not found")
			return
		}
		respond.JSON(w, http.StatusOK, map[string]any{
			"ok": true,
			"paths": []string{
				"/ping",
				"/add (POST name, age, severity, hr, sbp, spo2)",
				"/update (POST id, age, severity, hr, sbp, spo2)",
				"/treat (POST)",
				"/list (GET)",
				"/explain (GET)",
				"/reset (POST)",
			},
		})
	})
}
