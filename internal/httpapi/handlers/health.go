package handlers

import (
	"net/http"
	"time"

	"github.com/openclintech/go-triage-server/internal/httpapi/respond"
)

func Ping() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]any{
			"pong": true,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
