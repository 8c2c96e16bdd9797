package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/openclintech/go-triage-server/internal/httpapi/respond"
)

func Recover(l logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					l.Error(fmt.Errorf("panic: %v", rec), "handler panicked",
						"path", r.URL.Path,
						"request_id", GetRequestID(r.Context()),
					)
					respond.Error(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
