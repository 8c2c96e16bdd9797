package middleware

import (
	"net/http"
	"time"
)

// RequestObserver receives one observation per completed request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Route maps a request path onto one of the known routes, or "other", to keep
// label cardinality bounded.
func Route(known []string) func(*http.Request) string {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	return func(r *http.Request) string {
		if _, ok := set[r.URL.Path]; ok {
			return r.URL.Path
		}
		return "other"
	}
}

func Metrics(obs RequestObserver, route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			obs.ObserveRequest(r.Method, route(r), rec.code(), time.Since(start))
		})
	}
}
