package app

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/openclintech/go-triage-server/internal/httpapi/middleware"
	"github.com/openclintech/go-triage-server/internal/metrics"
	"github.com/openclintech/go-triage-server/internal/storage"
)

const defaultHandlerTimeout = 15 * time.Second

type Deps struct {
	Queue  storage.TriageQueue
	Logger logr.Logger
	// Clock defaults to time.Now. It only affects scores written in
	// responses; the queue has its own clock.
	Clock func() time.Time
	// Metrics is optional; nil disables /metrics and request metrics.
	Metrics *metrics.Metrics
	// StaticDir is served at / when it names an existing directory.
	StaticDir      string
	HandlerTimeout time.Duration
}

func New(d Deps) http.Handler {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.HandlerTimeout <= 0 {
		d.HandlerTimeout = defaultHandlerTimeout
	}

	mux := http.NewServeMux()

	// Routes
	registerRoutes(mux, d)

	route := middleware.Route(knownRoutes)

	// Middlewares (innermost -> outermost)
	var h http.Handler = mux
	h = middleware.Recover(d.Logger)(h)
	h = middleware.Tracing(route)(h)
	if d.Metrics != nil {
		h = middleware.Metrics(d.Metrics, route)(h)
	}
	h = middleware.RequestID()(h)
	h = middleware.Logging(d.Logger)(h)

	h = http.TimeoutHandler(h, d.HandlerTimeout, `{"ok":false,"error":"request timed out"}`)

	return h
}
