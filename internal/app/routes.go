package app

import (
	"net/http"
	"os"

	"github.com/openclintech/go-triage-server/internal/httpapi/handlers"
	"github.com/openclintech/go-triage-server/internal/logging"
)

var knownRoutes = []string{
	"/",
	"/ping",
	"/metrics",
	"/add",
	"/update",
	"/treat",
	"/list",
	"/explain",
	"/reset",
}

func registerRoutes(mux *http.ServeMux, d Deps) {
	// Root: static UI when available, route index otherwise
	if isDir(d.StaticDir) {
		d.Logger.V(logging.DEBUG).Info("serving static files", "dir", d.StaticDir)
		mux.Handle("/", http.FileServer(http.Dir(d.StaticDir)))
	} else {
		mux.Handle("/", handlers.Root())
	}

	// Health
	mux.Handle("/ping", handlers.Ping())

	if d.Metrics != nil {
		mux.Handle("/metrics", d.Metrics.Handler())
	}

	// Triage queue
	t := handlers.NewTriage(d.Queue, d.Clock, d.Logger)
	mux.Handle("/add", t.Add())
	mux.Handle("/update", t.Update())
	mux.Handle("/treat", t.Treat())
	mux.Handle("/list", t.List())
	mux.Handle("/explain", t.Explain())
	mux.Handle("/reset", t.Reset())
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
