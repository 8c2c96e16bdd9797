package handlers

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/openclintech/go-triage-server/internal/httpapi/middleware"
	"github.com/openclintech/go-triage-server/internal/httpapi/respond"
	"github.com/openclintech/go-triage-server/internal/logging"
	"github.com/openclintech/go-triage-server/internal/storage"
	"github.com/openclintech/go-triage-server/internal/triage"
)

// Triage adapts the queue operations to HTTP. Scores in responses are
// computed at write time with now.
type Triage struct {
	queue storage.TriageQueue
	now   func() time.Time
	log   logr.Logger
}

func NewTriage(q storage.TriageQueue, now func() time.Time, log logr.Logger) *Triage {
	if now == nil {
		now = time.Now
	}
	return &Triage{queue: q, now: now, log: log}
}

type patientView struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Age      int32   `json:"age"`
	Severity int32   `json:"severity"`
	HR       int32   `json:"hr"`
	SBP      int32   `json:"sbp"`
	SpO2     int32   `json:"spo2"`
	Priority float64 `json:"priority"`
}

type explainedView struct {
	patientView
	WaitSeconds int64            `json:"wait_seconds"`
	Breakdown   triage.Breakdown `json:"breakdown"`
}

func viewOf(p triage.Patient, now time.Time) patientView {
	return patientView{
		ID:       p.ID,
		Name:     p.Name,
		Age:      p.Vitals.Age,
		Severity: p.Vitals.Severity,
		HR:       p.Vitals.HeartRate,
		SBP:      p.Vitals.SystolicBP,
		SpO2:     p.Vitals.OxygenSaturation,
		Priority: triage.Score(p, now),
	}
}

// Add handles POST /add.
func (t *Triage) Add() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		req, err := decodeAdd(r)
		if err != nil {
			t.rejected(r, err)
			respond.Error(w, http.StatusBadRequest, badRequestMessage(err))
			return
		}

		id := t.queue.Insert(req.Name, req.Vitals)
		t.log.V(logging.DEBUG).Info("patient queued", "id", id, "severity", req.Vitals.Severity)
		respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
	})
}

// Update handles POST /update. An unknown id is reported with ok=false and
// status 200; it is not a client error.
func (t *Triage) Update() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		req, err := decodeUpdate(r)
		if err != nil {
			t.rejected(r, err)
			respond.Error(w, http.StatusBadRequest, badRequestMessage(err))
			return
		}

		ok := t.queue.Update(req.ID, req.Vitals)
		t.log.V(logging.DEBUG).Info("patient update", "id", req.ID, "found", ok)
		respond.JSON(w, http.StatusOK, map[string]any{"ok": ok})
	})
}

// Treat handles POST /treat.
func (t *Triage) Treat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}

		p, ok := t.queue.ExtractHighestPriority()
		if !ok {
			respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "treated": nil})
			return
		}
		v := viewOf(p, t.now())
		t.log.V(logging.DEBUG).Info("patient treated", "id", p.ID, "priority", v.Priority)
		respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "treated": v})
	})
}

// List handles GET /list.
func (t *Triage) List() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}

		ps := t.queue.ListOrdered()
		now := t.now()
		items := make([]patientView, 0, len(ps))
		for _, p := range ps {
			items = append(items, viewOf(p, now))
		}
		respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "count": len(items), "items": items})
	})
}

// Explain handles GET /explain: the ordered queue with each score broken
// into its terms.
func (t *Triage) Explain() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}

		ps := t.queue.ListOrdered()
		now := t.now()
		items := make([]explainedView, 0, len(ps))
		for _, p := range ps {
			items = append(items, explainedView{
				patientView: viewOf(p, now),
				WaitSeconds: triage.WaitSeconds(p, now),
				Breakdown:   triage.Explain(p, now),
			})
		}
		respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "count": len(items), "items": items})
	})
}

// Reset handles POST /reset.
func (t *Triage) Reset() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}

		t.queue.ClearAll()
		t.log.Info("queue cleared", "request_id", middleware.GetRequestID(r.Context()))
		respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "Queue cleared and IDs reset"})
	})
}

func (t *Triage) rejected(r *http.Request, err error) {
	t.log.V(logging.DEBUG).Info("request rejected",
		"path", r.URL.Path,
		"reason", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
}
