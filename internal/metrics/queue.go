package metrics

import (
	"time"

	"github.com/openclintech/go-triage-server/internal/storage"
	"github.com/openclintech/go-triage-server/internal/triage"
)

type instrumentedQueue struct {
	next storage.TriageQueue
	m    *Metrics
	now  func() time.Time
}

// Instrument wraps q so every operation is counted and every treated
// patient's score and wait are recorded.
func Instrument(q storage.TriageQueue, m *Metrics) storage.TriageQueue {
	return &instrumentedQueue{next: q, m: m, now: time.Now}
}

func (q *instrumentedQueue) Insert(name string, v triage.Vitals) int {
	id := q.next.Insert(name, v)
	q.m.observeOperation("insert", true)
	return id
}

func (q *instrumentedQueue) Update(id int, v triage.Vitals) bool {
	ok := q.next.Update(id, v)
	q.m.observeOperation("update", ok)
	return ok
}

func (q *instrumentedQueue) ExtractHighestPriority() (triage.Patient, bool) {
	p, ok := q.next.ExtractHighestPriority()
	q.m.observeOperation("extract", ok)
	if ok {
		now := q.now()
		q.m.treatedPriority.Observe(triage.Score(p, now))
		q.m.treatedWait.Observe(float64(triage.WaitSeconds(p, now)))
	}
	return p, ok
}

func (q *instrumentedQueue) ListOrdered() []triage.Patient {
	ps := q.next.ListOrdered()
	q.m.observeOperation("list", true)
	return ps
}

func (q *instrumentedQueue) ClearAll() {
	q.next.ClearAll()
	q.m.observeOperation("clear", true)
}
