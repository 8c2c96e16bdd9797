package storage

import "github.com/openclintech/go-triage-server/internal/triage"

// TriageQueue is the set of operations the HTTP layer may perform on the
// waiting queue. Each call is atomic with respect to every other call.
// Returned patients are copies; mutating them has no effect on the queue.
type TriageQueue interface {
	// Insert enqueues a new patient and returns its id.
	Insert(name string, v triage.Vitals) int
	// Update replaces the vitals of a waiting patient, keeping its name and
	// arrival time. It reports false if no such patient is waiting.
	Update(id int, v triage.Vitals) bool
	// ExtractHighestPriority removes and returns the most urgent patient.
	ExtractHighestPriority() (triage.Patient, bool)
	// ListOrdered returns a snapshot of the queue, most urgent first.
	ListOrdered() []triage.Patient
	// ClearAll empties the queue and restarts ids at 1.
	ClearAll()
}
