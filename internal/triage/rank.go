package triage

import (
	"cmp"
	"slices"
	"time"
)

// Scored is a patient scored at a fixed instant.
type Scored struct {
	Patient Patient
	Scaled  int64
}

// At scores p at now.
func At(p Patient, now time.Time) Scored {
	return Scored{Patient: p, Scaled: ScaledScore(p, now)}
}

// Compare orders entries most urgent first: higher score, then earlier
// arrival, then lower id. It returns a negative number when a ranks ahead
// of b.
func Compare(a, b Scored) int {
	if c := cmp.Compare(b.Scaled, a.Scaled); c != 0 {
		return c
	}
	if c := a.Patient.ArrivedAt.Compare(b.Patient.ArrivedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Patient.ID, b.Patient.ID)
}

// Outranks reports whether e would be treated before o.
func (e Scored) Outranks(o Scored) bool {
	return Compare(e, o) < 0
}

// Order sorts ps in place, most urgent first, scoring every patient at the
// same instant.
func Order(ps []Patient, now time.Time) {
	entries := make([]Scored, len(ps))
	for i, p := range ps {
		entries[i] = At(p, now)
	}
	slices.SortFunc(entries, Compare)
	for i, e := range entries {
		ps[i] = e.Patient
	}
}
