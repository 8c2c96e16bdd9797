package memory

import (
	"sync"
	"time"

	"github.com/openclintech/go-triage-server/internal/storage"
	"github.com/openclintech/go-triage-server/internal/triage"
)

var _ storage.TriageQueue = (*TriageStore)(nil)

type Option func(*TriageStore)

// WithClock replaces time.Now as the source of arrival and scoring times.
func WithClock(now func() time.Time) Option {
	return func(s *TriageStore) {
		if now != nil {
			s.now = now
		}
	}
}

// TriageStore keeps the waiting queue in memory. A single mutex guards both
// the records and the id counter.
type TriageStore struct {
	mu       sync.Mutex
	patients map[int]triage.Patient
	nextID   int
	now      func() time.Time
}

func NewTriageStore(opts ...Option) *TriageStore {
	s := &TriageStore{
		patients: make(map[int]triage.Patient),
		nextID:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TriageStore) Insert(name string, v triage.Vitals) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := triage.Patient{
		ID:        s.nextID,
		Name:      name,
		Vitals:    v,
		ArrivedAt: s.now().Truncate(time.Second),
	}
	s.nextID++
	s.patients[p.ID] = p
	return p.ID
}

func (s *TriageStore) Update(id int, v triage.Vitals) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients[id]
	if !ok {
		return false
	}
	p.Vitals = v
	s.patients[id] = p
	return true
}

func (s *TriageStore) ExtractHighestPriority() (triage.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.patients) == 0 {
		return triage.Patient{}, false
	}

	now := s.now()
	var best triage.Scored
	first := true
	for _, p := range s.patients {
		e := triage.At(p, now)
		if first || e.Outranks(best) {
			best = e
			first = false
		}
	}

	delete(s.patients, best.Patient.ID)
	return best.Patient, true
}

func (s *TriageStore) ListOrdered() []triage.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]triage.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	triage.Order(out, s.now())
	return out
}

// Len is the number of waiting patients.
func (s *TriageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.patients)
}

func (s *TriageStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.patients)
	s.nextID = 1
}
