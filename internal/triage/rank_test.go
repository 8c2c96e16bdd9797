package triage_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openclintech/go-triage-server/internal/triage"
)

func ids(ps []triage.Patient) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

var _ = Describe("Order", func() {
	It("puts the higher score first", func() {
		critical := triage.Vitals{Age: 70, Severity: 3, HeartRate: 140, SystolicBP: 85, OxygenSaturation: 88}
		ps := []triage.Patient{
			{ID: 1, Vitals: stable(), ArrivedAt: t0},
			{ID: 2, Vitals: critical, ArrivedAt: t0},
		}
		triage.Order(ps, t0)
		Expect(ids(ps)).To(Equal([]int{2, 1}))
	})

	It("breaks equal scores by earlier arrival", func() {
		// Both wait past the one-hour cap, so the scores match exactly.
		ps := []triage.Patient{
			{ID: 3, Vitals: stable(), ArrivedAt: t0.Add(time.Second)},
			{ID: 5, Vitals: stable(), ArrivedAt: t0},
		}
		now := t0.Add(2 * time.Hour)
		Expect(triage.ScaledScore(ps[0], now)).To(Equal(triage.ScaledScore(ps[1], now)))

		triage.Order(ps, now)
		Expect(ids(ps)).To(Equal([]int{5, 3}))
	})

	It("does not treat a one-second wait difference as a tie", func() {
		ps := []triage.Patient{
			{ID: 1, Vitals: stable(), ArrivedAt: t0.Add(time.Second)},
			{ID: 2, Vitals: stable(), ArrivedAt: t0},
		}
		now := t0.Add(time.Minute)
		Expect(triage.ScaledScore(ps[1], now) - triage.ScaledScore(ps[0], now)).To(Equal(int64(1)))

		triage.Order(ps, now)
		Expect(ids(ps)).To(Equal([]int{2, 1}))
	})

	It("falls back to id when arrival seconds match", func() {
		ps := []triage.Patient{
			{ID: 9, Vitals: stable(), ArrivedAt: t0},
			{ID: 4, Vitals: stable(), ArrivedAt: t0},
			{ID: 7, Vitals: stable(), ArrivedAt: t0},
		}
		triage.Order(ps, t0)
		Expect(ids(ps)).To(Equal([]int{4, 7, 9}))
	})

	It("lets waiting time overtake a higher clinical score", func() {
		sicker := stable()
		sicker.HeartRate = 135
		ps := []triage.Patient{
			{ID: 1, Vitals: sicker, ArrivedAt: t0.Add(time.Hour)},
			{ID: 2, Vitals: stable(), ArrivedAt: t0},
		}
		triage.Order(ps, t0.Add(time.Hour))
		Expect(ids(ps)).To(Equal([]int{2, 1}))
	})

	It("agrees with Outranks", func() {
		a := triage.At(triage.Patient{ID: 1, Vitals: stable(), ArrivedAt: t0}, t0)
		b := triage.At(triage.Patient{ID: 2, Vitals: stable(), ArrivedAt: t0}, t0)
		Expect(a.Outranks(b)).To(BeTrue())
		Expect(b.Outranks(a)).To(BeFalse())
		Expect(a.Outranks(a)).To(BeFalse())
	})
})
