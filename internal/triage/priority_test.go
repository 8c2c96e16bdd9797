package triage_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openclintech/go-triage-server/internal/triage"
)

var t0 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func stable() triage.Vitals {
	return triage.Vitals{Age: 40, Severity: 1, HeartRate: 80, SystolicBP: 120, OxygenSaturation: 97}
}

func arrived(v triage.Vitals, at time.Time) triage.Patient {
	return triage.Patient{ID: 1, Name: "p", Vitals: v, ArrivedAt: at}
}

var _ = Describe("Score", func() {
	Context("base from severity", func() {
		DescribeTable("lowers the base by 15 per severity step",
			func(severity int32, want float64) {
				v := stable()
				v.Severity = severity
				Expect(triage.Score(arrived(v, t0), t0)).To(Equal(want))
			},
			Entry("severity 1", int32(1), 100.0),
			Entry("severity 2", int32(2), 85.0),
			Entry("severity 5", int32(5), 40.0),
			Entry("severity 9 goes negative", int32(9), -20.0),
			Entry("severity 0 goes above 100", int32(0), 115.0),
			Entry("largest severity stays exact", int32(math.MaxInt32), -32212254590.0),
			Entry("smallest severity stays exact", int32(math.MinInt32), 32212254835.0),
		)
	})

	Context("oxygen saturation", func() {
		DescribeTable("first matching band wins",
			func(spo2 int32, want float64) {
				v := stable()
				v.OxygenSaturation = spo2
				Expect(triage.Score(arrived(v, t0), t0)).To(Equal(want))
			},
			Entry("89 is hypoxic", int32(89), 120.0),
			Entry("90 is low", int32(90), 110.0),
			Entry("94 is low", int32(94), 110.0),
			Entry("95 is normal", int32(95), 100.0),
		)
	})

	Context("threshold adjustments", func() {
		It("adds 10 at heart rate 130 but not 129", func() {
			v := stable()
			v.HeartRate = 129
			Expect(triage.Score(arrived(v, t0), t0)).To(Equal(100.0))
			v.HeartRate = 130
			Expect(triage.Score(arrived(v, t0), t0)).To(Equal(110.0))
		})

		It("adds 15 below systolic 90 only", func() {
			v := stable()
			v.SystolicBP = 90
			Expect(triage.Score(arrived(v, t0), t0)).To(Equal(100.0))
			v.SystolicBP = 89
			Expect(triage.Score(arrived(v, t0), t0)).To(Equal(115.0))
		})

		It("adds 5 from age 65", func() {
			v := stable()
			v.Age = 64
			Expect(triage.Score(arrived(v, t0), t0)).To(Equal(100.0))
			v.Age = 65
			Expect(triage.Score(arrived(v, t0), t0)).To(Equal(105.0))
		})
	})

	Context("wait bonus", func() {
		It("grows by half a point per minute", func() {
			p := arrived(stable(), t0)
			Expect(triage.Score(p, t0.Add(10*time.Minute))).To(Equal(105.0))
			Expect(triage.Score(p, t0.Add(90*time.Second))).To(Equal(100.75))
		})

		It("saturates at 30 after an hour", func() {
			p := arrived(stable(), t0)
			Expect(triage.Score(p, t0.Add(time.Hour))).To(Equal(130.0))
			Expect(triage.Score(p, t0.Add(5*time.Hour))).To(Equal(130.0))
		})

		It("is zero when now precedes arrival", func() {
			p := arrived(stable(), t0)
			Expect(triage.Score(p, t0.Add(-time.Hour))).To(Equal(100.0))
		})

		It("never decreases as time passes", func() {
			p := arrived(stable(), t0)
			prev := triage.Score(p, t0)
			for s := 1; s <= 4000; s += 7 {
				cur := triage.Score(p, t0.Add(time.Duration(s)*time.Second))
				Expect(cur).To(BeNumerically(">=", prev))
				Expect(cur - triage.Score(p, t0)).To(BeNumerically("<=", 30))
				prev = cur
			}
		})
	})

	It("scores the critical example at 120", func() {
		v := triage.Vitals{Age: 70, Severity: 3, HeartRate: 140, SystolicBP: 85, OxygenSaturation: 88}
		Expect(triage.Score(arrived(v, t0), t0)).To(Equal(120.0))
	})

	It("keeps the scaled and float scores consistent", func() {
		p := arrived(stable(), t0)
		now := t0.Add(17 * time.Second)
		Expect(triage.ScaledScore(p, now)).To(Equal(int64(100*triage.ScoreScale + 17)))
		Expect(triage.Score(p, now)).To(BeNumerically("~", 100+17.0/120, 1e-12))
	})
})

var _ = Describe("Explain", func() {
	It("sums to the score", func() {
		v := triage.Vitals{Age: 80, Severity: 2, HeartRate: 135, SystolicBP: 80, OxygenSaturation: 92}
		p := arrived(v, t0)
		now := t0.Add(20 * time.Minute)

		b := triage.Explain(p, now)
		Expect(b).To(Equal(triage.Breakdown{
			Base:          85,
			Oxygen:        10,
			HeartRate:     10,
			BloodPressure: 15,
			Age:           5,
			Wait:          10,
			Total:         135,
		}))
		Expect(b.Total).To(Equal(triage.Score(p, now)))
	})
})
