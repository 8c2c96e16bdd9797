package triage

import "time"

// Every score term is a whole multiple of 1/ScoreScale points: the clinical
// terms are integers and the wait bonus grows by half a point per minute,
// i.e. 1/120 point per second. Ranking on the scaled integer is exact.
const ScoreScale = 120

const (
	baseScore        = 100
	severityStep     = 15
	hypoxiaBonus     = 20 // spo2 < 90
	lowOxygenBonus   = 10 // spo2 <= 94
	tachycardiaBonus = 10 // hr >= 130
	hypotensionBonus = 15 // sbp < 90
	elderlyBonus     = 5  // age >= 65

	// the wait bonus saturates at 30 points after one hour
	maxWaitSeconds = 3600
)

// Breakdown is the per-term decomposition of a score, in points.
type Breakdown struct {
	Base          float64 `json:"base"`
	Oxygen        float64 `json:"oxygen"`
	HeartRate     float64 `json:"heart_rate"`
	BloodPressure float64 `json:"blood_pressure"`
	Age           float64 `json:"age"`
	Wait          float64 `json:"wait"`
	Total         float64 `json:"total"`
}

type scaledTerms struct {
	base, oxygen, heartRate, bloodPressure, age, wait int64
}

func (t scaledTerms) sum() int64 {
	return t.base + t.oxygen + t.heartRate + t.bloodPressure + t.age + t.wait
}

func terms(p Patient, now time.Time) scaledTerms {
	v := p.Vitals
	var t scaledTerms

	// |severity| <= 2^31, so base*ScoreScale stays well inside int64.
	t.base = (baseScore - (int64(v.Severity)-1)*severityStep) * ScoreScale

	switch {
	case v.OxygenSaturation < 90:
		t.oxygen = hypoxiaBonus * ScoreScale
	case v.OxygenSaturation <= 94:
		t.oxygen = lowOxygenBonus * ScoreScale
	}
	if v.HeartRate >= 130 {
		t.heartRate = tachycardiaBonus * ScoreScale
	}
	if v.SystolicBP < 90 {
		t.bloodPressure = hypotensionBonus * ScoreScale
	}
	if v.Age >= 65 {
		t.age = elderlyBonus * ScoreScale
	}

	t.wait = min(WaitSeconds(p, now), maxWaitSeconds)
	return t
}

// WaitSeconds is the whole number of seconds p has waited at now, never
// negative.
func WaitSeconds(p Patient, now time.Time) int64 {
	return max(0, now.Unix()-p.ArrivedAt.Unix())
}

// ScaledScore returns Score(p, now) * ScoreScale computed in integers.
func ScaledScore(p Patient, now time.Time) int64 {
	return terms(p, now).sum()
}

// Score is the urgency of p at now. Higher is more urgent. It depends on the
// wall clock through the wait bonus, so it must be recomputed on every read.
func Score(p Patient, now time.Time) float64 {
	return float64(ScaledScore(p, now)) / ScoreScale
}

// Explain returns the terms that make up Score(p, now).
func Explain(p Patient, now time.Time) Breakdown {
	t := terms(p, now)
	pts := func(v int64) float64 { return float64(v) / ScoreScale }
	return Breakdown{
		Base:          pts(t.base),
		Oxygen:        pts(t.oxygen),
		HeartRate:     pts(t.heartRate),
		BloodPressure: pts(t.bloodPressure),
		Age:           pts(t.age),
		Wait:          pts(t.wait),
		Total:         pts(t.sum()),
	}
}
