// Package triage holds the patient model and the urgency score used to order
// the waiting queue.
package triage

import "time"

// Vitals are the clinical inputs that feed the score. Fields are 32-bit so
// the scaled score stays exact in int64 for every representable value; no
// plausibility ranges are enforced here.
type Vitals struct {
	Age              int32
	Severity         int32
	HeartRate        int32
	SystolicBP       int32
	OxygenSaturation int32
}

// Patient is one waiting entity. ArrivedAt has seconds resolution and is set
// once, when the patient enters the queue.
type Patient struct {
	ID        int
	Name      string
	Vitals    Vitals
	ArrivedAt time.Time
}
