package algo

import (
	"math"
	"time"
)

// DecayShape selects how a DecayCurve falls off after its window.
type DecayShape string

// Supported decay shapes.
const (
	ExponentialDecay DecayShape = "exponential" // Scale is the half-life in days
	LinearDecay      DecayShape = "linear"      // Scale is the days to reach zero
)

// DecayCurve maps days since an event to a factor in [Floor, 1].
// The factor is 1 within Window days and never increases with age.
type DecayCurve struct {
	Window float64
	Scale  float64
	Floor  float64
	Shape  DecayShape
}

// At returns the factor for an event that happened days ago.
func (c DecayCurve) At(days float64) float64 {
	if math.IsNaN(days) {
		return c.Floor
	}
	if days <= c.Window {
		return 1
	}
	if c.Scale <= 0 {
		return c.Floor
	}
	over := days - c.Window
	var v float64
	switch c.Shape {
	case LinearDecay:
		v = 1 - over/c.Scale
	default:
		v = math.Exp2(-over / c.Scale)
	}
	return clamp(v, c.Floor, 1)
}

// DaysSince returns the fractional days from t to asOf.
// A zero t is infinitely old; a t after asOf counts as zero days.
func DaysSince(asOf, t time.Time) float64 {
	if t.IsZero() {
		return math.Inf(1)
	}
	d := asOf.Sub(t).Hours() / 24
	if d < 0 {
		return 0
	}
	return d
}
