package algo

import "math"

// Term is one weighted input to a blend.
type Term struct {
	Name    string
	Weight  float64
	Value   float64
	Present bool
}

// Blend returns the weighted mean of the present terms, renormalizing the
// weights so that absent terms are dropped rather than counted as zero.
// contributions[i] is term i's share of the result (0 when absent).
// ok is false when no present term carries positive weight.
func Blend(terms []Term) (score float64, contributions []float64, ok bool) {
	contributions = make([]float64, len(terms))
	total := 0.0
	for _, t := range terms {
		if t.Present && t.Weight > 0 {
			total += t.Weight
		}
	}
	if total <= 0 {
		return 0, contributions, false
	}
	for i, t := range terms {
		if !t.Present || t.Weight <= 0 {
			continue
		}
		contributions[i] = t.Value * t.Weight / total
		score += contributions[i]
	}
	return score, contributions, true
}

// clamp bounds v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// clampScore bounds v to the score range [0, 100].
func clampScore(v float64) float64 {
	return clamp(v, 0, 100)
}

// mean returns the arithmetic mean of values, or 0 for none.
func mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev returns the population standard deviation of values.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values...)
	sq := 0.0
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)))
}
