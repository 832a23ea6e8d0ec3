package algo

import "github.com/huangsam/readiness/schema"

// Confidence formula constants.
const (
	confidenceBase      = 0.3 // Share earned with only a learning record
	confidenceCoverage  = 0.7 // Share earned by completeness
	confidenceDisagree  = 0.4 // Max penalty for disagreeing components
	confidenceMaxSpread = 50  // Largest possible stddev of values in [0, 100]
)

// Confidence estimates how predictive a result is. It grows with completeness
// and shrinks as the computed components disagree with each other.
// The result lies in (0, 100].
func Confidence(completeness float64, c schema.ComponentScores) float64 {
	values := make([]float64, 0, len(schema.AllComponents))
	for _, key := range schema.AllComponents {
		if s := c.Get(key); s.Computed {
			values = append(values, s.Value)
		}
	}
	coverage := confidenceBase + confidenceCoverage*clamp(completeness, 0, 1)
	agreement := 1 - confidenceDisagree*clamp(stddev(values)/confidenceMaxSpread, 0, 1)
	return clamp(100*coverage*agreement, 1e-9, 100)
}
