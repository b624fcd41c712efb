package engine

// OverallScore is the mean of every outcome's six-year achievement mean.
// An empty record set scores zero.
func OverallScore(outcomes []OutcomeRecord) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range outcomes {
		sum += r.Mean()
	}
	return sum / float64(len(outcomes))
}

// StatusFor maps an overall score onto the four-tier programme status.
// Bands are inclusive on their lower edge: 90 is Excellent, 80 is Good,
// 70 is NeedsImprovement.
func StatusFor(score float64) Status {
	switch {
	case score >= 90:
		return StatusExcellent
	case score >= 80:
		return StatusGood
	case score >= 70:
		return StatusNeedsImprovement
	default:
		return StatusCritical
	}
}
