package service

// AggregateScores combines per-phase scores into the overall rating: the
// arithmetic mean with every scoring phase weighted equally. The result is
// deliberately unrounded; display precision is the caller's concern (the
// review UI shows one decimal place). Completeness of the score set is
// enforced by the session completion gate, not re-validated here.
func AggregateScores(scores map[string]int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, value := range scores {
		sum += value
	}
	return float64(sum) / float64(len(scores))
}
