package analysis

// WPM returns words per minute. A zero-length (or invalid) duration has no
// defined rate and yields 0.
func WPM(words int, durationSeconds float64) float64 {
	if durationSeconds <= 0 || !isFinite(durationSeconds) || words <= 0 {
		return 0
	}
	return float64(words) / (durationSeconds / 60)
}
