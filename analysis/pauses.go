package analysis

import "sort"

// DetectPauses reports every gap between consecutive segments (in start-time
// order) that lasts at least thresholdSeconds. Overlapping or touching
// segments never produce a pause. The input slice is not modified.
func DetectPauses(segments []Segment, thresholdSeconds float64) []Pause {
	pauses := []Pause{}
	if len(segments) < 2 {
		return pauses
	}
	ordered := append([]Segment(nil), segments...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	for i := 1; i < len(ordered); i++ {
		prevEnd := ordered[i-1].End
		nextStart := ordered[i].Start
		gap := nextStart - prevEnd
		if gap <= 0 || gap < thresholdSeconds {
			continue
		}
		pauses = append(pauses, Pause{Start: prevEnd, End: nextStart, Duration: gap})
	}
	return pauses
}

// PauseStats summarises a pause list.
type PauseStats struct {
	Count           int     `json:"count" yaml:"count"`
	TotalDuration   float64 `json:"total_duration" yaml:"total_duration"`
	AverageDuration float64 `json:"average_duration" yaml:"average_duration"`
	LongestDuration float64 `json:"longest_duration" yaml:"longest_duration"`
}

func SummarizePauses(pauses []Pause) PauseStats {
	st := PauseStats{Count: len(pauses)}
	for _, p := range pauses {
		st.TotalDuration += p.Duration
		if p.Duration > st.LongestDuration {
			st.LongestDuration = p.Duration
		}
	}
	if st.Count > 0 {
		st.AverageDuration = st.TotalDuration / float64(st.Count)
	}
	return st
}
