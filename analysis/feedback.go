package analysis

import "fmt"

// Feedback is a short coaching note per category.
type Feedback struct {
	Pace    string `json:"pace" yaml:"pace"`
	Fillers string `json:"fillers" yaml:"fillers"`
	Pauses  string `json:"pauses" yaml:"pauses"`
	Voice   string `json:"voice" yaml:"voice"`
	Overall string `json:"overall" yaml:"overall"`
}

// voice stability thresholds, as ratios
const (
	steadyJitter  = 0.02
	steadyShimmer = 0.06
)

// Coach turns a result into feedback, judged against w.
func Coach(res Result, fillerCount int, w ScoreWeights) Feedback {
	var fb Feedback

	switch {
	case res.WPM <= 0:
		fb.Pace = "No speech detected."
	case res.WPM < w.TargetWPMLow:
		fb.Pace = fmt.Sprintf("Speaking slowly at %.0f wpm; aim for %.0f-%.0f.", res.WPM, w.TargetWPMLow, w.TargetWPMHigh)
	case res.WPM > w.TargetWPMHigh:
		fb.Pace = fmt.Sprintf("Speaking too fast at %.0f wpm; slow down and add pauses.", res.WPM)
	default:
		fb.Pace = "Excellent pacing."
	}

	switch {
	case fillerCount == 0:
		fb.Fillers = "No filler words."
	case fillerCount <= 3:
		fb.Fillers = fmt.Sprintf("%d filler words; minor room for improvement.", fillerCount)
	default:
		fb.Fillers = fmt.Sprintf("%d filler words; replace them with short silent pauses.", fillerCount)
	}

	switch n := len(res.Pauses); {
	case n == 0:
		fb.Pauses = "Consider adding strategic pauses."
	case n <= w.FreePauses:
		fb.Pauses = "Good use of pauses."
	default:
		fb.Pauses = fmt.Sprintf("%d long pauses; keep the flow going between ideas.", n)
	}

	switch {
	case res.F0 == 0:
		fb.Voice = "No voiced frames to assess."
	case res.Jitter <= steadyJitter && res.Shimmer <= steadyShimmer:
		fb.Voice = "Steady, controlled voice."
	default:
		fb.Voice = "Pitch or loudness wavers; support the voice with steady breathing."
	}

	switch s := res.QualityScore; {
	case s >= 80:
		fb.Overall = "Excellent delivery."
	case s >= 60:
		fb.Overall = "Good delivery with minor areas for improvement."
	case s >= 40:
		fb.Overall = "Several areas need work."
	default:
		fb.Overall = "Significant improvement needed."
	}
	return fb
}
