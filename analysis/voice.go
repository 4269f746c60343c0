package analysis

import "math"

// minPerturbationFrames is the smallest number of valid frames for which a
// perturbation trend is reported. Two frames give a single difference only.
const minPerturbationFrames = 3

// CalculateF0 estimates the fundamental frequency as the median of the valid
// (finite, positive) pitch frames. The median resists the octave jumps that
// pitch trackers produce. No valid frame yields 0.
func CalculateF0(pitchValues []float64) float64 {
	valid := validSamples(pitchValues)
	switch len(valid) {
	case 0:
		return 0
	case 1:
		return valid[0]
	}
	return median(valid)
}

// CalculateJitter is the relative average perturbation of the pitch track:
// mean absolute difference of consecutive valid frames over their mean.
func CalculateJitter(pitchValues []float64) float64 {
	return relativePerturbation(validSamples(pitchValues))
}

// CalculateShimmer applies the jitter computation to amplitude frames.
func CalculateShimmer(amplitudeValues []float64) float64 {
	return relativePerturbation(validSamples(amplitudeValues))
}

func relativePerturbation(valid []float64) float64 {
	if len(valid) < minPerturbationFrames {
		return 0
	}
	diffs := 0.0
	for i := 0; i+1 < len(valid); i++ {
		diffs += math.Abs(valid[i] - valid[i+1])
	}
	m := mean(valid)
	if m == 0 || diffs == 0 {
		return 0
	}
	return (diffs / float64(len(valid)-1)) / m
}

// PitchStats describes the valid frames of a pitch track.
type PitchStats struct {
	Voiced int     `json:"voiced_frames" yaml:"voiced_frames"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

func SummarizePitch(pitchValues []float64) PitchStats {
	valid := validSamples(pitchValues)
	if len(valid) == 0 {
		return PitchStats{}
	}
	st := PitchStats{Voiced: len(valid), Mean: mean(valid), Std: stddev(valid), Min: valid[0], Max: valid[0]}
	for _, v := range valid[1:] {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	return st
}

// AmplitudeStats describes the valid frames of an amplitude (RMS) track.
// MeanDB is the mean level in dB relative to full scale 1.0.
type AmplitudeStats struct {
	Frames int     `json:"frames" yaml:"frames"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	MeanDB float64 `json:"mean_db" yaml:"mean_db"`
}

func SummarizeAmplitude(amplitudeValues []float64) AmplitudeStats {
	valid := validSamples(amplitudeValues)
	if len(valid) == 0 {
		return AmplitudeStats{}
	}
	st := AmplitudeStats{Frames: len(valid), Mean: mean(valid), Std: stddev(valid), Min: valid[0], Max: valid[0]}
	for _, v := range valid[1:] {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.MeanDB = 20 * math.Log10(st.Mean)
	return st
}
