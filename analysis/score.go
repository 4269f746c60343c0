package analysis

import "math"

const maxScore = 100.0

// ScoreWeights tunes the quality score. Every penalty is independent and
// monotonic in its factor.
type ScoreWeights struct {
	// TargetWPMLow and TargetWPMHigh bound the pace band that costs nothing.
	TargetWPMLow  float64 `mapstructure:"target_wpm_low" yaml:"target_wpm_low"`
	TargetWPMHigh float64 `mapstructure:"target_wpm_high" yaml:"target_wpm_high"`
	// PacePerWPM is charged per wpm outside the band, up to MaxPacePenalty.
	PacePerWPM     float64 `mapstructure:"pace_per_wpm" yaml:"pace_per_wpm"`
	MaxPacePenalty float64 `mapstructure:"max_pace_penalty" yaml:"max_pace_penalty"`
	PerFiller      float64 `mapstructure:"per_filler" yaml:"per_filler"`
	// Jitter and Shimmer multiply the raw ratios (0.01 jitter * 200 = 2 points).
	Jitter  float64 `mapstructure:"jitter" yaml:"jitter"`
	Shimmer float64 `mapstructure:"shimmer" yaml:"shimmer"`
	// FreePauses pauses are treated as natural pacing; each one beyond costs PerExtraPause.
	FreePauses    int     `mapstructure:"free_pauses" yaml:"free_pauses"`
	PerExtraPause float64 `mapstructure:"per_extra_pause" yaml:"per_extra_pause"`
}

// DefaultScoreWeights centres the pace band on 150 wpm.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TargetWPMLow:   130,
		TargetWPMHigh:  170,
		PacePerWPM:     0.5,
		MaxPacePenalty: 40,
		PerFiller:      3,
		Jitter:         200,
		Shimmer:        100,
		FreePauses:     3,
		PerExtraPause:  2,
	}
}

// CalculateQualityScore combines the factors into a score in [0, 100] using
// DefaultScoreWeights.
func CalculateQualityScore(f QualityFactors) float64 {
	return DefaultScoreWeights().Score(f)
}

// Penalties is the number of points each factor took off the baseline.
type Penalties struct {
	Pace    float64 `json:"pace" yaml:"pace"`
	Fillers float64 `json:"fillers" yaml:"fillers"`
	Jitter  float64 `json:"jitter" yaml:"jitter"`
	Shimmer float64 `json:"shimmer" yaml:"shimmer"`
	Pauses  float64 `json:"pauses" yaml:"pauses"`
}

func (p Penalties) Total() float64 {
	return p.Pace + p.Fillers + p.Jitter + p.Shimmer + p.Pauses
}

// Penalties breaks the deduction of Score down per factor.
func (w ScoreWeights) Penalties(f QualityFactors) Penalties {
	p := Penalties{
		Pace:    w.pacePenalty(f.WPM),
		Fillers: w.PerFiller * float64(max(f.FillerCount, 0)),
		Jitter:  w.Jitter * nonNegative(f.Jitter),
		Shimmer: w.Shimmer * nonNegative(f.Shimmer),
	}
	if extra := f.PauseCount - w.FreePauses; extra > 0 {
		p.Pauses = w.PerExtraPause * float64(extra)
	}
	return p
}

// Score applies w to f. A session without speech (wpm 0) scores 0: silence
// is not evidence of quality.
func (w ScoreWeights) Score(f QualityFactors) float64 {
	if f.WPM <= 0 || !isFinite(f.WPM) {
		return 0
	}
	return clamp(maxScore-w.Penalties(f).Total(), 0, maxScore)
}

func (w ScoreWeights) pacePenalty(wpm float64) float64 {
	if !isFinite(wpm) {
		return 0
	}
	var dist float64
	switch {
	case wpm < w.TargetWPMLow:
		dist = w.TargetWPMLow - wpm
	case wpm > w.TargetWPMHigh:
		dist = wpm - w.TargetWPMHigh
	default:
		return 0
	}
	p := dist * w.PacePerWPM
	if w.MaxPacePenalty > 0 {
		p = math.Min(p, w.MaxPacePenalty)
	}
	return p
}

func nonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}
