package analysis

import (
	"errors"
	"fmt"
)

// DefaultPauseThreshold is the shortest gap, in seconds, reported as a pause.
const DefaultPauseThreshold = 0.5

// ErrInvalidInput marks a caller-contract violation such as a negative
// duration or a segment that ends before it starts.
var ErrInvalidInput = errors.New("invalid analysis input")

// Config holds the tunables of Analyze.
type Config struct {
	PauseThreshold float64
	Lexicon        *Lexicon
	Weights        ScoreWeights
}

func DefaultConfig() Config {
	return Config{
		PauseThreshold: DefaultPauseThreshold,
		Lexicon:        DefaultLexicon(),
		Weights:        DefaultScoreWeights(),
	}
}

// Validate checks the preconditions of Analyze. Empty and zero-valued input
// is valid.
func (in Input) Validate() error {
	if in.Words < 0 {
		return fmt.Errorf("%w: negative word count %d", ErrInvalidInput, in.Words)
	}
	if in.DurationSeconds < 0 || !isFinite(in.DurationSeconds) {
		return fmt.Errorf("%w: duration %v", ErrInvalidInput, in.DurationSeconds)
	}
	for i, s := range in.Segments {
		if !isFinite(s.Start) || !isFinite(s.End) || s.End <= s.Start {
			return fmt.Errorf("%w: segment %d [%v, %v]", ErrInvalidInput, i, s.Start, s.End)
		}
	}
	return nil
}

// AnalyzeSpeechQuality is Analyze with DefaultConfig.
func AnalyzeSpeechQuality(in Input) (Result, error) {
	return Analyze(in, DefaultConfig())
}

// Analyze runs every calculator over one session and assembles the result.
// All-empty input yields an all-zero Result. The same input always produces
// the same Result.
func Analyze(in Input, cfg Config) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	if cfg.PauseThreshold <= 0 || !isFinite(cfg.PauseThreshold) {
		return Result{}, fmt.Errorf("%w: pause threshold %v", ErrInvalidInput, cfg.PauseThreshold)
	}

	res := Result{
		WPM:     WPM(in.Words, in.DurationSeconds),
		Pauses:  DetectPauses(in.Segments, cfg.PauseThreshold),
		F0:      CalculateF0(in.PitchValues),
		Jitter:  CalculateJitter(in.PitchValues),
		Shimmer: CalculateShimmer(in.AmplitudeValues),
	}
	matches := cfg.Lexicon.Scan(in.Text)
	res.Fillers = distinctFillers(matches)

	res.QualityScore = cfg.Weights.Score(QualityFactors{
		WPM:         res.WPM,
		PauseCount:  len(res.Pauses),
		FillerCount: len(matches),
		Jitter:      res.Jitter,
		Shimmer:     res.Shimmer,
	})
	return res, nil
}
