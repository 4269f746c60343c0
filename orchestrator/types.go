package orchestrator

import (
	"time"

	"github.com/maastricht-university/speech-quality/analysis"
)

// Session is one session file as produced by the upstream pipeline.
// Missing signals may be filled from the ASR and prosody services when
// Audio is set.
type Session struct {
	ID             string `json:"session_id" yaml:"session_id"`
	Audio          string `json:"audio,omitempty" yaml:"audio,omitempty"`
	analysis.Input `yaml:",inline"`

	path string
}

type Window struct {
	T0   float64            `json:"t0" yaml:"t0"`
	T1   float64            `json:"t1" yaml:"t1"`
	Segs []analysis.Segment `json:"-" yaml:"-"`
	// Aggregates
	Words int     `json:"words" yaml:"words"`
	WPM   float64 `json:"wpm" yaml:"wpm"`
}

type Report struct {
	SessionID    string                  `json:"session_id" yaml:"session_id"`
	Source       string                  `json:"source" yaml:"source"`
	GeneratedAt  time.Time               `json:"generated_at" yaml:"generated_at"`
	Result       analysis.Result         `json:"result" yaml:"result"`
	Penalties    analysis.Penalties      `json:"penalties" yaml:"penalties"`
	FillerCounts map[string]int          `json:"filler_counts" yaml:"filler_counts"`
	FillerCount  int                     `json:"filler_count" yaml:"filler_count"`
	FillerRate   float64                 `json:"filler_rate" yaml:"filler_rate"`
	PauseStats   analysis.PauseStats     `json:"pause_stats" yaml:"pause_stats"`
	PitchStats   analysis.PitchStats     `json:"pitch_stats" yaml:"pitch_stats"`
	Volume       analysis.AmplitudeStats `json:"volume" yaml:"volume"`
	Vocabulary   analysis.Vocabulary     `json:"vocabulary" yaml:"vocabulary"`
	Patterns     analysis.Patterns       `json:"speech_patterns" yaml:"speech_patterns"`
	PaceTimeline []Window                `json:"pace_timeline" yaml:"pace_timeline"`
	Feedback     analysis.Feedback       `json:"feedback" yaml:"feedback"`
	RadarPath    string                  `json:"radar_path,omitempty" yaml:"radar_path,omitempty"`
	OutputDir    string                  `json:"-" yaml:"-"`
}
