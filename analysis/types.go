package analysis

// Segment is a contiguous span of transcribed speech, in seconds.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
}

// Pause is a silent gap between two consecutive segments.
type Pause struct {
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end" yaml:"end"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// QualityFactors is the summary the score aggregator works from.
type QualityFactors struct {
	WPM         float64
	PauseCount  int
	FillerCount int
	Jitter      float64
	Shimmer     float64
}

// Input carries one session's signals.
type Input struct {
	Words           int       `json:"words" yaml:"words"`
	DurationSeconds float64   `json:"duration" yaml:"duration"`
	Segments        []Segment `json:"segments" yaml:"segments"`
	Text            string    `json:"text" yaml:"text"`
	PitchValues     []float64 `json:"pitch" yaml:"pitch"`
	AmplitudeValues []float64 `json:"amplitude" yaml:"amplitude"`
}

// Result is the outcome of Analyze. Pauses and Fillers are never nil.
type Result struct {
	WPM          float64  `json:"wpm" yaml:"wpm"`
	Pauses       []Pause  `json:"pauses" yaml:"pauses"`
	Fillers      []string `json:"fillers" yaml:"fillers"`
	F0           float64  `json:"f0" yaml:"f0"`
	Jitter       float64  `json:"jitter" yaml:"jitter"`
	Shimmer      float64  `json:"shimmer" yaml:"shimmer"`
	QualityScore float64  `json:"quality_score" yaml:"quality_score"`
}
