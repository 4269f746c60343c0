package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nearOptimal() QualityFactors {
	return QualityFactors{WPM: 150, PauseCount: 1, FillerCount: 0, Jitter: 0.01, Shimmer: 0.02}
}

func TestCalculateQualityScore_NearOptimal(t *testing.T) {
	got := CalculateQualityScore(nearOptimal())

	assert.Greater(t, got, 80.0)
	assert.InDelta(t, 96.0, got, 1e-9)
}

func TestCalculateQualityScore_NoSpeechScoresZero(t *testing.T) {
	assert.Zero(t, CalculateQualityScore(QualityFactors{}))
	assert.Zero(t, CalculateQualityScore(QualityFactors{PauseCount: 1, Jitter: 0.01}))
}

func TestCalculateQualityScore_MonotonicInFillers(t *testing.T) {
	prev := CalculateQualityScore(nearOptimal())
	for n := 1; n <= 40; n++ {
		f := nearOptimal()
		f.FillerCount = n
		got := CalculateQualityScore(f)
		assert.LessOrEqual(t, got, prev, "fillers=%d", n)
		prev = got
	}
	assert.Zero(t, prev, "score is clamped at 0")
}

func TestCalculateQualityScore_MonotonicInPerturbation(t *testing.T) {
	prevJ, prevS := 101.0, 101.0
	for i := 0; i <= 50; i++ {
		v := float64(i) / 100

		fj := nearOptimal()
		fj.Jitter = v
		gotJ := CalculateQualityScore(fj)
		assert.LessOrEqual(t, gotJ, prevJ, "jitter=%v", v)
		prevJ = gotJ

		fs := nearOptimal()
		fs.Shimmer = v
		gotS := CalculateQualityScore(fs)
		assert.LessOrEqual(t, gotS, prevS, "shimmer=%v", v)
		prevS = gotS
	}
}

func TestCalculateQualityScore_PaceBand(t *testing.T) {
	in := func(wpm float64) float64 {
		f := nearOptimal()
		f.WPM = wpm
		return CalculateQualityScore(f)
	}

	assert.Equal(t, in(150), in(135))
	assert.Equal(t, in(150), in(165))
	assert.Less(t, in(100), in(150))
	assert.Less(t, in(220), in(150))
	assert.Less(t, in(60), in(100))
}

func TestCalculateQualityScore_Pauses(t *testing.T) {
	with := func(n int) float64 {
		f := nearOptimal()
		f.PauseCount = n
		return CalculateQualityScore(f)
	}

	assert.Equal(t, with(0), with(3), "a few pauses are natural")
	assert.Less(t, with(5), with(3))
	assert.Less(t, with(12), with(5))
}

func TestCalculateQualityScore_Range(t *testing.T) {
	worst := QualityFactors{WPM: 400, PauseCount: 50, FillerCount: 50, Jitter: 0.9, Shimmer: 0.9}
	assert.Zero(t, CalculateQualityScore(worst))

	best := QualityFactors{WPM: 150}
	assert.Equal(t, 100.0, CalculateQualityScore(best))
}

func TestScoreWeights_Custom(t *testing.T) {
	w := DefaultScoreWeights()
	w.PerFiller = 10

	f := nearOptimal()
	f.FillerCount = 2
	assert.InDelta(t, 76.0, w.Score(f), 1e-9)
}

func TestScoreWeights_Penalties(t *testing.T) {
	f := QualityFactors{WPM: 100, PauseCount: 5, FillerCount: 2, Jitter: 0.01, Shimmer: 0.03}

	p := DefaultScoreWeights().Penalties(f)

	assert.InDelta(t, 15.0, p.Pace, 1e-9)
	assert.InDelta(t, 6.0, p.Fillers, 1e-9)
	assert.InDelta(t, 2.0, p.Jitter, 1e-9)
	assert.InDelta(t, 3.0, p.Shimmer, 1e-9)
	assert.InDelta(t, 4.0, p.Pauses, 1e-9)
	assert.InDelta(t, 100-p.Total(), CalculateQualityScore(f), 1e-9)
}

func TestScoreWeights_PacePenaltyCapped(t *testing.T) {
	p := DefaultScoreWeights().Penalties(QualityFactors{WPM: 1000})
	assert.Equal(t, 40.0, p.Pace)
}
