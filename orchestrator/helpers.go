package orchestrator

import (
	"math"
	"sort"

	"github.com/maastricht-university/speech-quality/analysis"
)

// window slides a time_window wide frame, advancing by time_window-overlap,
// across the session.
func (p *Pipeline) window(segs []analysis.Segment) []Window {
	if len(segs) == 0 || p.cfg.Features.TimeWindow <= 0 {
		return nil
	}
	ordered := append([]analysis.Segment(nil), segs...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	// compute session bounds
	start := ordered[0].Start
	end := ordered[0].End
	for _, s := range ordered[1:] {
		end = math.Max(end, s.End)
	}
	w := float64(p.cfg.Features.TimeWindow)
	o := float64(p.cfg.Features.Overlap)
	step := w - o
	if step <= 0 {
		step = w
	}

	var out []Window
	for t0 := start; t0 < end; t0 += step {
		t1 := math.Min(t0+w, end)
		var slice []analysis.Segment
		for _, s := range ordered {
			if s.End <= t0 || s.Start >= t1 {
				continue
			}
			slice = append(slice, s)
		}
		out = append(out, Window{T0: t0, T1: t1, Segs: slice})
	}
	return out
}

// aggregate credits each segment's words to the window in proportion to how
// much of the segment falls inside it.
func (p *Pipeline) aggregate(w *Window) {
	if len(w.Segs) == 0 {
		return
	}
	words := 0.0
	for _, s := range w.Segs {
		d := s.End - s.Start
		if d <= 0 {
			continue
		}
		inside := math.Min(s.End, w.T1) - math.Max(s.Start, w.T0)
		words += float64(analysis.CountWords(s.Text)) * math.Max(0, inside) / d
	}
	w.Words = int(math.Round(words))
	w.WPM = analysis.WPM(w.Words, w.T1-w.T0)
}

func (p *Pipeline) paceTimeline(segs []analysis.Segment) []Window {
	windows := p.window(segs)
	for i := range windows {
		p.aggregate(&windows[i])
	}
	return windows
}

// fillerRate is fillers per spoken word.
func fillerRate(fillers, words int) float64 {
	if words <= 0 {
		return 0
	}
	return float64(fillers) / float64(words)
}

// radarValues turns the per-factor penalties into 0-100 category scores.
func radarValues(pen analysis.Penalties, score float64) ([]string, []float64) {
	sub := func(v float64) float64 { return math.Max(0, 100-v) }
	return []string{"pace", "fillers", "pauses", "pitch stability", "loudness stability", "overall"},
		[]float64{sub(pen.Pace), sub(pen.Fillers), sub(pen.Pauses), sub(pen.Jitter), sub(pen.Shimmer), score}
}
