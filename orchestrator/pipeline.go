package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/maastricht-university/speech-quality/analysis"
	"github.com/maastricht-university/speech-quality/clients"
	cfg "github.com/maastricht-university/speech-quality/config"
)

type Pipeline struct {
	cfg     *cfg.Root
	acfg    analysis.Config
	http    *clients.HTTP
	log     *logrus.Entry
	metrics *Metrics
	now     func() time.Time
}

func NewPipeline(c *cfg.Root, log *logrus.Logger, m *Metrics) (*Pipeline, error) {
	acfg, err := c.AnalysisConfig()
	if err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}
	if m == nil {
		m = DefaultMetrics()
	}
	return &Pipeline{
		cfg:     c,
		acfg:    acfg,
		http:    clients.NewHTTP(cfg.DurSeconds(c.Services.TimeoutSeconds)),
		log:     log.WithField("component", "pipeline"),
		metrics: m,
		now:     time.Now,
	}, nil
}

// Run analyzes one session file and persists its report.
func (p *Pipeline) Run(ctx context.Context, path string) (*Report, error) {
	return p.observe(ctx, path, func() (*Report, error) {
		s, err := loadSession(path)
		if err != nil {
			return nil, err
		}
		return p.run(ctx, s)
	})
}

// observe records metrics and logs the failure of one session attempt.
func (p *Pipeline) observe(ctx context.Context, path string, analyze func() (*Report, error)) (*Report, error) {
	start := p.now()
	r, err := analyze()

	status := "ok"
	if err != nil {
		status = "error"
	}
	p.metrics.SessionsAnalyzed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	p.metrics.AnalysisDuration.Record(ctx, p.now().Sub(start).Seconds())
	if err != nil {
		p.log.WithError(err).WithField("path", path).Error("session failed")
		return nil, err
	}
	p.metrics.QualityScore.Record(ctx, r.Result.QualityScore)
	p.metrics.Fillers.Add(ctx, int64(r.FillerCount))
	return r, nil
}

func (p *Pipeline) run(ctx context.Context, s *Session) (*Report, error) {
	log := p.log.WithField("session_id", s.ID)

	if err := p.fetchSignals(ctx, s, log); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}

	in := s.input()
	res, err := analysis.Analyze(in, p.acfg)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}

	r := p.report(s, in, res)
	log.WithFields(logrus.Fields{
		"wpm":     fmt.Sprintf("%.1f", res.WPM),
		"pauses":  len(res.Pauses),
		"fillers": r.FillerCount,
		"f0":      fmt.Sprintf("%.1f", res.F0),
		"score":   fmt.Sprintf("%.1f", res.QualityScore),
	}).Info("session analyzed")

	if url := p.cfg.Services.Visualization.URL; url != "" {
		cats, vals := radarValues(r.Penalties, res.QualityScore)
		radar, err := p.http.GenerateRadar(ctx, url, clients.RadarReq{
			Categories:  cats,
			Values:      vals,
			StudentName: s.ID,
			OutputDir:   p.cfg.Paths.Outputs,
		})
		if err != nil {
			// the report is still useful without the chart
			log.WithError(err).Warn("radar chart failed")
		} else {
			r.RadarPath = radar.Path
		}
	}

	if p.cfg.Paths.Outputs != "" {
		dir, err := persist(p.cfg.Paths.Outputs, r)
		if err != nil {
			return nil, fmt.Errorf("session %s: persist: %w", s.ID, err)
		}
		r.OutputDir = dir
		log.WithField("dir", dir).Debug("report written")
	}
	return r, nil
}

// fetchSignals asks the upstream services for whatever the session file is
// missing. Sessions without audio, or with no service configured, are
// analyzed as given.
func (p *Pipeline) fetchSignals(ctx context.Context, s *Session, log *logrus.Entry) error {
	if s.Audio == "" {
		return nil
	}
	if url := p.cfg.Services.ASR.URL; url != "" && len(s.Segments) == 0 && s.Text == "" {
		asr, err := p.http.ASR(ctx, url, s.Audio)
		if err != nil {
			return err
		}
		for _, seg := range asr.Segments {
			s.Segments = append(s.Segments, analysis.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
		}
		s.Text = asr.FullText()
		log.WithFields(logrus.Fields{"segments": len(s.Segments), "language": asr.Language}).Debug("transcript fetched")
	}
	if url := p.cfg.Services.Prosody.URL; url != "" && len(s.PitchValues) == 0 && len(s.AmplitudeValues) == 0 {
		pr, err := p.http.Prosody(ctx, url, s.Audio)
		if err != nil {
			return err
		}
		s.PitchValues = pr.Pitch
		s.AmplitudeValues = pr.Amplitude
		if s.DurationSeconds == 0 {
			s.DurationSeconds = pr.Duration
		}
		log.WithField("frames", len(pr.Pitch)).Debug("prosody fetched")
	}
	return nil
}

func (p *Pipeline) report(s *Session, in analysis.Input, res analysis.Result) *Report {
	matches := p.acfg.Lexicon.Scan(in.Text)
	factors := analysis.QualityFactors{
		WPM:         res.WPM,
		PauseCount:  len(res.Pauses),
		FillerCount: len(matches),
		Jitter:      res.Jitter,
		Shimmer:     res.Shimmer,
	}
	return &Report{
		SessionID:    s.ID,
		Source:       s.path,
		GeneratedAt:  p.now().UTC(),
		Result:       res,
		Penalties:    p.acfg.Weights.Penalties(factors),
		FillerCounts: analysis.CountFillers(matches),
		FillerCount:  len(matches),
		FillerRate:   fillerRate(len(matches), in.Words),
		PauseStats:   analysis.SummarizePauses(res.Pauses),
		PitchStats:   analysis.SummarizePitch(in.PitchValues),
		Volume:       analysis.SummarizeAmplitude(in.AmplitudeValues),
		Vocabulary:   analysis.AnalyzeVocabulary(in.Text),
		Patterns:     analysis.DetectPatterns(in.Text),
		PaceTimeline: p.paceTimeline(in.Segments),
		Feedback:     analysis.Coach(res, len(matches), p.acfg.Weights),
	}
}
