package orchestrator

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for all pipeline metrics.
const meterName = "github.com/maastricht-university/speech-quality"

// Metrics holds the pipeline instruments. Safe for concurrent use.
type Metrics struct {
	// SessionsAnalyzed counts finished sessions. Attribute "status" is ok or error.
	SessionsAnalyzed metric.Int64Counter
	// AnalysisDuration is the wall time of one session, including service calls.
	AnalysisDuration metric.Float64Histogram
	// QualityScore is the distribution of composite scores.
	QualityScore metric.Float64Histogram
	// Fillers counts filler occurrences across sessions.
	Fillers metric.Int64Counter
}

var latencyBuckets = []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60}
var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SessionsAnalyzed, err = m.Int64Counter("speechq.sessions",
		metric.WithDescription("Sessions analyzed, by status."),
	); err != nil {
		return nil, err
	}
	if met.AnalysisDuration, err = m.Float64Histogram("speechq.session.duration",
		metric.WithDescription("Time to analyze one session."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.QualityScore, err = m.Float64Histogram("speechq.quality_score",
		metric.WithDescription("Composite speech quality score."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Fillers, err = m.Int64Counter("speechq.fillers",
		metric.WithDescription("Filler words and phrases detected."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns metrics bound to the global meter provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("orchestrator: create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}
