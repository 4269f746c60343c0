package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/speech-quality/analysis"
	cfg "github.com/maastricht-university/speech-quality/config"
)

const demoSession = `{
  "session_id": "demo",
  "words": 150,
  "duration": 60,
  "segments": [
    {"start": 0, "end": 20, "text": "Today I want to talk about um our roadmap,"},
    {"start": 21, "end": 40, "text": "you know, the next quarter"},
    {"start": 40.2, "end": 60, "text": "and that is the plan."}
  ],
  "text": "Today I want to talk about um our roadmap, you know, the next quarter and that is the plan.",
  "pitch": [200, 0, 202, 198, 201],
  "amplitude": [0.5, 0.51, 0.5, 0.49]
}`

func testConfig(t *testing.T) *cfg.Root {
	t.Helper()
	c := &cfg.Root{}
	c.Pipeline.Concurrency = 2
	c.Services.TimeoutSeconds = 5
	c.Features = cfg.Features{TimeWindow: 30, Overlap: 15}
	c.Analysis.PauseThreshold = analysis.DefaultPauseThreshold
	c.Analysis.Scoring = analysis.DefaultScoreWeights()
	c.Paths.Outputs = t.TempDir()
	return c
}

type harness struct {
	p      *Pipeline
	hook   *logtest.Hook
	reader *sdkmetric.ManualReader
}

func newHarness(t *testing.T, c *cfg.Root) *harness {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := NewMetrics(mp)
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p, err := NewPipeline(c, logger, m)
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return &harness{p: p, hook: hook, reader: reader}
}

func writeSession(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	want := attribute.NewSet(attrs...)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if dp.Attributes.Equals(&want) {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestRun_SessionReport(t *testing.T) {
	c := testConfig(t)
	h := newHarness(t, c)
	path := writeSession(t, t.TempDir(), "demo.json", demoSession)

	r, err := h.p.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "demo", r.SessionID)
	assert.Equal(t, path, r.Source)
	assert.InDelta(t, 150.0, r.Result.WPM, 1e-9)
	assert.Equal(t, []analysis.Pause{{Start: 20, End: 21, Duration: 1}}, r.Result.Pauses)
	assert.Equal(t, []string{"um", "you know"}, r.Result.Fillers)
	assert.Equal(t, 200.5, r.Result.F0)
	assert.Greater(t, r.Result.QualityScore, 80.0)

	assert.Equal(t, map[string]int{"um": 1, "you know": 1}, r.FillerCounts)
	assert.Equal(t, 2, r.FillerCount)
	assert.InDelta(t, 2.0/150, r.FillerRate, 1e-12)
	assert.Equal(t, 1, r.PauseStats.Count)
	assert.Equal(t, 4, r.PitchStats.Voiced)
	assert.InDelta(t, 6.0, r.Penalties.Fillers, 1e-9)
	assert.Equal(t, "Excellent pacing.", r.Feedback.Pace)
	assert.NotEmpty(t, r.PaceTimeline)

	assert.Equal(t, 4, r.Volume.Frames)
	assert.InDelta(t, 0.5, r.Volume.Mean, 1e-12)
	assert.Equal(t, 0.49, r.Volume.Min)
	assert.Equal(t, 0.51, r.Volume.Max)
	assert.Equal(t, 19, r.Vocabulary.TotalWords)
	assert.Equal(t, 18, r.Vocabulary.UniqueWords)
	assert.Equal(t, "high", r.Vocabulary.Richness)
	assert.Equal(t, analysis.WordCount{Word: "the", Count: 2}, r.Vocabulary.MostCommon[0])
	assert.Equal(t, analysis.Patterns{SelfCorrections: 1}, r.Patterns)

	want, err := analysis.Analyze(mustSession(t, path).input(), h.p.acfg)
	require.NoError(t, err)
	assert.Equal(t, want, r.Result)

	assert.Equal(t, filepath.Join(c.Paths.Outputs, "demo"), r.OutputDir)
	var fromJSON Report
	b, err := os.ReadFile(filepath.Join(r.OutputDir, "report.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &fromJSON))
	assert.Equal(t, r.Result, fromJSON.Result)
	assert.Equal(t, r.GeneratedAt, fromJSON.GeneratedAt)

	var fromYAML map[string]any
	b, err = os.ReadFile(filepath.Join(r.OutputDir, "report.yaml"))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(b, &fromYAML))
	assert.Equal(t, "demo", fromYAML["session_id"])

	assert.EqualValues(t, 1, counterValue(t, h.reader, "speechq.sessions", attribute.String("status", "ok")))
	assert.EqualValues(t, 2, counterValue(t, h.reader, "speechq.fillers"))

	entry := h.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "demo", entry.Data["session_id"])
}

func mustSession(t *testing.T, path string) *Session {
	t.Helper()
	s, err := loadSession(path)
	require.NoError(t, err)
	return s
}

func TestRun_EmptySessionScoresZero(t *testing.T) {
	c := testConfig(t)
	c.Paths.Outputs = ""
	h := newHarness(t, c)
	path := writeSession(t, t.TempDir(), "silent.yaml", "session_id: silent\n")

	r, err := h.p.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, analysis.Result{Pauses: []analysis.Pause{}, Fillers: []string{}}, r.Result)
	assert.Empty(t, r.OutputDir)
	assert.Empty(t, r.PaceTimeline)
	assert.Equal(t, "No speech detected.", r.Feedback.Pace)
}

func TestRun_InvalidSession(t *testing.T) {
	h := newHarness(t, testConfig(t))
	path := writeSession(t, t.TempDir(), "bad.json", `{"duration": -4}`)

	_, err := h.p.Run(context.Background(), path)
	require.ErrorIs(t, err, analysis.ErrInvalidInput)

	assert.EqualValues(t, 1, counterValue(t, h.reader, "speechq.sessions", attribute.String("status", "error")))
	assert.Equal(t, logrus.ErrorLevel, h.hook.LastEntry().Level)
}

func TestRun_RejectsUnsafeSessionID(t *testing.T) {
	for _, id := range []string{"../escaped", "a/b", `a\b`, "..", "."} {
		t.Run(id, func(t *testing.T) {
			c := testConfig(t)
			h := newHarness(t, c)
			body, err := json.Marshal(map[string]any{"session_id": id, "words": 10, "duration": 5})
			require.NoError(t, err)
			path := writeSession(t, t.TempDir(), "s.json", string(body))

			_, err = h.p.Run(context.Background(), path)
			require.ErrorIs(t, err, ErrInvalidSessionID)

			entries, err := os.ReadDir(filepath.Dir(c.Paths.Outputs))
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotEqual(t, "escaped", e.Name())
			}
		})
	}
}

func TestMkSessionDir_StaysUnderRoot(t *testing.T) {
	root := t.TempDir()

	dir, err := mkSessionDir(root, "demo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "demo"), dir)

	_, err = mkSessionDir(root, "../demo")
	assert.ErrorIs(t, err, ErrInvalidSessionID)
	_, err = mkSessionDir(root, "")
	assert.ErrorIs(t, err, ErrInvalidSessionID)
}

func TestRun_FetchesMissingSignals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"segments":[{"start":0,"end":2,"text":"Um hello there"},{"start":3,"end":4,"text":"friends"}],"language":"en"}`))
	})
	mux.HandleFunc("/track", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pitch":[0,180,190,185],"amplitude":[0.2,0.2,0.2],"duration":4}`))
	})
	mux.HandleFunc("/generate-radar", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","path":"/charts/remote.png"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := testConfig(t)
	c.Services.ASR.URL = srv.URL
	c.Services.Prosody.URL = srv.URL
	c.Services.Visualization.URL = srv.URL
	h := newHarness(t, c)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "talk.wav"), []byte("RIFF"), 0o644))
	path := writeSession(t, dir, "remote.yaml", "session_id: remote\naudio: talk.wav\n")

	r, err := h.p.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"um"}, r.Result.Fillers)
	assert.Equal(t, []analysis.Pause{{Start: 2, End: 3, Duration: 1}}, r.Result.Pauses)
	// 4 words over 4 seconds
	assert.InDelta(t, 60.0, r.Result.WPM, 1e-9)
	assert.Equal(t, 185.0, r.Result.F0)
	assert.Zero(t, r.Result.Shimmer)
	assert.Equal(t, "/charts/remote.png", r.RadarPath)
}

func TestRun_RadarFailureKeepsReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testConfig(t)
	c.Services.Visualization.URL = srv.URL
	h := newHarness(t, c)
	path := writeSession(t, t.TempDir(), "demo.json", demoSession)

	r, err := h.p.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, r.RadarPath)

	var warned bool
	for _, e := range h.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "radar") {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestRun_ServiceErrorFailsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testConfig(t)
	c.Services.ASR.URL = srv.URL
	h := newHarness(t, c)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.wav"), []byte("RIFF"), 0o644))
	path := writeSession(t, dir, "a.json", `{"audio": "a.wav"}`)

	_, err := h.p.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asr 502")
}

func TestNewPipeline_BadLexiconFile(t *testing.T) {
	c := testConfig(t)
	c.Analysis.LexiconFile = filepath.Join(t.TempDir(), "missing.yaml")
	logger, _ := logtest.NewNullLogger()

	_, err := NewPipeline(c, logger, nil)
	assert.Error(t, err)
}
