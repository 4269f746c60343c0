package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/speech-quality/analysis"
)

const envPrefix = "SPEECHQ"

type Service struct {
	URL string `yaml:"url" mapstructure:"url"`
}
type Services struct {
	ASR            Service `yaml:"asr" mapstructure:"asr"`
	Prosody        Service `yaml:"prosody" mapstructure:"prosody"`
	Visualization  Service `yaml:"visualization" mapstructure:"visualization"`
	TimeoutSeconds int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}
type Features struct {
	TimeWindow int `yaml:"time_window" mapstructure:"time_window"`
	Overlap    int `yaml:"overlap" mapstructure:"overlap"`
}
type Pipeline struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Version     string `yaml:"version" mapstructure:"version"`
	LogLvl      string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat   string `yaml:"log_format" mapstructure:"log_format"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}
type Analysis struct {
	PauseThreshold float64               `yaml:"pause_threshold" mapstructure:"pause_threshold"`
	Lexicon        []string              `yaml:"lexicon" mapstructure:"lexicon"`
	LexiconFile    string                `yaml:"lexicon_file" mapstructure:"lexicon_file"`
	Scoring        analysis.ScoreWeights `yaml:"scoring" mapstructure:"scoring"`
}
type Paths struct {
	Outputs string `yaml:"outputs" mapstructure:"outputs"`
}
type Root struct {
	Pipeline Pipeline `yaml:"pipeline" mapstructure:"pipeline"`
	Services Services `yaml:"services" mapstructure:"services"`
	Features Features `yaml:"features" mapstructure:"features"`
	Analysis Analysis `yaml:"analysis" mapstructure:"analysis"`
	Paths    Paths    `yaml:"paths" mapstructure:"paths"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "speech-quality")
	v.SetDefault("pipeline.version", "dev")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")
	v.SetDefault("pipeline.concurrency", 4)

	v.SetDefault("services.asr.url", "")
	v.SetDefault("services.prosody.url", "")
	v.SetDefault("services.visualization.url", "")
	v.SetDefault("services.timeout_seconds", 60)

	v.SetDefault("features.time_window", 30)
	v.SetDefault("features.overlap", 15)

	w := analysis.DefaultScoreWeights()
	v.SetDefault("analysis.pause_threshold", analysis.DefaultPauseThreshold)
	v.SetDefault("analysis.lexicon", []string{})
	v.SetDefault("analysis.lexicon_file", "")
	v.SetDefault("analysis.scoring.target_wpm_low", w.TargetWPMLow)
	v.SetDefault("analysis.scoring.target_wpm_high", w.TargetWPMHigh)
	v.SetDefault("analysis.scoring.pace_per_wpm", w.PacePerWPM)
	v.SetDefault("analysis.scoring.max_pace_penalty", w.MaxPacePenalty)
	v.SetDefault("analysis.scoring.per_filler", w.PerFiller)
	v.SetDefault("analysis.scoring.jitter", w.Jitter)
	v.SetDefault("analysis.scoring.shimmer", w.Shimmer)
	v.SetDefault("analysis.scoring.free_pauses", w.FreePauses)
	v.SetDefault("analysis.scoring.per_extra_pause", w.PerExtraPause)

	v.SetDefault("paths.outputs", "outputs")
}

// candidates lists the config files tried when no explicit path is given.
func candidates() []string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
}

// Load reads path, or the first existing candidate when path is empty.
// With no file at all the defaults apply. SPEECHQ_* environment variables
// override file values (SPEECHQ_ANALYSIS_PAUSE_THRESHOLD=0.8).
func Load(path string) (*Root, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, p := range candidates() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if lf := cfg.Analysis.LexiconFile; lf != "" && !filepath.IsAbs(lf) && path != "" {
		cfg.Analysis.LexiconFile = filepath.Join(filepath.Dir(path), lf)
	}
	return &cfg, nil
}

// LoadLexicon reads a YAML list of filler phrases.
func LoadLexicon(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var phrases []string
	if err := yaml.Unmarshal(b, &phrases); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	if len(phrases) == 0 {
		return nil, errors.New("lexicon " + path + ": no phrases")
	}
	return phrases, nil
}

// AnalysisConfig builds the engine configuration. The lexicon file wins over
// the inline list, which wins over the built-in English lexicon.
func (r *Root) AnalysisConfig() (analysis.Config, error) {
	ac := analysis.DefaultConfig()
	if t := r.Analysis.PauseThreshold; t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return analysis.Config{}, fmt.Errorf("analysis.pause_threshold %v: %w", t, analysis.ErrInvalidInput)
	}
	ac.PauseThreshold = r.Analysis.PauseThreshold
	ac.Weights = r.Analysis.Scoring

	switch {
	case r.Analysis.LexiconFile != "":
		phrases, err := LoadLexicon(r.Analysis.LexiconFile)
		if err != nil {
			return analysis.Config{}, err
		}
		ac.Lexicon = analysis.NewLexicon(phrases...)
	case len(r.Analysis.Lexicon) > 0:
		ac.Lexicon = analysis.NewLexicon(r.Analysis.Lexicon...)
	}
	return ac, nil
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
