package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/speech-quality/config"
	"github.com/maastricht-university/speech-quality/orchestrator"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configPath string
	logLevel   string
	conf       *cfg.Root
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "speechq",
		Short:         "Speech quality analysis for coaching sessions",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default config/$CONFIG_ENV/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override pipeline.log_level")

	root.AddCommand(a.analyzeCmd(), a.batchCmd(), versionCmd())
	return root
}

func (a *app) setup() error {
	conf, err := cfg.Load(a.configPath)
	if err != nil {
		return err
	}
	a.conf = conf

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if conf.Pipeline.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl := conf.Pipeline.LogLvl
	if a.logLevel != "" {
		lvl = a.logLevel
	}
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	a.log = log
	return nil
}

func (a *app) pipeline() (*orchestrator.Pipeline, error) {
	a.log.WithFields(logrus.Fields{
		"name":    a.conf.Pipeline.Name,
		"version": a.conf.Pipeline.Version,
	}).Debug("pipeline starting")
	return orchestrator.NewPipeline(a.conf, a.log, nil)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <session.(json|yaml)>",
		Short: "Analyze one session and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			r, err := p.Run(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		},
	}
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file|dir>...",
		Short: "Analyze many sessions concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := orchestrator.SessionFiles(args)
			if err != nil {
				return err
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			reports, err := p.RunBatch(ctx, paths)
			out := cmd.OutOrStdout()
			for i, r := range reports {
				if r == nil {
					fmt.Fprintf(out, "%-32s FAILED\n", paths[i])
					continue
				}
				fmt.Fprintf(out, "%-32s score=%5.1f wpm=%6.1f pauses=%d fillers=%d\n",
					r.SessionID, r.Result.QualityScore, r.Result.WPM, len(r.Result.Pauses), r.FillerCount)
			}
			return err
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "speechq", version)
		},
	}
}
