// Command nfsiostatlog runs nfsiostat in a loop and appends one JSON record
// per mount and interval to a log file or stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ramvarra/nfsiostatlog/pkg/config"
	"github.com/ramvarra/nfsiostatlog/pkg/debug"
	"github.com/ramvarra/nfsiostatlog/pkg/runner"
	"github.com/ramvarra/nfsiostatlog/pkg/sampler"
	"github.com/ramvarra/nfsiostatlog/pkg/sink"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "nfsiostatlog [<interval_secs> <num_samples> [<log_file>]]",
		Short: "Log nfsiostat samples as JSON lines",
		Long: `nfsiostatlog repeatedly runs "nfsiostat <interval_secs> <num_samples+1>",
drops the first partial sweep, stamps every per-mount record with the time of its
sweep and appends the records as JSON lines to <log_file> (or stdout).
The log file is renamed to <log_file>.bak once it grows past --max-log-size.`,
		Args: func(cmd *cobra.Command, args []string) error {
			return cfg.ApplyArgs(args)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), cfg)
		},
	}
	cfg.AddAllFlags(cmd)
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := buildLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.PprofAddr != "" {
		stopPprof, err := debug.StartPprofServer(cfg.PprofAddr, logger)
		if err != nil {
			return err
		}
		defer stopPprof()
	}

	var out sink.Opener = sink.Stdout{}
	if cfg.LogFile != "" {
		f := sink.NewFile(cfg.LogFile, logger)
		f.MaxSize = cfg.MaxLogSize
		out = f
	}

	s := sampler.New(cfg, runner.New(cfg.Command), out, logger)
	if cfg.Trace {
		s.Tracer = debug.NewTraceLogger(os.Stderr)
	}

	logger.WithFields(logrus.Fields{
		"interval": cfg.IntervalSecs,
		"samples":  cfg.Samples,
		"log_file": cfg.LogFile,
	}).Info("Starting nfsiostat logger")

	err := s.Run(ctx)
	if err != nil {
		logger.WithError(err).Error("Sampling stopped")
		var ce *runner.CommandError
		if errors.As(err, &ce) && ce.ExitCode == 0 {
			return fmt.Errorf("is %s installed? %w", cfg.Command, err)
		}
	}
	return err
}

func buildLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
