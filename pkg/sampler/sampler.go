// Package sampler drives the collect, parse, stamp and write loop.
package sampler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ramvarra/nfsiostatlog/pkg/config"
	"github.com/ramvarra/nfsiostatlog/pkg/debug"
	"github.com/ramvarra/nfsiostatlog/pkg/nfsiostat"
	"github.com/ramvarra/nfsiostatlog/pkg/runner"
	"github.com/ramvarra/nfsiostatlog/pkg/sink"
)

// Sampler runs nfsiostat repeatedly and appends the resulting records to a sink.
type Sampler struct {
	cfg    *config.Config
	runner runner.Runner
	sink   sink.Opener
	logger *logrus.Logger

	// Now is the clock used to stamp the start of each cycle.
	Now func() time.Time
	// ErrorBackoff is the pause after a failed cycle in keep-going mode.
	ErrorBackoff time.Duration
	// Tracer, when set, receives parser state transitions.
	Tracer nfsiostat.Tracer
	// DebugOut receives record dumps, timings and sanity reports when
	// debugging is enabled.
	DebugOut io.Writer
}

// New creates a sampler. A nil logger gets a warn-level default.
func New(cfg *config.Config, r runner.Runner, s sink.Opener, logger *logrus.Logger) *Sampler {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Sampler{
		cfg:          cfg,
		runner:       r,
		sink:         s,
		logger:       logger,
		Now:          time.Now,
		ErrorBackoff: cfg.Interval(),
		DebugOut:     os.Stderr,
	}
}

// Run executes cycles until ctx is cancelled. Unless KeepGoing is set the
// first failed cycle ends the loop and its error is returned.
func (s *Sampler) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := s.RunCycle(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if !s.cfg.KeepGoing {
				return err
			}
			s.logger.WithError(err).Error("Sampling cycle failed")
			s.sleepWithContext(ctx, s.ErrorBackoff)
			continue
		}
		s.logger.WithField("records", n).Debug("Sampling cycle complete")
	}
}

// RunCycle performs one invocation of the measurement command and writes the
// records of every complete sweep. It returns the number of records written.
// The sink is closed on every path.
func (s *Sampler) RunCycle(ctx context.Context) (written int, err error) {
	log := s.logger.WithField("cycle", uuid.New().String())
	s.checkSpace(log)

	w, err := s.sink.Open()
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close log file: %w", cerr)
		}
	}()

	var (
		timer   debug.CycleTimer
		text    string
		records []nfsiostat.Record
	)
	start := s.Now()
	count := s.cfg.RequestedSamples()

	log.WithFields(logrus.Fields{
		"command":  s.cfg.Command,
		"interval": s.cfg.IntervalSecs,
		"count":    count,
	}).Debug("Running measurement command")

	err = timer.Time("command", func() error {
		var rerr error
		text, rerr = s.runner.Run(ctx, s.cfg.IntervalSecs, count)
		return rerr
	})
	if err != nil {
		return 0, err
	}

	err = timer.Time("parse", func() error {
		parsed, perr := nfsiostat.NewParser(s.Tracer).ParseText(text)
		if perr != nil {
			return perr
		}
		records, perr = nfsiostat.Reconstruct(parsed, start, s.cfg.Interval())
		return perr
	})
	if err != nil {
		return 0, err
	}

	err = timer.Time("write", func() error {
		return sink.WriteRecords(w, records)
	})
	if err != nil {
		return 0, err
	}

	if s.cfg.Debug {
		debug.DumpRecords(s.DebugOut, records)
		debug.SanityReport(s.DebugOut, debug.RunSanityChecks(records))
		debug.TimingReport(s.DebugOut, timer.Timings)
	}

	log.WithField("records", len(records)).Info("Wrote records")
	return len(records), nil
}

func (s *Sampler) checkSpace(log *logrus.Entry) {
	if s.cfg.LogFile == "" {
		return
	}
	usage, err := sink.DirUsage(s.cfg.LogFile)
	if err != nil {
		log.WithError(err).Debug("Cannot determine free space")
		return
	}
	if usage.LowSpace(s.cfg.MaxLogSize) {
		log.WithFields(logrus.Fields{
			"dir":       usage.Dir,
			"available": sink.FormatBytes(usage.Available),
		}).Warn("Low free space for log file")
	}
}

func (s *Sampler) sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
