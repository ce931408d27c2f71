// Package config provides configuration management for nfsiostatlog.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ramvarra/nfsiostatlog/pkg/runner"
	"github.com/ramvarra/nfsiostatlog/pkg/sink"
)

// Default configuration values.
const (
	DefaultIntervalSecs = 15
	DefaultSamples      = 7
	DefaultLogLevel     = "info"

	// MinIntervalSecs is exclusive: intervals must be strictly greater.
	MinIntervalSecs = 5
)

// Config holds all logger configuration options.
type Config struct {
	// Sampling settings
	IntervalSecs int
	Samples      int
	Command      string

	// Output settings
	LogFile    string
	MaxLogSize int64

	// Runtime behaviour
	KeepGoing bool

	// Diagnostics
	LogLevel  string
	LogJSON   bool
	Debug     bool
	Trace     bool
	PprofAddr string
}

// UsageError reports a malformed command line.
type UsageError struct {
	Args []string
	Msg  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, strings.Join(e.Args, " "))
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		IntervalSecs: DefaultIntervalSecs,
		Samples:      DefaultSamples,
		Command:      runner.DefaultCommand,
		MaxLogSize:   sink.DefaultMaxSize,
		LogLevel:     DefaultLogLevel,
	}
}

// ApplyArgs applies the positional arguments
// [<interval_secs> <num_samples> [<log_file>]].
func (c *Config) ApplyArgs(args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 2, 3:
	default:
		return &UsageError{Args: args, Msg: "unexpected number of arguments"}
	}

	interval, err := strconv.Atoi(args[0])
	if err != nil {
		return &UsageError{Args: args, Msg: fmt.Sprintf("invalid interval_secs %q", args[0])}
	}
	samples, err := strconv.Atoi(args[1])
	if err != nil {
		return &UsageError{Args: args, Msg: fmt.Sprintf("invalid num_samples %q", args[1])}
	}
	c.IntervalSecs = interval
	c.Samples = samples
	if len(args) == 3 {
		c.LogFile = args[2]
	}
	return nil
}

// RequestedSamples is the count passed to the command: one more than
// configured so the boundary of the last sweep can be detected.
func (c *Config) RequestedSamples() int {
	return c.Samples + 1
}

// Interval returns the sampling interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSecs) * time.Second
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.IntervalSecs <= MinIntervalSecs {
		return fmt.Errorf("invalid interval_secs %d (must be > %d)", c.IntervalSecs, MinIntervalSecs)
	}
	if c.RequestedSamples() < 2 {
		return fmt.Errorf("invalid num_samples %d (must be at least 1)", c.Samples)
	}
	if strings.TrimSpace(c.Command) == "" {
		return fmt.Errorf("command must not be empty")
	}
	if c.MaxLogSize <= 0 {
		return fmt.Errorf("max log size must be > 0, got %d", c.MaxLogSize)
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels(), ", "))
	}
	return nil
}

// ValidLogLevels returns the list of supported log levels.
func ValidLogLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

func isValidLogLevel(level string) bool {
	for _, l := range ValidLogLevels() {
		if l == level {
			return true
		}
	}
	return false
}
