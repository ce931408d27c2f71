package config

import (
	"github.com/spf13/cobra"
)

// AddSamplingFlags adds sampling flags to a command.
func (c *Config) AddSamplingFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&c.Command, "command", c.Command, "Measurement command to invoke")
	flags.BoolVar(&c.KeepGoing, "keep-going", c.KeepGoing, "Log failed cycles and continue instead of exiting")
}

// AddOutputFlags adds output flags to a command.
func (c *Config) AddOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int64Var(&c.MaxLogSize, "max-log-size", c.MaxLogSize, "Rotate the log file to .bak above this many bytes")
}

// AddDiagnosticFlags adds logging and debugging flags to a command.
func (c *Config) AddDiagnosticFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "Emit diagnostic logs as JSON")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "Dump parsed records, timings and sanity checks to stderr")
	flags.BoolVar(&c.Trace, "trace", c.Trace, "Trace parser state transitions to stderr")
	flags.StringVar(&c.PprofAddr, "pprof", c.PprofAddr, "Serve pprof on this address")
}

// AddAllFlags adds all flags to a command.
func (c *Config) AddAllFlags(cmd *cobra.Command) {
	c.AddSamplingFlags(cmd)
	c.AddOutputFlags(cmd)
	c.AddDiagnosticFlags(cmd)
}
