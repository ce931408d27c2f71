// Package runner invokes the nfsiostat command and captures its report.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultCommand is the measurement tool invoked when none is configured.
const DefaultCommand = "nfsiostat"

// maxStderr bounds how much of the child's stderr is kept for error reports.
const maxStderr = 4096

// Runner produces one nfsiostat report covering count intervals.
type Runner interface {
	Run(ctx context.Context, intervalSecs, count int) (string, error)
}

// CommandError reports a command that could not be run or exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed", e.Command)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit status %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil && e.ExitCode <= 0 {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exec runs an external command as `<Path> <interval> <count>`.
type Exec struct {
	Path string
}

// New creates an Exec runner for path, falling back to DefaultCommand.
func New(path string) *Exec {
	if path == "" {
		path = DefaultCommand
	}
	return &Exec{Path: path}
}

// Run executes the command and returns its entire stdout once it has exited.
// Stdout and stderr are drained concurrently so neither pipe can stall the child.
func (e *Exec) Run(ctx context.Context, intervalSecs, count int) (string, error) {
	args := []string{strconv.Itoa(intervalSecs), strconv.Itoa(count)}
	cmdline := strings.Join(append([]string{e.Path}, args...), " ")

	cmd := exec.CommandContext(ctx, e.Path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", &CommandError{Command: cmdline, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", &CommandError{Command: cmdline, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return "", &CommandError{Command: cmdline, Err: err}
	}

	var out, errOut bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&out, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errOut, stderr)
		return err
	})
	readErr := g.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		ce := &CommandError{Command: cmdline, Stderr: tail(errOut.String()), Err: waitErr}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			ce.ExitCode = exitErr.ExitCode()
		}
		return "", ce
	}
	if readErr != nil {
		return "", &CommandError{Command: cmdline, Err: fmt.Errorf("read output: %w", readErr)}
	}
	return out.String(), nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = s[len(s)-maxStderr:]
	}
	return s
}
