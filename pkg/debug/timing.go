package debug

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	debugHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	debugDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StageTiming records how long one stage of a sampling cycle took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// CycleTimer accumulates stage timings for a single cycle.
type CycleTimer struct {
	Timings []StageTiming
}

// Time runs fn and records its duration under stage.
func (c *CycleTimer) Time(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.Timings = append(c.Timings, StageTiming{
		Stage:    stage,
		Duration: time.Since(start),
	})
	return err
}

// TimingReport prints a styled timing summary for a cycle.
func TimingReport(w io.Writer, timings []StageTiming) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Cycle Timing Report"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 40)))
	fmt.Fprintf(w, "  %s  %s\n",
		debugHeader.Render("STAGE              "),
		debugHeader.Render("DURATION    "))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 40)))

	var total time.Duration
	for _, t := range timings {
		fmt.Fprintf(w, "  %-20s %v\n", t.Stage, t.Duration)
		total += t.Duration
	}
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 40)))
	fmt.Fprintf(w, "  %-20s %v\n",
		lipgloss.NewStyle().Bold(true).Render("TOTAL"), total)
}
