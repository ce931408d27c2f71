package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramvarra/nfsiostatlog/pkg/nfsiostat"
)

// expectedFields is the number of metrics a complete record carries.
const expectedFields = 16

// SanityResult holds the outcome of a plausibility check on one record.
type SanityResult struct {
	Check   string
	Passed  bool
	Details string
}

// RunSanityChecks flags incomplete records and impossible values.
// Records are never rejected; the results are informational.
func RunSanityChecks(records []nfsiostat.Record) []SanityResult {
	var results []SanityResult

	for _, r := range records {
		name := fmt.Sprintf("%s fields", r.Mount)
		if n := len(r.Metrics); n < expectedFields {
			results = append(results, SanityResult{
				Check:   name,
				Passed:  false,
				Details: fmt.Sprintf("%d of %d fields present", n, expectedFields),
			})
		} else {
			results = append(results, SanityResult{
				Check:   name,
				Passed:  true,
				Details: fmt.Sprintf("%d fields", n),
			})
		}

		for k, v := range r.Metrics {
			if v < 0 {
				results = append(results, SanityResult{
					Check:   fmt.Sprintf("%s %s non-negative", r.Mount, k),
					Passed:  false,
					Details: fmt.Sprintf("negative value: %.3f", v),
				})
			}
			if strings.HasSuffix(k, "retrans_pct") && v > 100 {
				results = append(results, SanityResult{
					Check:   fmt.Sprintf("%s %s", r.Mount, k),
					Passed:  false,
					Details: fmt.Sprintf("retransmission exceeds 100%%: %.2f", v),
				})
			}
		}
	}

	return results
}

// SanityReport prints failed checks and a pass count.
func SanityReport(w io.Writer, results []SanityResult) {
	fail := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	passed := 0
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Sanity Checks"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("─", 40)))
	for _, r := range results {
		if r.Passed {
			passed++
			continue
		}
		fmt.Fprintf(w, "  %s %s: %s\n", fail.Render("FAIL"), r.Check, r.Details)
	}
	fmt.Fprintf(w, "  %d/%d passed\n", passed, len(results))
}
