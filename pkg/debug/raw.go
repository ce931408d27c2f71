package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/ramvarra/nfsiostatlog/pkg/nfsiostat"
)

// DumpRecords prints every parsed record with its headline metrics.
func DumpRecords(w io.Writer, records []nfsiostat.Record) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render(fmt.Sprintf("Parsed Records (%d)", len(records))))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 96)))
	fmt.Fprintf(w, "  %s %s %s %s %s %s\n",
		debugHeader.Render("TIMESTAMP           "),
		debugHeader.Render("MOUNT               "),
		debugHeader.Render("OPS/S     "),
		debugHeader.Render("RD KB/S   "),
		debugHeader.Render("WR KB/S   "),
		debugHeader.Render("FIELDS"))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 96)))

	for _, r := range records {
		ts := "-"
		if r.Stamped() {
			ts = nfsiostat.FormatTimestamp(r.Timestamp)
		}
		fmt.Fprintf(w, "  %-22s %-22s %-12.3f %-12.3f %-12.3f %s\n",
			ts, truncate(r.Mount, 22),
			r.Metrics[nfsiostat.FieldOpsSec],
			r.Metrics[nfsiostat.ReadPrefix+"kb_sec"],
			r.Metrics[nfsiostat.WritePrefix+"kb_sec"],
			debugDim.Render(fmt.Sprintf("%d", len(r.Metrics))))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
