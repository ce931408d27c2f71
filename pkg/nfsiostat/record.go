// Package nfsiostat parses nfsiostat reports into timestamped per-mount records.
package nfsiostat

import (
	"encoding/json"
	"time"
)

// Field names of the backlog section.
const (
	FieldOpsSec   = "ops_sec"
	FieldRPCBklog = "rpc_bklog"
)

// Prefixes applied to the read and write section columns.
const (
	ReadPrefix  = "rd_"
	WritePrefix = "wr_"
)

// sectionColumns is the column schema shared by the read and write sections.
var sectionColumns = []string{
	"ops_sec",
	"kb_sec",
	"kb_op",
	"retrans",
	"retrans_pct",
	"avg_rtt_ms",
	"avg_exe_ms",
}

var backlogColumns = []string{FieldOpsSec, FieldRPCBklog}

// Record holds the statistics of one mount for one sampling interval.
type Record struct {
	Volume    string
	Mount     string
	Metrics   map[string]float64
	Timestamp time.Time
}

func newRecord(volume, mount string) *Record {
	return &Record{
		Volume:  volume,
		Mount:   mount,
		Metrics: make(map[string]float64),
	}
}

// Stamped reports whether the reconstructor has assigned a timestamp.
func (r Record) Stamped() bool {
	return !r.Timestamp.IsZero()
}

// MarshalJSON flattens the record into a single object:
// {"vol": ..., "mnt": ..., "ts": ..., "<metric>": ...}.
// ts is omitted until the record has been stamped.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Metrics)+3)
	for k, v := range r.Metrics {
		out[k] = v
	}
	out["vol"] = r.Volume
	out["mnt"] = r.Mount
	if r.Stamped() {
		out["ts"] = FormatTimestamp(r.Timestamp)
	}
	return json.Marshal(out)
}

// FormatTimestamp renders t as an ISO-8601 local date-time without zone.
// Microseconds are appended only when non-zero.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}
