package nfsiostat

import (
	"fmt"
	"strings"
)

// ParseError reports a metrics line that could not be attributed to a section.
type ParseError struct {
	LineNo int      // 1-based index into the normalized lines
	Label  string   // line that preceded the data, empty if none
	Data   []string // numeric tokens of the offending line
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: label %q with data [%s]",
		e.LineNo, e.Reason, e.Label, strings.Join(e.Data, " "))
}

// UnderflowError is returned when the report does not contain the start of a
// second sweep, so no complete sweep can be timestamped.
type UnderflowError struct {
	Records int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("fewer than two complete sweeps observed (%d records)", e.Records)
}
