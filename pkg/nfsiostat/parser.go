package nfsiostat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var floatRe = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ParserState is the position of the parser inside a volume block.
type ParserState int

const (
	StateIdle ParserState = iota
	StateInBlock
	StateBacklogLabel
	StateReadLabel
	StateWriteLabel
	StateUnknownLabel
)

// String returns a human-readable representation of the parser state
func (s ParserState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInBlock:
		return "InBlock"
	case StateBacklogLabel:
		return "BacklogLabel"
	case StateReadLabel:
		return "ReadLabel"
	case StateWriteLabel:
		return "WriteLabel"
	case StateUnknownLabel:
		return "UnknownLabel"
	default:
		return "Unknown"
	}
}

type section uint8

const (
	sectionBacklog section = 1 << iota
	sectionRead
	sectionWrite
)

func (s section) String() string {
	switch s {
	case sectionBacklog:
		return "backlog"
	case sectionRead:
		return "read"
	case sectionWrite:
		return "write"
	}
	return "unknown"
}

// Tracer receives parser state transitions.
type Tracer interface {
	Log(component, step, detail string)
}

// Parser turns normalized report lines into records. The zero value is ready
// to use; a Parser must not be reused after Finish.
type Parser struct {
	Tracer Tracer

	state   ParserState
	current *Record
	seen    section
	label   string
	records []Record
}

// NewParser creates a parser that reports transitions to tracer, which may be nil.
func NewParser(tracer Tracer) *Parser {
	return &Parser{Tracer: tracer}
}

// State returns the current parser state.
func (p *Parser) State() ParserState {
	return p.state
}

// Parse normalizes text and parses every line.
func Parse(text string) ([]Record, error) {
	return NewParser(nil).ParseText(text)
}

// ParseText normalizes text, feeds each line to the state machine and returns
// the records in report order.
func (p *Parser) ParseText(text string) ([]Record, error) {
	for i, line := range Normalize(text) {
		if err := p.ProcessLine(i+1, line); err != nil {
			return nil, err
		}
	}
	return p.Finish(), nil
}

// ProcessLine advances the state machine by one normalized line.
func (p *Parser) ProcessLine(lineNo int, line string) error {
	toks := Tokenize(line)

	switch {
	case isHeader(toks):
		p.closeRecord()
		p.current = newRecord(toks[0], toks[3])
		p.seen = 0
		p.label = ""
		p.transition(StateInBlock, line)
		return nil

	case isMetrics(toks):
		return p.consume(lineNo, toks[1:])
	}

	if p.current == nil {
		// Preamble before the first mount header.
		return nil
	}

	p.label = line
	switch {
	case isIndented(toks):
		p.transition(StateBacklogLabel, line)
	case strings.HasPrefix(line, "read:"):
		p.transition(StateReadLabel, line)
	case strings.HasPrefix(line, "write:"):
		p.transition(StateWriteLabel, line)
	default:
		p.transition(StateUnknownLabel, line)
	}
	return nil
}

// Finish closes the open record and returns everything parsed so far.
func (p *Parser) Finish() []Record {
	p.closeRecord()
	p.transition(StateIdle, "end of input")
	return p.records
}

func (p *Parser) consume(lineNo int, data []string) error {
	fail := func(reason string) error {
		return &ParseError{LineNo: lineNo, Label: p.label, Data: data, Reason: reason}
	}

	if p.current == nil {
		return fail("metrics before any mount header")
	}

	var (
		sec  section
		cols []string
	)
	switch p.state {
	case StateBacklogLabel:
		sec, cols = sectionBacklog, backlogColumns
	case StateReadLabel:
		sec, cols = sectionRead, prefixed(ReadPrefix)
	case StateWriteLabel:
		sec, cols = sectionWrite, prefixed(WritePrefix)
	case StateInBlock:
		return fail("metrics without a label line")
	default:
		return fail("unrecognized label line")
	}

	if p.seen&sec != 0 {
		return fail(fmt.Sprintf("duplicate %s section for %s", sec, p.current.Volume))
	}

	n := min(len(cols), len(data))
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(data[i], 64)
		if err != nil {
			return fail(fmt.Sprintf("invalid value %q for %s", data[i], cols[i]))
		}
		p.current.Metrics[cols[i]] = v
	}
	p.seen |= sec
	p.label = ""
	p.transition(StateInBlock, sec.String()+" data")
	return nil
}

func (p *Parser) closeRecord() {
	if p.current == nil {
		return
	}
	p.records = append(p.records, *p.current)
	p.current = nil
}

func (p *Parser) transition(next ParserState, detail string) {
	if p.Tracer != nil && next != p.state {
		p.Tracer.Log("parser", p.state.String()+" -> "+next.String(), detail)
	}
	p.state = next
}

func isHeader(toks []string) bool {
	return len(toks) >= 4 && toks[1] == "mounted" && toks[2] == "on"
}

func isMetrics(toks []string) bool {
	return len(toks) > 2 && toks[0] == "" && floatRe.MatchString(toks[1]) && floatRe.MatchString(toks[2])
}

func prefixed(prefix string) []string {
	cols := make([]string, len(sectionColumns))
	for i, c := range sectionColumns {
		cols[i] = prefix + c
	}
	return cols
}
