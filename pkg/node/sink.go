package node

import (
	"fmt"
	"io"
	"sync"
)

// DiagnosticPrefix is prepended to every line of server output
const DiagnosticPrefix = "SERVER: "

// Sink receives every decoded line of server output
type Sink interface {
	Line(line string)
}

// PrefixSink writes each line to an io.Writer behind a fixed prefix
type PrefixSink struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
}

// NewPrefixSink creates a sink writing "<prefix><line>\n" to out
func NewPrefixSink(out io.Writer, prefix string) *PrefixSink {
	return &PrefixSink{out: out, prefix: prefix}
}

// Line writes a single line. Write errors are dropped; the sink is diagnostic only.
func (s *PrefixSink) Line(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s%s\n", s.prefix, line)
}
