// Package diag is a non-fatal diagnostic sink: it counts Unhandled
// instructions per function and records UnknownPredicate / UnknownCallee
// events, then surfaces them as warnings without ever failing a compile.
// Output fans out through log/slog to a human-readable stderr handler and
// an in-memory handler, using github.com/samber/slog-multi for the fan-out.
// The --debug summary is built from the recorded events.
package diag

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"

	slogmulti "github.com/samber/slog-multi"
)

// Kind tags the recoverable events this package treats as non-fatal.
type Kind string

const (
	UnhandledOpcode  Kind = "unhandled_opcode"
	UnknownPredicate Kind = "unknown_predicate"
	UnknownCallee    Kind = "unknown_callee"
)

// Event is one recoverable diagnostic raised while lowering or emitting a
// function.
type Event struct {
	Kind     Kind
	Function string
	Detail   string
}

// Sink collects Events for the duration of one Compile call and logs each
// through slog. Nothing it does is fatal: Record never returns an error.
type Sink struct {
	logger *slog.Logger
	buf    *bytes.Buffer
	events []Event
}

// New returns a Sink that fans diagnostics out to stderrHandler (typically
// a text handler writing to os.Stderr) and a text handler writing to an
// internal buffer. Summary does not read that buffer; it renders from the
// events kept by Record.
func New(stderrHandler slog.Handler) *Sink {
	buf := &bytes.Buffer{}
	memHandler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	fanout := slogmulti.Fanout(stderrHandler, memHandler)
	return &Sink{
		logger: slog.New(fanout),
		buf:    buf,
	}
}

// Record logs one diagnostic event at warning level and keeps it for the
// per-function summary.
func (s *Sink) Record(e Event) {
	if s == nil {
		return
	}
	s.events = append(s.events, e)
	s.logger.Warn(string(e.Kind),
		slog.String("function", e.Function),
		slog.String("detail", e.Detail),
	)
}

// UnhandledCounts returns, for every function with at least one
// UnhandledOpcode event, the count of such events — the per-function
// warning a --debug run should surface.
func (s *Sink) UnhandledCounts() map[string]int {
	counts := make(map[string]int)
	if s == nil {
		return counts
	}
	for _, e := range s.events {
		if e.Kind == UnhandledOpcode {
			counts[e.Function]++
		}
	}
	return counts
}

// Summary renders a deterministic, sorted-by-function human-readable
// report of every UnhandledOpcode count recorded, for a --debug CLI run.
func (s *Sink) Summary() string {
	if s == nil {
		return ""
	}
	counts := s.UnhandledCounts()
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)

	out := ""
	for _, n := range names {
		out += fmt.Sprintf("%s: %d unhandled instruction(s)\n", n, counts[n])
	}
	return out
}
