package simplex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type Phase string

const (
	PhaseCanonical   Phase = "canonical"
	PhaseInitial     Phase = "initial"
	PhaseIteration   Phase = "iteration"
	PhaseTermination Phase = "termination"
	PhaseExtraction  Phase = "extraction"
	PhaseFailure     Phase = "failure"
)

type TraceEntry struct {
	Phase   Phase
	Message string
}

// Trace is the ordered record of one solve's decisions.
type Trace []TraceEntry

// Filter returns the entries of phase p.
func (t Trace) Filter(p Phase) Trace {
	var out Trace
	for _, e := range t {
		if e.Phase == p {
			out = append(out, e)
		}
	}
	return out
}

func (t Trace) String() string {
	var sb strings.Builder
	for _, e := range t {
		fmt.Fprintf(&sb, "[%s] %s\n", e.Phase, e.Message)
	}
	return sb.String()
}

type tracer struct {
	entries Trace
	log     *slog.Logger
}

func newTracer(l *slog.Logger) *tracer {
	return &tracer{log: l}
}

func (t *tracer) add(phase Phase, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.entries = append(t.entries, TraceEntry{Phase: phase, Message: msg})
	t.log.LogAttrs(context.Background(), slog.LevelDebug, msg, slog.String("phase", string(phase)))
}
