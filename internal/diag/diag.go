package diag

import (
	"fmt"
	"go/token"
)

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one problem found in the user's annotations.
type Diagnostic struct {
	Pos      token.Position
	Severity Severity
	Message  string
}

// Error implements the error interface so that a fatal diagnostic can abort
// a pass. The position is prepended when it is valid.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String formats the diagnostic as "file:line:col: message".
func (d Diagnostic) String() string {
	if !d.Pos.IsValid() {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Sink receives diagnostics in the order they are found.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Collector is an append-only Sink that keeps every diagnostic.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns the number of diagnostics at or above min.
func (c *Collector) Count(min Severity) int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Severity >= min {
			n++
		}
	}
	return n
}

// HasErrors reports whether an error or fatal diagnostic was collected.
func (c *Collector) HasErrors() bool {
	return c.Count(SeverityError) > 0
}

// Tee forwards every diagnostic to all sinks, in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}

// Errorf reports a non-fatal error diagnostic to sink.
func Errorf(sink Sink, pos token.Position, format string, args ...any) {
	sink.Report(Diagnostic{Pos: pos, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

// Fatalf reports a fatal diagnostic to sink and returns it as an error. The
// caller is expected to stop the pass and return the error.
func Fatalf(sink Sink, pos token.Position, format string, args ...any) error {
	d := &Diagnostic{Pos: pos, Severity: SeverityFatal, Message: fmt.Sprintf(format, args...)}
	sink.Report(*d)
	return d
}
