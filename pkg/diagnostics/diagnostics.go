// Package diagnostics implements the diagnostic sink: three
// order-preserving queues of structured diagnostics plus formatting for
// CLI output.
package diagnostics

import (
	"fmt"
	"strings"
)

// Severity captures a diagnostic's level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Location references a source span for a diagnostic.
type Location struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Diagnostic is a single structured entry in any of the sink's queues.
type Diagnostic struct {
	Severity Severity
	Message  string
	Location Location

	// EmitterClass optionally names the checker rule or subsystem that
	// raised a type-error diagnostic.
	EmitterClass string
}

func (d Diagnostic) Error() string { return d.Message }

// Sink accumulates diagnostics into three independently ordered queues,
// mirroring the distinct diagnostic categories a compilation pass can
// raise: syntax problems reported while parsing, semantic type errors
// reported while checking, and everything else (I/O, module-resolution,
// and other non-type-error failures).
type Sink struct {
	parserErrors []Diagnostic
	typeErrors   []Diagnostic
	miscErrors   []Diagnostic
}

// New constructs an empty Sink.
func New() *Sink {
	return &Sink{}
}

// AddParserError appends to the parser-error queue, in call order.
func (s *Sink) AddParserError(d Diagnostic) {
	d.Severity = SeverityError
	s.parserErrors = append(s.parserErrors, d)
}

// AddParserWarning appends to the parser-error queue as a warning.
func (s *Sink) AddParserWarning(d Diagnostic) {
	d.Severity = SeverityWarning
	s.parserErrors = append(s.parserErrors, d)
}

// AddTypeError appends to the type-error queue, tagged with the emitter
// class that raised it.
func (s *Sink) AddTypeError(emitterClass string, d Diagnostic) {
	d.Severity = SeverityError
	d.EmitterClass = emitterClass
	s.typeErrors = append(s.typeErrors, d)
}

// AddTypeWarning appends to the type-error queue as a warning (e.g. the
// unused-struct-binding downgrade).
func (s *Sink) AddTypeWarning(emitterClass string, d Diagnostic) {
	d.Severity = SeverityWarning
	d.EmitterClass = emitterClass
	s.typeErrors = append(s.typeErrors, d)
}

// AddMiscError appends to the misc-error queue, in call order.
func (s *Sink) AddMiscError(d Diagnostic) {
	d.Severity = SeverityError
	s.miscErrors = append(s.miscErrors, d)
}

// ParserErrors returns the parser-error queue in the order entries were added.
func (s *Sink) ParserErrors() []Diagnostic { return s.parserErrors }

// TypeErrors returns the type-error queue in the order entries were added.
func (s *Sink) TypeErrors() []Diagnostic { return s.typeErrors }

// MiscErrors returns the misc-error queue in the order entries were added.
func (s *Sink) MiscErrors() []Diagnostic { return s.miscErrors }

// HasErrors reports whether any queue holds an entry at SeverityError.
func (s *Sink) HasErrors() bool {
	for _, queue := range [][]Diagnostic{s.parserErrors, s.typeErrors, s.miscErrors} {
		for _, d := range queue {
			if d.Severity == SeverityError {
				return true
			}
		}
	}
	return false
}

// ExitStatus reports the process exit status a driver should use after a
// compilation pass: 1 if any queue holds an error-severity diagnostic, 0
// otherwise (warnings alone do not fail a run).
func (s *Sink) ExitStatus() int {
	if s.HasErrors() {
		return 1
	}
	return 0
}

// Flush drains and returns all three queues in a stable, fixed order
// (parser, then type, then misc), leaving the sink empty. Each queue's
// own insertion order is preserved.
func (s *Sink) Flush() []Diagnostic {
	all := make([]Diagnostic, 0, len(s.parserErrors)+len(s.typeErrors)+len(s.miscErrors))
	all = append(all, s.parserErrors...)
	all = append(all, s.typeErrors...)
	all = append(all, s.miscErrors...)
	s.parserErrors = nil
	s.typeErrors = nil
	s.miscErrors = nil
	return all
}

// Describe formats a diagnostic for CLI/log output.
func Describe(d Diagnostic) string {
	message := strings.TrimSpace(d.Message)
	prefix := "error: "
	if d.Severity == SeverityWarning {
		prefix = "warning: "
	}
	if d.EmitterClass != "" {
		prefix += "[" + d.EmitterClass + "] "
	}
	location := formatLocation(d.Location)
	if location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return fmt.Sprintf("%s%s", prefix, message)
}

func formatLocation(loc Location) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("%s:%d:%d", path, loc.Line, loc.Column)
	case path != "" && loc.Line > 0:
		return fmt.Sprintf("%s:%d", path, loc.Line)
	case path != "":
		return path
	case loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("line %d, column %d", loc.Line, loc.Column)
	case loc.Line > 0:
		return fmt.Sprintf("line %d", loc.Line)
	default:
		return ""
	}
}
