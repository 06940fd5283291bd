package diagnostics

import "testing"

func TestQueuesPreserveInsertionOrderIndependently(t *testing.T) {
	s := New()
	s.AddParserError(Diagnostic{Message: "p1"})
	s.AddTypeError("declaration", Diagnostic{Message: "t1"})
	s.AddParserError(Diagnostic{Message: "p2"})
	s.AddMiscError(Diagnostic{Message: "m1"})
	s.AddTypeError("call", Diagnostic{Message: "t2"})

	if got := s.ParserErrors(); len(got) != 2 || got[0].Message != "p1" || got[1].Message != "p2" {
		t.Fatalf("unexpected parser queue: %+v", got)
	}
	if got := s.TypeErrors(); len(got) != 2 || got[0].Message != "t1" || got[1].Message != "t2" {
		t.Fatalf("unexpected type queue: %+v", got)
	}
	if got := s.MiscErrors(); len(got) != 1 || got[0].Message != "m1" {
		t.Fatalf("unexpected misc queue: %+v", got)
	}
}

func TestFlushDrainsAllQueuesInFixedOrderAndEmptiesTheSink(t *testing.T) {
	s := New()
	s.AddMiscError(Diagnostic{Message: "m1"})
	s.AddParserError(Diagnostic{Message: "p1"})
	s.AddTypeError("reference", Diagnostic{Message: "t1"})

	flushed := s.Flush()
	if len(flushed) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(flushed))
	}
	if flushed[0].Message != "p1" || flushed[1].Message != "t1" || flushed[2].Message != "m1" {
		t.Fatalf("expected parser, type, misc order, got %+v", flushed)
	}
	if len(s.ParserErrors()) != 0 || len(s.TypeErrors()) != 0 || len(s.MiscErrors()) != 0 {
		t.Fatalf("expected sink to be empty after Flush")
	}
}

func TestWarningsDoNotCountAsErrors(t *testing.T) {
	s := New()
	s.AddTypeWarning("declaration", Diagnostic{Message: "unused struct binding"})
	if s.HasErrors() {
		t.Fatalf("a warning-only sink must not report HasErrors")
	}
	if s.ExitStatus() != 0 {
		t.Fatalf("a warning-only sink must exit 0")
	}
}

func TestAnyErrorSeverityFailsTheRun(t *testing.T) {
	s := New()
	s.AddTypeWarning("declaration", Diagnostic{Message: "warn"})
	s.AddMiscError(Diagnostic{Message: "boom"})
	if !s.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
	if s.ExitStatus() != 1 {
		t.Fatalf("expected non-zero exit status")
	}
}

func TestDescribeFormatsLocationAndEmitterClass(t *testing.T) {
	d := Diagnostic{
		Severity:     SeverityError,
		Message:      "not declared: x",
		EmitterClass: "reference",
		Location:     Location{Path: "main.vl", Line: 3, Column: 5},
	}
	got := Describe(d)
	want := "error: [reference] main.vl:3:5 not declared: x"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDescribeOmitsLocationWhenAbsent(t *testing.T) {
	d := Diagnostic{Severity: SeverityWarning, Message: "unused binding"}
	got := Describe(d)
	want := "warning: unused binding"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
