package symbols

import (
	"testing"

	"vellum/pkg/types"
)

func TestBranchCoverageUnionsOnlyWhenAllBranchesInitialize(t *testing.T) {
	tbl := New()
	tbl.Observe("x", types.Int)

	tbl.BeginBranchInspection()

	tbl.EnterScope(Block)
	tbl.Initialize("x")
	tbl.ExitScope(false)

	tbl.EnterScope(Block)
	tbl.ExitScope(false) // this branch never initializes x

	tbl.FinalizeBranches()

	if tbl.IsInitialized("x") {
		t.Fatalf("expected x to remain uninitialized since one branch skipped it")
	}
}

func TestBranchCoverageUnionsWhenAllBranchesInitialize(t *testing.T) {
	tbl := New()
	tbl.Observe("x", types.Int)

	tbl.BeginBranchInspection()

	tbl.EnterScope(Block)
	tbl.Initialize("x")
	tbl.ExitScope(false)

	tbl.EnterScope(Block)
	tbl.Initialize("x")
	tbl.ExitScope(false)

	tbl.FinalizeBranches()

	if !tbl.IsInitialized("x") {
		t.Fatalf("expected x to be initialized since every branch initialized it")
	}
}

func TestBranchLocalDeclarationsDoNotLeakIntoIntersection(t *testing.T) {
	tbl := New()

	tbl.BeginBranchInspection()

	tbl.EnterScope(Block)
	tbl.Observe("onlyHere", types.Int)
	tbl.Initialize("onlyHere")
	tbl.ExitScope(false)

	tbl.EnterScope(Block)
	tbl.ExitScope(false)

	tbl.FinalizeBranches()

	if tbl.IsInitialized("onlyHere") {
		t.Fatalf("a name declared inside only one branch must not survive into the parent")
	}
}

func TestProcedureBoundaryHidesOrdinaryOuterBindings(t *testing.T) {
	tbl := New()
	tbl.Observe("x", types.Int)
	tbl.Initialize("x")

	tbl.EnterScope(Procedure)
	if _, ok := tbl.Lookup("x"); ok {
		t.Fatalf("an ordinary outer binding must not be visible across a PROCEDURE boundary")
	}
}

func TestProcedureBoundaryAdmitsModuleAndTypeDefBindings(t *testing.T) {
	tbl := New()
	tbl.Observe("MyStruct", types.Int)
	tbl.MarkTypeDefinition("MyStruct")
	tbl.Observe("mathMod", types.Module)

	tbl.EnterScope(Procedure)

	if _, ok := tbl.Lookup("MyStruct"); !ok {
		t.Fatalf("a type-definition binding must remain visible across a PROCEDURE boundary")
	}
	if _, ok := tbl.Lookup("mathMod"); !ok {
		t.Fatalf("a module binding must remain visible across a PROCEDURE boundary")
	}
}

func TestProcedureBoundaryAdmitsProcedureKindedOuterBindings(t *testing.T) {
	tbl := New()
	fn := types.ConstructFunction([]types.Type{types.Int}, types.Int)
	tbl.Observe("helper", fn)
	tbl.Initialize("helper")

	tbl.EnterScope(Procedure)
	typ, ok := tbl.Lookup("helper")
	if !ok {
		t.Fatalf("a procedure-kinded outer binding must remain visible across a PROCEDURE boundary")
	}
	if !types.Equal(typ, fn) {
		t.Fatalf("expected the resolved type to equal the outer binding's type")
	}
}

func TestProcedureOwnParamsAreVisibleWithinItself(t *testing.T) {
	tbl := New()
	tbl.EnterScope(Procedure)
	tbl.Observe("n", types.Int)
	tbl.Initialize("n")

	tbl.EnterScope(Block)
	if _, ok := tbl.Lookup("n"); !ok {
		t.Fatalf("a procedure's own parameter must be visible from within its own body")
	}
}

func TestLambdaBoundaryCapturesOuterBindingBySnapshot(t *testing.T) {
	tbl := New()
	tbl.Observe("total", types.Int)
	tbl.Initialize("total")

	tbl.EnterScope(Lambda)
	lambdaScope := tbl.top()

	typ, ok := tbl.Lookup("total")
	if !ok {
		t.Fatalf("expected lambda boundary to admit and capture the outer binding")
	}
	if !types.Equal(typ, types.Int) {
		t.Fatalf("expected captured type to match outer binding's type")
	}
	if _, captured := lambdaScope.Captured()["total"]; !captured {
		t.Fatalf("expected the lambda scope to record 'total' in its captured set")
	}

	outerBinding := tbl.scopes[0].bindings["total"]
	if !outerBinding.Used {
		t.Fatalf("expected the original outer binding to be marked used by the capture")
	}
	shadow := lambdaScope.bindings["total"]
	if !shadow.Used {
		t.Fatalf("expected the shadow binding itself to be marked used by the resolving lookup")
	}
}

func TestLambdaCaptureIsIdempotentAcrossRepeatedLookups(t *testing.T) {
	tbl := New()
	tbl.Observe("total", types.Int)
	tbl.Initialize("total")

	tbl.EnterScope(Lambda)
	lambdaScope := tbl.top()

	tbl.Lookup("total")
	firstShadow := lambdaScope.bindings["total"]
	tbl.Lookup("total")
	secondShadow := lambdaScope.bindings["total"]

	if firstShadow != secondShadow {
		t.Fatalf("expected a second lookup to reuse the already-captured shadow, not recapture")
	}
}

func TestLambdaCapturePreservesUninitializedStatus(t *testing.T) {
	tbl := New()
	tbl.Observe("pending", types.Int) // declared but never initialized

	tbl.EnterScope(Lambda)
	tbl.Lookup("pending")

	if tbl.IsInitialized("pending") {
		t.Fatalf("capturing an uninitialized outer binding must not make it read as initialized")
	}
}

func TestLambdaThenProcedureBoundaryWithoutFindingIsNotFound(t *testing.T) {
	tbl := New()
	tbl.Observe("x", types.Int)
	tbl.Initialize("x")

	tbl.EnterScope(Procedure)
	tbl.EnterScope(Lambda)

	// x is visible to the lambda (ordinary data), but once we additionally
	// cross the outer PROCEDURE boundary without having found it as a
	// procedure/module/type-def binding, it must not resolve.
	if _, ok := tbl.Lookup("x"); ok {
		t.Fatalf("expected lookup crossing a lambda then a procedure boundary to fail for an ordinary binding")
	}
}

func TestUnusedBindingReportedOnScopeExit(t *testing.T) {
	tbl := New()
	tbl.EnterScope(Block)
	tbl.Observe("dead", types.Int)
	unused := tbl.ExitScope(true)

	if len(unused) != 1 || unused[0].Name != "dead" {
		t.Fatalf("expected 'dead' to be reported unused, got %+v", unused)
	}
	if unused[0].Warning {
		t.Fatalf("a non-struct unused binding should not be downgraded to a warning")
	}
}

func TestUnusedStructBindingIsOnlyAWarning(t *testing.T) {
	tbl := New()
	structType := types.ConstructStruct([]types.StructField{{Name: "a", Type: types.Int}}, false)
	tbl.EnterScope(Block)
	tbl.Observe("rec", structType)
	unused := tbl.ExitScope(true)

	if len(unused) != 1 || !unused[0].Warning {
		t.Fatalf("expected unused struct binding to be reported as a warning, got %+v", unused)
	}
}

func TestUsedBindingIsNotReportedOnExit(t *testing.T) {
	tbl := New()
	tbl.EnterScope(Block)
	tbl.Observe("live", types.Int)
	tbl.Lookup("live")
	if unused := tbl.ExitScope(true); len(unused) != 0 {
		t.Fatalf("expected no unused bindings, got %+v", unused)
	}
}
