package types

import "testing"

func TestEqualityStructuralAndMutabilitySensitive(t *testing.T) {
	a := ConstructList(Int, false)
	b := ConstructList(Int, false)
	if !Equal(a, b) {
		t.Fatalf("expected structurally equal list types to be equal")
	}
	mutableA, ok := ToShallowlyMutable(a)
	if !ok {
		t.Fatalf("expected ToShallowlyMutable to apply to list")
	}
	if Equal(mutableA, b) {
		t.Fatalf("mutable and immutable list types must not be equal")
	}
}

func TestOneofRejectsDuplicateVariants(t *testing.T) {
	if _, err := ConstructOneof([]Type{Int, Float, Int}); err == nil {
		t.Fatalf("expected error constructing oneof with duplicated variant")
	}
	if _, err := ConstructOneof([]Type{Int, Float}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOneofEqualityIsOrderInsensitive(t *testing.T) {
	a, _ := ConstructOneof([]Type{Int, String})
	b, _ := ConstructOneof([]Type{String, Int})
	if !Equal(a, b) {
		t.Fatalf("expected oneof equality to ignore variant order")
	}
}

func TestConstructSetRejectsFutureValues(t *testing.T) {
	if _, err := ConstructSet(ConstructFuture(Int), false); err == nil {
		t.Fatalf("expected error constructing set of futures")
	}
}

func TestConstructMapRejectsFutureKeys(t *testing.T) {
	if _, err := ConstructMap(ConstructFuture(Int), String, false); err == nil {
		t.Fatalf("expected error constructing map keyed by futures")
	}
}

func TestToShallowlyMutablePreservesStructureAndFlipsFlag(t *testing.T) {
	tup := ConstructTuple([]Type{Int, String}, false)
	mut, ok := ToShallowlyMutable(tup)
	if !ok {
		t.Fatalf("expected tuple to support shallow mutability")
	}
	if !mut.IsMutable() {
		t.Fatalf("expected shallowly mutable variant to be mutable")
	}
	immutableAgain := tup.(TupleType)
	mutableAgain := mut.(TupleType)
	immutableAgain.Mutable = mutableAgain.Mutable
	if !Equal(immutableAgain, mutableAgain) {
		t.Fatalf("expected equality ignoring the mutable flag to hold")
	}
}

func TestToShallowlyMutableUndefinedForScalars(t *testing.T) {
	if _, ok := ToShallowlyMutable(Int); ok {
		t.Fatalf("expected ToShallowlyMutable to be undefined for int")
	}
}

func TestIsDeeplyImmutablePrimitives(t *testing.T) {
	if !IsDeeplyImmutable(Int, nil) {
		t.Fatalf("primitives must be trivially deeply immutable")
	}
}

func TestIsDeeplyImmutableRejectsMutableSubstructure(t *testing.T) {
	s := ConstructStruct([]StructField{{Name: "a", Type: ConstructList(Int, true)}}, false)
	if IsDeeplyImmutable(s, nil) {
		t.Fatalf("struct with a mutable field must not be deeply immutable")
	}
}

func TestToDeeplyImmutableRoundTrips(t *testing.T) {
	s := ConstructStruct([]StructField{{Name: "a", Type: ConstructList(Int, true)}}, false)
	immutable, ok := ToDeeplyImmutable(s, nil)
	if !ok {
		t.Fatalf("expected a deeply-immutable variant to exist")
	}
	if !IsDeeplyImmutable(immutable, nil) {
		t.Fatalf("ToDeeplyImmutable's result must itself be deeply immutable")
	}
}

func TestToDeeplyImmutableFailsForUnregisteredUserDefined(t *testing.T) {
	ud := UserDefinedType{TypeName: "Box", Args: []Type{Int}}
	if _, ok := ToDeeplyImmutable(ud, nil); ok {
		t.Fatalf("expected no deeply-immutable variant without a registry")
	}
}

func TestRegistryResolvesWrappedBodyAndDeepImmutability(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Box", []string{"T"}, ConstructList(ConstructGenericParam("T"), false))
	ud := UserDefinedType{TypeName: "Box", Args: []Type{Int}}
	if !IsDeeplyImmutable(ud, reg) {
		t.Fatalf("Box<int> should be deeply immutable once its body is registered")
	}

	reg.Register("MutBox", []string{"T"}, ConstructList(ConstructGenericParam("T"), true))
	mutUD := UserDefinedType{TypeName: "MutBox", Args: []Type{Int}}
	if IsDeeplyImmutable(mutUD, reg) {
		t.Fatalf("MutBox<int> wraps a mutable list and should not be deeply immutable")
	}
}

func TestRegistryResetClearsState(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Box", []string{"T"}, ConstructList(ConstructGenericParam("T"), false))
	reg.Reset()
	if _, _, ok := reg.Lookup("Box"); ok {
		t.Fatalf("expected registry to be empty after Reset")
	}
}

func TestFormatCanonicalIsDeterministic(t *testing.T) {
	a := ConstructList(ConstructTuple([]Type{Int, String}, false), true)
	b := ConstructList(ConstructTuple([]Type{Int, String}, false), true)
	if Format(a) != Format(b) {
		t.Fatalf("equal constructions must format identically")
	}
	if Format(a) != "mut list<(int, string)>" {
		t.Fatalf("unexpected canonical format: %q", Format(a))
	}
}

func TestFormatOneofIsSortedForDeterminism(t *testing.T) {
	a, _ := ConstructOneof([]Type{String, Int})
	b, _ := ConstructOneof([]Type{Int, String})
	if Format(a) != Format(b) {
		t.Fatalf("oneof formatting must be order-independent: %q vs %q", Format(a), Format(b))
	}
}

func TestFormatUserDefinedWithAndWithoutArgs(t *testing.T) {
	bare := UserDefinedType{TypeName: "Thing"}
	if Format(bare) != "Thing" {
		t.Fatalf("expected bare nominal format, got %q", Format(bare))
	}
	parameterized := UserDefinedType{TypeName: "Box", Args: []Type{Int}}
	if Format(parameterized) != "Box<int>" {
		t.Fatalf("expected parameterized nominal format, got %q", Format(parameterized))
	}
}

func TestFormatForDiagnosticSubstitutesGenericParam(t *testing.T) {
	fn := ConstructFunction([]Type{ConstructGenericParam("T")}, ConstructGenericParam("T"))
	if got := Format(fn); got != "(T) -> T" {
		t.Fatalf("unexpected canonical format: %q", got)
	}
	sub := Substitution{"T": Int}
	if got := FormatForDiagnostic(fn, sub); got != "(int) -> int" {
		t.Fatalf("expected substituted diagnostic format, got %q", got)
	}
}

func TestFormatBlockingPrefixes(t *testing.T) {
	fn := ConstructFunction([]Type{Int}, Int)
	fn.Blocking = Blocking
	if got := Format(fn); got != "blocking (int) -> int" {
		t.Fatalf("unexpected blocking format: %q", got)
	}
	fn.Blocking = MaybeBlocking
	if got := Format(fn); got != "blocking? (int) -> int" {
		t.Fatalf("unexpected maybe-blocking format: %q", got)
	}
	fn.Blocking = NotBlocking
	fn.BlockingGenericOnArgs = []int{0, 2}
	if got := Format(fn); got != "blocking:0|2 (int) -> int" {
		t.Fatalf("unexpected blocking-generic-over-args format: %q", got)
	}
}

func TestUnifyResolvesGenericParams(t *testing.T) {
	sub := Substitution{}
	parameterized := ConstructList(ConstructGenericParam("T"), false)
	concrete := ConstructList(String, false)
	if !Unify(parameterized, concrete, sub) {
		t.Fatalf("expected unification to succeed")
	}
	if !Equal(sub["T"], String) {
		t.Fatalf("expected T to unify with string")
	}
}

func TestUnifyRejectsInconsistentBinding(t *testing.T) {
	sub := Substitution{"T": Int}
	parameterized := ConstructList(ConstructGenericParam("T"), false)
	concrete := ConstructList(String, false)
	if Unify(parameterized, concrete, sub) {
		t.Fatalf("expected unification to fail when T is already bound to a different type")
	}
}

func TestSubstituteLeavesUnrelatedTypesUnchanged(t *testing.T) {
	if Substitute(Int, Substitution{"T": String}) != Int {
		t.Fatalf("expected non-generic types to be returned unchanged")
	}
}

func TestFunctionEqualityIgnoresMetadata(t *testing.T) {
	a := ConstructFunction([]Type{Int}, Int)
	a.GenericParams = []string{"T"}
	a.Blocking = Blocking
	b := ConstructFunction([]Type{Int}, Int)
	if !Equal(a, b) {
		t.Fatalf("function equality must ignore generic names and blocking metadata")
	}
}

func TestStructEqualityIsFieldOrderSensitive(t *testing.T) {
	a := ConstructStruct([]StructField{{Name: "a", Type: Int}, {Name: "b", Type: String}}, false)
	b := ConstructStruct([]StructField{{Name: "b", Type: String}, {Name: "a", Type: Int}}, false)
	if Equal(a, b) {
		t.Fatalf("struct equality is ordered; differently-ordered fields must not be equal")
	}
}
