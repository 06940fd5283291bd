package types

// Type is an immutable, structurally-comparable type value. Every concrete
// implementation below is a value type (not a pointer) so that Go's `==`
// never gets reached for for a Type by accident; comparisons always go
// through Equal.
type Type interface {
	Kind() Kind
	// Equal reports structural equality: it includes mutability and
	// parameter slots, and ignores names/metadata on procedure types.
	Equal(other Type) bool
	// IsMutable is the inherent mutable flag on container kinds; false
	// for everything else.
	IsMutable() bool
}

// ---- primitives ----

type primitive struct{ kind Kind }

func (p primitive) Kind() Kind        { return p.kind }
func (p primitive) IsMutable() bool   { return false }
func (p primitive) Equal(o Type) bool { return o.Kind() == p.kind }

var (
	Int        Type = primitive{KindInt}
	Float      Type = primitive{KindFloat}
	String     Type = primitive{KindString}
	Bool       Type = primitive{KindBool}
	Module     Type = primitive{KindModule}
	Nothing    Type = primitive{KindNothing}
	Undecided  Type = primitive{KindUndecided}
	Unknowable Type = primitive{KindUnknowable}
)

// ---- containers ----

// ListType is a homogeneous, optionally mutable sequence.
type ListType struct {
	Values  Type
	Mutable bool
}

func (t ListType) Kind() Kind      { return KindList }
func (t ListType) IsMutable() bool { return t.Mutable }
func (t ListType) Equal(o Type) bool {
	other, ok := o.(ListType)
	return ok && other.Mutable == t.Mutable && typeEqual(other.Values, t.Values)
}

// SetType is a homogeneous, optionally mutable unordered collection. Its
// Values type must not be FUTURE-kinded.
type SetType struct {
	Values  Type
	Mutable bool
}

func (t SetType) Kind() Kind      { return KindSet }
func (t SetType) IsMutable() bool { return t.Mutable }
func (t SetType) Equal(o Type) bool {
	other, ok := o.(SetType)
	return ok && other.Mutable == t.Mutable && typeEqual(other.Values, t.Values)
}

// MapType is a homogeneous key/value collection. Its Keys type must not be
// FUTURE-kinded.
type MapType struct {
	Keys, Values Type
	Mutable      bool
}

func (t MapType) Kind() Kind      { return KindMap }
func (t MapType) IsMutable() bool { return t.Mutable }
func (t MapType) Equal(o Type) bool {
	other, ok := o.(MapType)
	return ok && other.Mutable == t.Mutable &&
		typeEqual(other.Keys, t.Keys) && typeEqual(other.Values, t.Values)
}

// TupleType is an ordered, optionally mutable, fixed-arity product type.
type TupleType struct {
	Elements []Type
	Mutable  bool
}

func (t TupleType) Kind() Kind      { return KindTuple }
func (t TupleType) IsMutable() bool { return t.Mutable }
func (t TupleType) Equal(o Type) bool {
	other, ok := o.(TupleType)
	if !ok || other.Mutable != t.Mutable || len(other.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !typeEqual(t.Elements[i], other.Elements[i]) {
			return false
		}
	}
	return true
}

// StructField is one named field slot of a StructType, order-significant.
type StructField struct {
	Name string
	Type Type
}

// StructType is an ordered, named-field, optionally mutable record type.
type StructType struct {
	Fields  []StructField
	Mutable bool
}

func (t StructType) Kind() Kind      { return KindStruct }
func (t StructType) IsMutable() bool { return t.Mutable }
func (t StructType) Equal(o Type) bool {
	other, ok := o.(StructType)
	if !ok || other.Mutable != t.Mutable || len(other.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != other.Fields[i].Name || !typeEqual(t.Fields[i].Type, other.Fields[i].Type) {
			return false
		}
	}
	return true
}

// OneofType is a discriminated union over an unordered set of distinct
// variant types; construction rejects repeated variants (see ConstructOneof).
type OneofType struct {
	Variants []Type
}

func (t OneofType) Kind() Kind      { return KindOneof }
func (t OneofType) IsMutable() bool { return false }
func (t OneofType) Equal(o Type) bool {
	other, ok := o.(OneofType)
	if !ok || len(other.Variants) != len(t.Variants) {
		return false
	}
	used := make([]bool, len(other.Variants))
	for _, v := range t.Variants {
		found := false
		for i, ov := range other.Variants {
			if used[i] {
				continue
			}
			if typeEqual(v, ov) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FutureType wraps a value produced asynchronously.
type FutureType struct {
	Value Type
}

func (t FutureType) Kind() Kind      { return KindFuture }
func (t FutureType) IsMutable() bool { return false }
func (t FutureType) Equal(o Type) bool {
	other, ok := o.(FutureType)
	return ok && typeEqual(other.Value, t.Value)
}

// UserDefinedType is a nominal wrapper distinguished by TypeName rather
// than structure, even when it wraps an otherwise-identical body. Its
// wrapped body is never stored inline (cyclic type references go through
// the registry keyed by nominal name); Args are the positional type
// arguments supplied at the use site.
type UserDefinedType struct {
	TypeName string
	Args     []Type
}

func (t UserDefinedType) Kind() Kind      { return KindUserDefined }
func (t UserDefinedType) IsMutable() bool { return false }
func (t UserDefinedType) Equal(o Type) bool {
	other, ok := o.(UserDefinedType)
	if !ok || other.TypeName != t.TypeName || len(other.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !typeEqual(t.Args[i], other.Args[i]) {
			return false
		}
	}
	return true
}

// ConstraintObligation names a contract a generic call site must satisfy
// and the concrete type arguments it applies to.
type ConstraintObligation struct {
	Contract string
	Args     []Type
}

// FunctionType, ProviderType, ConsumerType are the three procedure-type
// arities. Equality is structural and ignores names/metadata:
// GenericParams, BlockingGenericOnArgs, and RequiredContracts never
// participate in Equal; only Params/Return/mutability-irrelevant shape do.
type FunctionType struct {
	Params                []Type
	Return                Type
	Blocking              BlockingMode
	GenericParams         []string
	BlockingGenericOnArgs []int
	RequiredContracts     []ConstraintObligation
}

func (t FunctionType) Kind() Kind      { return KindFunction }
func (t FunctionType) IsMutable() bool { return false }
func (t FunctionType) Equal(o Type) bool {
	other, ok := o.(FunctionType)
	if !ok || len(other.Params) != len(t.Params) || !typeEqual(other.Return, t.Return) {
		return false
	}
	for i := range t.Params {
		if !typeEqual(t.Params[i], other.Params[i]) {
			return false
		}
	}
	return true
}

type ProviderType struct {
	Return                Type
	Blocking              BlockingMode
	GenericParams         []string
	BlockingGenericOnArgs []int
	RequiredContracts     []ConstraintObligation
}

func (t ProviderType) Kind() Kind      { return KindProvider }
func (t ProviderType) IsMutable() bool { return false }
func (t ProviderType) Equal(o Type) bool {
	other, ok := o.(ProviderType)
	return ok && typeEqual(other.Return, t.Return)
}

type ConsumerType struct {
	Params                []Type
	Blocking              BlockingMode
	GenericParams         []string
	BlockingGenericOnArgs []int
	RequiredContracts     []ConstraintObligation
}

func (t ConsumerType) Kind() Kind      { return KindConsumer }
func (t ConsumerType) IsMutable() bool { return false }
func (t ConsumerType) Equal(o Type) bool {
	other, ok := o.(ConsumerType)
	if !ok || len(other.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !typeEqual(t.Params[i], other.Params[i]) {
			return false
		}
	}
	return true
}

// GenericParamType is a named placeholder type used during polymorphism
// and substituted with a concrete type at call sites.
type GenericParamType struct {
	Name string
}

func (t GenericParamType) Kind() Kind      { return KindGenericParam }
func (t GenericParamType) IsMutable() bool { return false }
func (t GenericParamType) Equal(o Type) bool {
	other, ok := o.(GenericParamType)
	return ok && other.Name == t.Name
}

// ContractType and ContractImplType are meta-types used only by the
// checker to track contract (interface-like) declarations and their
// implementations; they never appear as the type of a value.
type ContractType struct {
	Name       string
	TypeParams []string
	Methods    map[string]FunctionType
}

func (t ContractType) Kind() Kind      { return KindContract }
func (t ContractType) IsMutable() bool { return false }
func (t ContractType) Equal(o Type) bool {
	other, ok := o.(ContractType)
	return ok && other.Name == t.Name
}

type ContractImplType struct {
	Contract string
	Args     []Type
}

func (t ContractImplType) Kind() Kind      { return KindContractImpl }
func (t ContractImplType) IsMutable() bool { return false }
func (t ContractImplType) Equal(o Type) bool {
	other, ok := o.(ContractImplType)
	if !ok || other.Contract != t.Contract || len(other.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !typeEqual(t.Args[i], other.Args[i]) {
			return false
		}
	}
	return true
}

func typeEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Equal is the package-level structural equality entry point.
func Equal(a, b Type) bool { return typeEqual(a, b) }
