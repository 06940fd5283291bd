// Package types implements the type algebra: the set of type values,
// structural equality, mutability projection, the deep-immutability
// predicate, and canonical/diagnostic formatting. One concrete struct per
// kind, dispatched through a common interface rather than a class
// hierarchy.
package types

// Kind is the base kind tag of a Type.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindModule
	KindNothing
	KindUndecided
	KindUnknowable
	KindList
	KindSet
	KindMap
	KindTuple
	KindStruct
	KindOneof
	KindFuture
	KindUserDefined
	KindFunction
	KindProvider
	KindConsumer
	KindGenericParam
	KindContract
	KindContractImpl
)

// BlockingMode is the declared blocking annotation carried by a procedure
// type. The effective blocking flag computed during checking lives
// outside the type value entirely, in a side-table keyed by a stable
// procedure identity, so Type stays a pure, structurally-comparable
// value.
type BlockingMode int

const (
	NotBlocking BlockingMode = iota
	Blocking
	MaybeBlocking
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindModule:
		return "module"
	case KindNothing:
		return "nothing"
	case KindUndecided:
		return "undecided"
	case KindUnknowable:
		return "unknowable"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindOneof:
		return "oneof"
	case KindFuture:
		return "future"
	case KindUserDefined:
		return "user_defined"
	case KindFunction:
		return "function"
	case KindProvider:
		return "provider"
	case KindConsumer:
		return "consumer"
	case KindGenericParam:
		return "generic_param"
	case KindContract:
		return "contract"
	case KindContractImpl:
		return "contract_impl"
	default:
		return "unknown"
	}
}
