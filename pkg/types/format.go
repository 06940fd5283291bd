package types

import (
	"sort"
	"strconv"
	"strings"
)

// Format renders t in its canonical, deterministic user-facing string
// form. Equal constructions always format identically.
func Format(t Type) string {
	return formatWith(t, nil)
}

// FormatForDiagnostic renders t for error messages, consulting an
// optional generic→concrete substitution map to show the type actually
// bound at this call site instead of a bare placeholder name. A nil or
// empty sub behaves exactly like Format.
func FormatForDiagnostic(t Type, sub Substitution) string {
	return formatWith(t, sub)
}

func formatWith(t Type, sub Substitution) string {
	if t == nil {
		return "<nil>"
	}
	switch v := t.(type) {
	case primitive:
		return v.kind.String()
	case ListType:
		return mutPrefix(v.Mutable) + "list<" + formatWith(v.Values, sub) + ">"
	case SetType:
		return mutPrefix(v.Mutable) + "set<" + formatWith(v.Values, sub) + ">"
	case MapType:
		return mutPrefix(v.Mutable) + "map<" + formatWith(v.Keys, sub) + ", " + formatWith(v.Values, sub) + ">"
	case TupleType:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = formatWith(e, sub)
		}
		return mutPrefix(v.Mutable) + "(" + strings.Join(parts, ", ") + ")"
	case StructType:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Name + ": " + formatWith(f.Type, sub)
		}
		return mutPrefix(v.Mutable) + "struct{" + strings.Join(parts, ", ") + "}"
	case OneofType:
		parts := make([]string, len(v.Variants))
		for i, variant := range v.Variants {
			parts[i] = formatWith(variant, sub)
		}
		sort.Strings(parts)
		return "oneof{" + strings.Join(parts, " | ") + "}"
	case FutureType:
		return "future<" + formatWith(v.Value, sub) + ">"
	case UserDefinedType:
		if len(v.Args) == 0 {
			return v.TypeName
		}
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = formatWith(a, sub)
		}
		return v.TypeName + "<" + strings.Join(parts, ", ") + ">"
	case FunctionType:
		return blockingPrefix(v.Blocking, v.BlockingGenericOnArgs) +
			"(" + formatTypeList(v.Params, sub) + ") -> " + formatWith(v.Return, sub)
	case ProviderType:
		return blockingPrefix(v.Blocking, v.BlockingGenericOnArgs) + "() -> " + formatWith(v.Return, sub)
	case ConsumerType:
		return blockingPrefix(v.Blocking, v.BlockingGenericOnArgs) + "(" + formatTypeList(v.Params, sub) + ") -> nothing"
	case GenericParamType:
		if concrete, ok := sub[v.Name]; ok {
			return formatWith(concrete, sub)
		}
		return v.Name
	case ContractType:
		return "contract " + v.Name
	case ContractImplType:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = formatWith(a, sub)
		}
		return "impl " + v.Contract + "<" + strings.Join(parts, ", ") + ">"
	default:
		return "<unknown type>"
	}
}

func formatTypeList(ts []Type, sub Substitution) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = formatWith(t, sub)
	}
	return strings.Join(parts, ", ")
}

func mutPrefix(mutable bool) string {
	if mutable {
		return "mut "
	}
	return ""
}

// blockingPrefix renders the optional blocking qualifier on procedure
// types: "blocking ", "blocking? ", "blocking:idx|idx ", or "". A flat
// Blocking/MaybeBlocking mode takes precedence over
// BlockingGenericOnArgs since a procedure type carries one or the other,
// never both meaningfully.
func blockingPrefix(mode BlockingMode, genericOnArgs []int) string {
	switch mode {
	case Blocking:
		return "blocking "
	case MaybeBlocking:
		return "blocking? "
	}
	if len(genericOnArgs) == 0 {
		return ""
	}
	idx := make([]string, len(genericOnArgs))
	for i, a := range genericOnArgs {
		idx[i] = strconv.Itoa(a)
	}
	return "blocking:" + strings.Join(idx, "|") + " "
}
