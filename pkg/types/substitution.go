package types

// Substitution maps a generic parameter name to the concrete type it was
// unified with at a call site. It is threaded explicitly as a value
// rather than stored as hidden package state: the map is only ever
// meaningful for the duration of one instantiation or one diagnostic
// format call, so passing it around keeps Type construction and
// formatting referentially transparent.
type Substitution map[string]Type

// Substitute returns t with every GenericParamType replaced per sub,
// recursing through all container/procedure/user-defined slots. Types
// with no generic parameters anywhere are returned unchanged (by value,
// since Type values are immutable).
func Substitute(t Type, sub Substitution) Type {
	if len(sub) == 0 || t == nil {
		return t
	}
	switch v := t.(type) {
	case GenericParamType:
		if concrete, ok := sub[v.Name]; ok {
			return concrete
		}
		return v
	case ListType:
		v.Values = Substitute(v.Values, sub)
		return v
	case SetType:
		v.Values = Substitute(v.Values, sub)
		return v
	case MapType:
		v.Keys = Substitute(v.Keys, sub)
		v.Values = Substitute(v.Values, sub)
		return v
	case TupleType:
		els := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			els[i] = Substitute(e, sub)
		}
		v.Elements = els
		return v
	case StructType:
		fields := make([]StructField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = StructField{Name: f.Name, Type: Substitute(f.Type, sub)}
		}
		v.Fields = fields
		return v
	case OneofType:
		variants := make([]Type, len(v.Variants))
		for i, variant := range v.Variants {
			variants[i] = Substitute(variant, sub)
		}
		v.Variants = variants
		return v
	case FutureType:
		v.Value = Substitute(v.Value, sub)
		return v
	case UserDefinedType:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, sub)
		}
		v.Args = args
		return v
	case FunctionType:
		v.Params = substituteAll(v.Params, sub)
		v.Return = Substitute(v.Return, sub)
		return v
	case ProviderType:
		v.Return = Substitute(v.Return, sub)
		return v
	case ConsumerType:
		v.Params = substituteAll(v.Params, sub)
		return v
	default:
		return t
	}
}

func substituteAll(ts []Type, sub Substitution) []Type {
	if len(ts) == 0 {
		return ts
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(t, sub)
	}
	return out
}

// Unify attempts to unify a generic parameterized type (which may contain
// GenericParamType placeholders) against a concrete argument type,
// extending sub with every placeholder it resolves. It reports false if
// the shapes are structurally incompatible. Used during call-site generic
// instantiation.
func Unify(parameterized, concrete Type, sub Substitution) bool {
	if parameterized == nil || concrete == nil {
		return parameterized == nil && concrete == nil
	}
	if gp, ok := parameterized.(GenericParamType); ok {
		if existing, bound := sub[gp.Name]; bound {
			return typeEqual(existing, concrete)
		}
		sub[gp.Name] = concrete
		return true
	}
	switch p := parameterized.(type) {
	case ListType:
		c, ok := concrete.(ListType)
		return ok && c.Mutable == p.Mutable && Unify(p.Values, c.Values, sub)
	case SetType:
		c, ok := concrete.(SetType)
		return ok && c.Mutable == p.Mutable && Unify(p.Values, c.Values, sub)
	case MapType:
		c, ok := concrete.(MapType)
		return ok && c.Mutable == p.Mutable && Unify(p.Keys, c.Keys, sub) && Unify(p.Values, c.Values, sub)
	case TupleType:
		c, ok := concrete.(TupleType)
		if !ok || c.Mutable != p.Mutable || len(c.Elements) != len(p.Elements) {
			return false
		}
		for i := range p.Elements {
			if !Unify(p.Elements[i], c.Elements[i], sub) {
				return false
			}
		}
		return true
	case FutureType:
		c, ok := concrete.(FutureType)
		return ok && Unify(p.Value, c.Value, sub)
	case UserDefinedType:
		c, ok := concrete.(UserDefinedType)
		if !ok || c.TypeName != p.TypeName || len(c.Args) != len(p.Args) {
			return false
		}
		for i := range p.Args {
			if !Unify(p.Args[i], c.Args[i], sub) {
				return false
			}
		}
		return true
	default:
		return typeEqual(parameterized, concrete)
	}
}
