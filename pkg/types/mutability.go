package types

// ToShallowlyMutable flips the outermost mutable flag to true, preserving
// slot contents. Defined only for LIST, SET, MAP, TUPLE, STRUCT; ok is
// false for any other kind.
func ToShallowlyMutable(t Type) (Type, bool) {
	switch v := t.(type) {
	case ListType:
		v.Mutable = true
		return v, true
	case SetType:
		v.Mutable = true
		return v, true
	case MapType:
		v.Mutable = true
		return v, true
	case TupleType:
		v.Mutable = true
		return v, true
	case StructType:
		v.Mutable = true
		return v, true
	default:
		return nil, false
	}
}

// IsDeeplyImmutable reports whether t carries no mutable=true anywhere in
// its transitive structure and every wrapped user-defined body is itself
// deeply immutable. Primitive kinds are trivially deeply immutable. reg
// resolves UserDefinedType wrapped bodies; it may be nil only if t is
// guaranteed to contain no UserDefinedType.
func IsDeeplyImmutable(t Type, reg *Registry) bool {
	if t == nil {
		return true
	}
	if t.IsMutable() {
		return false
	}
	switch v := t.(type) {
	case ListType:
		return IsDeeplyImmutable(v.Values, reg)
	case SetType:
		return IsDeeplyImmutable(v.Values, reg)
	case MapType:
		return IsDeeplyImmutable(v.Keys, reg) && IsDeeplyImmutable(v.Values, reg)
	case TupleType:
		for _, e := range v.Elements {
			if !IsDeeplyImmutable(e, reg) {
				return false
			}
		}
		return true
	case StructType:
		for _, f := range v.Fields {
			if !IsDeeplyImmutable(f.Type, reg) {
				return false
			}
		}
		return true
	case OneofType:
		for _, variant := range v.Variants {
			if !IsDeeplyImmutable(variant, reg) {
				return false
			}
		}
		return true
	case FutureType:
		return IsDeeplyImmutable(v.Value, reg)
	case UserDefinedType:
		if reg == nil {
			return false
		}
		body, ok := reg.WrappedBody(v)
		if !ok {
			return false
		}
		return IsDeeplyImmutable(body, reg)
	default:
		// Primitives and procedure/generic/meta kinds carry no mutable
		// substructure.
		return true
	}
}

// ToDeeplyImmutable returns a rebuilt deeply-immutable variant of t, or
// ok=false when no such variant exists (e.g. a nested FUTURE whose payload
// is not deeply immutable and cannot be coerced, or a user-defined type
// whose wrapped body is not deeply immutable).
func ToDeeplyImmutable(t Type, reg *Registry) (Type, bool) {
	if t == nil {
		return nil, true
	}
	switch v := t.(type) {
	case ListType:
		inner, ok := ToDeeplyImmutable(v.Values, reg)
		if !ok {
			return nil, false
		}
		return ListType{Values: inner, Mutable: false}, true
	case SetType:
		inner, ok := ToDeeplyImmutable(v.Values, reg)
		if !ok {
			return nil, false
		}
		return SetType{Values: inner, Mutable: false}, true
	case MapType:
		keys, ok := ToDeeplyImmutable(v.Keys, reg)
		if !ok {
			return nil, false
		}
		values, ok := ToDeeplyImmutable(v.Values, reg)
		if !ok {
			return nil, false
		}
		return MapType{Keys: keys, Values: values, Mutable: false}, true
	case TupleType:
		elements := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			immutable, ok := ToDeeplyImmutable(e, reg)
			if !ok {
				return nil, false
			}
			elements[i] = immutable
		}
		return TupleType{Elements: elements, Mutable: false}, true
	case StructType:
		fields := make([]StructField, len(v.Fields))
		for i, f := range v.Fields {
			immutable, ok := ToDeeplyImmutable(f.Type, reg)
			if !ok {
				return nil, false
			}
			fields[i] = StructField{Name: f.Name, Type: immutable}
		}
		return StructType{Fields: fields, Mutable: false}, true
	case OneofType:
		variants := make([]Type, len(v.Variants))
		for i, variant := range v.Variants {
			immutable, ok := ToDeeplyImmutable(variant, reg)
			if !ok {
				return nil, false
			}
			variants[i] = immutable
		}
		return OneofType{Variants: variants}, true
	case FutureType:
		// A future's payload can't be retroactively rewritten at the
		// point of the future's creation; we can only accept it as-is if
		// it's already deeply immutable.
		if !IsDeeplyImmutable(v.Value, reg) {
			return nil, false
		}
		return v, true
	case UserDefinedType:
		if reg == nil {
			return nil, false
		}
		body, ok := reg.WrappedBody(v)
		if !ok || !IsDeeplyImmutable(body, reg) {
			return nil, false
		}
		return v, true
	default:
		return t, true
	}
}
