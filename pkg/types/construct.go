package types

import "fmt"

// ConstructList builds a LIST type. Parameterized variants always take
// their slot explicitly.
func ConstructList(values Type, mutable bool) Type {
	return ListType{Values: values, Mutable: mutable}
}

// ConstructSet builds a SET type. Returns an error if values is
// FUTURE-kinded: hashing a future is nonsensical.
func ConstructSet(values Type, mutable bool) (Type, error) {
	if values.Kind() == KindFuture {
		return nil, fmt.Errorf("types: set values type must not be a future, got %s", Format(values))
	}
	return SetType{Values: values, Mutable: mutable}, nil
}

// ConstructMap builds a MAP type. Returns an error if keys is
// FUTURE-kinded.
func ConstructMap(keys, values Type, mutable bool) (Type, error) {
	if keys.Kind() == KindFuture {
		return nil, fmt.Errorf("types: map keys type must not be a future, got %s", Format(keys))
	}
	return MapType{Keys: keys, Values: values, Mutable: mutable}, nil
}

// ConstructTuple builds a TUPLE type over the given ordered element types.
func ConstructTuple(elements []Type, mutable bool) Type {
	els := append([]Type(nil), elements...)
	return TupleType{Elements: els, Mutable: mutable}
}

// ConstructStruct builds a STRUCT type from its ordered (name, type) field
// list.
func ConstructStruct(fields []StructField, mutable bool) Type {
	fs := append([]StructField(nil), fields...)
	return StructType{Fields: fs, Mutable: mutable}
}

// ConstructOneof builds a ONEOF type, rejecting construction if any
// variant repeats.
func ConstructOneof(variants []Type) (Type, error) {
	for i := 0; i < len(variants); i++ {
		for j := i + 1; j < len(variants); j++ {
			if typeEqual(variants[i], variants[j]) {
				return nil, fmt.Errorf("types: oneof has duplicated variant %s", Format(variants[i]))
			}
		}
	}
	vs := append([]Type(nil), variants...)
	return OneofType{Variants: vs}, nil
}

// ConstructFuture builds a FUTURE type wrapping value.
func ConstructFuture(value Type) Type {
	return FutureType{Value: value}
}

// ConstructFunction, ConstructProvider, ConstructConsumer build the three
// procedure-type arities.
func ConstructFunction(params []Type, ret Type) FunctionType {
	ps := append([]Type(nil), params...)
	return FunctionType{Params: ps, Return: ret}
}

func ConstructProvider(ret Type) ProviderType {
	return ProviderType{Return: ret}
}

func ConstructConsumer(params []Type) ConsumerType {
	ps := append([]Type(nil), params...)
	return ConsumerType{Params: ps}
}

// ConstructGenericParam builds a GENERIC_PARAM placeholder type.
func ConstructGenericParam(name string) Type {
	return GenericParamType{Name: name}
}
