package types

// Registry holds the type algebra's process-wide mutable state: the
// wrapped-body-by-nominal-name table, the
// declared-type-parameter-names-by-nominal-name table, and a set of
// registered contract implementations. A nominal user-defined type never
// carries its wrapped body inline — cyclic type references (a type
// mentioning itself through a parameter) are expressed purely through
// these maps keyed by name, so the Type values themselves stay acyclic,
// structurally-comparable data.
//
// Registry is owned by whoever drives one compilation (checker.Checker,
// modules.Binder); constructing a fresh Registry per run satisfies the
// "must be clearable between runs" requirement by construction instead of
// relying on a Reset call someone might forget.
type Registry struct {
	bodies         map[string]Type
	typeParamNames map[string][]string
	contractImpls  map[string]struct{}
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bodies:         make(map[string]Type),
		typeParamNames: make(map[string][]string),
		contractImpls:  make(map[string]struct{}),
	}
}

// RegisterContractImpl records that an implementation exists for the given
// contract name applied to the given concrete argument types. Tracked
// alongside the type registries rather than inside the type values
// themselves.
func (r *Registry) RegisterContractImpl(contract string, args []Type) {
	r.contractImpls[contractImplKey(contract, args)] = struct{}{}
}

// HasContractImpl reports whether an implementation was registered for the
// given contract applied to the given concrete argument types.
func (r *Registry) HasContractImpl(contract string, args []Type) bool {
	_, ok := r.contractImpls[contractImplKey(contract, args)]
	return ok
}

func contractImplKey(contract string, args []Type) string {
	key := contract
	for _, a := range args {
		key += "|" + Format(a)
	}
	return key
}

// Register records a user-defined type's wrapped body and declared
// generic-parameter names under its unique qualified name. Called when a
// type definition is observed (by the checker for local definitions, by
// module binding for imported ones).
func (r *Registry) Register(qualifiedName string, typeParamNames []string, body Type) {
	names := append([]string(nil), typeParamNames...)
	r.bodies[qualifiedName] = body
	r.typeParamNames[qualifiedName] = names
}

// Lookup returns the registered wrapped body and generic-parameter names
// for a nominal type, or ok=false if it was never registered.
func (r *Registry) Lookup(qualifiedName string) (body Type, typeParamNames []string, ok bool) {
	body, ok = r.bodies[qualifiedName]
	if !ok {
		return nil, nil, false
	}
	return body, r.typeParamNames[qualifiedName], true
}

// Reset clears all registries, for reuse across independent compilation
// runs within one process.
func (r *Registry) Reset() {
	r.bodies = make(map[string]Type)
	r.typeParamNames = make(map[string][]string)
	r.contractImpls = make(map[string]struct{})
}

// WrappedBody resolves a UserDefinedType's substituted wrapped body: the
// registered body with its declared generic-parameter names replaced by
// t.Args positionally. Returns ok=false if the nominal name was never
// registered or the arity doesn't match.
func (r *Registry) WrappedBody(t UserDefinedType) (Type, bool) {
	body, paramNames, ok := r.Lookup(t.TypeName)
	if !ok {
		return nil, false
	}
	if len(paramNames) != len(t.Args) {
		return nil, false
	}
	if len(paramNames) == 0 {
		return body, true
	}
	sub := make(Substitution, len(paramNames))
	for i, name := range paramNames {
		sub[name] = t.Args[i]
	}
	return Substitute(body, sub), true
}
