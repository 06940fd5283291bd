package symbols

import "vellum/pkg/types"

// Lookup performs the capability-gated search, crossing PROCEDURE and
// LAMBDA scope boundaries according to their distinct
// visibility rules, implicitly capturing by snapshot the first time a
// lookup resolves outside a lambda. It returns the resolved type and
// marks the resolved binding (and, on capture, the original outer
// binding) used.
func (t *Table) Lookup(name string) (types.Type, bool) {
	level, ok := t.findVisibleLevel(name)
	if !ok {
		return nil, false
	}
	b := t.scopes[level].bindings[name]
	b.Used = true
	return b.Type, true
}

// LookupBinding is like Lookup but returns the full Binding rather than
// just its type, for callers (e.g. the interpreter path) that also need
// the value.
func (t *Table) LookupBinding(name string) (*Binding, bool) {
	level, ok := t.findVisibleLevel(name)
	if !ok {
		return nil, false
	}
	b := t.scopes[level].bindings[name]
	b.Used = true
	return b, true
}

// findVisibleLevel walks the scope stack outward from the top, applying
// the "is this name declared and visible from here" predicate: a PROCEDURE
// boundary only lets procedure/module/type-def bindings through, a LAMBDA
// boundary lets anything through but triggers a capture.
func (t *Table) findVisibleLevel(name string) (int, bool) {
	pastProcedure := -1
	pastLambda := -1

	for i := len(t.scopes) - 1; i >= 0; i-- {
		scope := t.scopes[i]
		b, has := scope.bindings[name]

		switch scope.kind {
		case Block:
			if !has {
				continue
			}
			if pastProcedure < 0 && pastLambda < 0 {
				return i, true
			}
			if isProcedureModuleOrTypeDef(b) {
				return i, true
			}
			if pastProcedure >= 0 {
				// Only procedure/module/type-def bindings cross a
				// PROCEDURE boundary; anything else is not found.
				return -1, false
			}
			// Only a LAMBDA boundary was crossed: capture by snapshot.
			t.captureInto(pastLambda, name, b)
			return pastLambda, true

		case Procedure:
			if has {
				if pastProcedure >= 0 && !isProcedureModuleOrTypeDef(b) {
					return -1, false
				}
				if pastLambda >= 0 {
					t.captureInto(pastLambda, name, b)
					return pastLambda, true
				}
				return i, true
			}
			if pastProcedure < 0 {
				pastProcedure = i
			}

		case Lambda:
			if has {
				if pastProcedure >= 0 && !isProcedureModuleOrTypeDef(b) {
					return -1, false
				}
				if pastLambda >= 0 {
					t.captureInto(pastLambda, name, b)
					return pastLambda, true
				}
				return i, true
			}
			if pastLambda < 0 {
				pastLambda = i
			}
		}
	}
	return -1, false
}

func isProcedureModuleOrTypeDef(b *Binding) bool {
	if b.IsTypeDefinition {
		return true
	}
	if b.Type == nil {
		return false
	}
	switch b.Type.Kind().String() {
	case "function", "provider", "consumer":
		return true
	case "module":
		return true
	default:
		return false
	}
}

// captureInto installs a shadow copy of b inside the lambda scope at
// lambdaLevel (if one isn't already there), records the name in that
// scope's captured set, and marks the original outer binding used. The
// shadow's initialization status mirrors the outer binding's
// current initialization status at the moment of capture, so that a
// captured-but-not-yet-initialized outer variable still reads as
// uninitialized from inside the lambda.
func (t *Table) captureInto(lambdaLevel int, name string, outer *Binding) {
	scope := t.scopes[lambdaLevel]
	if _, already := scope.bindings[name]; !already {
		shadow := &Binding{Type: outer.Type, Value: outer.Value, Declared: outer.Declared}
		scope.bindings[name] = shadow
		scope.captured[name] = struct{}{}
		if t.isInitializedFrom(name, lambdaLevel) {
			scope.initialized[name] = struct{}{}
		}
	}
	outer.Used = true
}

// isInitializedFrom mirrors IsInitialized but searches outward only
// through the scopes below startLevel, used to snapshot an outer binding's
// initialization status at capture time without the lambda scope's own
// shadow entry ending the search.
func (t *Table) isInitializedFrom(name string, startLevel int) bool {
	for i := startLevel - 1; i >= 0; i-- {
		if _, ok := t.scopes[i].initialized[name]; ok {
			return true
		}
		if _, ok := t.scopes[i].bindings[name]; ok {
			return false
		}
	}
	return false
}
