package checker

import "vellum/pkg/ast"

// propagateBlocking treats a procedure declared non-blocking that
// transitively calls a blocking procedure as itself effectively blocking,
// and that's a diagnostic. Fixpoint over the call graph assembled while
// checking procs' bodies, seeded from each procedure's own declared flag
// plus forcedBlocking (set at a call site when a blocking-generic-over
// argument index is passed a directly blocking procedure value), then
// iterated until no entry's effective flag changes.
//
// This folds the inline "does this call make the caller blocking" check
// into one end-of-list diagnostic per procedure, so a procedure calling a
// blocking callee from three different call sites gets one diagnostic,
// not three.
func (c *Checker) propagateBlocking(procs []*ast.ProcedureDef) {
	for _, p := range procs {
		c.effectiveBlocking[p] = c.declaredBlocking[p] || c.forcedBlocking[p]
	}

	for changed := true; changed; {
		changed = false
		for _, p := range procs {
			if c.effectiveBlocking[p] {
				continue
			}
			for _, callee := range c.callGraph[p] {
				if c.isEffectivelyBlocking(callee) {
					c.effectiveBlocking[p] = true
					changed = true
					break
				}
			}
		}
	}

	for _, p := range procs {
		if c.effectiveBlocking[p] && !c.declaredBlocking[p] {
			c.errorf(p, "blocking_propagation",
				"%s is declared non-blocking but is effectively blocking", p.Name)
		}
	}
}

// isEffectivelyBlocking reports the known effective-blocking flag for a
// procedure, including ones declared outside the statement list currently
// being propagated (e.g. a dependency-module procedure, whose own
// propagation already ran when its defining module was checked).
func (c *Checker) isEffectivelyBlocking(p *ast.ProcedureDef) bool {
	if eff, ok := c.effectiveBlocking[p]; ok {
		return eff
	}
	return c.declaredBlocking[p]
}
