package checker

import (
	"vellum/pkg/ast"
	"vellum/pkg/symbols"
	"vellum/pkg/types"
)

// checkIf applies branch-coverage policy: a name
// initialized along every arm of a total branch group (one with an else)
// is considered initialized after the group; a group missing an else can
// never be total, so it is checked without branch inspection and
// contributes no initializations to the enclosing scope.
func (c *Checker) checkIf(ifExpr *ast.IfExpr) types.Type {
	condType := c.InferType(ifExpr.Cond)
	if condType.Kind() != types.KindUnknowable && condType.Kind() != types.KindBool {
		c.errorf(ifExpr, "if_condition", "condition must be bool, got %s", types.Format(condType))
	}

	total := ifExpr.Else != nil
	if total {
		c.Scopes.BeginBranchInspection()
	}

	c.checkBlock(ifExpr.Then, symbols.Block)
	for _, arm := range ifExpr.ElseIfs {
		armCondType := c.InferType(arm.Cond)
		if armCondType.Kind() != types.KindUnknowable && armCondType.Kind() != types.KindBool {
			c.errorf(ifExpr, "if_condition", "condition must be bool, got %s", types.Format(armCondType))
		}
		c.checkBlock(arm.Body, symbols.Block)
	}
	if ifExpr.Else != nil {
		c.checkBlock(ifExpr.Else, symbols.Block)
	}

	if total {
		c.Scopes.FinalizeBranches()
	}

	return types.Nothing
}

// checkAssignment requires the target to already be visible through the
// capability-gated lookup (so an assignment inside a lambda to an outer
// name captures it, same as a read), requires the value's type to match
// the declared type, and records initialization at the current scope, not
// the declaring one, so it participates correctly in branch merging.
func (c *Checker) checkAssignment(a *ast.AssignStmt) {
	declaredType, ok := c.Scopes.Lookup(a.Name)
	if !ok {
		c.errorf(a, "assignment", "no variable in scope: %s", a.Name)
		c.InferType(a.Value)
		return
	}

	valueType := c.InferType(a.Value)
	if declaredType.Kind() != types.KindUnknowable && valueType.Kind() != types.KindUnknowable &&
		!types.Equal(valueType, declaredType) {
		c.errorf(a, "assignment", "cannot assign %s to %s (declared %s)",
			types.Format(valueType), a.Name, types.Format(declaredType))
	}

	c.Scopes.Initialize(a.Name)
}

// checkReturn requires a value's type to match the enclosing procedure's
// declared return type; a bare return is only legal when that return type
// is NOTHING.
func (c *Checker) checkReturn(r *ast.ReturnStmt) {
	expected := c.currentReturnType
	if expected == nil {
		c.fatalf("checker: return statement outside a procedure body")
	}

	if r.Value == nil {
		if expected.Kind() != types.KindUnknowable && expected.Kind() != types.KindNothing {
			c.errorf(r, "return", "missing return value, expected %s", types.Format(expected))
		}
		return
	}

	valueType := c.InferType(r.Value)
	if expected.Kind() != types.KindUnknowable && valueType.Kind() != types.KindUnknowable &&
		!types.Equal(valueType, expected) {
		c.errorf(r, "return", "cannot return %s, expected %s", types.Format(valueType), types.Format(expected))
	}
}
