package checker

import (
	"vellum/pkg/ast"
	"vellum/pkg/symbols"
	"vellum/pkg/types"
)

// InferType dispatches to the type-inference rule for expr's concrete node
// kind.
func (c *Checker) InferType(expr ast.Expression) types.Type {
	switch node := expr.(type) {
	case *ast.IntLit:
		return types.Int
	case *ast.FloatLit:
		return types.Float
	case *ast.StringLit:
		return types.String
	case *ast.BoolLit:
		return types.Bool
	case *ast.Ident:
		return c.checkReference(node)
	case *ast.ModuleRef:
		return c.checkModuleRef(node)
	case *ast.BinaryExpr:
		return c.checkNumericBinaryOp(node)
	case *ast.NegateExpr:
		return c.checkNegation(node)
	case *ast.EqualityExpr:
		return c.checkEquality(node)
	case *ast.CallExpr:
		return c.checkCall(node)
	case *ast.LambdaExpr:
		return c.checkLambda(node)
	case *ast.IfExpr:
		return c.checkIf(node)
	default:
		c.fatalf("checker: unhandled expression type %T", expr)
		return types.Unknowable
	}
}

// checkReference resolves an identifier and requires it to be initialized.
func (c *Checker) checkReference(id *ast.Ident) types.Type {
	typ, ok := c.Scopes.Lookup(id.Name)
	if !ok {
		c.errorf(id, "reference", "no variable in scope: %s", id.Name)
		return types.Unknowable
	}
	if !c.Scopes.IsInitialized(id.Name) {
		c.errorf(id, "reference", "%s may be uninitialized", id.Name)
		return types.Unknowable
	}
	return typ
}

func (c *Checker) checkModuleRef(m *ast.ModuleRef) types.Type {
	typ, ok := c.Scopes.Lookup(m.Name)
	if !ok {
		c.errorf(m, "reference", "no module in scope: %s", m.Name)
		return types.Unknowable
	}
	return typ
}

func isNumeric(t types.Type) bool {
	return t.Kind() == types.KindInt || t.Kind() == types.KindFloat
}

func isProcedureKind(t types.Type) bool {
	switch t.Kind() {
	case types.KindFunction, types.KindProvider, types.KindConsumer:
		return true
	default:
		return false
	}
}

// checkNumericBinaryOp requires both operands to be numeric; division
// always widens the result to FLOAT regardless of the operands' declared
// types (see DESIGN.md).
func (c *Checker) checkNumericBinaryOp(b *ast.BinaryExpr) types.Type {
	lt, rt := c.InferType(b.Left), c.InferType(b.Right)
	if lt.Kind() == types.KindUnknowable || rt.Kind() == types.KindUnknowable {
		return types.Unknowable
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		c.errorf(b, "binary_op", "unsupported operand type for numeric operator: %s and %s",
			types.Format(lt), types.Format(rt))
		return types.Unknowable
	}
	if b.Op == ast.OpDiv {
		return types.Float
	}
	if lt.Kind() == types.KindFloat || rt.Kind() == types.KindFloat {
		return types.Float
	}
	return types.Int
}

// checkNegation requires the operand to be numeric.
func (c *Checker) checkNegation(n *ast.NegateExpr) types.Type {
	t := c.InferType(n.Operand)
	if t.Kind() == types.KindUnknowable {
		return types.Unknowable
	}
	if !isNumeric(t) {
		c.errorf(n, "negation", "unsupported operand type for negation: %s", types.Format(t))
		return types.Unknowable
	}
	return t
}

// checkEquality accepts any pair of structurally equal types except two
// procedure-kinded types, which are rejected outright regardless of
// whether their signatures happen to match (see DESIGN.md).
func (c *Checker) checkEquality(e *ast.EqualityExpr) types.Type {
	lt, rt := c.InferType(e.Left), c.InferType(e.Right)
	if lt.Kind() != types.KindUnknowable && rt.Kind() != types.KindUnknowable {
		if isProcedureKind(lt) && isProcedureKind(rt) {
			c.errorf(e, "equality", "cannot compare procedure-kinded types: %s and %s",
				types.Format(lt), types.Format(rt))
		} else if !types.Equal(lt, rt) {
			c.errorf(e, "equality", "cannot compare unequal types: %s and %s",
				types.Format(lt), types.Format(rt))
		}
	}
	return types.Bool
}

// checkLambda opens a LAMBDA scope and checks the body inside it; every
// outer name resolved through the capability gate is recorded in the
// scope's captured_names by symbols.Table itself.
func (c *Checker) checkLambda(l *ast.LambdaExpr) types.Type {
	paramTypes := make([]types.Type, len(l.Params))
	for i, param := range l.Params {
		resolved, err := c.resolveTypeExpr(param.Type, nil)
		if err != nil {
			c.errorf(l, "lambda", "%v", err)
			resolved = types.Unknowable
		}
		paramTypes[i] = resolved
	}
	var retType types.Type = types.Nothing
	if l.ReturnType != nil {
		resolved, err := c.resolveTypeExpr(l.ReturnType, nil)
		if err != nil {
			c.errorf(l, "lambda", "%v", err)
			resolved = types.Unknowable
		}
		retType = resolved
	}

	prevReturn := c.currentReturnType
	c.currentReturnType = retType

	c.Scopes.EnterScope(symbols.Lambda)
	for i, param := range l.Params {
		c.Scopes.PutWithHiding(param.Name, paramTypes[i], nil)
		c.Scopes.Initialize(param.Name)
	}
	c.checkStatements(l.Body.Stmts)
	c.reportUnused(c.Scopes.ExitScope(true))

	c.currentReturnType = prevReturn

	ft := types.ConstructFunction(paramTypes, retType)
	return ft
}

// checkCall checks arity, per-arg types, blocking-propagation call-graph
// edges, blocking-generic-over argument indices, and generic unification.
// The blocking-propagation error itself is reported once, after the whole
// enclosing statement list's procedures have been checked (see
// propagateBlocking) rather than at each call site, to avoid emitting the
// same "declared non-blocking but effectively blocking" diagnostic once
// per call.
func (c *Checker) checkCall(call *ast.CallExpr) types.Type {
	calleeType := c.InferType(call.Callee)
	if calleeType.Kind() == types.KindUnknowable {
		for _, a := range call.Args {
			c.InferType(a)
		}
		return types.Unknowable
	}

	var params []types.Type
	var ret types.Type
	var generics []string
	var blockingGenericOn []int

	switch ct := calleeType.(type) {
	case types.FunctionType:
		params, ret, generics, blockingGenericOn = ct.Params, ct.Return, ct.GenericParams, ct.BlockingGenericOnArgs
	case types.ProviderType:
		params, ret, generics, blockingGenericOn = nil, ct.Return, ct.GenericParams, ct.BlockingGenericOnArgs
	case types.ConsumerType:
		params, ret, generics, blockingGenericOn = ct.Params, types.Nothing, ct.GenericParams, ct.BlockingGenericOnArgs
	default:
		c.errorf(call, "call", "not callable: %s", types.Format(calleeType))
		for _, a := range call.Args {
			c.InferType(a)
		}
		return types.Unknowable
	}

	if len(call.Args) != len(params) {
		c.errorf(call, "call", "arity mismatch: expected %d argument(s), got %d", len(params), len(call.Args))
		for _, a := range call.Args {
			c.InferType(a)
		}
		return types.Unknowable
	}

	sub := types.Substitution{}
	ok := true
	for i, argExpr := range call.Args {
		argType := c.InferType(argExpr)
		if argType.Kind() == types.KindUnknowable {
			ok = false
			continue
		}
		if containsInt(blockingGenericOn, i) {
			c.markBlockingGenericArg(argExpr, argType)
		}
		if len(generics) > 0 {
			if !types.Unify(params[i], argType, sub) {
				c.errorf(argExpr, "call", "argument %d: cannot unify %s with %s",
					i, types.FormatForDiagnostic(params[i], sub), types.Format(argType))
				ok = false
			}
		} else if !types.Equal(params[i], argType) {
			c.errorf(argExpr, "call", "argument %d: expected %s, got %s",
				i, types.Format(params[i]), types.Format(argType))
			ok = false
		}
	}
	if !ok {
		return types.Unknowable
	}

	if calleeProc, found := c.resolveCalleeProcedureDef(call.Callee); found && c.currentProcedure != nil {
		c.callGraph[c.currentProcedure] = append(c.callGraph[c.currentProcedure], calleeProc)
		c.collectObligations(calleeProc, sub)
	}

	if len(generics) > 0 {
		return types.Substitute(ret, sub)
	}
	return ret
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// markBlockingGenericArg handles one argument passed at a blocking-generic
// index: if it names a known procedure, a callGraph edge is enough — the
// blocking fixpoint already propagates that procedure's effective flag to
// the current caller. Otherwise the argument's own static type is the only
// signal available, so a directly Blocking procedure value forces the
// caller blocking right away.
func (c *Checker) markBlockingGenericArg(argExpr ast.Expression, argType types.Type) {
	if c.currentProcedure == nil {
		return
	}
	if calleeProc, found := c.resolveCalleeProcedureDef(argExpr); found {
		c.callGraph[c.currentProcedure] = append(c.callGraph[c.currentProcedure], calleeProc)
		return
	}
	if blockingModeOf(argType) == types.Blocking {
		c.forcedBlocking[c.currentProcedure] = true
	}
}

func blockingModeOf(t types.Type) types.BlockingMode {
	switch v := t.(type) {
	case types.FunctionType:
		return v.Blocking
	case types.ProviderType:
		return v.Blocking
	case types.ConsumerType:
		return v.Blocking
	default:
		return types.NotBlocking
	}
}

func (c *Checker) resolveCalleeProcedureDef(callee ast.Expression) (*ast.ProcedureDef, bool) {
	id, ok := callee.(*ast.Ident)
	if !ok {
		return nil, false
	}
	p, ok := c.procsByName[id.Name]
	return p, ok
}

// collectObligations augments the caller's contract-obligation table with
// the callee's, substituting the generic mapping resolved at this call
// site.
func (c *Checker) collectObligations(callee *ast.ProcedureDef, sub types.Substitution) {
	if c.currentProcedure == nil || len(callee.RequiredContracts) == 0 {
		return
	}
	calleeType, ok := c.Scopes.GetType(callee.Name)
	if !ok {
		return
	}
	var required []types.ConstraintObligation
	switch v := calleeType.(type) {
	case types.FunctionType:
		required = v.RequiredContracts
	case types.ProviderType:
		required = v.RequiredContracts
	case types.ConsumerType:
		required = v.RequiredContracts
	}
	for _, req := range required {
		args := make([]types.Type, len(req.Args))
		for i, a := range req.Args {
			args[i] = types.Substitute(a, sub)
		}
		c.obligations = append(c.obligations, Obligation{
			Proc: c.currentProcedure, Contract: req.Contract, Args: args,
		})
	}
}
