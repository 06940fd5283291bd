// Package checker implements the semantic checker: a tree-walk over
// pkg/ast that assigns and validates types per node, consulting pkg/types
// for type operations and pkg/symbols for binding introduction/lookup, and
// recording diagnostics into a pkg/diagnostics.Sink instead of panicking.
package checker

import (
	"fmt"

	"vellum/pkg/ast"
	"vellum/pkg/diagnostics"
	"vellum/pkg/symbols"
	"vellum/pkg/types"
)

// Checker holds everything one compilation pass threads through the AST
// walk. It is not safe for concurrent use; construct one per compilation.
// State lives on this explicit value rather than in package globals.
type Checker struct {
	Types  *types.Registry
	Scopes *symbols.Table
	Diags  *diagnostics.Sink

	currentProcedure  *ast.ProcedureDef
	currentReturnType types.Type

	declaredBlocking  map[*ast.ProcedureDef]bool
	effectiveBlocking map[*ast.ProcedureDef]bool
	forcedBlocking    map[*ast.ProcedureDef]bool
	procsByName       map[string]*ast.ProcedureDef
	callGraph         map[*ast.ProcedureDef][]*ast.ProcedureDef
	obligations       []Obligation
}

// Obligation is one (contract, concrete-args) pair a generic call site
// required of its caller, waiting to be checked against registered
// contract implementations.
type Obligation struct {
	Proc     *ast.ProcedureDef
	Contract string
	Args     []types.Type
}

// New constructs a Checker over a shared type registry. Passing the same
// *types.Registry used to seed module binding lets locally-defined and
// dependency-defined nominal types resolve through one lookup surface.
func New(reg *types.Registry) *Checker {
	return &Checker{
		Types:             reg,
		Scopes:            symbols.New(),
		Diags:             diagnostics.New(),
		declaredBlocking:  make(map[*ast.ProcedureDef]bool),
		effectiveBlocking: make(map[*ast.ProcedureDef]bool),
		forcedBlocking:    make(map[*ast.ProcedureDef]bool),
		procsByName:       make(map[string]*ast.ProcedureDef),
		callGraph:         make(map[*ast.ProcedureDef][]*ast.ProcedureDef),
	}
}

// CheckModule type-checks every top-level statement of m in declaration
// order, applying the same hoist-then-check-then-propagate-blocking
// discipline used for any statement list.
func (c *Checker) CheckModule(m *ast.Module) {
	c.checkStatements(m.Body)
}

// Obligations returns the contract obligations accumulated across every
// generic call site checked so far.
func (c *Checker) Obligations() []Obligation { return c.obligations }

// VerifyContracts checks every accumulated obligation against the
// registry's recorded contract implementations, recording a "missing
// contract implementation" diagnostic for each unsatisfied one. Callers
// invoke this once, after the whole program (including all dependency
// modules) has been checked and bound, so implementations registered by
// module binding are visible.
func (c *Checker) VerifyContracts() {
	for _, ob := range c.obligations {
		if !c.Types.HasContractImpl(ob.Contract, ob.Args) {
			argList := make([]string, len(ob.Args))
			for i, a := range ob.Args {
				argList[i] = types.Format(a)
			}
			c.errorf(nil, "contract_obligation",
				"missing implementation of contract %s<%s> required by %s",
				ob.Contract, joinComma(argList), ob.Proc.Name)
		}
	}
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// checkStatements hoists every procedure signature in stmts before
// checking any statement body, so forward references resolve, then checks
// each statement in source order, then runs the blocking-propagation
// fixpoint over the procedures declared directly in this list.
func (c *Checker) checkStatements(stmts []ast.Statement) {
	var procs []*ast.ProcedureDef
	for _, s := range stmts {
		if p, ok := s.(*ast.ProcedureDef); ok {
			c.declareProcedureSignature(p)
			procs = append(procs, p)
		}
	}
	for _, s := range stmts {
		c.checkStatement(s)
	}
	c.propagateBlocking(procs)
}

func (c *Checker) checkStatement(s ast.Statement) {
	switch node := s.(type) {
	case *ast.VarDecl:
		c.checkDeclaration(node)
	case *ast.StaticValueDecl:
		c.checkStaticValueDecl(node)
	case *ast.AssignStmt:
		c.checkAssignment(node)
	case *ast.ReturnStmt:
		c.checkReturn(node)
	case *ast.ExprStmt:
		c.InferType(node.Expr)
	case *ast.StructDef:
		c.checkStructDef(node)
	case *ast.OneofDef:
		c.checkOneofDef(node)
	case *ast.UserDefinedDef:
		c.checkUserDefinedDef(node)
	case *ast.ProcedureDef:
		c.checkProcedureBody(node)
	case *ast.Block:
		c.checkBlock(node, symbols.Block)
	default:
		c.fatalf("checker: unhandled statement type %T", s)
	}
}

// checkBlock enters a scope of the given kind, checks every statement in
// it, then exits with the unused-binding check enabled, surfacing any
// UnusedSymbol as a diagnostic.
func (c *Checker) checkBlock(b *ast.Block, kind symbols.ScopeKind) {
	c.Scopes.EnterScope(kind)
	c.checkStatements(b.Stmts)
	c.reportUnused(c.Scopes.ExitScope(true))
}

func (c *Checker) reportUnused(unused []symbols.UnusedSymbol) {
	for _, u := range unused {
		msg := fmt.Sprintf("unused symbol %s", u.Name)
		if u.Warning {
			c.Diags.AddTypeWarning("unused_symbol", diagnostics.Diagnostic{Message: msg})
		} else {
			c.Diags.AddTypeError("unused_symbol", diagnostics.Diagnostic{Message: msg})
		}
	}
}

func (c *Checker) errorf(node ast.Node, emitterClass, format string, args ...any) {
	d := diagnostics.Diagnostic{Message: fmt.Sprintf(format, args...)}
	if node != nil {
		d.Location = spanToLocation(node.Span())
	}
	c.Diags.AddTypeError(emitterClass, d)
}

func (c *Checker) errorWithSuggestion(node ast.Node, emitterClass, message, suggestion string) {
	if suggestion != "" {
		message = message + " (suggested deeply-immutable variant: " + suggestion + ")"
	}
	c.errorf(node, emitterClass, "%s", message)
}

func spanToLocation(sp ast.Span) diagnostics.Location {
	return diagnostics.Location{
		Path: sp.File, Line: sp.Line, Column: sp.Column,
		EndLine: sp.EndLine, EndColumn: sp.EndColumn,
	}
}

// fatalf reports an internal invariant violation. These are not
// diagnostics recoverable by continuing the walk; they panic.
func (c *Checker) fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
