package checker

import (
	"fmt"

	"vellum/pkg/ast"
	"vellum/pkg/symbols"
	"vellum/pkg/types"
)

// checkDeclaration errors on redeclaration in the current visible scope;
// with an annotation, assert
// the initializer's type matches exactly; without one, infer it. Either
// way, observe the binding; mark it initialized only when an initializer
// is present.
func (c *Checker) checkDeclaration(d *ast.VarDecl) {
	if c.Scopes.IsDeclared(d.Name) {
		c.errorf(d, "declaration", "redeclaration of %s", d.Name)
	}

	var declaredType types.Type
	if d.Annotation != nil {
		annotated, err := c.resolveTypeExpr(d.Annotation, nil)
		if err != nil {
			c.errorf(d, "declaration", "%v", err)
			annotated = types.Unknowable
		}
		declaredType = annotated
		if d.Init != nil {
			initType := c.InferType(d.Init)
			if declaredType.Kind() != types.KindUnknowable && initType.Kind() != types.KindUnknowable &&
				!types.Equal(initType, declaredType) {
				c.errorf(d, "declaration", "cannot assign %s to %s (declared %s)",
					types.Format(initType), d.Name, types.Format(declaredType))
			}
		}
	} else if d.Init != nil {
		declaredType = c.InferType(d.Init)
	} else {
		c.errorf(d, "declaration", "declaration of %s has neither an annotation nor an initializer", d.Name)
		declaredType = types.Unknowable
	}

	c.Scopes.Observe(d.Name, declaredType)
	if d.Init != nil {
		c.Scopes.Initialize(d.Name)
	}
}

// checkStaticValueDecl declares a static value from its type annotation
// alone — `static FOO: Bar;` carries no initializer here; the module
// subsystem is responsible for supplying the value later. The declared
// type, not any initializer's inferred type, is what must be deeply
// immutable.
func (c *Checker) checkStaticValueDecl(s *ast.StaticValueDecl) {
	if c.Scopes.IsDeclared(s.Name) {
		c.errorf(s, "static_value", "redeclaration of %s", s.Name)
	}

	var valueType types.Type
	if s.Annotation != nil {
		annotated, err := c.resolveTypeExpr(s.Annotation, nil)
		if err != nil {
			c.errorf(s, "static_value", "%v", err)
			annotated = types.Unknowable
		}
		valueType = annotated
	} else {
		c.errorf(s, "static_value", "static value %s has no type annotation", s.Name)
		valueType = types.Unknowable
	}

	if s.Init != nil {
		initType := c.InferType(s.Init)
		if valueType.Kind() != types.KindUnknowable && initType.Kind() != types.KindUnknowable &&
			!types.Equal(initType, valueType) {
			c.errorf(s, "static_value", "cannot assign %s to %s (declared %s)",
				types.Format(initType), s.Name, types.Format(valueType))
		}
	}

	if valueType.Kind() != types.KindUnknowable && !types.IsDeeplyImmutable(valueType, c.Types) {
		c.errorf(s, "static_value", "illegal mutable static value: %s has type %s",
			s.Name, types.Format(valueType))
	}

	c.Scopes.Observe(s.Name, valueType)
}

// checkStructDef requires that, when declared immutable, every field type
// is deeply immutable, else emit
// a diagnostic for the first offending field with a suggested
// deeply-immutable variant.
func (c *Checker) checkStructDef(s *ast.StructDef) {
	fields := make([]types.StructField, len(s.Fields))
	for i, f := range s.Fields {
		resolved, err := c.resolveTypeExpr(f.Type, nil)
		if err != nil {
			c.errorf(s, "struct_definition", "%v", err)
			resolved = types.Unknowable
		}
		fields[i] = types.StructField{Name: f.Name, Type: resolved}
	}

	structType := types.ConstructStruct(fields, !s.Immutable)

	if s.Immutable {
		for _, f := range fields {
			if f.Type.Kind() == types.KindUnknowable {
				continue
			}
			if !types.IsDeeplyImmutable(f.Type, c.Types) {
				suggestion := ""
				if imm, ok := types.ToDeeplyImmutable(f.Type, c.Types); ok {
					suggestion = types.Format(imm)
				}
				c.errorWithSuggestion(s, "struct_definition",
					fmt.Sprintf("mutable field in immutable struct: field %q has type %s", f.Name, types.Format(f.Type)),
					suggestion)
				break
			}
		}
	}

	c.Scopes.Observe(s.Name, structType)
	c.Scopes.MarkTypeDefinition(s.Name)
	c.Types.Register(s.Name, nil, structType)
}

// checkOneofDef implements the Oneof type definition: resolve each
// variant, reject duplicates, register the nominal name.
func (c *Checker) checkOneofDef(o *ast.OneofDef) {
	variants := make([]types.Type, len(o.Variants))
	for i, v := range o.Variants {
		resolved, err := c.resolveTypeExpr(v, nil)
		if err != nil {
			c.errorf(o, "oneof_definition", "%v", err)
			resolved = types.Unknowable
		}
		variants[i] = resolved
	}

	oneof, err := types.ConstructOneof(variants)
	if err != nil {
		c.errorf(o, "oneof_definition", "illegal oneof %s: %v", o.Name, err)
		oneof = types.Unknowable
	}

	c.Scopes.Observe(o.Name, oneof)
	c.Scopes.MarkTypeDefinition(o.Name)
	c.Types.Register(o.Name, nil, oneof)
}

// checkUserDefinedDef implements the nominal-wrapper type definition:
// register the wrapped body (possibly parameterized over declared generic
// names) and introduce a plain UserDefinedType binding under its name.
func (c *Checker) checkUserDefinedDef(u *ast.UserDefinedDef) {
	generics := make(map[string]bool, len(u.TypeParams))
	for _, p := range u.TypeParams {
		generics[p] = true
	}

	body, err := c.resolveTypeExpr(u.Body, generics)
	if err != nil {
		c.errorf(u, "user_defined_definition", "%v", err)
		body = types.Unknowable
	}

	c.Types.Register(u.Name, u.TypeParams, body)
	c.Scopes.Observe(u.Name, types.UserDefinedType{TypeName: u.Name})
	c.Scopes.MarkTypeDefinition(u.Name)
}

// declareProcedureSignature builds a procedure's FUNCTION/PROVIDER/CONSUMER
// type and binds it eagerly at the current scope, so forward references
// resolve, without yet checking its body.
func (c *Checker) declareProcedureSignature(p *ast.ProcedureDef) {
	generics := make(map[string]bool, len(p.GenericParams))
	for _, g := range p.GenericParams {
		generics[g] = true
	}

	paramTypes := make([]types.Type, len(p.Params))
	for i, param := range p.Params {
		resolved, err := c.resolveTypeExpr(param.Type, generics)
		if err != nil {
			c.errorf(p, "procedure_definition", "%v", err)
			resolved = types.Unknowable
		}
		paramTypes[i] = resolved
	}

	var retType types.Type = types.Nothing
	if p.ReturnType != nil {
		resolved, err := c.resolveTypeExpr(p.ReturnType, generics)
		if err != nil {
			c.errorf(p, "procedure_definition", "%v", err)
			resolved = types.Unknowable
		}
		retType = resolved
	}

	contracts := resolveContractObligations(c, p.RequiredContracts, generics)
	mode := types.NotBlocking
	if p.Blocking {
		mode = types.Blocking
	}

	var procType types.Type
	switch p.Kind {
	case ast.ProcFunction:
		ft := types.ConstructFunction(paramTypes, retType)
		ft.Blocking, ft.GenericParams, ft.BlockingGenericOnArgs, ft.RequiredContracts = mode, p.GenericParams, p.BlockingGenericOn, contracts
		procType = ft
	case ast.ProcProvider:
		pt := types.ConstructProvider(retType)
		pt.Blocking, pt.GenericParams, pt.BlockingGenericOnArgs, pt.RequiredContracts = mode, p.GenericParams, p.BlockingGenericOn, contracts
		procType = pt
	case ast.ProcConsumer:
		ct := types.ConstructConsumer(paramTypes)
		ct.Blocking, ct.GenericParams, ct.BlockingGenericOnArgs, ct.RequiredContracts = mode, p.GenericParams, p.BlockingGenericOn, contracts
		procType = ct
	default:
		c.fatalf("checker: unknown procedure kind %v for %s", p.Kind, p.Name)
	}

	if c.Scopes.IsDeclared(p.Name) {
		c.errorf(p, "procedure_definition", "redeclaration of %s", p.Name)
	}
	c.Scopes.Observe(p.Name, procType)
	c.Scopes.Initialize(p.Name)

	c.declaredBlocking[p] = p.Blocking
	c.procsByName[p.Name] = p
}

func resolveContractObligations(c *Checker, reqs []ast.ContractRequirement, generics map[string]bool) []types.ConstraintObligation {
	var out []types.ConstraintObligation
	for _, req := range reqs {
		for _, argExprs := range req.Args {
			args := make([]types.Type, len(argExprs))
			for i, a := range argExprs {
				resolved, err := c.resolveTypeExpr(a, generics)
				if err != nil {
					resolved = types.Unknowable
				}
				args[i] = resolved
			}
			out = append(out, types.ConstraintObligation{Contract: req.Contract, Args: args})
		}
	}
	return out
}

// checkProcedureBody checks the body of a procedure whose signature was
// already hoisted by declareProcedureSignature, in a fresh PROCEDURE scope.
func (c *Checker) checkProcedureBody(p *ast.ProcedureDef) {
	if p.Body == nil {
		return
	}

	procType, _ := c.Scopes.GetType(p.Name)
	paramTypes, retType := procedureSignatureShape(procType)

	prevReturn, prevProc := c.currentReturnType, c.currentProcedure
	c.currentReturnType, c.currentProcedure = retType, p

	c.Scopes.EnterScope(symbols.Procedure)
	for i, param := range p.Params {
		var pt types.Type = types.Unknowable
		if i < len(paramTypes) {
			pt = paramTypes[i]
		}
		c.Scopes.PutWithHiding(param.Name, pt, nil)
		c.Scopes.Initialize(param.Name)
	}
	c.checkStatements(p.Body.Stmts)
	c.reportUnused(c.Scopes.ExitScope(true))

	c.currentReturnType, c.currentProcedure = prevReturn, prevProc
}

func procedureSignatureShape(t types.Type) (params []types.Type, ret types.Type) {
	switch v := t.(type) {
	case types.FunctionType:
		return v.Params, v.Return
	case types.ProviderType:
		return nil, v.Return
	case types.ConsumerType:
		return v.Params, types.Nothing
	default:
		return nil, types.Unknowable
	}
}
