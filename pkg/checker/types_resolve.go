package checker

import (
	"fmt"

	"vellum/pkg/ast"
	"vellum/pkg/types"
)

var primitiveNames = map[string]types.Type{
	"int":     types.Int,
	"float":   types.Float,
	"string":  types.String,
	"bool":    types.Bool,
	"module":  types.Module,
	"nothing": types.Nothing,
}

// ResolveTypeExpr is the exported entry point other components (notably
// pkg/modules' Binder) use to resolve a dependency module's exported
// type/procedure AST against this checker's generic-parameter and
// primitive-name rules, so dependency-defined and locally-defined types
// resolve identically.
func (c *Checker) ResolveTypeExpr(t ast.TypeExpression, generics map[string]bool) (types.Type, error) {
	return c.resolveTypeExpr(t, generics)
}

// resolveTypeExpr converts an ast.TypeExpression into a types.Type,
// resolving nominal names either against the currently in-scope generic
// parameter names or, failing that, treating them as a (possibly
// as-yet-unregistered) user-defined nominal reference — registration is
// validated lazily by whatever later consults the registry, since the
// type algebra itself never carries a direct self-reference.
func (c *Checker) resolveTypeExpr(t ast.TypeExpression, generics map[string]bool) (types.Type, error) {
	switch node := t.(type) {
	case nil:
		return types.Nothing, nil
	case *ast.NamedTypeExpr:
		if generics[node.Name] {
			return types.ConstructGenericParam(node.Name), nil
		}
		if prim, ok := primitiveNames[node.Name]; ok {
			return prim, nil
		}
		args := make([]types.Type, len(node.Args))
		for i, a := range node.Args {
			resolved, err := c.resolveTypeExpr(a, generics)
			if err != nil {
				return types.Unknowable, err
			}
			args[i] = resolved
		}
		return types.UserDefinedType{TypeName: node.Name, Args: args}, nil

	case *ast.ListTypeExpr:
		elem, err := c.resolveTypeExpr(node.Elem, generics)
		if err != nil {
			return types.Unknowable, err
		}
		return types.ConstructList(elem, node.Mutable), nil

	case *ast.SetTypeExpr:
		elem, err := c.resolveTypeExpr(node.Elem, generics)
		if err != nil {
			return types.Unknowable, err
		}
		s, err := types.ConstructSet(elem, node.Mutable)
		if err != nil {
			return types.Unknowable, err
		}
		return s, nil

	case *ast.MapTypeExpr:
		key, err := c.resolveTypeExpr(node.Key, generics)
		if err != nil {
			return types.Unknowable, err
		}
		val, err := c.resolveTypeExpr(node.Value, generics)
		if err != nil {
			return types.Unknowable, err
		}
		m, err := types.ConstructMap(key, val, node.Mutable)
		if err != nil {
			return types.Unknowable, err
		}
		return m, nil

	case *ast.FutureTypeExpr:
		val, err := c.resolveTypeExpr(node.Value, generics)
		if err != nil {
			return types.Unknowable, err
		}
		return types.ConstructFuture(val), nil

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(node.Elements))
		for i, e := range node.Elements {
			resolved, err := c.resolveTypeExpr(e, generics)
			if err != nil {
				return types.Unknowable, err
			}
			elems[i] = resolved
		}
		return types.ConstructTuple(elems, node.Mutable), nil

	case *ast.StructTypeExpr:
		fields := make([]types.StructField, len(node.Fields))
		for i, f := range node.Fields {
			resolved, err := c.resolveTypeExpr(f.Type, generics)
			if err != nil {
				return types.Unknowable, err
			}
			fields[i] = types.StructField{Name: f.Name, Type: resolved}
		}
		return types.ConstructStruct(fields, node.Mutable), nil

	case *ast.OneofTypeExpr:
		variants := make([]types.Type, len(node.Variants))
		for i, v := range node.Variants {
			resolved, err := c.resolveTypeExpr(v, generics)
			if err != nil {
				return types.Unknowable, err
			}
			variants[i] = resolved
		}
		oneof, err := types.ConstructOneof(variants)
		if err != nil {
			return types.Unknowable, err
		}
		return oneof, nil

	case *ast.ProcTypeExpr:
		procGenerics := generics
		if len(node.GenericParams) > 0 {
			procGenerics = mergeGenerics(generics, node.GenericParams)
		}
		params := make([]types.Type, len(node.Params))
		for i, p := range node.Params {
			resolved, err := c.resolveTypeExpr(p, procGenerics)
			if err != nil {
				return types.Unknowable, err
			}
			params[i] = resolved
		}
		var ret types.Type = types.Nothing
		if node.Return != nil {
			resolved, err := c.resolveTypeExpr(node.Return, procGenerics)
			if err != nil {
				return types.Unknowable, err
			}
			ret = resolved
		}
		mode := blockingAnnotationToMode(node.Blocking)
		switch node.Kind {
		case ast.ProcFunction:
			ft := types.ConstructFunction(params, ret)
			ft.Blocking = mode
			ft.GenericParams = node.GenericParams
			ft.BlockingGenericOnArgs = node.BlockingGenericOn
			return ft, nil
		case ast.ProcProvider:
			pt := types.ConstructProvider(ret)
			pt.Blocking = mode
			pt.GenericParams = node.GenericParams
			pt.BlockingGenericOnArgs = node.BlockingGenericOn
			return pt, nil
		case ast.ProcConsumer:
			ct := types.ConstructConsumer(params)
			ct.Blocking = mode
			ct.GenericParams = node.GenericParams
			ct.BlockingGenericOnArgs = node.BlockingGenericOn
			return ct, nil
		default:
			return types.Unknowable, fmt.Errorf("checker: unknown procedure kind %v", node.Kind)
		}

	case *ast.GenericParamTypeExpr:
		return types.ConstructGenericParam(node.Name), nil

	default:
		return types.Unknowable, fmt.Errorf("checker: unhandled type expression %T", t)
	}
}

func mergeGenerics(base map[string]bool, extra []string) map[string]bool {
	merged := make(map[string]bool, len(base)+len(extra))
	for k := range base {
		merged[k] = true
	}
	for _, name := range extra {
		merged[name] = true
	}
	return merged
}

func blockingAnnotationToMode(b ast.BlockingAnnotation) types.BlockingMode {
	switch b {
	case ast.BlockingAlways:
		return types.Blocking
	case ast.BlockingMaybe:
		return types.MaybeBlocking
	default:
		return types.NotBlocking
	}
}
