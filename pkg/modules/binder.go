package modules

import (
	"fmt"

	"vellum/pkg/ast"
	"vellum/pkg/symbols"
	"vellum/pkg/types"
)

// TypeExport is one exported user-defined type definition of a dependency
// module: its declared generic-parameter names and its wrapped body,
// already in AST form.
type TypeExport struct {
	Name       string
	TypeParams []string
	Body       ast.TypeExpression
}

// ProcedureExport is one exported procedure signature of a dependency
// module.
type ProcedureExport struct {
	Name      string
	Signature *ast.ProcTypeExpr
}

// InitializerKind distinguishes a module-exported initializer (wraps a
// value into a user-defined type) from an unwrapper (extracts the
// wrapped value back out).
type InitializerKind int

const (
	Initializer InitializerKind = iota
	Unwrapper
)

// InitializerExport records one initializer/unwrapper a module exports,
// keyed by the user-defined type it acts on.
type InitializerExport struct {
	TypeName      string
	ProcedureName string
	Kind          InitializerKind
}

// ModuleBindings is the already-parsed exported-symbol payload for one
// dependency module: everything Binder needs beyond the Descriptor's
// bare identity/export-name list.
type ModuleBindings struct {
	Types        []TypeExport
	Procedures   []ProcedureExport
	Initializers []InitializerExport
}

// ResolveTypeFunc converts an AST type expression into a types.Type,
// given the set of in-scope generic parameter names. Binder takes this
// as a dependency rather than implementing its own resolution, so it
// shares exactly the checker's NamedTypeExpr/container/procedure
// resolution rules (pkg/checker's resolveTypeExpr) instead of
// duplicating them.
type ResolveTypeFunc func(t ast.TypeExpression, generics map[string]bool) (types.Type, error)

// Binder registers every dependency's exported types first, then — once all deps' types are
// registered, so inter-module type references resolve regardless of
// bind order — bind exported procedures under the disambiguated name
// DEP$<M>$<name>, then record initializers/unwrappers.
type Binder struct {
	Types       *types.Registry
	Scopes      *symbols.Table
	ResolveType ResolveTypeFunc

	modules      map[string]*ModuleBindings
	descriptors  map[string]*Descriptor
	initializers map[string][]InitializerExport
}

// NewBinder constructs a Binder over a shared registry and symbol table
// (the same ones the checker uses, so dependency-defined nominal types
// and locally-defined ones resolve through one lookup surface).
func NewBinder(reg *types.Registry, scopes *symbols.Table, resolve ResolveTypeFunc) *Binder {
	return &Binder{
		Types:        reg,
		Scopes:       scopes,
		ResolveType:  resolve,
		modules:      make(map[string]*ModuleBindings),
		descriptors:  make(map[string]*Descriptor),
		initializers: make(map[string][]InitializerExport),
	}
}

// RegisterDependencyTypes records the descriptor and registers every one of the module's exported
// user-defined type bodies into the shared registry, keyed by a name
// qualified with the module's own identity so two dependencies may
// freely reuse an unqualified type name.
func (b *Binder) RegisterDependencyTypes(desc *Descriptor, bindings *ModuleBindings) error {
	key := desc.QualifiedName()
	b.descriptors[key] = desc
	b.modules[key] = bindings

	for _, t := range bindings.Types {
		generics := make(map[string]bool, len(t.TypeParams))
		for _, p := range t.TypeParams {
			generics[p] = true
		}
		body, err := b.ResolveType(t.Body, generics)
		if err != nil {
			return fmt.Errorf("modules: dependency %s: export %s: %w", key, t.Name, err)
		}
		b.Types.Register(QualifiedTypeName(key, t.Name), t.TypeParams, body)
	}
	return nil
}

// RegisterSelf records the module currently being compiled under the
// SelfKey sentinel, disambiguating types defined locally from ones
// defined in a dependency. Self types are
// registered directly under their bare name (checker.declarations.go
// already does this via types.Registry.Register), so this only needs to
// record the identity, not re-register bodies.
func (b *Binder) RegisterSelf(desc *Descriptor) {
	b.descriptors[SelfKey] = desc
}

// BindDependencyProcedures runs after every
// dependency's type defs are registered (call this only once
// RegisterDependencyTypes has run for all of them), bind each exported
// procedure signature under DEP$<M>$<name> in the shared symbol table.
func (b *Binder) BindDependencyProcedures() error {
	for key, bindings := range b.modules {
		for _, p := range bindings.Procedures {
			procType, err := b.ResolveType(p.Signature, nil)
			if err != nil {
				return fmt.Errorf("modules: dependency %s: procedure %s: %w", key, p.Name, err)
			}
			qualified := QualifiedProcedureName(key, p.Name)
			b.Scopes.Observe(qualified, procType)
			b.Scopes.Initialize(qualified)
			b.Scopes.MarkUsed(qualified)
		}
		for _, init := range bindings.Initializers {
			typeKey := QualifiedTypeName(key, init.TypeName)
			b.initializers[typeKey] = append(b.initializers[typeKey], init)
		}
	}
	return nil
}

// Initializers returns the initializers/unwrappers recorded for a
// (module-qualified) user-defined type name.
func (b *Binder) Initializers(qualifiedTypeName string) []InitializerExport {
	return b.initializers[qualifiedTypeName]
}

// Descriptor returns the recorded descriptor for a module key, or the
// self descriptor for SelfKey.
func (b *Binder) Descriptor(key string) (*Descriptor, bool) {
	d, ok := b.descriptors[key]
	return d, ok
}

// QualifiedTypeName builds the registry key for a dependency-exported
// type: its declaring module's identity plus its bare name.
func QualifiedTypeName(moduleKey, name string) string {
	return moduleKey + "#" + name
}

// QualifiedProcedureName builds the disambiguated binding name used for
// a dependency-exported procedure.
func QualifiedProcedureName(moduleKey, name string) string {
	return "DEP$" + moduleKey + "$" + name
}
