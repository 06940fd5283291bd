// Package symbols implements the scoped symbol table: a stack of scopes
// with capability-gated lookup and definite-assignment tracking.
package symbols

import "vellum/pkg/types"

// ScopeKind determines the visibility rules applied when a lookup crosses
// a scope's outer boundary.
type ScopeKind int

const (
	// Block admits free access to outer scopes, subject to whatever
	// restriction outer PROCEDURE/LAMBDA boundaries impose.
	Block ScopeKind = iota
	// Procedure admits only procedure-kinded, module-kinded, and
	// type-definition bindings from outside itself.
	Procedure
	// Lambda admits anything from outside, but forces an implicit
	// snapshot-capture into the crossed lambda scope.
	Lambda
)

// Binding is the (type, optional value, flags) record installed for a
// name in some scope.
type Binding struct {
	Type             types.Type
	Value            any // only meaningful in interpreter mode
	Declared         bool
	Used             bool
	IsTypeDefinition bool
}

// Scope is one level of the symbol table stack.
type Scope struct {
	kind ScopeKind

	bindings    map[string]*Binding
	initialized map[string]struct{}
	captured    map[string]struct{}

	branchInspection bool
	branchIntersect  map[string]struct{}
	branchSeen       bool
}

func newScope(kind ScopeKind) *Scope {
	return &Scope{
		kind:        kind,
		bindings:    make(map[string]*Binding),
		initialized: make(map[string]struct{}),
		captured:    make(map[string]struct{}),
	}
}

// Captured reports the set of names this scope captured implicitly via
// lambda-boundary snapshot capture.
func (s *Scope) Captured() map[string]struct{} { return s.captured }

// Table is an ordered stack of scopes, innermost last.
type Table struct {
	scopes      []*Scope
	CheckUnused bool
}

// New constructs a symbol table with a single outermost Block scope.
func New() *Table {
	t := &Table{CheckUnused: true}
	t.scopes = []*Scope{newScope(Block)}
	return t
}

func (t *Table) top() *Scope { return t.scopes[len(t.scopes)-1] }

// EnterScope pushes a new scope of the given kind.
func (t *Table) EnterScope(kind ScopeKind) {
	t.scopes = append(t.scopes, newScope(kind))
}

// UnusedSymbol describes a binding that went out of scope without being
// read, to be surfaced as a diagnostic by the caller.
type UnusedSymbol struct {
	Name    string
	Type    types.Type
	Warning bool // true for struct/immutable-struct (warn, not error)
}

// ExitScope pops the current scope. When checkUnused is true, every
// binding without Used=true is reported (structs are reported with
// Warning=true rather than treated as hard errors). If the
// parent scope has branch inspection enabled, the exited scope's
// initialized set (minus names declared locally within it) is merged into
// the parent's running per-branch intersection.
func (t *Table) ExitScope(checkUnused bool) []UnusedSymbol {
	exited := t.scopes[len(t.scopes)-1]
	var unused []UnusedSymbol
	if checkUnused && t.CheckUnused {
		for name, b := range exited.bindings {
			if b.Used {
				continue
			}
			if isStructKind(b.Type) {
				unused = append(unused, UnusedSymbol{Name: name, Type: b.Type, Warning: true})
			} else {
				unused = append(unused, UnusedSymbol{Name: name, Type: b.Type, Warning: false})
			}
		}
	}
	t.scopes = t.scopes[:len(t.scopes)-1]

	parent := t.top()
	if parent.branchInspection {
		t.mergeBranch(parent, exited)
	}
	return unused
}

func isStructKind(t types.Type) bool {
	return t != nil && t.Kind() == types.KindStruct
}

// BeginBranchInspection marks the current scope as merging the
// initialization sets of the sibling branches about to be entered.
// Callers must only do this when they can guarantee the branch group is
// total (e.g. an if with an else).
func (t *Table) BeginBranchInspection() {
	s := t.top()
	s.branchInspection = true
	s.branchSeen = false
	s.branchIntersect = nil
}

func (t *Table) mergeBranch(parent, exited *Scope) {
	known := make(map[string]struct{})
	for name := range exited.initialized {
		if _, declaredLocally := exited.bindings[name]; declaredLocally {
			continue
		}
		known[name] = struct{}{}
	}
	if !parent.branchSeen {
		parent.branchIntersect = known
		parent.branchSeen = true
		return
	}
	for name := range parent.branchIntersect {
		if _, ok := known[name]; !ok {
			delete(parent.branchIntersect, name)
		}
	}
}

// FinalizeBranches unions the intersected per-branch initialization set
// into the current scope's own initialized set and disables inspection
// mode.
func (t *Table) FinalizeBranches() {
	s := t.top()
	for name := range s.branchIntersect {
		s.initialized[name] = struct{}{}
	}
	s.branchInspection = false
	s.branchIntersect = nil
	s.branchSeen = false
}

// Observe records a binding at the nearest enclosing scope where name is
// declarable: the current scope if not already declared anywhere visible
// without capability restriction, else the scope that already holds it
// ("observe" semantics). Used during type discovery.
func (t *Table) Observe(name string, typ types.Type) {
	if level, b, ok := t.findDeclaredLevel(name); ok {
		b.Type = typ
		_ = level
		return
	}
	t.top().bindings[name] = &Binding{Type: typ, Declared: true}
}

// Declare marks name as textually declared (used during codegen to guard
// the first emission of a binding.
func (t *Table) Declare(name string) {
	if _, b, ok := t.findDeclaredLevel(name); ok {
		b.Declared = true
	}
}

// Initialize adds name to the current scope's initialized set only, not
// the declaring scope's.
func (t *Table) Initialize(name string) {
	t.top().initialized[name] = struct{}{}
}

// PutValue writes a binding through to its declaring scope (or creates it
// at the current scope), and if value is non-nil records initialization
// at the current scope (interpreter mode).
func (t *Table) PutValue(name string, typ types.Type, value any) {
	level, _, ok := t.findDeclaredLevel(name)
	if !ok {
		level = len(t.scopes) - 1
	}
	t.scopes[level].bindings[name] = &Binding{Type: typ, Value: value, Declared: true}
	if value != nil {
		t.top().initialized[name] = struct{}{}
	}
}

// PutWithHiding always creates a new binding at the current scope,
// shadowing any outer homonym (used for procedure and lambda parameters;
// lambda capture installs its shadow copies itself, in captureInto).
func (t *Table) PutWithHiding(name string, typ types.Type, value any) {
	t.top().bindings[name] = &Binding{Type: typ, Value: value, Declared: true}
	if value != nil {
		t.top().initialized[name] = struct{}{}
	}
}

// findDeclaredLevel performs a plain (capability-unaware) search for the
// scope level that owns name's Binding, innermost first. It does not
// apply §4.2.1 boundary rules; that's Lookup's job.
func (t *Table) findDeclaredLevel(name string) (int, *Binding, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if b, ok := t.scopes[i].bindings[name]; ok {
			return i, b, true
		}
	}
	return 0, nil, false
}

// GetType returns the declared type of name, if declared anywhere visible
// via plain lookup (no capability gating — see Lookup for that).
func (t *Table) GetType(name string) (types.Type, bool) {
	_, b, ok := t.findDeclaredLevel(name)
	if !ok {
		return nil, false
	}
	return b.Type, true
}

// GetValue returns the interpreter-mode value of name, if any.
func (t *Table) GetValue(name string) (any, bool) {
	_, b, ok := t.findDeclaredLevel(name)
	if !ok {
		return nil, false
	}
	return b.Value, true
}

// IsDeclared reports whether name is declared anywhere visible via plain
// lookup.
func (t *Table) IsDeclared(name string) bool {
	_, b, ok := t.findDeclaredLevel(name)
	return ok && b.Declared
}

// IsInitialized reports whether name has been initialized along the
// current control-flow path, searching outward.
func (t *Table) IsInitialized(name string) bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if _, ok := t.scopes[i].initialized[name]; ok {
			return true
		}
		if _, ok := t.scopes[i].bindings[name]; ok {
			return false
		}
	}
	return false
}

// MarkUsed marks name as used at its declaring scope.
func (t *Table) MarkUsed(name string) {
	if _, b, ok := t.findDeclaredLevel(name); ok {
		b.Used = true
	}
}

// MarkTypeDefinition marks name's binding as a type definition, making it
// visible across a PROCEDURE boundary.
func (t *Table) MarkTypeDefinition(name string) {
	if _, b, ok := t.findDeclaredLevel(name); ok {
		b.IsTypeDefinition = true
	}
}

// Depth reports the number of scopes currently on the stack.
func (t *Table) Depth() int { return len(t.scopes) }
