package modules

import (
	"testing"

	"vellum/pkg/ast"
	"vellum/pkg/checker"
	"vellum/pkg/symbols"
	"vellum/pkg/types"
)

func newTestBinder() (*Binder, *types.Registry, *symbols.Table) {
	reg := types.NewRegistry()
	scopes := symbols.New()
	c := checker.New(reg)
	c.Scopes = scopes
	b := NewBinder(reg, scopes, c.ResolveTypeExpr)
	return b, reg, scopes
}

func namedType(name string) ast.TypeExpression {
	return &ast.NamedTypeExpr{Name: name}
}

func TestRegisterDependencyTypesPopulatesRegistryUnderQualifiedName(t *testing.T) {
	b, reg, _ := newTestBinder()
	desc := &Descriptor{ProjectNamespace: "acme", UniqueName: "widgets", Exports: []string{"Box"}}
	bindings := &ModuleBindings{
		Types: []TypeExport{{Name: "Box", Body: namedType("int")}},
	}

	if err := b.RegisterDependencyTypes(desc, bindings); err != nil {
		t.Fatalf("RegisterDependencyTypes: %v", err)
	}

	qualified := QualifiedTypeName(desc.QualifiedName(), "Box")
	body, params, ok := reg.Lookup(qualified)
	if !ok {
		t.Fatalf("expected %s to be registered", qualified)
	}
	if body.Kind() != types.KindInt {
		t.Errorf("expected wrapped body int, got %s", types.Format(body))
	}
	if len(params) != 0 {
		t.Errorf("expected no type params, got %v", params)
	}
}

func TestBindDependencyProceduresUsesDisambiguatedName(t *testing.T) {
	b, _, scopes := newTestBinder()
	desc := &Descriptor{ProjectNamespace: "acme", UniqueName: "widgets"}
	bindings := &ModuleBindings{
		Procedures: []ProcedureExport{
			{Name: "make", Signature: &ast.ProcTypeExpr{Kind: ast.ProcFunction, Return: namedType("int")}},
		},
	}
	if err := b.RegisterDependencyTypes(desc, bindings); err != nil {
		t.Fatalf("RegisterDependencyTypes: %v", err)
	}
	if err := b.BindDependencyProcedures(); err != nil {
		t.Fatalf("BindDependencyProcedures: %v", err)
	}

	qualified := QualifiedProcedureName(desc.QualifiedName(), "make")
	typ, ok := scopes.GetType(qualified)
	if !ok {
		t.Fatalf("expected %s to be bound", qualified)
	}
	ft, ok := typ.(types.FunctionType)
	if !ok {
		t.Fatalf("expected FunctionType, got %T", typ)
	}
	if ft.Return.Kind() != types.KindInt {
		t.Errorf("expected int return, got %s", types.Format(ft.Return))
	}
}

func TestInitializersAreRecordedKeyedByQualifiedTypeName(t *testing.T) {
	b, _, _ := newTestBinder()
	desc := &Descriptor{ProjectNamespace: "acme", UniqueName: "widgets"}
	bindings := &ModuleBindings{
		Types: []TypeExport{{Name: "Box", Body: namedType("int")}},
		Initializers: []InitializerExport{
			{TypeName: "Box", ProcedureName: "newBox", Kind: Initializer},
			{TypeName: "Box", ProcedureName: "unbox", Kind: Unwrapper},
		},
	}
	if err := b.RegisterDependencyTypes(desc, bindings); err != nil {
		t.Fatalf("RegisterDependencyTypes: %v", err)
	}
	if err := b.BindDependencyProcedures(); err != nil {
		t.Fatalf("BindDependencyProcedures: %v", err)
	}

	got := b.Initializers(QualifiedTypeName(desc.QualifiedName(), "Box"))
	if len(got) != 2 {
		t.Fatalf("expected 2 initializer exports, got %d", len(got))
	}
	if got[0].ProcedureName != "newBox" || got[0].Kind != Initializer {
		t.Errorf("unexpected first initializer export: %+v", got[0])
	}
	if got[1].ProcedureName != "unbox" || got[1].Kind != Unwrapper {
		t.Errorf("unexpected second initializer export: %+v", got[1])
	}
}

func TestRegisterSelfRecordsIdentityUnderSentinelKey(t *testing.T) {
	b, _, _ := newTestBinder()
	self := &Descriptor{ProjectNamespace: "acme", UniqueName: "main"}
	b.RegisterSelf(self)

	got, ok := b.Descriptor(SelfKey)
	if !ok {
		t.Fatal("expected self descriptor to be recorded under SelfKey")
	}
	if got.QualifiedName() != "acme/main" {
		t.Errorf("unexpected self identity: %s", got.QualifiedName())
	}
}

func TestTwoDependenciesMayReuseAnUnqualifiedTypeName(t *testing.T) {
	b, reg, _ := newTestBinder()
	descA := &Descriptor{ProjectNamespace: "acme", UniqueName: "a"}
	descB := &Descriptor{ProjectNamespace: "acme", UniqueName: "b"}
	bindingsA := &ModuleBindings{Types: []TypeExport{{Name: "Box", Body: namedType("int")}}}
	bindingsB := &ModuleBindings{Types: []TypeExport{{Name: "Box", Body: namedType("string")}}}

	if err := b.RegisterDependencyTypes(descA, bindingsA); err != nil {
		t.Fatalf("RegisterDependencyTypes A: %v", err)
	}
	if err := b.RegisterDependencyTypes(descB, bindingsB); err != nil {
		t.Fatalf("RegisterDependencyTypes B: %v", err)
	}

	bodyA, _, _ := reg.Lookup(QualifiedTypeName(descA.QualifiedName(), "Box"))
	bodyB, _, _ := reg.Lookup(QualifiedTypeName(descB.QualifiedName(), "Box"))
	if bodyA.Kind() != types.KindInt || bodyB.Kind() != types.KindString {
		t.Errorf("expected distinct wrapped bodies per module, got %s and %s",
			types.Format(bodyA), types.Format(bodyB))
	}
}

func TestDescriptorRoundTripsThroughYAML(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/module.yaml"
	d := &Descriptor{ProjectNamespace: "acme", UniqueName: "widgets", Exports: []string{"Box", "make"}}

	if err := WriteDescriptor(d, path); err != nil {
		t.Fatalf("WriteDescriptor: %v", err)
	}
	loaded, err := LoadDescriptor(path)
	if err != nil {
		t.Fatalf("LoadDescriptor: %v", err)
	}
	if loaded.QualifiedName() != d.QualifiedName() {
		t.Errorf("expected %s, got %s", d.QualifiedName(), loaded.QualifiedName())
	}
	if len(loaded.Exports) != 2 {
		t.Errorf("expected 2 exports, got %d", len(loaded.Exports))
	}
}
