package ast

// Builder helpers for constructing fixtures in tests, mirroring the
// terse one-liner constructors a real parser's AST-builder layer would
// expose (NewModule, Bin, Call, Proc, ...).

func NewModule(name string, body ...Statement) *Module {
	return &Module{Name: name, Body: body}
}

func NewBlock(stmts ...Statement) *Block {
	return &Block{Stmts: stmts}
}

func Id(name string) *Ident { return &Ident{Name: name} }

func IntV(v int64) *IntLit       { return &IntLit{Value: v} }
func FloatV(v float64) *FloatLit { return &FloatLit{Value: v} }
func StrV(v string) *StringLit   { return &StringLit{Value: v} }
func BoolV(v bool) *BoolLit      { return &BoolLit{Value: v} }

func Bin(op BinOp, l, r Expression) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: l, Right: r}
}

func Neg(x Expression) *NegateExpr { return &NegateExpr{Operand: x} }

func Eq(l, r Expression) *EqualityExpr    { return &EqualityExpr{Op: OpEquals, Left: l, Right: r} }
func NotEq(l, r Expression) *EqualityExpr { return &EqualityExpr{Op: OpNotEquals, Left: l, Right: r} }

func Call(callee Expression, args ...Expression) *CallExpr {
	return &CallExpr{Callee: callee, Args: args}
}

func Lambda(params []ParamDef, ret TypeExpression, body *Block) *LambdaExpr {
	return &LambdaExpr{Params: params, ReturnType: ret, Body: body}
}

func If(cond Expression, then *Block) *IfExpr {
	return &IfExpr{Cond: cond, Then: then}
}

func (e *IfExpr) WithElseIf(cond Expression, body *Block) *IfExpr {
	e.ElseIfs = append(e.ElseIfs, ElseIfArm{Cond: cond, Body: body})
	return e
}

func (e *IfExpr) WithElse(body *Block) *IfExpr {
	e.Else = body
	return e
}

func ModRef(name string) *ModuleRef { return &ModuleRef{Name: name} }

func Param(name string, t TypeExpression) ParamDef { return ParamDef{Name: name, Type: t} }
func Field(name string, t TypeExpression) FieldDef { return FieldDef{Name: name, Type: t} }

func Decl(name string, annotation TypeExpression, init Expression) *VarDecl {
	return &VarDecl{Name: name, Annotation: annotation, Init: init}
}

func StaticDecl(name string, annotation TypeExpression, init Expression) *StaticValueDecl {
	return &StaticValueDecl{Name: name, Annotation: annotation, Init: init}
}

func Assign(name string, value Expression) *AssignStmt {
	return &AssignStmt{Name: name, Value: value}
}

func Return(value Expression) *ReturnStmt { return &ReturnStmt{Value: value} }

func Expr(e Expression) *ExprStmt { return &ExprStmt{Expr: e} }

func Struct(name string, immutable bool, fields ...FieldDef) *StructDef {
	return &StructDef{Name: name, Immutable: immutable, Fields: fields}
}

func Oneof(name string, variants ...TypeExpression) *OneofDef {
	return &OneofDef{Name: name, Variants: variants}
}

func UserDefined(name string, body TypeExpression, typeParams ...string) *UserDefinedDef {
	return &UserDefinedDef{Name: name, TypeParams: typeParams, Body: body}
}

func Proc(kind ProcKind, name string, params []ParamDef, ret TypeExpression, body *Block) *ProcedureDef {
	return &ProcedureDef{Name: name, Kind: kind, Params: params, ReturnType: ret, Body: body}
}

func (p *ProcedureDef) WithBlocking() *ProcedureDef {
	p.Blocking = true
	return p
}

func (p *ProcedureDef) WithGenerics(names ...string) *ProcedureDef {
	p.GenericParams = names
	return p
}

func (p *ProcedureDef) WithBlockingGenericOn(argIndices ...int) *ProcedureDef {
	p.BlockingGenericOn = argIndices
	return p
}

func (p *ProcedureDef) WithRequiredContract(contract string, args ...[]TypeExpression) *ProcedureDef {
	p.RequiredContracts = append(p.RequiredContracts, ContractRequirement{Contract: contract, Args: args})
	return p
}

// ---- type expression builders ----

func Ty(name string, args ...TypeExpression) *NamedTypeExpr {
	return &NamedTypeExpr{Name: name, Args: args}
}

func MutTy(t *NamedTypeExpr) *NamedTypeExpr {
	t.Mutable = true
	return t
}

func ListTy(elem TypeExpression) *ListTypeExpr         { return &ListTypeExpr{Elem: elem} }
func MutListTy(elem TypeExpression) *ListTypeExpr      { return &ListTypeExpr{Elem: elem, Mutable: true} }
func SetTy(elem TypeExpression) *SetTypeExpr           { return &SetTypeExpr{Elem: elem} }
func MutSetTy(elem TypeExpression) *SetTypeExpr        { return &SetTypeExpr{Elem: elem, Mutable: true} }
func MapTy(k, v TypeExpression) *MapTypeExpr           { return &MapTypeExpr{Key: k, Value: v} }
func MutMapTy(k, v TypeExpression) *MapTypeExpr        { return &MapTypeExpr{Key: k, Value: v, Mutable: true} }
func FutureTy(value TypeExpression) *FutureTypeExpr    { return &FutureTypeExpr{Value: value} }

func TupleTy(elements ...TypeExpression) *TupleTypeExpr {
	return &TupleTypeExpr{Elements: elements}
}

func MutTupleTy(elements ...TypeExpression) *TupleTypeExpr {
	return &TupleTypeExpr{Elements: elements, Mutable: true}
}

func StructTy(fields ...FieldDef) *StructTypeExpr {
	return &StructTypeExpr{Fields: fields}
}

func MutStructTy(fields ...FieldDef) *StructTypeExpr {
	return &StructTypeExpr{Fields: fields, Mutable: true}
}

func OneofTy(variants ...TypeExpression) *OneofTypeExpr {
	return &OneofTypeExpr{Variants: variants}
}

func FuncTy(params []TypeExpression, ret TypeExpression) *ProcTypeExpr {
	return &ProcTypeExpr{Kind: ProcFunction, Params: params, Return: ret}
}

func ProviderTy(ret TypeExpression) *ProcTypeExpr {
	return &ProcTypeExpr{Kind: ProcProvider, Return: ret}
}

func ConsumerTy(params ...TypeExpression) *ProcTypeExpr {
	return &ProcTypeExpr{Kind: ProcConsumer, Params: params}
}

func (p *ProcTypeExpr) WithBlocking(b BlockingAnnotation) *ProcTypeExpr {
	p.Blocking = b
	return p
}

func GenericTy(name string) *GenericParamTypeExpr { return &GenericParamTypeExpr{Name: name} }
