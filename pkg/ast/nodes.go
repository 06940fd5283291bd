package ast

// Module is the root of a single compilation unit's syntax tree.
type Module struct {
	base
	Name string
	Body []Statement
}

// ProcKind distinguishes the three procedure-type arities.
type ProcKind int

const (
	ProcFunction ProcKind = iota
	ProcProvider
	ProcConsumer
)

func (k ProcKind) String() string {
	switch k {
	case ProcFunction:
		return "function"
	case ProcProvider:
		return "provider"
	case ProcConsumer:
		return "consumer"
	default:
		return "unknown"
	}
}

// BinOp enumerates the numeric binary operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
)

// EqOp distinguishes equality from inequality comparison.
type EqOp int

const (
	OpEquals EqOp = iota
	OpNotEquals
)

// ParamDef is a single formal parameter of a procedure or lambda.
type ParamDef struct {
	Name string
	Type TypeExpression
}

// FieldDef is a single named field of a struct definition or type.
type FieldDef struct {
	Name string
	Type TypeExpression
}

// ContractRequirement records one `required_contracts` table entry: a
// contract name and the generic-argument tuples it must be satisfied for.
type ContractRequirement struct {
	Contract string
	Args     [][]TypeExpression
}

// ---- statements ----

// Block is a sequence of statements sharing one lexical scope.
type Block struct {
	base
	Stmts []Statement
}

func (*Block) stmtNode() {}

// VarDecl introduces a (possibly annotated) local binding: `x := ...` or
// `var x: T = ...`.
type VarDecl struct {
	base
	Name       string
	Annotation TypeExpression // nil if inferred
	Init       Expression     // nil if declared-but-uninitialized (`var x: T;`)
}

func (*VarDecl) stmtNode() {}

// StaticValueDecl introduces a module-level static value, which must be
// deeply immutable.
type StaticValueDecl struct {
	base
	Name       string
	Annotation TypeExpression
	Init       Expression
}

func (*StaticValueDecl) stmtNode() {}

// AssignStmt assigns to an already-declared name.
type AssignStmt struct {
	base
	Name  string
	Value Expression
}

func (*AssignStmt) stmtNode() {}

// ReturnStmt returns a value (or none, for consumer procedures) from the
// enclosing procedure body.
type ReturnStmt struct {
	base
	Value Expression // nil for a bare `return;`
}

func (*ReturnStmt) stmtNode() {}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	base
	Expr Expression
}

func (*ExprStmt) stmtNode() {}

// StructDef declares a struct type, optionally immutable.
type StructDef struct {
	base
	Name      string
	Immutable bool
	Fields    []FieldDef
}

func (*StructDef) stmtNode() {}

// OneofDef declares a discriminated union over the given variant types.
type OneofDef struct {
	base
	Name     string
	Variants []TypeExpression
}

func (*OneofDef) stmtNode() {}

// UserDefinedDef declares a nominal wrapper type around a body type, with
// optional generic type-parameter names.
type UserDefinedDef struct {
	base
	Name       string
	TypeParams []string
	Body       TypeExpression
}

func (*UserDefinedDef) stmtNode() {}

// ProcedureDef declares a named function/provider/consumer, eagerly bound
// at the declaring scope.
type ProcedureDef struct {
	base
	Name              string
	Kind              ProcKind
	Params            []ParamDef
	ReturnType        TypeExpression // nil for ProcConsumer
	GenericParams     []string
	Blocking          bool
	BlockingGenericOn []int // arg indices; alternative to a flat Blocking flag
	RequiredContracts []ContractRequirement
	Body              *Block
}

func (*ProcedureDef) stmtNode() {}

// ---- expressions ----

// Ident references a previously declared name.
type Ident struct {
	base
	Name string
}

func (*Ident) exprNode() {}

// IntLit is an integer literal.
type IntLit struct {
	base
	Value int64
}

func (*IntLit) exprNode() {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	base
	Value float64
}

func (*FloatLit) exprNode() {}

// StringLit is a string literal.
type StringLit struct {
	base
	Value string
}

func (*StringLit) exprNode() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	base
	Value bool
}

func (*BoolLit) exprNode() {}

// BinaryExpr is a numeric binary operation (+ - * /).
type BinaryExpr struct {
	base
	Op          BinOp
	Left, Right Expression
}

func (*BinaryExpr) exprNode() {}

// NegateExpr negates a numeric operand.
type NegateExpr struct {
	base
	Operand Expression
}

func (*NegateExpr) exprNode() {}

// EqualityExpr compares two operands for (in)equality.
type EqualityExpr struct {
	base
	Op          EqOp
	Left, Right Expression
}

func (*EqualityExpr) exprNode() {}

// CallExpr invokes a procedure value with the given arguments.
type CallExpr struct {
	base
	Callee Expression
	Args   []Expression
}

func (*CallExpr) exprNode() {}

// LambdaExpr is an anonymous closure. Its body is checked in a fresh
// LAMBDA scope.
type LambdaExpr struct {
	base
	Params     []ParamDef
	ReturnType TypeExpression
	Body       *Block
}

func (*LambdaExpr) exprNode() {}

// ElseIfArm is one `else if` arm of a branch group.
type ElseIfArm struct {
	Cond Expression
	Body *Block
}

// IfExpr is a branch group. When Else is non-nil, the group is a candidate
// for branch-coverage (definite-assignment) inspection.
type IfExpr struct {
	base
	Cond    Expression
	Then    *Block
	ElseIfs []ElseIfArm
	Else    *Block // nil if there is no else arm
}

func (*IfExpr) exprNode() {}

// ModuleRef references an imported module by name (a MODULE-kinded
// binding, visible across procedure-scope boundaries).
type ModuleRef struct {
	base
	Name string
}

func (*ModuleRef) exprNode() {}

// ---- type expressions ----

// NamedTypeExpr names a primitive or nominal user-defined type, optionally
// instantiated with type arguments (e.g. `Box<int>`).
type NamedTypeExpr struct {
	base
	Name    string
	Args    []TypeExpression
	Mutable bool
}

func (*NamedTypeExpr) typeExprNode() {}

// ListTypeExpr, SetTypeExpr, MapTypeExpr, FutureTypeExpr are the built-in
// parameterized container type expressions.
type ListTypeExpr struct {
	base
	Elem    TypeExpression
	Mutable bool
}

func (*ListTypeExpr) typeExprNode() {}

type SetTypeExpr struct {
	base
	Elem    TypeExpression
	Mutable bool
}

func (*SetTypeExpr) typeExprNode() {}

type MapTypeExpr struct {
	base
	Key, Value TypeExpression
	Mutable    bool
}

func (*MapTypeExpr) typeExprNode() {}

type FutureTypeExpr struct {
	base
	Value TypeExpression
}

func (*FutureTypeExpr) typeExprNode() {}

// TupleTypeExpr is an ordered, optionally-mutable tuple type.
type TupleTypeExpr struct {
	base
	Elements []TypeExpression
	Mutable  bool
}

func (*TupleTypeExpr) typeExprNode() {}

// StructTypeExpr is an inline (anonymous) struct type expression.
type StructTypeExpr struct {
	base
	Fields  []FieldDef
	Mutable bool
}

func (*StructTypeExpr) typeExprNode() {}

// OneofTypeExpr is an inline discriminated-union type expression.
type OneofTypeExpr struct {
	base
	Variants []TypeExpression
}

func (*OneofTypeExpr) typeExprNode() {}

// BlockingAnnotation is the syntactic blocking qualifier on a procedure
// type expression.
type BlockingAnnotation int

const (
	BlockingNone BlockingAnnotation = iota
	BlockingAlways
	BlockingMaybe
)

// ProcTypeExpr is a function/provider/consumer type expression.
type ProcTypeExpr struct {
	base
	Kind              ProcKind
	Params            []TypeExpression
	Return            TypeExpression // nil for ProcConsumer
	Blocking          BlockingAnnotation
	BlockingGenericOn []int
	GenericParams     []string
}

func (*ProcTypeExpr) typeExprNode() {}

// GenericParamTypeExpr references a generic type parameter by name inside
// a procedure signature.
type GenericParamTypeExpr struct {
	base
	Name string
}

func (*GenericParamTypeExpr) typeExprNode() {}
