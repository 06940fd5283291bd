// Package ast defines the external data model consumed by the semantic
// checker: an already-parsed syntax tree. Parsing itself (lexer, grammar
// actions) is out of scope here; this package only carries the node shapes
// the checker walks and the small set of builder helpers tests use to
// construct fixtures directly, the same way a real parser would hand off
// its result.
package ast

// Span locates a node in its originating source file. A zero Span means
// the node was built synthetically (e.g. in a test fixture) and carries no
// source location.
type Span struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Node is satisfied by every AST node, statement or expression alike.
type Node interface {
	Span() Span
	setSpan(Span)
}

// Statement is satisfied by every top-level or block-level statement node.
type Statement interface {
	Node
	stmtNode()
}

// Expression is satisfied by every value-producing node.
type Expression interface {
	Node
	exprNode()
}

// TypeExpression is satisfied by every syntactic type annotation node. The
// checker resolves these into types.Type values; TypeExpression itself
// carries no type-algebra semantics.
type TypeExpression interface {
	Node
	typeExprNode()
}

type base struct {
	span Span
}

func (b *base) Span() Span       { return b.span }
func (b *base) setSpan(s Span)   { b.span = s }

// SetSpan annotates node with the given source location. Builders used in
// fixtures may skip this; it defaults to the zero Span.
func SetSpan(node Node, span Span) {
	if node != nil {
		node.setSpan(span)
	}
}
