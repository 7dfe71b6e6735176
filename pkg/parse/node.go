package parse

import "src.slt.sh/pkg/diag"

// Node represents a node in the syntax tree.
type Node interface {
	diag.Ranger
	n() *node
}

// Stmt is a Node that can appear as a statement of a Chunk or Block.
type Stmt interface {
	Node
	stmt()
}

// Expr is a Node that produces a value.
type Expr interface {
	Node
	expr()
}

// Fields common to all nodes.
type node struct {
	diag.Ranging
	sourceText string
	children   []Node
}

func (n *node) n() *node { return n }

func (n *node) addChild(ch Node) { n.children = append(n.children, ch) }

// SourceText returns the part of the source text that parsed to the node.
func SourceText(n Node) string { return n.n().sourceText }

// Children returns all children of the node in the syntax tree, in source
// order.
func Children(n Node) []Node { return n.n().children }

// Chunk = { Sep } { Stmt { Sep } }
//
// A Chunk is the result of parsing a script.
type Chunk struct {
	node
	Stmts []Stmt
}

// Block = '{' { Sep } { Stmt { Sep } } '}'
type Block struct {
	node
	Stmts []Stmt
}

// Assign = Ident '=' Expr
type Assign struct {
	node
	Name  string
	Value Expr
}

// If = 'if' Expr Block [ 'else' ( If | Block ) ]
type If struct {
	node
	Cond Expr
	Body *Block
	// Else is nil, a *Block or an *If.
	Else Stmt
}

// While = 'while' Expr Block
type While struct {
	node
	Cond Expr
	Body *Block
}

// Return = 'return' [ Expr ]
type Return struct {
	node
	// Value may be nil.
	Value Expr
}

// ExprStmt = Expr ';'
type ExprStmt struct {
	node
	Expr Expr
}

func (*Block) stmt()    {}
func (*Assign) stmt()   {}
func (*If) stmt()       {}
func (*While) stmt()    {}
func (*Return) stmt()   {}
func (*ExprStmt) stmt() {}

// Binary is an expression with an infix operator. Op is one of "||", "&&",
// "==", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/" and "%".
type Binary struct {
	node
	Op    string
	Left  Expr
	Right Expr
}

// Unary is an expression with a prefix operator, either "-" or "!".
type Unary struct {
	node
	Op      string
	Operand Expr
}

// Call = Postfix '(' [ Expr { ',' Expr } ] ')'
type Call struct {
	node
	Callee Expr
	Args   []Expr
}

// Index = Postfix '[' Expr ']'
type Index struct {
	node
	Target Expr
	Key    Expr
}

// Ident is a variable reference.
type Ident struct {
	node
	Name string
}

// Number is an integer or floating-point literal. Value is an int or a
// float64.
type Number struct {
	node
	Value any
}

// String is a string literal. Value holds the unquoted text.
type String struct {
	node
	Value string
}

// Bool is either "true" or "false".
type Bool struct {
	node
	Value bool
}

// Null is the "null" literal.
type Null struct {
	node
}

// List = '[' [ Expr { ',' Expr } ] ']'
type List struct {
	node
	Elems []Expr
}

// Fn = 'fn' '(' [ Ident { ',' Ident } ] ')' Block
type Fn struct {
	node
	Params []string `fmt:"%q"`
	Body   *Block
}

func (*Binary) expr() {}
func (*Unary) expr()  {}
func (*Call) expr()   {}
func (*Index) expr()  {}
func (*Ident) expr()  {}
func (*Number) expr() {}
func (*String) expr() {}
func (*Bool) expr()   {}
func (*Null) expr()   {}
func (*List) expr()   {}
func (*Fn) expr()     {}
